package cssom

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/corebrowser/dom"
	"github.com/npillmayer/corebrowser/selector"
	"github.com/npillmayer/corebrowser/style"
	"github.com/npillmayer/corebrowser/styledtree"
	"github.com/npillmayer/corebrowser/tree"
	"github.com/npillmayer/schuko/tracing"
)

// CSSOM is the "CSS Object Model", similar to the DOM for HTML.
// Our CSSOM consists of a set of stylesheets, each relevant for a sub-tree
// of the HTML parse tree. This sub-tree is called the "scope" of the stylesheet.
// Sub-trees are identified through the top node.
//
// Stylesheets are wrapped into an internal rules tree.
type CSSOM struct {
	rulesTree         *rulesTreeType               // style sheets
	defaultProperties *style.PropertyMap           // "user agent" style properties
	compoundSplitters []CompoundPropertiesSplitter // split up compound properties
}

// NewCSSOM creates an empty CSSOM.
// Clients are allowed to supply a map of additional/custom CSS property values.
// These may override values of the default ("user-agent") style sheet,
// or introduce completely new styling properties.
func NewCSSOM(additionalProperties []style.KeyValue) CSSOM {
	cssom := CSSOM{}
	cssom.rulesTree = newRulesTree()
	cssom.defaultProperties = style.InitializeDefaultPropertyValues(additionalProperties)
	cssom.compoundSplitters = make([]CompoundPropertiesSplitter, 1)
	cssom.compoundSplitters[0] = style.SplitCompoundProperty
	return cssom
}

// AddStylesForScope includes a stylesheet to a CSSOM and sets the scope for
// the stylesheet. If a stylesheet for the scope already exists, the
// styles are merged. css may be nil. If scope is nil then scope is the
// root (i.e., top-level content element) of a future document.
func (cssom CSSOM) AddStylesForScope(scope *dom.Node, css StyleSheet, source PropertySource) error {
	if scope != nil && scope.Kind != dom.ElementNode {
		return errors.New("can style element nodes only")
	}
	if css == nil {
		return errors.New("style sheet is nil")
	}
	cssom.rulesTree.StoreStylesheetForDOMNode(scope, css, source)
	return nil
}

// --- A rules tree -----------------------------------------------------

// rulesTreeType holds the styling rules of a stylesheet, keyed by the DOM
// scope node they apply to.
type rulesTreeType struct {
	stylesheets *sync.Map                     // of type *dom.Node -> []stylesheetType
	selectors   map[string]selector.Selector  // cache of compiled selectors
}

// ad-hoc container type for stylesheets and their origin.
type stylesheetType struct {
	stylesheet StyleSheet
	source     PropertySource
}

func newRulesTree() *rulesTreeType {
	rt := &rulesTreeType{}
	rt.stylesheets = &sync.Map{}
	rt.selectors = make(map[string]selector.Selector)
	return rt
}

// StylesheetsForDOMNode retrieves all style sheets registered for a DOM
// node. If n is nil it is interpreted as the root scope.
func (rt rulesTreeType) StylesheetsForDOMNode(n *dom.Node) []stylesheetType {
	if n == nil {
		n = rootElement
	}
	sheets, found := rt.stylesheets.Load(n)
	if !found {
		return nil
	}
	return sheets.([]stylesheetType)
}

// StoreStylesheetForDOMNode registers a style sheet for a DOM node. If n
// is nil it is interpreted as the root scope.
func (rt rulesTreeType) StoreStylesheetForDOMNode(n *dom.Node, sheet StyleSheet, source PropertySource) {
	if n == nil {
		n = rootElement
	}
	sheets := rt.StylesheetsForDOMNode(n)
	if sheets == nil {
		tracer().Debugf("adding first style sheet for DOM node %v", n)
		rt.stylesheets.Store(n, []stylesheetType{{sheet, source}})
	} else {
		tracer().Debugf("adding another style sheet for DOM node %v", n)
		sheets = append(sheets, stylesheetType{sheet, source})
		rt.stylesheets.Store(n, sheets)
	}
}

// Empty is a predicate wether a rulestree is empty, i.e. does not contain
// any rules.
func (rt *rulesTreeType) Empty() bool {
	if rt == nil {
		return true
	}
	csscnt := 0
	rt.stylesheets.Range(func(interface{}, interface{}) bool {
		csscnt++
		return true
	})
	tracer().Debugf("style sheet entries in rules tree for %d scopes", csscnt)
	return csscnt == 0
}

// CompoundPropertiesSplitter splits compound properties into atomic properties.
type CompoundPropertiesSplitter func(string, style.Property) ([]style.KeyValue, error)

// RegisterCompoundSplitter allows clients to handle additional compound
// properties. See type CompoundPropertiesSplitter.
func (cssom *CSSOM) RegisterCompoundSplitter(splitter CompoundPropertiesSplitter) {
	if splitter != nil {
		cssom.compoundSplitters = append(cssom.compoundSplitters, splitter)
	}
}

// --- Style Rule Matching ----------------------------------------------

// PropertySource denotes where CSS properties come from and therewith
// determines the specificity of properties.
type PropertySource uint8

// Values for property sources, used when adding style sheets.
const (
	Global    PropertySource = iota + 1 // "browser" globals
	Author                              // CSS author (stylesheet link)
	Script                              // <script> element
	Attribute                           // in an element's attribute(s)
)

// rootElement is a symbolic node to denote the body element of a future
// HTML document. AddStylesForScope(...) with nil as a scope will replace it
// with this marker for scoping the complete document body.
var rootElement = &dom.Node{Kind: dom.ElementNode, Data: "root"}

// matchesList holds, for one DOM node, the rules that matched it and
// (after SortProperties) the resulting property table ordered highest
// specificity first.
type matchesList struct {
	matchingRules   []Rule
	propertiesTable []propertyPlusSpecifityType
}

// sorter
type byHighestSpecifity []propertyPlusSpecifityType

func (sp byHighestSpecifity) Len() int           { return len(sp) }
func (sp byHighestSpecifity) Swap(i, j int)      { sp[i], sp[j] = sp[j], sp[i] }
func (sp byHighestSpecifity) Less(i, j int) bool { return sp[j].spec.Less(sp[i].spec) }

func (matches *matchesList) String() string {
	s := fmt.Sprintf("match of %d rules:\n", len(matches.matchingRules))
	s += "Src +-- Spec. --+------------- Key --------------+------- Value ---------------\n"
	for _, sp := range matches.propertiesTable {
		s += fmt.Sprintf("%3d | %9v | %30s | %s\n", sp.source, sp.spec, sp.propertyKey, sp.propertyValue)
	}
	return s
}

// FilterMatchesFor iterates through all the rules relevant at this point
// and looks for rules matching the current DOM node n, using package
// selector for the actual matching (compiled selectors are cached).
func (rt *rulesTreeType) FilterMatchesFor(n *dom.Node) *matchesList {
	matchingRules := make([]Rule, 0, 3)
	sheets := rt.StylesheetsForDOMNode(rootElement)
	for _, s := range sheets {
		rules := s.stylesheet.Rules()
		tracer().Debugf("stylesheet has %d rules", len(rules))
		for _, rule := range rules {
			if rt.matchRuleForDOMNode(n, rule) {
				matchingRules = append(matchingRules, rule)
			}
		}
	}
	sheets = rt.StylesheetsForDOMNode(n)
	for _, s := range sheets {
		for _, rule := range s.stylesheet.Rules() {
			if rt.matchRuleForDOMNode(n, rule) {
				matchingRules = append(matchingRules, rule)
			}
		}
	}
	return &matchesList{matchingRules, nil}
}

func (rt *rulesTreeType) matchRuleForDOMNode(n *dom.Node, rule Rule) bool {
	selectorString := rule.Selector()
	if selectorString == "" { // style-attribute local for this DOM node
		return true
	}
	sel, found := rt.selectors[selectorString]
	if !found {
		var err error
		sel, err = selector.Compile(selectorString)
		if err != nil {
			tracer().Errorf("CSS selector seems not to work: %s", selectorString)
			return false
		}
		rt.selectors[selectorString] = sel
	}
	return sel.Match(n)
}

// SortProperties takes a slice of CSS rules (matched for a DOM node) and
// extracts all the properties set within the rules. These properties are
// then split into atomic properties, if they are compound properties, and
// sorted by specificity of the enclosing rule, selector specificity
// computed by package selector rather than the heuristic string-scan the
// teacher implementation used.
func (matches *matchesList) SortProperties(splitters []CompoundPropertiesSplitter) {
	var proptable []propertyPlusSpecifityType
	for rno, rule := range matches.matchingRules {
		spec := ruleSpecificity(rule)
		for _, propertyKey := range rule.Properties() {
			value := rule.Value(propertyKey)
			props, err := splitCompoundProperty(splitters, propertyKey, value)
			if err == nil {
				for _, kv := range props {
					sp := propertyPlusSpecifityType{Author, rule, kv.Key, kv.Value, rule.IsImportant(propertyKey), spec}
					sp.finalize(rno)
					proptable = append(proptable, sp)
				}
			} else {
				sp := propertyPlusSpecifityType{Author, rule, propertyKey, value, rule.IsImportant(propertyKey), spec}
				sp.finalize(rno)
				proptable = append(proptable, sp)
			}
		}
	}
	if len(proptable) > 0 {
		sort.Sort(byHighestSpecifity(proptable))
		matches.propertiesTable = proptable
	}
	if tracer().GetTraceLevel() >= tracing.LevelDebug {
		tracer().Debugf(matches.String())
	}
}

// ruleSpecificity compiles the rule's selector and returns its
// specificity; the empty selector of a local style attribute gets a fixed
// specificity above any selector's, without compiling.
func ruleSpecificity(rule Rule) selector.Specificity {
	s := rule.Selector()
	if s == "" { // local style="" attribute: outranks every selector match
		return selector.Specificity{1 << 16, 0, 0}
	}
	sel, err := selector.Compile(s)
	if err != nil {
		return selector.Specificity{}
	}
	return sel.Specificity()
}

// --- Specifity of rules -----------------------------------------------

type propertyPlusSpecifityType struct {
	source        PropertySource      // where the property has been defined
	rule          Rule                // the rule containing the property definition
	propertyKey   string              // CSS property name
	propertyValue style.Property      // raw string value
	important     bool                // marked as !IMPORTANT ?
	spec          selector.Specificity // specificity to order by
}

// finalize folds !important, origin and source order into the
// specificity triple byHighestSpecifity sorts on: !important and origin
// are added above any selector count in the id column, and the rule's
// position (no) is placed below the type count in the last column, so it
// breaks ties only and later rules win them, matching CSS cascade order.
func (sp *propertyPlusSpecifityType) finalize(no int) {
	if sp.important {
		sp.spec[0] += 1 << 20
	}
	sp.spec[0] += int(sp.source) << 12
	sp.spec[2] = sp.spec[2]<<12 + no
}

// --- Style Property Groups --------------------------------------------

func (matches *matchesList) createStyleGroups(parent *tree.Node[*styledtree.StyNode]) *style.PropertyMap {
	pmap := style.NewPropertyMap()
	done := make(map[string]bool, len(matches.propertiesTable))
	for _, pspec := range matches.propertiesTable {
		if done[pspec.propertyKey] {
			continue
		}
		groupname := style.GroupNameFromPropertyKey(pspec.propertyKey)
		group := pmap.Group(groupname)
		if group != nil {
			group.Set(pspec.propertyKey, pspec.propertyValue)
		} else {
			_, pg := findAncestorWithPropertyGroup(parent, groupname)
			if pg == nil {
				panic(fmt.Sprintf("cannot find ancestor with prop-group %s -- did you create global properties?", groupname))
			}
			group, isNew := pg.ForkOnProperty(pspec.propertyKey, pspec.propertyValue, true)
			if isNew {
				pmap = pmap.AddAllFromGroup(group, true)
			}
		}
		done[pspec.propertyKey] = true
	}
	if pmap.Size() == 0 {
		return nil
	}
	return pmap
}

// --- Styled Node Tree -------------------------------------------------

// setupStyledNodeTree sets up the root nodes of the style tree.
// It creates a "root" node and a node for the document node as its child.
func setupStyledNodeTree(domRoot *dom.Node, defaults *style.PropertyMap) *tree.Node[*styledtree.StyNode] {
	rootNode := styledtree.NewNodeForDOMNode(domRoot)
	rootNode.Payload.SetStyles(defaults)
	docNode := styledtree.NewNodeForDOMNode(domRoot)
	rootNode.AddChild(docNode)
	return docNode
}

func findAncestorWithPropertyGroup(sn *tree.Node[*styledtree.StyNode], group string) (*tree.Node[*styledtree.StyNode], *style.PropertyGroup) {
	var pg *style.PropertyGroup
	if sn == nil {
		tracer().Errorf("search for ancestor with property group %s started with nil", group)
		return nil, nil
	}
	it := sn
	last := sn
	for it != nil && pg == nil {
		styles := it.Payload.Styles()
		if styles != nil {
			pg = styles.Group(group)
		}
		it = it.Parent()
		if it != nil {
			last = it
		}
	}
	return last, pg
}

// Style gets things rolling. It styles a DOM tree, referred to by its root
// node, and returns a tree of styled nodes.
func (cssom CSSOM) Style(domRoot *dom.Node) (*tree.Node[*styledtree.StyNode], error) {
	if domRoot == nil {
		return nil, errors.New("nothing to style: empty document")
	}
	if cssom.rulesTree.Empty() {
		tracer().Infof("styling DOM tree without having any CSS rules")
	}
	tracer().Debugf("--- creating style nodes for DOM nodes ----")
	styledRootNode := setupStyledNodeTree(domRoot, cssom.defaultProperties)
	walker := tree.NewWalker(styledRootNode)
	createNodes := func(node *tree.Node[*styledtree.StyNode], parent *tree.Node[*styledtree.StyNode],
		pos int) (*tree.Node[*styledtree.StyNode], error) {
		return createStyledChildren(node, cssom.rulesTree)
	}
	future := walker.TopDown(createNodes).Promise()
	if _, err := future(); err != nil {
		tracer().Errorf("error while creating styled tree: %v", err)
		return nil, err
	}
	tracer().Debugf("--- now styling newly created nodes --------")
	walker = tree.NewWalker(styledRootNode)
	createStyles := func(node *tree.Node[*styledtree.StyNode], parent *tree.Node[*styledtree.StyNode], pos int) (*tree.Node[*styledtree.StyNode], error) {
		return createStylesForNode(node, cssom.rulesTree, cssom.compoundSplitters)
	}
	future = walker.TopDown(createStyles).Promise()
	if _, err := future(); err != nil {
		tracer().Errorf("error while creating style properties: %v", err)
		return nil, err
	}
	return styledRootNode, nil
}

// Pre-condition: sn has been styled and points to a DOM node.
// Now iterate through the DOM children and create styled nodes for each.
func createStyledChildren(parent *tree.Node[*styledtree.StyNode], rulesTree *rulesTreeType) (*tree.Node[*styledtree.StyNode], error) {
	domnode := parent.Payload
	tracer().Debugf("input node = %v, creating styled children", domnode)
	n := domnode.DOMNode()
	if n.Kind == dom.ElementNode || n.Kind == dom.DocumentNode {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.IsElement("style") { // <style> element: extracted in advance
				tracer().Infof("<style> nodes have to be extracted in advance")
				continue
			}
			if !isInDom(ch) {
				continue
			}
			sn := styledtree.NewNodeForDOMNode(ch)
			parent.AddChild(sn)
			if styleAttr := getStyleAttribute(ch); styleAttr != nil {
				rulesTree.StoreStylesheetForDOMNode(ch, styleAttr, Attribute)
			}
		}
	} else if n.Kind == dom.TextNode {
		return nil, nil // do not send text nodes to next pipeline stage
	}
	return parent, nil
}

func isInDom(n *dom.Node) bool {
	switch n.Kind {
	case dom.ElementNode, dom.DocumentNode, dom.TextNode:
		return true
	}
	return false
}

// isStylable mirrors the closed set of HTML tags a styling pass bothers
// computing properties for; non-visual tags (head, meta, script, ...) are
// skipped.
func isStylable(tagName string) bool {
	switch tagName {
	case "head", "meta", "script", "base", "link", "style", "title":
		return false
	}
	return tagName != ""
}

func createStylesForNode(node *tree.Node[*styledtree.StyNode], rulesTree *rulesTreeType,
	splitters []CompoundPropertiesSplitter) (*tree.Node[*styledtree.StyNode], error) {
	n := node.Payload.DOMNode()
	if n.Kind == dom.DocumentNode || n.Kind == dom.ElementNode {
		if n.Kind == dom.DocumentNode || isStylable(n.TagName()) {
			matchlist := rulesTree.FilterMatchesFor(n)
			if matchlist != nil && len(matchlist.matchingRules) != 0 {
				matchlist.SortProperties(splitters)
				pmap := matchlist.createStyleGroups(node.Parent())
				tracer().Debugf("setting styles for node %v =\n%s", node, pmap)
				node.Payload.SetStyles(pmap)
			} else {
				tracer().Debugf("node %v matched no style rules", node)
			}
		}
		return node, nil
	}
	return nil, nil
}

// --- Helpers ----------------------------------------------------------

var errNoSuchCompoundProperty = errors.New("no such compound property")

func splitCompoundProperty(splitters []CompoundPropertiesSplitter,
	key string, value style.Property) ([]style.KeyValue, error) {
	for _, splitter := range splitters {
		kv, err := splitter(key, value)
		if err == nil {
			return kv, nil
		}
	}
	return nil, errNoSuchCompoundProperty
}

// --- Local pseudo rules for style-attributes --------------------------

func getStyleAttribute(n *dom.Node) *localPseudoStylesheetType {
	if n != nil && n.Kind == dom.ElementNode {
		if v, ok := n.Attr("style"); ok {
			return &localPseudoStylesheetType{newLocalPseudoRule(v)}
		}
	}
	return nil
}

type localPseudoStylesheetType struct {
	rule localPseudoRuleType
}

type localPseudoRuleType []style.KeyValue

func newLocalPseudoRule(styleAttr string) localPseudoRuleType {
	styles := strings.Split(styleAttr, ";")
	kv := make(localPseudoRuleType, 0, 3)
	for _, st := range styles {
		st = strings.TrimSpace(st)
		if len(st) == 0 {
			continue
		}
		s := strings.SplitN(st, ":", 2)
		if len(s) < 2 {
			tracer().Errorf("skipping ill-formed style rule: %s", st)
			continue
		}
		k := strings.TrimSpace(s[0])
		v := strings.TrimSpace(s[1])
		kv = append(kv, style.KeyValue{Key: k, Value: style.Property(v)})
	}
	return kv
}

func (pseudorule localPseudoRuleType) Selector() string { return "" }

func (pseudorule localPseudoRuleType) Properties() []string {
	var p []string
	for _, kv := range pseudorule {
		p = append(p, kv.Key)
	}
	return p
}

func (pseudorule localPseudoRuleType) Value(key string) style.Property {
	for _, kv := range pseudorule {
		if key == kv.Key {
			return kv.Value
		}
	}
	return style.NullStyle
}

func (pseudorule localPseudoRuleType) IsImportant(string) bool { return false }

func (pseudosheet *localPseudoStylesheetType) AppendRules(s StyleSheet) {
	for _, r := range s.Rules() {
		for _, k := range r.Properties() {
			pseudosheet.rule = append(pseudosheet.rule, style.KeyValue{
				Key:   k,
				Value: r.Value(k),
			})
		}
	}
}

func (pseudosheet *localPseudoStylesheetType) Empty() bool { return false }

func (pseudosheet *localPseudoStylesheetType) Rules() []Rule {
	return []Rule{pseudosheet.rule}
}
