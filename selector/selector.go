// Package selector implements CSS selector matching and specificity
// computation against this module's dom.Node tree.
//
// cascadia (github.com/andybalholm/cascadia), the obvious off-the-shelf
// choice, binds its Selector.Match to the concrete golang.org/x/net/html.Node
// struct and cannot be retargeted to an arbitrary tree type, so this
// package hand-rolls the subset of the CSS3 selector grammar a small
// styling engine needs: type, class, ID and attribute simple selectors,
// combined into compound selectors, chained by the descendant and child
// combinators.
package selector

import (
	"fmt"
	"strings"

	fp "github.com/npillmayer/corebrowser"
	"github.com/npillmayer/corebrowser/dom"
)

// Specificity is the (id-count, class-count, type-count) triple the CSS
// cascade sorts rules by, most significant component first.
type Specificity [3]int

// Less reports whether s has lower precedence than other.
func (s Specificity) Less(other Specificity) bool {
	if s[0] != other[0] {
		return s[0] < other[0]
	}
	if s[1] != other[1] {
		return s[1] < other[1]
	}
	return s[2] < other[2]
}

// combinator denotes how a compound selector relates to the one before it
// in a complex selector ("div p" vs "div > p").
type combinator uint8

const (
	combDescendant combinator = iota // whitespace
	combChild                        // >
)

// simpleSelector is one atomic test: a type name, a class, an ID or an
// attribute presence/equality check. At most one of these is set.
type simpleSelector struct {
	typeName string // "" means no type constraint (the "*" wildcard)
	class    string
	id       string
	attrName string
	attrVal  string // "" with hasVal==false means "attribute present"
	hasVal   bool
}

func (s simpleSelector) matches(n *dom.Node) bool {
	if n == nil || n.Kind != dom.ElementNode {
		return false
	}
	switch {
	case s.typeName != "":
		return strings.EqualFold(n.TagName(), s.typeName)
	case s.class != "":
		classes, _ := n.Attr("class")
		for _, c := range strings.Fields(classes) {
			if c == s.class {
				return true
			}
		}
		return false
	case s.id != "":
		id, ok := n.Attr("id")
		return ok && id == s.id
	case s.attrName != "":
		v, ok := n.Attr(s.attrName)
		if !ok {
			return false
		}
		if !s.hasVal {
			return true
		}
		return v == s.attrVal
	}
	return true // bare "*"
}

// compoundSelector is a run of simpleSelectors all applying to the same
// node (e.g. "div.warning#main" is type=div, class=warning, id=main).
type compoundSelector []simpleSelector

// matches combines every simple selector in the compound with logical AND,
// built via fp.Compose so that a multi-part compound selector like
// "div.warning#main" reads as one chained predicate rather than a loop
// with an early return.
func (c compoundSelector) matches(n *dom.Node) bool {
	pred := func(*dom.Node) bool { return true }
	for _, s := range c {
		pred = andPredicate(pred, s.matches)
	}
	return pred(n)
}

func andPredicate(a, b func(*dom.Node) bool) func(*dom.Node) bool {
	return fp.Compose(
		func(n *dom.Node) fp.Pair[*dom.Node, *dom.Node] { return fp.P(n, n) },
		func(p fp.Pair[*dom.Node, *dom.Node]) bool { return a(p.Left) && b(p.Right) },
	)
}

// step is one compound selector plus the combinator that ties it to the
// next step further down the (node-order, not matching-order) chain.
type step struct {
	compound compoundSelector
	comb     combinator
}

// Selector is a compiled CSS selector (a single comma-free selector; a
// selector list is []Selector).
type Selector struct {
	source string
	steps  []step // in left-to-right (outermost-ancestor-first) source order
	spec   Specificity
}

// String returns the original selector text.
func (sel Selector) String() string { return sel.source }

// Specificity returns the selector's (id, class+attr+pseudo-class,
// type+pseudo-element) specificity triple.
func (sel Selector) Specificity() Specificity { return sel.spec }

// Match reports whether n satisfies the selector: its rightmost compound
// selector must match n itself, and each combinator to its left must find
// a satisfying ancestor (descendant combinator) or direct parent (child
// combinator) walking up the tree.
func (sel Selector) Match(n *dom.Node) bool {
	if len(sel.steps) == 0 || n == nil {
		return false
	}
	last := sel.steps[len(sel.steps)-1]
	if !last.compound.matches(n) {
		return false
	}
	cur := n
	for i := len(sel.steps) - 2; i >= 0; i-- {
		want := sel.steps[i]
		comb := sel.steps[i+1].comb // combinator BETWEEN step i and i+1... see Compile
		found := false
		switch comb {
		case combChild:
			p := cur.Parent
			if p != nil && want.compound.matches(p) {
				cur = p
				found = true
			}
		default: // descendant
			for p := cur.Parent; p != nil; p = p.Parent {
				if want.compound.matches(p) {
					cur = p
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Compile parses a single CSS selector (no commas) into a Selector.
//
// Supported grammar: a whitespace- or ">"-separated sequence of compound
// selectors, each compound selector being a run of one or more of:
// a type name, ".class", "#id", "[attr]" or "[attr=value]". This is the
// subset original_source's distillation and this engine's CSSOM both ever
// produce or consume; full CSS3 selectors (pseudo-classes, sibling
// combinators, attribute operators other than "=") are out of scope.
func Compile(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}, fmt.Errorf("selector: empty selector")
	}
	tokens := tokenizeCombinators(s)
	sel := Selector{source: s}
	pendingComb := combDescendant
	for i, tok := range tokens {
		if tok == ">" {
			pendingComb = combChild
			continue
		}
		compound, spec, err := compileCompound(tok)
		if err != nil {
			return Selector{}, fmt.Errorf("selector %q: %w", s, err)
		}
		comb := combDescendant
		if i > 0 {
			comb = pendingComb
		}
		sel.steps = append(sel.steps, step{compound: compound, comb: comb})
		sel.spec[0] += spec[0]
		sel.spec[1] += spec[1]
		sel.spec[2] += spec[2]
		pendingComb = combDescendant
	}
	if len(sel.steps) == 0 {
		return Selector{}, fmt.Errorf("selector %q: no compound selectors found", s)
	}
	return sel, nil
}

// tokenizeCombinators splits a selector string on whitespace, keeping ">"
// as its own token.
func tokenizeCombinators(s string) []string {
	s = strings.ReplaceAll(s, ">", " > ")
	return strings.Fields(s)
}

func compileCompound(tok string) (compoundSelector, Specificity, error) {
	var compound compoundSelector
	var spec Specificity
	i := 0
	for i < len(tok) {
		switch {
		case tok[i] == '.':
			j := i + 1
			for j < len(tok) && isIdentChar(tok[j]) {
				j++
			}
			if j == i+1 {
				return nil, spec, fmt.Errorf("empty class selector in %q", tok)
			}
			compound = append(compound, simpleSelector{class: tok[i+1 : j]})
			spec[1]++
			i = j
		case tok[i] == '#':
			j := i + 1
			for j < len(tok) && isIdentChar(tok[j]) {
				j++
			}
			if j == i+1 {
				return nil, spec, fmt.Errorf("empty id selector in %q", tok)
			}
			compound = append(compound, simpleSelector{id: tok[i+1 : j]})
			spec[0]++
			i = j
		case tok[i] == '[':
			j := strings.IndexByte(tok[i:], ']')
			if j < 0 {
				return nil, spec, fmt.Errorf("unterminated attribute selector in %q", tok)
			}
			body := tok[i+1 : i+j]
			var ss simpleSelector
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				ss = simpleSelector{attrName: strings.TrimSpace(body[:eq]),
					attrVal: strings.Trim(strings.TrimSpace(body[eq+1:]), `"'`), hasVal: true}
			} else {
				ss = simpleSelector{attrName: strings.TrimSpace(body)}
			}
			compound = append(compound, ss)
			spec[1]++
			i += j + 1
		case tok[i] == '*':
			compound = append(compound, simpleSelector{})
			i++
		default:
			j := i
			for j < len(tok) && isIdentChar(tok[j]) {
				j++
			}
			if j == i {
				return nil, spec, fmt.Errorf("unexpected character %q in selector %q", tok[i], tok)
			}
			compound = append(compound, simpleSelector{typeName: tok[i:j]})
			spec[2]++
			i = j
		}
	}
	return compound, spec, nil
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
