package style

// Cascade implements the upward property-group search used to resolve
// inherited CSS properties against a styled tree. It is deliberately
// decoupled from the concrete styled-node type via the StyledNode
// interface below, so that styledtree.StyNode (and nothing else) can
// satisfy it without this package importing styledtree.

// StyledNode is the minimal surface GetCascadedProperty/GetProperty need
// from a node of the styled tree.
type StyledNode interface {
	Styles() *PropertyMap
	StyleParent() StyledNode
	DOMTagName() string
}

// GetCascadedProperty gets the value of a property. The search cascades to
// parent property maps, if available.
//
// Clients will usually call GetProperty(...) instead, as it respects CSS
// semantics for inherited properties (only cascading for properties that
// are actually inheritable).
//
// GetCascadedProperty panics via its caller's expectations only if the
// user-agent default stylesheet was not set up correctly: every property
// must resolve somewhere, at the latest in the user-agent defaults
// attached to the document root.
func GetCascadedProperty(node StyledNode, key string) (Property, error) {
	groupname := GroupNameFromPropertyKey(key)
	var group *PropertyGroup
	for node != nil && group == nil {
		group = node.Styles().Group(groupname)
		node = node.StyleParent()
	}
	if group == nil {
		return NullStyle, errCannotFindGroup(groupname)
	}
	p, _ := group.Cascade(key).Get(key)
	return p, nil
}

// GetProperty gets the value of a property. If the property is not set
// locally on the style node and the property is inheritable, the search
// cascades to parent property maps, if available.
func GetProperty(node StyledNode, key string) (Property, error) {
	if IsCascading(key) {
		return GetCascadedProperty(node, key)
	}
	p := GetLocalProperty(node.Styles(), key)
	if p == NullStyle {
		return NullStyle, nil // caller falls back to GetUserAgentDefaultProperty
	}
	return p, nil
}

// GetLocalProperty returns a style property value, if it is set locally
// for a styled node's property map. No cascading is performed.
func GetLocalProperty(pmap *PropertyMap, key string) Property {
	groupname := GroupNameFromPropertyKey(key)
	group := pmap.Group(groupname)
	if group == nil {
		return NullStyle
	}
	p, _ := group.Get(key)
	return p
}

type cascadeError string

func (e cascadeError) Error() string { return string(e) }

func errCannotFindGroup(groupname string) error {
	return cascadeError("cannot find ancestor with property group " + groupname +
		" -- did you initialize the user-agent default properties?")
}
