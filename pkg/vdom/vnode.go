package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML (stylesheets only)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText and KindRaw
	HID      string   // Hydration ID (assigned when mounted into a document)
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers and needs a HID.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// Attr returns the string value of an attribute, or "" if unset.
func (v *VNode) Attr(key string) string {
	if v == nil || v.Props == nil {
		return ""
	}
	switch val := v.Props[key].(type) {
	case string:
		return val
	case interface{ String() string }:
		return val.String()
	default:
		return ""
	}
}

// ID returns the element's id attribute.
func (v *VNode) ID() string {
	return v.Attr("id")
}

// Classes returns the element's class list.
func (v *VNode) Classes() []string {
	return strings.Fields(v.Attr("class"))
}

// HasClass reports whether the element carries the given class.
func (v *VNode) HasClass(class string) bool {
	for _, c := range v.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends a class if it is not already present.
// It reports whether the class list changed.
func (v *VNode) AddClass(class string) bool {
	if v == nil || v.Kind != KindElement || class == "" || v.HasClass(class) {
		return false
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	existing := v.Attr("class")
	if existing == "" {
		v.Props["class"] = class
	} else {
		v.Props["class"] = existing + " " + class
	}
	return true
}

// Style returns the element's inline style declarations, creating an empty
// set if none exist. A plain string style attribute is parsed in place.
func (v *VNode) Style() *Style {
	if v.Props == nil {
		v.Props = make(Props)
	}
	switch s := v.Props["style"].(type) {
	case *Style:
		return s
	case string:
		parsed := ParseStyle(s)
		v.Props["style"] = parsed
		return parsed
	default:
		style := &Style{}
		v.Props["style"] = style
		return style
	}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}
