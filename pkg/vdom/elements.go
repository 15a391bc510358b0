package vdom

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string, EventHandler.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, &VNode{
				Kind: KindText,
				Text: v,
			})

		case EventHandler:
			node.Props[v.Event] = v.Handler
		}
	}

	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	// Multiple Class attrs accumulate rather than overwrite.
	if a.Key == "class" {
		if s, ok := a.Value.(string); ok {
			for _, c := range splitClasses(s) {
				v.AddClass(c)
			}
			return
		}
	}
	v.Props[a.Key] = a.Value
}

// Element creates an element with an arbitrary tag.
func Element(tag string, args ...any) *VNode { return createElement(tag, args) }

// Document structure elements

func Html(args ...any) *VNode { return createElement("html", args) }
func Head(args ...any) *VNode { return createElement("head", args) }
func Body(args ...any) *VNode { return createElement("body", args) }

// StyleEl creates a <style> element (named to avoid conflict with Style).
func StyleEl(args ...any) *VNode { return createElement("style", args) }

// Content elements

func Div(args ...any) *VNode    { return createElement("div", args) }
func Span(args ...any) *VNode   { return createElement("span", args) }
func P(args ...any) *VNode      { return createElement("p", args) }
func H6(args ...any) *VNode     { return createElement("h6", args) }
func I(args ...any) *VNode      { return createElement("i", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
