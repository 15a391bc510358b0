package vdom

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// Walk visits node and its descendants depth-first. Returning false from fn
// stops the walk.
func Walk(node *VNode, fn func(*VNode) bool) bool {
	if node == nil {
		return true
	}
	if !fn(node) {
		return false
	}
	for _, child := range node.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// FindByClass returns the first element in the tree carrying class.
func FindByClass(root *VNode, class string) *VNode {
	var found *VNode
	Walk(root, func(n *VNode) bool {
		if n.Kind == KindElement && n.HasClass(class) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByID returns the first element in the tree with the given id.
func FindByID(root *VNode, id string) *VNode {
	var found *VNode
	Walk(root, func(n *VNode) bool {
		if n.Kind == KindElement && n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// TextContent concatenates the text of all descendant text nodes.
func TextContent(node *VNode) string {
	var out []byte
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindText {
			out = append(out, n.Text...)
		}
		return true
	})
	return string(out)
}
