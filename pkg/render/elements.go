package render

// Tag and attribute classes that change how markup is written.
var (
	// Void elements have no closing tag.
	voidElements = setOf("area", "base", "br", "col", "embed", "hr", "img",
		"input", "link", "meta", "source", "track", "wbr")

	// Inline elements stay on one line in pretty output.
	inlineElements = setOf("a", "abbr", "b", "br", "code", "em", "i", "kbd",
		"mark", "s", "small", "span", "strong", "sub", "sup", "time", "u")

	// Boolean attributes are written as a bare name when true.
	booleanAttrs = setOf("async", "autofocus", "checked", "defer", "disabled",
		"hidden", "inert", "nomodule", "open", "readonly", "required", "selected")
)

func setOf(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func isVoidElement(tag string) bool {
	_, ok := voidElements[tag]
	return ok
}

func isInlineElement(tag string) bool {
	_, ok := inlineElements[tag]
	return ok
}

func isBooleanAttr(name string) bool {
	_, ok := booleanAttrs[name]
	return ok
}
