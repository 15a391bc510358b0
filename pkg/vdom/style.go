package vdom

import "strings"

// Style is an ordered set of inline CSS declarations.
// Declaration order is preserved so rendered output is stable.
type Style struct {
	props  []string
	values map[string]string
}

// ParseStyle parses a CSS declaration block such as "opacity: 0; width: 100%".
// Malformed declarations are skipped.
func ParseStyle(css string) *Style {
	s := &Style{}
	for _, decl := range strings.Split(css, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		s.Set(prop, value)
	}
	return s
}

// Set sets a property. An empty value removes it.
func (s *Style) Set(prop, value string) {
	prop = strings.ToLower(strings.TrimSpace(prop))
	value = strings.TrimSpace(value)
	if prop == "" {
		return
	}
	if value == "" {
		s.Remove(prop)
		return
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[prop]; !ok {
		s.props = append(s.props, prop)
	}
	s.values[prop] = value
}

// Get returns a property's value, or "" if unset.
func (s *Style) Get(prop string) string {
	if s == nil {
		return ""
	}
	return s.values[strings.ToLower(prop)]
}

// Remove deletes a property.
func (s *Style) Remove(prop string) {
	prop = strings.ToLower(strings.TrimSpace(prop))
	if _, ok := s.values[prop]; !ok {
		return
	}
	delete(s.values, prop)
	for i, p := range s.props {
		if p == prop {
			s.props = append(s.props[:i], s.props[i+1:]...)
			break
		}
	}
}

// Len returns the number of declarations.
func (s *Style) Len() int {
	if s == nil {
		return 0
	}
	return len(s.props)
}

// String renders the declarations as "prop: value; prop: value".
func (s *Style) String() string {
	if s == nil || len(s.props) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range s.props {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(s.values[p])
	}
	return b.String()
}

// Styles builds a style attribute from property/value pairs.
// A trailing property without a value is ignored.
//
//	Div(Styles("opacity", "0", "transform", "translateY(-20px)"))
func Styles(pairs ...string) Attr {
	s := &Style{}
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return attr("style", s)
}
