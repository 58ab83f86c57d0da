package dom

// Matcher selects elements, standing in for CSS selectors.
type Matcher func(e *Element) bool

// ByID matches the element with the given id.
func ByID(id string) Matcher {
	return func(e *Element) bool { return e.ID() == id }
}

// ByClass matches elements carrying the class.
func ByClass(name string) Matcher {
	return func(e *Element) bool { return e.HasClass(name) }
}

// ByTag matches elements with the tag name.
func ByTag(tag string) Matcher {
	return func(e *Element) bool { return e.Tag == tag }
}

// ByAttr matches elements that carry the attribute, whatever its value.
func ByAttr(name string) Matcher {
	return func(e *Element) bool { return e.HasAttr(name) }
}

// FileInput matches input[type="file"].
func FileInput() Matcher {
	return func(e *Element) bool {
		typ, _ := e.Attr("type")
		return e.Tag == "input" && typ == "file"
	}
}
