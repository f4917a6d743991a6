package theme

import (
	"slices"
	"strings"
)

// Selector is the style key attached to widgets. It names an element, an
// optional id and any number of classes. Parsing selector strings is left to
// callers; values are built directly.
type Selector struct {
	Element string   `yaml:"element,omitempty"`
	ID      string   `yaml:"id,omitempty"`
	Classes []string `yaml:"classes,omitempty"`
}

// NewSelector returns a selector for the given element.
func NewSelector(element string) Selector {
	return Selector{Element: element}
}

// WithClass returns a copy of s with class added.
func (s Selector) WithClass(class string) Selector {
	if slices.Contains(s.Classes, class) {
		return s
	}
	s.Classes = append(slices.Clone(s.Classes), class)
	return s
}

// WithID returns a copy of s with the id set.
func (s Selector) WithID(id string) Selector {
	s.ID = id
	return s
}

// HasClass reports whether s carries class.
func (s Selector) HasClass(class string) bool {
	return slices.Contains(s.Classes, class)
}

// Matches reports whether s, used as a rule, applies to target. Empty parts of s match anything.
func (s Selector) Matches(target Selector) bool {
	if s.Element != "" && s.Element != "*" && s.Element != target.Element {
		return false
	}
	if s.ID != "" && s.ID != target.ID {
		return false
	}
	for _, class := range s.Classes {
		if !target.HasClass(class) {
			return false
		}
	}
	return true
}

// Specificity orders matching rules: ids outweigh classes, classes outweigh elements.
func (s Selector) Specificity() int {
	n := len(s.Classes) * 10
	if s.ID != "" {
		n += 100
	}
	if s.Element != "" && s.Element != "*" {
		n++
	}
	return n
}

func (s Selector) String() string {
	var b strings.Builder
	if s.Element == "" {
		b.WriteString("*")
	} else {
		b.WriteString(s.Element)
	}
	if s.ID != "" {
		b.WriteString("#")
		b.WriteString(s.ID)
	}
	for _, class := range s.Classes {
		b.WriteString(".")
		b.WriteString(class)
	}
	return b.String()
}
