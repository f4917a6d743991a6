// Package theme maps selectors to colours. A Theme is a plain value owned by
// the application that created it; nothing here is global.
package theme

import (
	"image/color"
)

// Rule assigns colour properties to every selector it matches.
type Rule struct {
	Selector   Selector
	Properties map[string]color.RGBA
}

// Theme resolves colour properties for selectors. Among matching rules the most
// specific wins, later rules break ties.
type Theme struct {
	rules    []Rule
	fallback color.RGBA
}

// New returns an empty theme that answers every lookup with fallback.
func New(fallback color.RGBA) *Theme {
	return &Theme{fallback: fallback}
}

// Add appends a rule.
func (t *Theme) Add(selector Selector, properties map[string]color.RGBA) *Theme {
	props := make(map[string]color.RGBA, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	t.rules = append(t.rules, Rule{Selector: selector, Properties: props})
	return t
}

// Rules returns the theme's rules in declaration order.
func (t *Theme) Rules() []Rule {
	return t.rules
}

// Fallback is the colour returned when no rule defines a property.
func (t *Theme) Fallback() color.RGBA {
	return t.fallback
}

// Lookup resolves property for selector and reports whether any rule defined it.
func (t *Theme) Lookup(property string, selector Selector) (color.RGBA, bool) {
	best := -1
	var found color.RGBA
	for _, rule := range t.rules {
		c, ok := rule.Properties[property]
		if !ok || !rule.Selector.Matches(selector) {
			continue
		}
		if spec := rule.Selector.Specificity(); spec >= best {
			best = spec
			found = c
		}
	}
	return found, best >= 0
}

// Color resolves property for selector, falling back to the theme's fallback colour.
func (t *Theme) Color(property string, selector Selector) color.RGBA {
	if c, ok := t.Lookup(property, selector); ok {
		return c
	}
	return t.fallback
}

// Default returns a fresh copy of the built-in light theme.
func Default() *Theme {
	return New(color.RGBA{A: 255}).
		Add(Selector{Element: "*"}, map[string]color.RGBA{
			"color":        {R: 0x22, G: 0x22, B: 0x22, A: 0xFF},
			"background":   {},
			"border-color": {R: 0xBD, G: 0xBD, B: 0xBD, A: 0xFF},
		}).
		Add(NewSelector("window"), map[string]color.RGBA{
			"background": {R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF},
		}).
		Add(NewSelector("button"), map[string]color.RGBA{
			"background":   {R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
			"color":        {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
			"border-color": {R: 0x1D, G: 0x4E, B: 0xD8, A: 0xFF},
		}).
		Add(NewSelector("label"), map[string]color.RGBA{
			"color": {R: 0x11, G: 0x11, B: 0x11, A: 0xFF},
		})
}
