package theme

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalidColor is returned for colour strings that cannot be parsed.
var ErrInvalidColor = errors.New("theme: invalid color")

type fileRule struct {
	Selector   Selector          `yaml:"selector"`
	Properties map[string]string `yaml:"properties"`
}

type file struct {
	Fallback string     `yaml:"fallback"`
	Rules    []fileRule `yaml:"rules"`
}

// Load decodes a YAML theme:
//
//	fallback: "#000000"
//	rules:
//	  - selector: {element: button, classes: [primary]}
//	    properties:
//	      background: "#3b82f6"
func Load(r io.Reader) (*Theme, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}

	fallback := color.RGBA{A: 255}
	if f.Fallback != "" {
		c, err := ParseColor(f.Fallback)
		if err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}
		fallback = c
	}

	t := New(fallback)
	for i, rule := range f.Rules {
		props := make(map[string]color.RGBA, len(rule.Properties))
		for name, value := range rule.Properties {
			c, err := ParseColor(value)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s) property %q: %w", i, rule.Selector, name, err)
			}
			props[name] = c
		}
		t.Add(rule.Selector, props)
	}
	return t, nil
}

// LoadFile reads a YAML theme from path.
func LoadFile(path string) (*Theme, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" and "transparent". The
// result is alpha-premultiplied like every color.RGBA.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "transparent" {
		return color.RGBA{}, nil
	}

	alpha := uint8(0xFF)
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	straight := color.NRGBA{R: r, G: g, B: b, A: alpha}
	return color.RGBAModel.Convert(straight).(color.RGBA), nil
}

// Hex formats c as "#rrggbb" with alpha removed.
func Hex(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}.Hex()
}
