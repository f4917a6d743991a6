package main

import (
	"fmt"
	"math/rand"

	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

var classes = []string{"primary", "secondary", "muted", "danger"}

// Generator builds random widget trees mixing every built-in widget.
type Generator struct {
	rng         *rand.Rand
	maxChildren int
	next        int
}

func NewGenerator(rng *rand.Rand, maxChildren int) *Generator {
	return &Generator{rng: rng, maxChildren: max(maxChildren, 1)}
}

// Tree returns a column holding n or n+1 widgets, counting the column.
func (g *Generator) Tree(n int) widget.Widget {
	budget := n - 1
	var top []widget.Widget
	for budget > 0 {
		top = append(top, g.widget(&budget))
	}
	return widget.NewColumn(top...)
}

func (g *Generator) children(budget *int) []widget.Widget {
	count := min(g.rng.Intn(g.maxChildren)+1, *budget)
	out := make([]widget.Widget, 0, count)
	for i := 0; i < count && *budget > 0; i++ {
		out = append(out, g.widget(budget))
	}
	return out
}

func (g *Generator) widget(budget *int) widget.Widget {
	g.next++
	*budget--

	switch g.rng.Intn(5) {
	case 0:
		if *budget > 0 {
			return widget.NewColumn(g.children(budget)...)
		}
		fallthrough
	case 1:
		*budget-- // the button's border
		return widget.NewButton()
	case 2:
		return widget.NewLabel(g.selector("label")).WithText(fmt.Sprintf("label %d", g.next))
	case 3:
		return widget.NewBorder()
	}
	return widget.NewBorder().WithSelector(g.selector("panel"))
}

func (g *Generator) selector(element string) theme.Selector {
	sel := theme.NewSelector(element)
	if g.rng.Intn(2) == 0 {
		sel = sel.WithClass(classes[g.rng.Intn(len(classes))])
	}
	return sel
}
