package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

// Sort columns of the entity table.
const (
	ColumnEntity = iota
	ColumnSeq
	ColumnSelector
	ColumnBounds
	ColumnComponents
)

type EntityInfo struct {
	ID             ecs.EntityId
	Seq            uint64
	ArchetypeID    uint32
	Selector       string
	Bounds         string
	ComponentTypes []string
}

// EntityBrowser lists the entities of a widget world.
type EntityBrowser struct {
	entities      []EntityInfo
	selected      ecs.EntityId
	filterText    string
	sortColumn    int
	sortAscending bool
	pageSize      int
	page          int
}

func NewEntityBrowser(pageSize int) *EntityBrowser {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &EntityBrowser{
		sortColumn:    ColumnSeq,
		sortAscending: true,
		pageSize:      pageSize,
	}
}

// Rebuild snapshots the world.
func (eb *EntityBrowser) Rebuild(world *ecs.World) {
	eb.entities = eb.entities[:0]

	for _, archetype := range world.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for id := range archetype.Iter() {
			info := EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				Selector:       "none",
				ComponentTypes: componentTypes,
			}
			info.Seq, _ = world.Seq(id)
			if sel := ecs.ReadComponent[theme.Selector](world, id); sel != nil {
				info.Selector = sel.String()
			}
			if placed := ecs.ReadComponent[widget.Placement](world, id); placed != nil {
				info.Bounds = placed.Bounds.String()
			} else if rect := ecs.ReadComponent[widget.Rect](world, id); rect != nil {
				info.Bounds = rect.String()
			}
			eb.entities = append(eb.entities, info)
		}
	}

	eb.sortEntities()
}

// SortBy orders the table by column.
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.sortColumn = column
	eb.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	slices.SortStableFunc(eb.entities, func(a, b EntityInfo) int {
		var c int
		switch eb.sortColumn {
		case ColumnEntity:
			c = cmp.Compare(a.ID, b.ID)
		case ColumnSelector:
			c = strings.Compare(a.Selector, b.Selector)
		case ColumnBounds:
			c = strings.Compare(a.Bounds, b.Bounds)
		case ColumnComponents:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		}
		if c == 0 {
			c = cmp.Compare(a.Seq, b.Seq)
		}
		if !eb.sortAscending {
			return -c
		}
		return c
	})
}

// SetFilter keeps only rows whose id, selector or component types contain text.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.page = 0
}

// Rows returns the filtered, sorted rows.
func (eb *EntityBrowser) Rows() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)
	for _, entity := range eb.entities {
		if strings.Contains(entity.ID.String(), filterLower) ||
			strings.Contains(strings.ToLower(entity.Selector), filterLower) ||
			strings.Contains(strings.ToLower(strings.Join(entity.ComponentTypes, " ")), filterLower) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = id
}

func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

// Draw renders the browser window.
func (eb *EntityBrowser) Draw() {
	if !imgui.BeginV("Widget Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil) {
		eb.page = 0
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.SetFilter("")
	}

	rows := eb.Rows()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Seq")
		imgui.TableSetupColumn("Selector")
		imgui.TableSetupColumn("Bounds")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			rows = eb.Rows()
		}

		start := min(eb.page*eb.pageSize, len(rows))
		end := min(start+eb.pageSize, len(rows))
		for _, entity := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(entity.ID.String(), eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.Seq))
			imgui.TableNextColumn()
			imgui.Text(entity.Selector)
			imgui.TableNextColumn()
			imgui.Text(entity.Bounds)
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if len(rows) > eb.pageSize {
		totalPages := (len(rows) + eb.pageSize - 1) / eb.pageSize
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < totalPages-1 {
			eb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.End()
}
