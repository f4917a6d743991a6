package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooui/ecs"
)

type FieldInfo struct {
	Name  string
	Index int
	Kind  reflect.Kind
}

// FieldRow is one exported field of a component, formatted for display.
type FieldRow struct {
	Component string
	Field     string
	Value     string
	Editable  bool
}

// ComponentInspector shows and edits the component fields of one entity.
type ComponentInspector struct {
	fields map[reflect.Type][]FieldInfo
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{fields: make(map[reflect.Type][]FieldInfo)}
}

func (ci *ComponentInspector) fieldsOf(t reflect.Type) []FieldInfo {
	if cached, ok := ci.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: field.Name, Index: i, Kind: field.Type.Kind()})
		}
	}
	ci.fields[t] = fields
	return fields
}

// Rows lists the fields of every component of id. Non-struct components
// produce a single row named after their type.
func (ci *ComponentInspector) Rows(world *ecs.World, id ecs.EntityId) []FieldRow {
	set, ok := world.ComponentSet(id)
	if !ok {
		return nil
	}

	var rows []FieldRow
	for _, compType := range set.Types() {
		val := reflect.ValueOf(world.GetComponent(id, compType)).Elem()
		if compType.Kind() != reflect.Struct {
			rows = append(rows, FieldRow{Component: compType.String(), Value: fmt.Sprint(val.Interface()), Editable: editable(val.Kind())})
			continue
		}
		for _, field := range ci.fieldsOf(compType) {
			rows = append(rows, FieldRow{
				Component: compType.String(),
				Field:     field.Name,
				Value:     fmt.Sprint(val.Field(field.Index).Interface()),
				Editable:  editable(field.Kind),
			})
		}
	}
	return rows
}

func editable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Bool, reflect.String:
		return true
	}
	return false
}

// Set parses value into the named field of the compType component of id.
// An empty field name targets a non-struct component itself.
func (ci *ComponentInspector) Set(world *ecs.World, id ecs.EntityId, compType reflect.Type, field, value string) error {
	component := world.GetComponent(id, compType)
	if component == nil {
		return fmt.Errorf("%w: %s on entity %s", ecs.ErrComponentNotFound, compType, id)
	}

	target := reflect.ValueOf(component).Elem()
	if field != "" {
		idx := slices.IndexFunc(ci.fieldsOf(compType), func(f FieldInfo) bool { return f.Name == field })
		if idx < 0 {
			return fmt.Errorf("debugui: %s has no field %q", compType, field)
		}
		target = target.Field(ci.fieldsOf(compType)[idx].Index)
	}
	return setValue(target, value)
}

func setValue(target reflect.Value, value string) error {
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(value, 10, target.Type().Bits())
		if err != nil {
			return fmt.Errorf("debugui: %w", err)
		}
		target.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(value, 10, target.Type().Bits())
		if err != nil {
			return fmt.Errorf("debugui: %w", err)
		}
		target.SetUint(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("debugui: %w", err)
		}
		target.SetBool(v)
	case reflect.String:
		target.SetString(value)
	default:
		return fmt.Errorf("debugui: cannot edit %s fields", target.Kind())
	}
	return nil
}

// Draw renders the inspector window for the selected entity.
func (ci *ComponentInspector) Draw(world *ecs.World, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	set, ok := world.ComponentSet(selected)
	if selected == 0 || !ok {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	seq, _ := world.Seq(selected)
	imgui.Text(fmt.Sprintf("Entity: %s (seq %d)", selected, seq))
	imgui.Separator()

	rows := ci.Rows(world, selected)
	for _, compType := range set.Types() {
		if !imgui.TreeNodeStr(compType.String()) {
			continue
		}
		for _, row := range rows {
			if row.Component != compType.String() {
				continue
			}
			ci.drawRow(world, selected, compType, row)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ci *ComponentInspector) drawRow(world *ecs.World, id ecs.EntityId, compType reflect.Type, row FieldRow) {
	label := row.Field
	if label == "" {
		label = "value"
	}
	if !row.Editable {
		imgui.Text(fmt.Sprintf("%s: %s", label, row.Value))
		return
	}

	v := row.Value
	imgui.Text(label + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(200)
	if imgui.InputTextWithHint("##"+compType.String()+"."+label, "", &v, imgui.InputTextFlagsEnterReturnsTrue, nil) {
		// Invalid input leaves the field unchanged.
		_ = ci.Set(world, id, compType, row.Field, v)
	}
}
