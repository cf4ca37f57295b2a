package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilequest/ecs"
)

// FieldLine is one formatted field of a component.
type FieldLine struct {
	Name  string
	Value string
}

// ComponentInspector shows the components of the selected entity. It is
// read-only: edits go through game systems, not the overlay.
type ComponentInspector struct{}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected == ecs.NoEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	if !storage.Alive(selected) {
		imgui.Text(fmt.Sprintf("%s no longer exists", selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", selected))
	imgui.Separator()

	for _, comp := range Inspect(storage, selected) {
		if imgui.TreeNodeStr(comp.Type) {
			for _, line := range comp.Fields {
				imgui.Text(fmt.Sprintf("%s: %s", line.Name, line.Value))
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// ComponentView is the formatted content of one component.
type ComponentView struct {
	Type   string
	Fields []FieldLine
}

// Inspect formats every component of an entity in archetype type order.
func Inspect(storage *ecs.Storage, id ecs.EntityId) []ComponentView {
	var views []ComponentView
	for _, compType := range storage.ComponentTypes(id) {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		views = append(views, ComponentView{
			Type:   compType.String(),
			Fields: describe(reflect.ValueOf(component).Elem()),
		})
	}
	return views
}

// describe lists the exported fields of a struct, or the value itself for
// non-struct components.
func describe(val reflect.Value) []FieldLine {
	if val.Kind() != reflect.Struct {
		return []FieldLine{{Name: "value", Value: fmt.Sprintf("%v", val.Interface())}}
	}

	t := val.Type()
	lines := make([]FieldLine, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)
		if fieldVal.Kind() == reflect.Func {
			lines = append(lines, FieldLine{Name: field.Name, Value: "func"})
			continue
		}
		lines = append(lines, FieldLine{Name: field.Name, Value: fmt.Sprintf("%+v", fieldVal.Interface())})
	}
	return lines
}
