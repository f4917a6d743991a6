package widget

import (
	"fmt"
	"reflect"
)

// Expand flattens the tree rooted at root into a post-order sequence: every
// widget appears after all of its descendants, siblings keep their order.
func Expand(root Widget) ([]Widget, error) {
	return ExpandInto(nil, root)
}

// ExpandInto appends the post-order expansion of root to dst. Nil widgets,
// including nil pointers of a widget type, are skipped.
func ExpandInto(dst []Widget, root Widget) ([]Widget, error) {
	if isNil(root) {
		return dst, nil
	}
	return expand(dst, root, 0)
}

func expand(dst []Widget, w Widget, depth int) ([]Widget, error) {
	if depth > MaxTemplateDepth {
		return dst, fmt.Errorf("%w: nesting exceeds %d levels at %T", ErrMalformedTemplate, MaxTemplateDepth, w)
	}

	tmpl := w.Template()
	switch tmpl.kind {
	case TemplateEmpty:
	case TemplateSingle, TemplateMultiple:
		var err error
		for _, child := range tmpl.children {
			if isNil(child) {
				continue
			}
			if dst, err = expand(dst, child, depth+1); err != nil {
				return dst, err
			}
		}
	default:
		return dst, fmt.Errorf("%w: unknown template kind %s", ErrMalformedTemplate, tmpl.kind)
	}
	return append(dst, w), nil
}

func isNil(w Widget) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
