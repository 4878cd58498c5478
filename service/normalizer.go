package service

import (
	"reflect"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/model"
)

// NormalizeWorkflow reconciles the project's stored workflow definition with
// an optional override spec and an optional argument overlay, producing one
// complete spec. The stored definition is copied first, callers' project
// state is never mutated.
//
// Two different merge rules apply on purpose. Structural fields follow a
// non-destructive overlay: an empty or zero override value means "not
// specified" and never erases a stored value. The argument overlay applied
// afterwards always wins, even for zero values.
func NormalizeWorkflow(project *model.Project, name string, override *model.WorkflowSpec, args map[string]any) (*model.WorkflowSpec, error) {
	spec := project.GetWorkflow(name)
	if spec == nil {
		return nil, api_v1.NotFoundError{Kind: "workflow", Name: name}
	}
	if override != nil {
		mergeSpec(spec, override)
	}
	if len(args) > 0 {
		if spec.Args == nil {
			spec.Args = make(map[string]any, len(args))
		}
		for k, v := range args {
			spec.Args[k] = v
		}
	}
	return spec, nil
}

func mergeSpec(dst *model.WorkflowSpec, src *model.WorkflowSpec) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Engine != "" {
		dst.Engine = src.Engine
	}
	if src.Handler != "" {
		dst.Handler = src.Handler
	}
	if src.Path != "" {
		dst.Path = src.Path
	}
	if src.Image != "" {
		dst.Image = src.Image
	}
	if src.Schedule != "" {
		dst.Schedule = src.Schedule
	}
	dst.Args = mergeValues(dst.Args, src.Args)
	dst.Parameters = mergeValues(dst.Parameters, src.Parameters)
}

func mergeValues(dst map[string]any, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if m, ok := v.(map[string]any); ok {
			sub, _ := dst[k].(map[string]any)
			dst[k] = mergeValues(sub, m)
		} else if !isEmptyValue(v) {
			dst[k] = v
		}
	}
	return dst
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
