package fleece

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// represents exactly one (possibly nested) field
type Field struct {
	Path     []string
	original *Event
}

func (fld *Field) MustGet() any {
	v, _ := fld.Get()
	return v
}

func (fld *Field) Get() (any, error) {
	if fld.original == nil {
		return nil, fmt.Errorf("cannot Field.Get() because there is no linked event")
	}
	if len(fld.Path) == 0 {
		return nil, fmt.Errorf("cannot traverse empty Path")
	}

	level := fld.original.Fields
	for depth, key := range fld.Path {
		inner, keyExists := level[key]
		if !keyExists {
			return nil, fmt.Errorf("no such field %s", fld)
		}
		if depth == len(fld.Path)-1 {
			return inner, nil
		}
		innerMap, isMap := inner.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("%s is not an object", strings.Join(fld.Path[:depth+1], "."))
		}
		level = innerMap
	}
	return nil, fmt.Errorf("no such field %s", fld)
}

func (fld *Field) Set(value any) {
	if err := fld.SetCarefully(value); err != nil {
		slog.Warn(err.Error())
	}
}

func (fld *Field) SetCarefully(value any) error {
	if fld.original == nil {
		return fmt.Errorf("cannot Field.Set() because there is no linked event")
	}
	if len(fld.Path) == 0 {
		return fmt.Errorf("cannot traverse empty Path")
	}
	if fld.original.Fields == nil {
		fld.original.Fields = make(map[string]any)
	}

	level := fld.original.Fields
	for i := 0; i < len(fld.Path)-1; i++ {
		key := fld.Path[i]
		inner, keyExists := level[key]
		if !keyExists {
			level[key] = make(map[string]any)
		} else if _, isMap := inner.(map[string]any); !isMap {
			slog.Warn(strings.Join(fld.Path[:i+1], ".") + " is getting implicitly overwritten; make sure to delete it first")
			level[key] = make(map[string]any)
		}
		level = level[key].(map[string]any)
	}

	level[fld.Path[len(fld.Path)-1]] = value
	return nil
}

func (fld *Field) SetString(value string) {
	fld.Set(value)
}

func (fld *Field) GetString() string {
	rawValue, err := fld.Get()
	if err != nil {
		return ""
	}

	switch v := rawValue.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (fld *Field) Delete() {
	if fld.original == nil || len(fld.Path) == 0 {
		return
	}
	level := fld.original.Fields
	for i := 0; i < len(fld.Path)-1; i++ {
		inner, isMap := level[fld.Path[i]].(map[string]any)
		if !isMap {
			return
		}
		level = inner
	}
	delete(level, fld.Path[len(fld.Path)-1])
}

func (fld *Field) String() string {
	var sb strings.Builder
	for _, v := range fld.Path {
		sb.WriteString(`[` + v + `]`)
	}
	return sb.String()
}
