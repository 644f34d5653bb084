package executor

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

const tagName = "qb"

type structInfo struct {
	// column name to field index
	fields map[string][]int
	err    error
}

var structCache sync.Map

func getStructInfo(typ reflect.Type) (*structInfo, error) {
	cached, found := structCache.Load(typ)
	if found {
		info := cached.(*structInfo)
		return info, info.err
	}
	info := parseStructInfo(typ)
	structCache.Store(typ, info)
	return info, info.err
}

// parseStructInfo collects the fields tagged with `qb:"column"`,
// diving into embedded structs. A tag of "-" skips the field.
func parseStructInfo(typ reflect.Type) *structInfo {
	fields := make(map[string][]int)
	var findFields func(t reflect.Type, basePath []int) error
	findFields = func(t reflect.Type, basePath []int) error {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			fieldType := field.Type
			if fieldType.Kind() == reflect.Ptr {
				fieldType = fieldType.Elem()
			}
			// exported fields of unexported embedded structs are still
			// settable, unless the struct is behind a pointer.
			if !field.IsExported() && !(field.Anonymous && field.Type.Kind() == reflect.Struct) {
				continue
			}
			currentPath := append(append([]int(nil), basePath...), i)
			tag := field.Tag.Get(tagName)
			if tag == "-" {
				continue
			}
			if field.Anonymous && tag == "" && fieldType.Kind() == reflect.Struct {
				if err := findFields(fieldType, currentPath); err != nil {
					return err
				}
				continue
			}
			if tag == "" || !field.IsExported() {
				continue
			}
			column := strings.TrimSpace(strings.Split(tag, ",")[0])
			if _, ok := fields[column]; ok {
				return fmt.Errorf("qb tag: duplicated column %q on %s.%s", column, typ, field.Name)
			}
			fields[column] = currentPath
		}
		return nil
	}
	if err := findFields(typ, nil); err != nil {
		return &structInfo{err: err}
	}
	if len(fields) == 0 {
		return &structInfo{
			err: fmt.Errorf("no fields with 'qb' tag found in struct %s", typ),
		}
	}
	return &structInfo{fields: fields}
}

// destinations returns the scan destinations of columns for dest,
// columns without a field are dropped.
func (s *structInfo) destinations(dest reflect.Value, columns []string) []any {
	r := make([]any, len(columns))
	for i, col := range columns {
		index, ok := s.fields[col]
		if !ok {
			r[i] = Blackhole
			continue
		}
		r[i] = fieldByIndex(dest, index).Addr().Interface()
	}
	return r
}

// fieldByIndex is like reflect.Value.FieldByIndex, but allocates nil
// embedded pointers on the way.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	current := v
	for _, idx := range index {
		if current.Kind() == reflect.Ptr {
			if current.IsNil() {
				current.Set(reflect.New(current.Type().Elem()))
			}
			current = current.Elem()
		}
		current = current.Field(idx)
	}
	return current
}

// Blackhole is a scanner that drops the scanned value.
var Blackhole = &blackhole{}

type blackhole struct{}

func (b *blackhole) Scan(_ any) error { return nil }
