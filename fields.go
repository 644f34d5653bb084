package qb

import "reflect"

// Accepted is the set of fields accepted so far while evaluating fields.
type Accepted map[string]bool

// Has reports whether the field is accepted.
func (a Accepted) Has(name string) bool {
	return a[name]
}

// Field is a column of an INSERT row or an UPDATE assignment, with the
// policy deciding whether it's included.
//
// Values may be given as a producer, called at render time:
//
//	func() any
//	func(qb.Accepted) any
type Field struct {
	name      string
	value     any // inserted value, or the new value of a change
	old       any
	change    bool
	allow     bool
	dependsOn []string
	raw       bool
}

// Value returns an INSERT field.
func Value(name string, value any) *Field {
	return &Field{name: name, value: value, allow: true}
}

// Change returns an UPDATE field, skipped when old equals new.
func Change(name string, oldValue, newValue any) *Field {
	return &Field{name: name, old: oldValue, value: newValue, change: true, allow: true}
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.name
}

// Allow sets whether the field may be included.
func (f *Field) Allow(allow bool) *Field {
	f.allow = allow
	return f
}

// Deny excludes the field.
func (f *Field) Deny() *Field {
	return f.Allow(false)
}

// DependsOn includes the field only if all the named fields, declared
// before it, are included.
func (f *Field) DependsOn(names ...string) *Field {
	f.dependsOn = append(f.dependsOn, names...)
	return f
}

// Raw splices the value into the SQL as it is, instead of binding it.
func (f *Field) Raw() *Field {
	f.raw = true
	return f
}

// evaluated is the result of evaluating fields.
type evaluated struct {
	columns []string
	values  []fragment
	audit   []Diff
}

func (e *evaluated) empty() bool {
	return len(e.columns) == 0
}

// evaluateFields runs the policies of fields in order. columns renames
// the fields positionally.
func evaluateFields(ctx *renderCtx, fields []*Field, columns []string) (*evaluated, error) {
	r := &evaluated{}
	accepted := make(Accepted)
	for i, f := range fields {
		if f == nil {
			continue
		}
		value := produce(f.value, accepted)
		old := f.old
		if f.change {
			old = produce(old, accepted)
		}
		if !f.allow {
			continue
		}
		if f.change && reflect.DeepEqual(old, value) {
			continue
		}
		if !dependenciesMet(f.dependsOn, accepted) {
			continue
		}
		column := f.name
		if i < len(columns) && columns[i] != "" {
			column = columns[i]
		}
		var frag fragment
		var err error
		if f.raw {
			frag, err = verbatim(value)
		} else {
			frag, err = ctx.rowValue(value, column)
		}
		if err != nil {
			return nil, err
		}
		accepted[f.name] = true
		r.columns = append(r.columns, column)
		r.values = append(r.values, frag)
		if f.change {
			r.audit = append(r.audit, Diff{Field: column, New: value, Old: old})
		}
	}
	return r, nil
}

func produce(v any, accepted Accepted) any {
	switch fn := v.(type) {
	case func() any:
		return fn()
	case func(Accepted) any:
		return fn(accepted)
	}
	return v
}

func dependenciesMet(deps []string, accepted Accepted) bool {
	for _, d := range deps {
		if !accepted[d] {
			return false
		}
	}
	return true
}
