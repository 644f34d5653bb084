package main

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/qjebbs/go-qb"
	"github.com/qjebbs/go-qb/config"
	"github.com/qjebbs/go-qb/internal/util"
)

// statementFile describes exactly one statement.
//
//	select:
//	  columns: [u.id, u.name]
//	  from: users
//	  as: u
//	  where:
//	    - {column: u.age, op: ">", value: 18}
//	    - {conj: or, column: u.admin, value: true}
//	  limit: 10
type statementFile struct {
	Select *selectStatement `yaml:"select"`
	Insert *insertStatement `yaml:"insert"`
	Update *updateStatement `yaml:"update"`
	Delete *deleteStatement `yaml:"delete"`
}

type selectStatement struct {
	Distinct bool        `yaml:"distinct"`
	Columns  []string    `yaml:"columns"`
	From     string      `yaml:"from"`
	As       string      `yaml:"as"`
	Joins    []join      `yaml:"joins"`
	Where    []condition `yaml:"where"`
	GroupBy  []string    `yaml:"group_by"`
	Having   []condition `yaml:"having"`
	OrderBy  []string    `yaml:"order_by"`
	Limit    *int64      `yaml:"limit"`
	Offset   *int64      `yaml:"offset"`
}

type join struct {
	Kind  string      `yaml:"kind"`
	Table string      `yaml:"table"`
	As    string      `yaml:"as"`
	On    []condition `yaml:"on"`
}

type insertStatement struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
	Values  []field  `yaml:"values"`
}

type updateStatement struct {
	Table string      `yaml:"table"`
	As    string      `yaml:"as"`
	Set   []field     `yaml:"set"`
	Where []condition `yaml:"where"`
}

type deleteStatement struct {
	Table string      `yaml:"table"`
	As    string      `yaml:"as"`
	Where []condition `yaml:"where"`
	// Soft overrides soft_delete.enabled of the config.
	Soft *bool `yaml:"soft"`
}

// condition is a condition of a WHERE, HAVING or ON list.
type condition struct {
	// Conj is "and" (default) or "or", ignored on the first condition.
	Conj   string `yaml:"conj"`
	Column string `yaml:"column"`
	Op     string `yaml:"op"`
	Value  any    `yaml:"value"`
}

// field is a value to insert, or a value to update when Old is set.
type field struct {
	Name  string    `yaml:"name"`
	Value any       `yaml:"value"`
	Old   yaml.Node `yaml:"old"`
	Raw   bool      `yaml:"raw"`
}

func parseStatement(data []byte, b *qb.Builder, cfg *config.Config) (qb.Renderer, error) {
	var f statementFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing statement: %w", err)
	}
	var (
		r qb.Renderer
		n int
	)
	if f.Select != nil {
		r, n = f.Select.builder(b), n+1
	}
	if f.Insert != nil {
		r, n = f.Insert.builder(b), n+1
	}
	if f.Update != nil {
		r, n = f.Update.builder(b), n+1
	}
	if f.Delete != nil {
		r, n = f.Delete.builder(b, cfg), n+1
	}
	if n != 1 {
		return nil, errors.New("parsing statement: exactly one of select, insert, update or delete is required")
	}
	return r, nil
}

func (s *selectStatement) builder(b *qb.Builder) *qb.SelectBuilder {
	q := b.Select(util.Map(s.Columns, func(c string) any { return c })...)
	if s.Distinct {
		q.Distinct()
	}
	q.From(s.From)
	if s.As != "" {
		q.As(s.As)
	}
	for _, j := range s.Joins {
		q.Join(joinKind(j.Kind), j.Table)
		if j.As != "" {
			q.As(j.As)
		}
		applyConditions(j.On, wrap(q.On), wrap(q.And), wrap(q.Or))
	}
	applyConditions(s.Where, wrap(q.Where), wrap(q.And), wrap(q.Or))
	if len(s.GroupBy) > 0 {
		q.GroupBy(s.GroupBy...)
	}
	applyConditions(s.Having, wrap(q.Having), wrap(q.And), wrap(q.Or))
	if len(s.OrderBy) > 0 {
		q.OrderBy(s.OrderBy...)
	}
	if s.Limit != nil {
		q.Limit(*s.Limit)
	}
	if s.Offset != nil {
		q.Offset(*s.Offset)
	}
	return q
}

func (s *insertStatement) builder(b *qb.Builder) *qb.InsertBuilder {
	q := b.Insert(s.Table)
	if len(s.Columns) > 0 {
		q.Columns(s.Columns...)
	}
	return q.Values(util.Map(s.Values, field.field)...)
}

func (s *updateStatement) builder(b *qb.Builder) *qb.UpdateBuilder {
	q := b.Update(s.Table)
	if s.As != "" {
		q.As(s.As)
	}
	q.Set(util.Map(s.Set, field.field)...)
	applyConditions(s.Where, wrap(q.Where), wrap(q.And), wrap(q.Or))
	return q
}

func (s *deleteStatement) builder(b *qb.Builder, cfg *config.Config) *qb.DeleteBuilder {
	q := b.Delete(s.Table)
	if s.As != "" {
		q.As(s.As)
	}
	applyConditions(s.Where, wrap(q.Where), wrap(q.And), wrap(q.Or))
	column, soft := "", false
	if cfg != nil {
		column, soft = cfg.SoftDeleteColumn()
	}
	if s.Soft != nil {
		soft = *s.Soft
	}
	if soft {
		q.SoftDelete(column, nil)
	}
	return q
}

func (f field) field() *qb.Field {
	var r *qb.Field
	if f.Old.Kind == 0 {
		r = qb.Value(f.Name, f.Value)
	} else {
		var old any
		if err := f.Old.Decode(&old); err != nil {
			old = f.Old.Value
		}
		r = qb.Change(f.Name, old, f.Value)
	}
	if f.Raw {
		r.Raw()
	}
	return r
}

func (c condition) args() []any {
	if c.Op == "" {
		return []any{c.Value}
	}
	return []any{c.Op, c.Value}
}

type conditionFunc func(left any, args ...any)

// wrap drops the builder returned by a condition method.
func wrap[T any](fn func(left any, args ...any) T) conditionFunc {
	return func(left any, args ...any) { fn(left, args...) }
}

func applyConditions(conditions []condition, first, and, or conditionFunc) {
	for i, c := range conditions {
		switch {
		case i == 0:
			first(c.Column, c.args()...)
		case strings.EqualFold(c.Conj, "or"):
			or(c.Column, c.args()...)
		default:
			and(c.Column, c.args()...)
		}
	}
}

// joinKind maps short join names, unknown ones are left to the builder
// to reject.
func joinKind(s string) qb.JoinKind {
	switch strings.ToLower(s) {
	case "", "inner":
		return qb.JoinInner
	case "left":
		return qb.JoinLeft
	case "right":
		return qb.JoinRight
	case "full":
		return qb.JoinFull
	case "cross":
		return qb.JoinCross
	}
	return qb.JoinKind(s)
}
