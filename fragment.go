package qb

import (
	"fmt"
	"strings"

	"github.com/qjebbs/go-qb/internal/named"
)

// maxDepth limits nesting of subqueries, conditionals and condition trees.
const maxDepth = 32

// Binding is a placeholder key paired with its value.
type Binding struct {
	Key   string
	Value any
}

// Params is the flat placeholder map of a rendered statement.
type Params map[string]any

// renderCtx is the state of a single render.
type renderCtx struct {
	keys  KeyGenerator
	depth int
}

func newRenderCtx(keys func() KeyGenerator) *renderCtx {
	if keys == nil {
		keys = SequentialKeys
	}
	return &renderCtx{keys: keys()}
}

func (c *renderCtx) enter() error {
	c.depth++
	if c.depth > maxDepth {
		return fmt.Errorf("%w: expression nested deeper than %d", ErrInvalidOperand, maxDepth)
	}
	return nil
}

func (c *renderCtx) leave() {
	c.depth--
}

// fragment is a piece of rendered SQL with the bindings its placeholders
// refer to. Every placeholder of sql has exactly one binding.
type fragment struct {
	sql      string
	bindings []Binding
}

func rawFragment(sql string) fragment {
	return fragment{sql: sql}
}

// params flattens the bindings into a map.
func (f fragment) params() Params {
	p := make(Params, len(f.bindings))
	for _, b := range f.bindings {
		p[b.Key] = b.Value
	}
	return p
}

// fragmentWriter composes fragments, keeping placeholder keys unique.
type fragmentWriter struct {
	ctx      *renderCtx
	sb       strings.Builder
	bindings []Binding
	keys     map[string]bool
}

func newFragmentWriter(ctx *renderCtx) *fragmentWriter {
	return &fragmentWriter{
		ctx:  ctx,
		keys: make(map[string]bool),
	}
}

// WriteString writes SQL text without placeholders.
func (w *fragmentWriter) WriteString(s string) {
	w.sb.WriteString(s)
}

// WriteFragment appends f. Bindings of f whose keys are already taken get
// fresh keys, and the placeholders of f are rewritten accordingly. The text
// written before is never touched.
func (w *fragmentWriter) WriteFragment(f fragment) {
	var renames map[string]string
	for _, b := range f.bindings {
		if !w.keys[b.Key] {
			continue
		}
		if renames == nil {
			renames = make(map[string]string)
		}
		renames[b.Key] = w.freshKey(b.Key, f, renames)
	}
	if renames != nil {
		f.sql = named.Rename(f.sql, renames)
	}
	w.sb.WriteString(f.sql)
	for _, b := range f.bindings {
		if to, ok := renames[b.Key]; ok {
			b.Key = to
		}
		w.keys[b.Key] = true
		w.bindings = append(w.bindings, b)
	}
}

// maxKeyAttempts bounds the keys drawn from the generator for a single
// rename before falling back to numbered suffixes of the old key.
const maxKeyAttempts = 16

// freshKey returns a key for old used neither by the writer, by f, nor by
// pending renames.
func (w *fragmentWriter) freshKey(old string, f fragment, renames map[string]string) string {
	taken := func(k string) bool {
		if w.keys[k] {
			return true
		}
		for _, b := range f.bindings {
			if b.Key == k {
				return true
			}
		}
		for _, to := range renames {
			if to == k {
				return true
			}
		}
		return false
	}
	for i := 0; i < maxKeyAttempts; i++ {
		if k := w.ctx.keys.Next(); !taken(k) {
			return k
		}
	}
	for n := 1; ; n++ {
		if k := fmt.Sprintf("%s_%d", old, n); !taken(k) {
			return k
		}
	}
}

// Fragment returns what has been written so far.
func (w *fragmentWriter) Fragment() fragment {
	return fragment{sql: w.sb.String(), bindings: w.bindings}
}

// joinFragments joins fragments with sep.
func joinFragments(ctx *renderCtx, sep string, fragments ...fragment) fragment {
	w := newFragmentWriter(ctx)
	for i, f := range fragments {
		if i > 0 {
			w.WriteString(sep)
		}
		w.WriteFragment(f)
	}
	return w.Fragment()
}
