package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/qjebbs/go-qb"
	"github.com/qjebbs/go-qb/dialect"
	"github.com/qjebbs/go-qb/internal/named"
	"github.com/qjebbs/go-sqlf/v4"
)

// Bind converts the named placeholders of query into the bind variables
// of the dialect, e.g. "?" for MySQL and "$1" for PostgreSQL, and returns
// the arguments in the matching order.
func Bind(ctx context.Context, d dialect.Dialect, query string, params qb.Params) (string, []any, error) {
	if d == nil {
		d = defaultDialect
	}
	var (
		args    []any
		missing []string
	)
	q := named.Replace(query, func(name string) string {
		v, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return ":" + name
		}
		args = append(args, v)
		return "?"
	})
	if len(missing) > 0 {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingParam, strings.Join(missing, ", "))
	}
	return sqlf.Build(sqlf.NewContext(ctx, d), sqlf.F(q, args...))
}
