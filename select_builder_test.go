package qb_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/qjebbs/go-qb"
	"github.com/qjebbs/go-qb/internal/named"
)

// assertBijection checks that every placeholder of query appears once and
// has exactly one param, and the other way around.
func assertBijection(t *testing.T, query string, params qb.Params) {
	t.Helper()
	seen := make(map[string]bool)
	for _, n := range named.Names(query) {
		if seen[n] {
			t.Errorf("placeholder :%s appears twice in %q", n, query)
		}
		seen[n] = true
		if _, ok := params[n]; !ok {
			t.Errorf("placeholder :%s of %q has no param", n, query)
		}
	}
	if len(seen) != len(params) {
		t.Errorf("%d placeholders in %q, but %d params: %v", len(seen), query, len(params), params)
	}
}

func TestSelectBuilder(t *testing.T) {
	q := qb.Select("id").From("users").Where("id", "=", 1)
	gotQuery, gotParams, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	wantQuery := "SELECT id FROM users WHERE (id = :p1)"
	wantParams := qb.Params{"p1": 1}
	if wantQuery != gotQuery {
		t.Errorf("got:\n%s\nwant:\n%s", gotQuery, wantQuery)
	}
	if !reflect.DeepEqual(wantParams, gotParams) {
		t.Errorf("want:\n%v\ngot:\n%v", wantParams, gotParams)
	}
}

func TestSelectBuilderFullChain(t *testing.T) {
	q := qb.Select("u.id", qb.Count("p.id").As("posts")).
		From("users", "u").
		LeftJoin("posts", "p").On("p.user_id", "u.id").And("p.deleted", "=", 0).
		Where("u.status", "active").
		GroupBy("u.id").
		OrderBy("posts DESC").
		Having(qb.Count("p.id"), ">", 1).
		Limit(10, 20)
	gotQuery, gotParams, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	wantQuery := "SELECT u.id, COUNT(p.id) AS posts FROM users AS u LEFT JOIN posts AS p ON p.user_id = u.id AND p.deleted = 0 WHERE (u.status = :p1) GROUP BY u.id HAVING (COUNT(p.id) > :p2) ORDER BY posts DESC LIMIT 10 OFFSET 20"
	wantParams := qb.Params{"p1": "active", "p2": 1}
	if wantQuery != gotQuery {
		t.Errorf("got:\n%s\nwant:\n%s", gotQuery, wantQuery)
	}
	if !reflect.DeepEqual(wantParams, gotParams) {
		t.Errorf("want:\n%v\ngot:\n%v", wantParams, gotParams)
	}
}

func TestSelectBuilderJoins(t *testing.T) {
	q := qb.Select().
		From("users").As("u").
		InnerJoin("profiles").As("pr").On("pr.user_id", "u.id").
		CrossJoin("regions", "r").
		RightJoin("teams", "t").On("t.id", "u.team_id").Or("t.kind", qb.In("a", "b")).
		FullJoin("notes", "n").On("n.body", qb.Equal("it's"))
	got, err := q.SQL()
	if err != nil {
		t.Fatal(err)
	}
	want := "SELECT * FROM users AS u INNER JOIN profiles AS pr ON pr.user_id = u.id CROSS JOIN regions AS r RIGHT JOIN teams AS t ON t.id = u.team_id OR t.kind IN ('a', 'b') FULL JOIN notes AS n ON n.body = 'it''s'"
	if want != got {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSelectBuilderBackslashLiteral(t *testing.T) {
	q := qb.Select().From("files", "f").
		LeftJoin("paths", "x").On("x.p", qb.Equal(`C:\`)).
		Where("f.id", 1)
	gotQuery, gotParams, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	wantQuery := `SELECT * FROM files AS f LEFT JOIN paths AS x ON x.p = 'C:\' WHERE (f.id = :p1)`
	if wantQuery != gotQuery {
		t.Errorf("got:\n%s\nwant:\n%s", gotQuery, wantQuery)
	}
	assertBijection(t, gotQuery, gotParams)
	got, err := qb.Interpolate(gotQuery, gotParams)
	if err != nil {
		t.Fatal(err)
	}
	want := `SELECT * FROM files AS f LEFT JOIN paths AS x ON x.p = 'C:\' WHERE (f.id = 1)`
	if want != got {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSelectBuilderJoinWithoutOn(t *testing.T) {
	_, err := qb.Select().From("users", "u").LeftJoin("posts", "p").Where("u.id", 1).SQL()
	if !errors.Is(err, qb.ErrEmptyConditionTree) {
		t.Errorf("want ErrEmptyConditionTree, got %v", err)
	}
}

func TestSelectBuilderDistinct(t *testing.T) {
	got, err := qb.Select("city").Distinct().From("users").OrderBy("city").Limit(5).SQL()
	if err != nil {
		t.Fatal(err)
	}
	want := "SELECT DISTINCT city FROM users ORDER BY city LIMIT 5"
	if want != got {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSelectBuilderColumns(t *testing.T) {
	q := qb.Select(
		qb.Alias("u", "id", "name"),
		qb.Distinct("u.city"),
		qb.Sum("o.amount").As("total"),
		qb.Raw("1 AS one"),
		qb.If(qb.Where("u.age", ">=", 18), "'adult'", "'minor'").As("kind"),
		qb.If("u.score > 50", qb.Bind("pass"), qb.Bind("fail")),
	).From("users", "u")
	gotQuery, gotParams, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	wantQuery := "SELECT u.id, u.name, DISTINCT u.city, SUM(o.amount) AS total, 1 AS one, IF((u.age >= :p1), 'adult', 'minor') AS kind, IF(u.score > 50, :p2, :p3) FROM users AS u"
	wantParams := qb.Params{"p1": 18, "p2": "pass", "p3": "fail"}
	if wantQuery != gotQuery {
		t.Errorf("got:\n%s\nwant:\n%s", gotQuery, wantQuery)
	}
	if !reflect.DeepEqual(wantParams, gotParams) {
		t.Errorf("want:\n%v\ngot:\n%v", wantParams, gotParams)
	}
}

func TestSelectBuilderInvalidColumns(t *testing.T) {
	for _, col := range []any{123, qb.Bind(1), qb.Now(), qb.Where("a", 1)} {
		_, err := qb.Select(col).From("t").SQL()
		if !errors.Is(err, qb.ErrInvalidOperand) {
			t.Errorf("column %T: want ErrInvalidOperand, got %v", col, err)
		}
	}
}

func TestSelectBuilderSubqueryCollision(t *testing.T) {
	sub := qb.Select("user_id").From("orders").Where("total", ">", 100)
	q := qb.Select("id").From("users").Where("status", "active").And("id", qb.In(sub))
	gotQuery, gotParams, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	wantQuery := "SELECT id FROM users WHERE (status = :p1 AND id IN (SELECT user_id FROM orders WHERE (total > :p2)))"
	wantParams := qb.Params{"p1": "active", "p2": 100}
	if wantQuery != gotQuery {
		t.Errorf("got:\n%s\nwant:\n%s", gotQuery, wantQuery)
	}
	if !reflect.DeepEqual(wantParams, gotParams) {
		t.Errorf("want:\n%v\ngot:\n%v", wantParams, gotParams)
	}
	// the subquery itself is untouched
	subQuery, subParams, err := sub.Build()
	if err != nil {
		t.Fatal(err)
	}
	if subQuery != "SELECT user_id FROM orders WHERE (total > :p1)" {
		t.Errorf("subquery changed: %s", subQuery)
	}
	if !reflect.DeepEqual(qb.Params{"p1": 100}, subParams) {
		t.Errorf("subquery params changed: %v", subParams)
	}
}

func TestSelectBuilderExplicitKeyCollision(t *testing.T) {
	q := qb.Select().From("t").Where("a", qb.Bind(1, "x")).Or("b", qb.Bind(2, "x"))
	gotQuery, gotParams, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	wantQuery := "SELECT * FROM t WHERE (a = :x OR b = :p1)"
	wantParams := qb.Params{"x": 1, "p1": 2}
	if wantQuery != gotQuery {
		t.Errorf("got:\n%s\nwant:\n%s", gotQuery, wantQuery)
	}
	if !reflect.DeepEqual(wantParams, gotParams) {
		t.Errorf("want:\n%v\ngot:\n%v", wantParams, gotParams)
	}
}

// stuckKeys repeats the same key for a while, forcing collisions.
type stuckKeys struct {
	n int
}

func (g *stuckKeys) Next() string {
	g.n++
	if g.n <= 3 {
		return "k"
	}
	return "k" + string(rune('0'+g.n))
}

// constKeys always returns the same key.
type constKeys struct{}

func (constKeys) Next() string { return "k" }

func TestSelectBuilderConstantKeys(t *testing.T) {
	b := qb.New(qb.WithKeys(func() qb.KeyGenerator { return constKeys{} }))
	q := b.Select().From("t").Where("a", 1).Or("b", 2).Or("c", qb.In(3, 4))
	gotQuery, gotParams, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	assertBijection(t, gotQuery, gotParams)
	if len(gotParams) != 4 {
		t.Errorf("got %d params: %v", len(gotParams), gotParams)
	}
}

func TestSelectBuilderForcedCollisions(t *testing.T) {
	b := qb.New(qb.WithKeys(func() qb.KeyGenerator { return &stuckKeys{} }))
	q := b.Select().From("t").Where("a", 1).Or("b", 2).Or("c", 3)
	gotQuery, gotParams, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	wantQuery := "SELECT * FROM t WHERE (a = :k OR b = :k4 OR c = :k5)"
	wantParams := qb.Params{"k": 1, "k4": 2, "k5": 3}
	if wantQuery != gotQuery {
		t.Errorf("got:\n%s\nwant:\n%s", gotQuery, wantQuery)
	}
	if !reflect.DeepEqual(wantParams, gotParams) {
		t.Errorf("want:\n%v\ngot:\n%v", wantParams, gotParams)
	}
}

func TestSelectBuilderRandomKeys(t *testing.T) {
	b := qb.New(qb.WithKeys(qb.RandomKeys))
	sub := b.Select("id").From("admins").Where("level", ">", 3)
	q := b.Select().From("users").
		Where("id", qb.In(sub)).
		Or("name", "like", "A%").
		Or("age", qb.Between(18, 30))
	query, params, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 4 {
		t.Errorf("want 4 params, got %v", params)
	}
	assertBijection(t, query, params)
}

func TestSelectBuilderRenderIdempotent(t *testing.T) {
	q := qb.Select("id").From("users").
		Where("status", "active").
		And("id", qb.In(qb.Select("user_id").From("bans").Where("until", ">", qb.Now()).And("kind", 2)))
	q1, p1, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	q2, p2, err := q.Build()
	if err != nil {
		t.Fatal(err)
	}
	if q1 != q2 || !reflect.DeepEqual(p1, p2) {
		t.Errorf("renders differ:\n%s %v\n%s %v", q1, p1, q2, p2)
	}
	assertBijection(t, q1, p1)
	assertBijection(t, q2, p2)
}

func TestSelectBuilderOrder(t *testing.T) {
	testCases := []struct {
		name   string
		build  func() *qb.SelectBuilder
		clause string
		after  string
	}{
		{
			name:   "group by after limit",
			build:  func() *qb.SelectBuilder { return qb.Select("x").From("t").Limit(10).GroupBy("x") },
			clause: "GROUPBY", after: "LIMIT",
		},
		{
			name:   "where before from",
			build:  func() *qb.SelectBuilder { return qb.Select("x").Where("a", 1) },
			clause: "WHERE", after: "SELECT",
		},
		{
			name:   "on without join",
			build:  func() *qb.SelectBuilder { return qb.Select("x").From("t").On("a", "b") },
			clause: "ON", after: "FROM",
		},
		{
			name:   "offset without limit",
			build:  func() *qb.SelectBuilder { return qb.Select("x").From("t").Offset(5) },
			clause: "OFFSET", after: "FROM",
		},
		{
			name:   "and after from",
			build:  func() *qb.SelectBuilder { return qb.Select("x").From("t").And("a", 1) },
			clause: "AND", after: "FROM",
		},
		{
			name:   "alias twice",
			build:  func() *qb.SelectBuilder { return qb.Select("x").From("t").LeftJoin("j").As("a").As("b") },
			clause: "AS", after: "AS",
		},
		{
			name:   "join after where",
			build:  func() *qb.SelectBuilder { return qb.Select("x").From("t").Where("a", 1).InnerJoin("j") },
			clause: "JOIN", after: "WHERE",
		},
		{
			name:   "where after join",
			build:  func() *qb.SelectBuilder { return qb.Select("x").From("t").InnerJoin("j").On("a", "b").Where("c", 1).Having("d", 1).Where("e", 1) },
			clause: "WHERE", after: "HAVING",
		},
		{
			name:   "select twice",
			build:  func() *qb.SelectBuilder { return qb.Select("x").Select("y") },
			clause: "SELECT", after: "SELECT",
		},
		{
			name:   "from first",
			build:  func() *qb.SelectBuilder { return qb.NewSelectBuilder().From("t") },
			clause: "FROM", after: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.build()
			_, err := b.SQL()
			if !errors.Is(err, qb.ErrOrderingViolation) {
				t.Fatalf("want ErrOrderingViolation, got %v", err)
			}
			var oe *qb.OrderError
			if !errors.As(err, &oe) {
				t.Fatalf("want *OrderError, got %T", err)
			}
			if oe.Clause != tc.clause || oe.After != tc.after {
				t.Errorf("want %s after %q, got %s after %q", tc.clause, tc.after, oe.Clause, oe.After)
			}
			if b.Err() != err {
				t.Errorf("Err() = %v, want %v", b.Err(), err)
			}
		})
	}
}

func TestSelectBuilderOrderErrorMessage(t *testing.T) {
	_, err := qb.Select("x").From("t").Limit(10).GroupBy("x").SQL()
	want := "qb: invalid clause order: GROUPBY after LIMIT"
	if err == nil || err.Error() != want {
		t.Errorf("want %q, got %v", want, err)
	}
}

func TestSelectBuilderLegalChains(t *testing.T) {
	chains := []*qb.SelectBuilder{
		qb.Select().From("t").Limit(1).Offset(2),
		qb.Select().From("t").GroupBy("a").Having("a", 1).Or("b", 2).Limit(3),
		qb.Select().From("t").OrderBy("a").Having("a", 1),
		qb.Select().From("t").CrossJoin("c").Where("a", 1),
		qb.Select().From("t").CrossJoin("c").InnerJoin("d").On("d.id", "t.id").GroupBy("a"),
		qb.Select().From("t").As("x").Having("a", 1),
	}
	for i, b := range chains {
		if err := b.Err(); err != nil {
			t.Errorf("chain %d: %v", i, err)
		}
		if _, err := b.SQL(); err != nil {
			t.Errorf("chain %d: %v", i, err)
		}
	}
}

func TestSelectBuilderIDAndTable(t *testing.T) {
	s, err := qb.Select().From(user{}).Where("id", 42).Render()
	if err != nil {
		t.Fatal(err)
	}
	if s.Table != "users" || s.ID != 42 || s.Kind != qb.KindSelect {
		t.Errorf("got table %q, id %v, kind %s", s.Table, s.ID, s.Kind)
	}
	if s.Query != "SELECT * FROM users WHERE (id = :p1)" {
		t.Errorf("got %s", s.Query)
	}
}

type user struct{}

func (user) TableName() string { return "users" }

func TestSelectBuilderInvalidTable(t *testing.T) {
	for _, table := range []any{"", 1, nil} {
		_, err := qb.Select().From(table).SQL()
		if !errors.Is(err, qb.ErrInvalidOperand) {
			t.Errorf("table %v: want ErrInvalidOperand, got %v", table, err)
		}
	}
}

func TestSelectBuilderNegativeLimit(t *testing.T) {
	_, err := qb.Select().From("t").Limit(-1).SQL()
	if !errors.Is(err, qb.ErrInvalidOperand) {
		t.Errorf("want ErrInvalidOperand, got %v", err)
	}
}
