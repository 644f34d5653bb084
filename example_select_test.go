package qb_test

import (
	"fmt"

	"github.com/qjebbs/go-qb"
)

func ExampleSelectBuilder() {
	query, params, err := qb.Select(qb.Alias("u", "id", "name"), qb.Count("p.id").As("posts")).
		From("users", "u").
		LeftJoin("posts", "p").On("p.user_id", "u.id").And("p.draft", "=", 0).
		Where("u.created_at", ">", "2024-01-01").
		GroupBy("u.id", "u.name").
		OrderBy("posts DESC").
		Having(qb.Count("p.id"), ">=", 3).
		Limit(10, 20).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	fmt.Println(params)
	// Output:
	// SELECT u.id, u.name, COUNT(p.id) AS posts FROM users AS u LEFT JOIN posts AS p ON p.user_id = u.id AND p.draft = 0 WHERE (u.created_at > :p1) GROUP BY u.id, u.name HAVING (COUNT(p.id) >= :p2) ORDER BY posts DESC LIMIT 10 OFFSET 20
	// map[p1:2024-01-01 p2:3]
}

func ExampleSelectBuilder_operators() {
	query, params, err := qb.Select().
		From("users").
		Where("age", qb.Between(18, 30)).
		And("role", qb.In("admin", "editor")).
		And("deleted_at", qb.IsNull()).
		And(qb.Where("name", "like", "A%").Or("vip", true)).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	fmt.Println(params)
	// Output:
	// SELECT * FROM users WHERE (age BETWEEN :p1 AND :p2 AND role IN (:p3, :p4) AND deleted_at IS NULL AND (name LIKE :p5 OR vip = :p6))
	// map[p1:18 p2:30 p3:admin p4:editor p5:A% p6:true]
}

func ExampleIf() {
	query, params, err := qb.Select(
		"id",
		qb.If(qb.Where("age", ">=", 18), "'adult'", "'minor'").As("kind"),
	).From("users").Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	fmt.Println(params)
	// Output:
	// SELECT id, IF((age >= :p1), 'adult', 'minor') AS kind FROM users
	// map[p1:18]
}
