package qb_test

import (
	"errors"
	"fmt"

	"github.com/qjebbs/go-qb"
)

func ExampleDeleteBuilder() {
	query, params, err := qb.Delete("sessions").
		Where("user_id", 3).
		And("expires_at", "<", qb.Now()).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	fmt.Println(params)
	// Output:
	// DELETE FROM sessions WHERE (user_id = :p1 AND expires_at < NOW())
	// map[p1:3]
}

func ExampleDeleteBuilder_SoftDelete() {
	query, _, err := qb.Delete("users").
		Where("id", 3).
		SoftDelete("", nil).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	// Output:
	// UPDATE users SET deleted_at = NOW() WHERE (id = :p1)
}

func ExampleDeleteBuilder_withoutWhere() {
	_, err := qb.Delete("users").Render()
	fmt.Println(errors.Is(err, qb.ErrMissingClause))
	// Output:
	// true
}
