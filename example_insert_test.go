package qb_test

import (
	"fmt"

	"github.com/qjebbs/go-qb"
)

func ExampleInsertBuilder() {
	note := ""
	query, params, err := qb.Insert("users").
		Values(
			qb.Value("name", "Ann"),
			qb.Value("note", note).Allow(note != ""),
			qb.Value("created_at", qb.Now()),
		).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	fmt.Println(params)
	// Output:
	// INSERT INTO users (name, created_at) VALUES (:name, NOW())
	// map[name:Ann]
}

func ExampleField_DependsOn() {
	password := ""
	query, _, err := qb.Insert("users").
		Values(
			qb.Value("email", "ann@example.com"),
			qb.Value("password", password).Allow(password != ""),
			qb.Value("password_set_at", qb.Now()).DependsOn("password"),
		).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	// Output:
	// INSERT INTO users (email) VALUES (:email)
}
