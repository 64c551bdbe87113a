package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/elbader17/sheetdb/pkg/sheetdb"
)

type User struct {
	ID    int    `sheetdb:"id"`
	Name  string `sheetdb:"name"`
	Email string `sheetdb:"email"`
	Age   int    `sheetdb:"age"`
}

func main() {
	ctx := context.Background()

	credentials, err := os.ReadFile("service-account.json")
	if err != nil {
		log.Fatalf("Failed to read credentials: %v", err)
	}

	client, err := sheetdb.Authorize(ctx, credentials)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	db, err := client.OpenByKey(ctx, "your-spreadsheet-id")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	exists, err := db.TableExists(ctx, "Users")
	if err != nil {
		log.Fatalf("Failed to list tables: %v", err)
	}
	if !exists {
		if err := db.CreateTable(ctx, "Users", []string{"id", "name", "email", "age"}); err != nil {
			log.Fatalf("Failed to create table: %v", err)
		}
	}

	users, err := db.Table(ctx, "Users")
	if err != nil {
		log.Fatalf("Failed to open table: %v", err)
	}

	newUsers := []User{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Age: 30},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Age: 25},
	}
	for _, u := range newUsers {
		if err := users.InsertValue(ctx, u); err != nil {
			log.Fatalf("Failed to insert user: %v", err)
		}
	}

	var results []User
	err = users.Query().
		Where("age", ">=", 25).
		Limit(10).
		Scan(ctx, &results)
	if err != nil {
		log.Fatalf("Failed to query users: %v", err)
	}

	fmt.Printf("Found %d users:\n", len(results))
	for _, u := range results {
		fmt.Printf("  - %s (%s)\n", u.Name, u.Email)
	}

	if _, err := users.Update(ctx, sheetdb.Selection{Field: "name", Value: "Bob"}, sheetdb.Record{"age": "26"}); err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	n, err := users.Query().Match("name", "Alice").Delete(ctx)
	if err != nil {
		log.Fatalf("Failed to delete user: %v", err)
	}
	fmt.Printf("Deleted %d users\n", n)

	res, err := users.Select(ctx, sheetdb.Selection{All: true})
	if err != nil {
		log.Fatalf("Failed to select users: %v", err)
	}
	fmt.Print(res.Frame())
}
