package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"schemaui/db"
	"schemaui/domain"
)

const seedRowsPerTable = 100

func main() {
	if len(os.Args) < 2 {
		log.Fatalln("Usage: ./componentctl <schema.sql> [connection_string]")
	}
	filename := os.Args[1]

	source, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("os.ReadFile: %s", err.Error())
	}

	result, err := domain.Process(string(source))
	if err != nil {
		log.Fatalf("domain.Process: %s", err.Error())
	}

	for _, table := range result.Catalog.Tables() {
		fmt.Printf("table %s\n", table.Name)
		for _, column := range table.Columns {
			fmt.Printf("  %s %s\n", column.Name, column.Family)
		}
	}
	for _, component := range result.Registry.List() {
		bound := "unbound"
		if component.Table != nil {
			bound = component.Table.Name
		}
		fmt.Printf("component %s (table %s, %d placeholders)\n",
			component.Name, bound, len(component.Placeholders))
	}
	for _, warning := range result.Warnings {
		log.Printf("warning: %s", warning)
	}

	if len(os.Args) < 3 {
		return
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, os.Args[2])
	if err != nil {
		log.Fatalf("db.Connect: %s", err.Error())
	}
	defer pool.Close()

	if err := db.ApplySchema(ctx, pool, result); err != nil {
		log.Fatalf("db.ApplySchema: %s", err.Error())
	}
	if err := db.Seed(ctx, pool, result.Catalog, seedRowsPerTable); err != nil {
		log.Fatalf("db.Seed: %s", err.Error())
	}

	log.Println("Successfully applied schema and seeded data!")
}
