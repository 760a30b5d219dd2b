package main

import (
	"fmt"
	"os"
)

// Operational scripts, dispatched by subcommand:
//
//	go run ./scripts migrate       apply pending database migrations
//	go run ./scripts test-leaders  seed test pod leaders and print their tokens
func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "migrate":
		runMigrations()
	case "test-leaders":
		createTestLeaders()
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: go run ./scripts <migrate|test-leaders>")
	os.Exit(2)
}
