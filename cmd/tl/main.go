package main

import (
	"context"
	"fmt"
	"os"

	"task-list/internal/cli"
)

func main() {
	factory := NewSlotFactory(getEnvironment())
	root := cli.NewRootCommand(factory.Open)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
