package main

import (
	"fmt"
	"os"

	"edgeframe/internal/cli"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	root := cli.NewRootCommand()
	root.SetArgs(args)
	return root.Execute()
}
