package main

import (
	"fmt"
	"os"

	"github.com/andy/rebancariza/internal/cli"
)

func main() {
	// The app itself is opened by the root command, so help and completion
	// never prompt for the database key.
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
