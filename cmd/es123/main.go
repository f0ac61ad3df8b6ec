package main

import (
	"fmt"
	"os"

	"github.com/psantana5/es123/cmd/es123/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cmd.ExitCode(err))
}
