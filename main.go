package main

import (
	"context"
	"os"

	"github.com/malvarino/mathcli/cmd"
)

// main is the entry point for mathcli. All command-line parsing,
// configuration and execution happens in the cmd package.
//
// Signals keep their default disposition. The run has no cancellation
// semantics, and intercepting SIGINT would leave a run blocked on a quiet
// input source hanging instead of terminating.
func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
