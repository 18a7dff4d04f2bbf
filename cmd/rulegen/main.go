// Package main provides the CLI entrypoint for rulegen.
//
// rulegen produces hierarchical conversion-rule trees that describe how to
// turn a source data structure into a target one:
//   - extract reads mapping directives from a YAML file
//   - diff and describe compare example JSON/YAML documents
//   - prompt and generate handle free-form definitions through a completion service
//   - fields lists the accessors of Go types
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
