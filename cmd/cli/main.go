package main

import (
	"fmt"
	"os"

	"github.com/de-tools/hours-atlas/pkg/runtime/terminal"
	"github.com/de-tools/hours-atlas/pkg/services/output"
	"github.com/de-tools/hours-atlas/pkg/services/schema"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Schemas: schema.DefaultRegistry(),
		Sinks:   output.DefaultRegistry(),
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
