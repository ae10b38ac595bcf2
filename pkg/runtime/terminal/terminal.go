package terminal

import (
	"io"
	"os"

	"github.com/de-tools/hours-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/hours-atlas/pkg/services/output"
	"github.com/de-tools/hours-atlas/pkg/services/schema"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	schemas  schema.Registry
	sinks    output.Registry
	reporter *Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Schemas schema.Registry
	Sinks   output.Registry
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Schemas == nil {
		opts.Schemas = schema.DefaultRegistry()
	}
	if opts.Sinks == nil {
		opts.Sinks = output.DefaultRegistry()
	}

	cli := &CLI{
		schemas:  opts.Schemas,
		sinks:    opts.Sinks,
		reporter: NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides the command line arguments, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "recon",
		Short:         "Timesheet reconciliation between payroll and HR exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewRunCmd(cli.schemas, cli.sinks, cli.reporter))
	cmd.AddCommand(commands.NewSchemaCmd(cli.schemas))
	cmd.AddCommand(commands.NewWorkdaysCmd())

	return cmd
}
