package commands

import (
	"fmt"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/services/schema"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

type SchemaCmd struct {
	registry schema.Registry
}

func NewSchemaCmd(registry schema.Registry) *cobra.Command {
	sc := &SchemaCmd{registry: registry}
	return &cobra.Command{
		Use:   "schema [source]",
		Short: "Print the registered source schemas as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sc.run,
	}
}

func (sc *SchemaCmd) run(cmd *cobra.Command, args []string) error {
	sources := sc.registry.ListSources()
	if len(args) == 1 {
		sources = []domain.SourceID{domain.SourceID(args[0])}
	}

	schemas := make([]schema.Schema, 0, len(sources))
	for _, source := range sources {
		s, err := sc.registry.Get(source)
		if err != nil {
			return err
		}
		schemas = append(schemas, s)
	}

	data, err := yaml.MarshalWithOptions(schemas, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to encode schemas: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
