package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gmorais/backoffice/internal/config"
	"github.com/gmorais/backoffice/internal/schema"
	"github.com/gmorais/backoffice/internal/store"
)

func schemaCmd() *cobra.Command {
	var samplePath string
	var entity string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Infer and print the presentation schema for a sample record",
		Long: `Reads one JSON record (from --sample or stdin) and prints the table
columns and form fields that would be inferred for it, including the
catalog tuning when --catalog is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSample(samplePath)
			if err != nil {
				return err
			}
			rec := store.NewRecord()
			if err := rec.UnmarshalJSON(raw); err != nil {
				return fmt.Errorf("parse sample: %w", err)
			}

			var ec config.EntityConfig
			if dir := v.GetString("catalog_dir"); dir != "" {
				catalog, err := config.LoadCatalog(dir)
				if err != nil {
					return err
				}
				ec = catalog.Entity(entity)
			}

			printColumns(cmd.OutOrStdout(), rec, ec)
			printForm(cmd.OutOrStdout(), rec, ec)
			return nil
		},
	}
	cmd.Flags().StringVar(&samplePath, "sample", "-", "path to a sample JSON record, - for stdin")
	cmd.Flags().StringVar(&entity, "entity", "", "entity name for catalog lookup")
	return cmd
}

func readSample(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printColumns(out io.Writer, rec *store.Record, ec config.EntityConfig) {
	color.New(color.Bold, color.FgCyan).Fprintln(out, "Columns")

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Key", "Label", "Type", "Width", "Required", "Rendered"})
	for _, col := range schema.Compose([]*store.Record{rec}, ec.ColumnConfig()) {
		value, _ := rec.Get(col.Key)
		t.AppendRow(table.Row{
			col.Key, col.Label, col.Type.String(), col.Width, col.Required,
			col.Render(value, rec),
		})
	}
	t.Render()
}

func printForm(out io.Writer, rec *store.Record, ec config.EntityConfig) {
	color.New(color.Bold, color.FgCyan).Fprintln(out, "Form")

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Name", "Label", "Input", "Required", "ReadOnly", "Options"})
	for _, f := range schema.BuildForm(rec, ec.FormConfig()) {
		t.AppendRow(table.Row{
			f.Name, f.Label, string(f.Type), f.Required, f.ReadOnly, len(f.Options),
		})
	}
	t.Render()
}
