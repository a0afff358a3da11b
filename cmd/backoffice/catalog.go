package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gmorais/backoffice/internal/config"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [dir]",
		Short: "Validate a CUE presentation catalog and summarize it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := v.GetString("catalog_dir")
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no catalog directory given")
			}

			catalog, err := config.LoadCatalog(dir)
			if err != nil {
				return err
			}

			color.New(color.Bold, color.FgGreen).Fprintf(cmd.OutOrStdout(), "catalog ok: %d entities\n", len(catalog))

			names := make([]string, 0, len(catalog))
			for name := range catalog {
				names = append(names, name)
			}
			sort.Strings(names)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Entity", "Hidden", "Required", "ReadOnly", "Labels", "Options"})
			for _, name := range names {
				ec := catalog[name]
				t.AppendRow(table.Row{
					name, len(ec.Hidden), len(ec.Required), len(ec.ReadOnly),
					len(ec.Labels), len(ec.Options),
				})
			}
			t.Render()
			return nil
		},
	}
	return cmd
}
