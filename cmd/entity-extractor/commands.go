package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"entity-extractor/internal/analyze"
	"entity-extractor/internal/descriptor"
	"entity-extractor/internal/extract"
	"entity-extractor/internal/schema"
)

func newModuleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "module [patterns...]",
		Short: "Extract entities from Go packages",
		Long: "Extract entities from every exported struct and enum of the Go packages matched by\n" +
			"the given patterns (default ./...).",
		Example: "  entity-extractor module ./... --naming-heuristics --fk-suffix ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer := a.analyzer()

			return a.extract(cmd, analyzer, analyze.ModuleProvider{Analyzer: analyzer, Patterns: args})
		},
	}
}

func newNamespaceCmd(a *app) *cobra.Command {
	var from []string

	cmd := &cobra.Command{
		Use:   "namespace <import-path>",
		Short: "Extract entities from a single Go package",
		Long: "Extract entities from the package with the given import path. The package is searched\n" +
			"among the packages matched by --from and everything they import.",
		Example: "  entity-extractor namespace example.com/shop/store --from ./cmd/...",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer := a.analyzer()
			p := analyze.NamespaceProvider{Analyzer: analyzer, Namespace: args[0], Patterns: from}

			return a.extract(cmd, analyzer, p)
		},
	}

	cmd.Flags().StringSliceVar(&from, "from", nil, "package patterns to search (default ./...)")

	return cmd
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "schema <file>",
		Short:   "Extract entities from a schema file",
		Long:    "Extract entities from a YAML, JSON or TOML schema file.",
		Example: "  entity-extractor schema model.yaml --format yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.extract(cmd, nil, schema.Provider{Path: args[0], Logger: a.logger})
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "describe [patterns...]",
		Short: "Write the type descriptors of Go packages as a schema file",
		Long: "Write the type descriptors of the Go packages matched by the given patterns as a schema\n" +
			"file. The format follows the extension of --out; without --out YAML goes to stdout.",
		Example: "  entity-extractor describe ./store --out model.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			descs, err := a.analyzer().LoadModule(cmd.Context(), args...)
			if err != nil {
				return err
			}

			f := &schema.File{Version: schema.CurrentVersion, Types: descs}

			if out != "" {
				if err := schema.WriteFile(f, out); err != nil {
					return err
				}

				a.logger.Info("wrote schema file", "path", out, "types", len(descs))

				return nil
			}

			data, err := schema.Marshal(f, schema.FormatYAML)
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}

			_, err = a.stdout.Write(data)

			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "schema file to write (.yaml, .yml, .json or .toml)")

	return cmd
}

func (a *app) analyzer() *analyze.Analyzer {
	return analyze.NewAnalyzer(analyze.WithLogger(a.logger))
}

// extract runs the extraction over p and writes the result. Analyzer
// diagnostics are logged when analyzer is set.
func (a *app) extract(cmd *cobra.Command, analyzer *analyze.Analyzer, p descriptor.Provider) error {
	res, err := extract.FromProvider(cmd.Context(), p, a.cfg.ExtractOptions())
	if err != nil {
		return err
	}

	if analyzer != nil {
		diags := analyzer.Diagnostics()
		for _, d := range diags.All() {
			a.logger.Debug(d.Message, "code", d.Code, "type", d.TypeName, "path", d.Path)
		}
	}

	return a.write(res)
}
