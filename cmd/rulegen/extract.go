package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rulegen/internal/analyze"
	"rulegen/internal/extract"
	"rulegen/internal/log"
	"rulegen/internal/mapping"
	"rulegen/internal/rules"
)

type extractOptions struct {
	file   string
	output string
	jobs   int
}

func newExtractCmd(a *app) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract conversion rules from a mapping directive file",
		Example: `  # Print the rule set for every operation
  rulegen extract -f mapping.yaml

  # Resolve "returns: auto" and name intersections against Go types
  rulegen extract -f mapping.yaml --packages ./hr,./payroll -o rules.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExtract(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "mapping directive file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "operations extracted concurrently; 0 means unlimited")
	cmd.Flags().StringSlice("packages", nil, "Go package patterns to load type information from")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, opts *extractOptions) error {
	f, err := mapping.LoadFile(opts.file)
	if err != nil {
		return err
	}

	a.applyContentTypes(f)

	ex, err := a.extractor(opts.jobs)
	if err != nil {
		return err
	}

	set, diags, err := ex.ExtractFile(cmd.Context(), f)
	a.reportDiagnostics(diags)

	if err != nil {
		return err
	}

	data, err := rules.MarshalSet(set)
	if err != nil {
		return err
	}

	a.logger.Info("rules extracted", log.Fields{"file": opts.file, "operations": len(set.ConversionRules)})

	return writeOutput(cmd.OutOrStdout(), opts.output, data)
}

// extractor builds an Extractor from the loaded configuration, loading Go
// type information when packages are configured.
func (a *app) extractor(jobs int) (*extract.Extractor, error) {
	graph, err := a.loadGraph()
	if err != nil {
		return nil, err
	}

	return extract.New(extract.Options{
		Classifier:  a.cfg.Classifier(),
		TargetOnly:  a.cfg.TargetOnlyPolicy(),
		MaxDepth:    a.cfg.MaxDepth,
		Graph:       graph,
		Concurrency: jobs,
		Logger:      a.logger,
	}), nil
}

func (a *app) loadGraph() (*analyze.TypeGraph, error) {
	if len(a.cfg.Packages) == 0 {
		return nil, nil
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(a.cfg.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	a.logger.Debug("packages loaded", log.Fields{"patterns": a.cfg.Packages, "types": len(graph.Types)})

	return graph, nil
}

// applyContentTypes fills content types the file leaves empty from config.
func (a *app) applyContentTypes(f *mapping.File) {
	if f.SourceContentType == "" {
		f.SourceContentType = a.cfg.SourceContentType
	}

	if f.TargetContentType == "" {
		f.TargetContentType = a.cfg.TargetContentType
	}
}
