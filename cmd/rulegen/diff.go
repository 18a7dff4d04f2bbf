package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rulegen/internal/document"
	"rulegen/internal/rules"
	"rulegen/internal/schemadiff"
)

type diffOptions struct {
	source     string
	target     string
	sourcePath string
	targetPath string
	output     string
}

func newDiffCmd(a *app) *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Derive conversion rules by comparing a source and a target example document",
		Example: `  # Rules turning one JSON example into another
  rulegen diff --source employee.json --target dto.json

  # Compare the payloads nested inside API envelopes
  rulegen diff --source a.json --source-path data --target b.yaml --fuzzy-threshold 0.8`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDiff(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "source example document (JSON or YAML)")
	cmd.Flags().StringVar(&opts.target, "target", "", "target example document (JSON or YAML)")
	cmd.Flags().StringVar(&opts.sourcePath, "source-path", "", "gjson path selecting the source payload inside a JSON document")
	cmd.Flags().StringVar(&opts.targetPath, "target-path", "", "gjson path selecting the target payload inside a JSON document")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (a *app) runDiff(cmd *cobra.Command, opts *diffOptions) error {
	source, sourceCT, err := a.readDocument(opts.source, opts.sourcePath)
	if err != nil {
		return err
	}

	target, targetCT, err := a.readDocument(opts.target, opts.targetPath)
	if err != nil {
		return err
	}

	m := a.matcher(filepath.Base(opts.source) + " -> " + filepath.Base(opts.target))

	root, diags, err := m.Match(source, target)
	a.reportDiagnostics(diags)

	if err != nil {
		return err
	}

	data, err := rules.MarshalSet(rules.NewRuleSet(sourceCT, targetCT, root))
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), opts.output, data)
}

func (a *app) matcher(name string) *schemadiff.Matcher {
	return schemadiff.New(schemadiff.Options{
		FuzzyThreshold: a.cfg.FuzzyThreshold,
		MaxDepth:       a.cfg.MaxDepth,
		Name:           name,
		Logger:         a.logger,
	})
}

// readDocument parses an example document, optionally narrowed to the
// sub-document at a gjson path.
func (a *app) readDocument(path, selectPath string) (*document.Node, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read document: %w", err)
	}

	contentType := document.DetectContentType(path)

	if selectPath != "" {
		if contentType != document.ContentTypeJSON {
			return nil, "", fmt.Errorf("%s: selecting a sub-document requires JSON input", path)
		}

		if data, err = document.Select(data, selectPath); err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
	}

	doc, err := document.Parse(data, contentType, document.WithMaxDepth(a.cfg.MaxDepth))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	return doc, contentType, nil
}
