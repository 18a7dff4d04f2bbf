package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"rulegen/internal/rules"
)

func newDescribeCmd(a *app) *cobra.Command {
	var input, selectPath, output string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe a document as a rule tree mapping it onto itself",
		Example: `  rulegen describe --input employee.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, contentType, err := a.readDocument(input, selectPath)
			if err != nil {
				return err
			}

			root, err := a.matcher(filepath.Base(input)).Describe(doc)
			if err != nil {
				return err
			}

			data, err := rules.MarshalSet(rules.NewRuleSet(contentType, contentType, root))
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "example document (JSON or YAML)")
	cmd.Flags().StringVar(&selectPath, "path", "", "gjson path selecting the payload inside a JSON document")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
