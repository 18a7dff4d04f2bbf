package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rulegen/internal/completion"
	"rulegen/internal/config"
	"rulegen/internal/log"
	"rulegen/internal/mapping"
	"rulegen/internal/prompt"
	"rulegen/internal/rules"
)

type promptOptions struct {
	file       string
	operation  string
	sourceFile string
	output     string
}

func (o *promptOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "mapping directive file")
	cmd.Flags().StringVar(&o.operation, "operation", "", "operation to build the prompt for")
	cmd.Flags().StringVar(&o.sourceFile, "source-file", "", "file holding the definition text; overrides the operation definition")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSlice("packages", nil, "Go package patterns to load type information from")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("operation")
}

func newPromptCmd(a *app) *cobra.Command {
	opts := &promptOptions{}

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the completion prompt for an operation",
		Example: `  rulegen prompt -f mapping.yaml --operation EmployeeToEmployeeDTO --source-file mapper.go`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.promptInput(opts)
			if err != nil {
				return err
			}

			p, err := prompt.Build(in.op, in.summary, in.source, in.contentTypes())
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts.output, []byte(p))
		},
	}

	opts.register(cmd)

	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &promptOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask a completion service for the rule set of an operation",
		Long: `Builds the same prompt as "prompt", sends it to the configured completion
service and prints the rule set it answers with. The answer is validated;
an unusable answer is reported as an error and never replaced.`,
		Example: `  RULEGEN_COMPLETION__API_KEY=... rulegen generate -f mapping.yaml \
    --operation EmployeeToEmployeeDTO --completion-url https://llm.example/v1/chat/completions`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().String("completion-url", "", "completion endpoint URL")
	cmd.Flags().String("completion-model", "", "model name sent to the completion endpoint")
	cmd.Flags().Duration("completion-timeout", config.DefaultCompletionTimeout, "timeout of a single completion request")
	cmd.Flags().Uint("completion-max-retries", config.DefaultMaxRetries, "retries of transient completion failures")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts *promptOptions) error {
	in, err := a.promptInput(opts)
	if err != nil {
		return err
	}

	client, err := completion.New(a.cfg.CompletionClientConfig(), completion.WithLogger(a.logger))
	if err != nil {
		return err
	}

	set, err := prompt.Generate(cmd.Context(), client, in.op, in.summary, in.source, in.contentTypes())
	if err != nil {
		var collabErr *prompt.CollaboratorError
		if errors.As(err, &collabErr) {
			a.logger.Error(collabErr.Err, "completion service gave no usable rule set", log.Fields{"operation": in.op.Name})
		}

		return err
	}

	data, err := rules.MarshalSet(set)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), opts.output, data)
}

type promptRequest struct {
	op      *mapping.Operation
	summary *rules.RuleNode
	source  string

	sourceContentType string
	targetContentType string
}

func (in *promptRequest) contentTypes() prompt.Option {
	return prompt.WithContentTypes(in.sourceContentType, in.targetContentType)
}

// promptInput loads the operation, extracts its directive rules as a summary
// and reads the optional definition source.
func (a *app) promptInput(opts *promptOptions) (*promptRequest, error) {
	f, err := mapping.LoadFile(opts.file)
	if err != nil {
		return nil, err
	}

	a.applyContentTypes(f)

	op, ok := f.Operation(opts.operation)
	if !ok {
		return nil, fmt.Errorf("operation %q not found in %s", opts.operation, opts.file)
	}

	ex, err := a.extractor(1)
	if err != nil {
		return nil, err
	}

	summary, diags, err := ex.Extract(op)
	a.reportDiagnostics(diags)

	if err != nil {
		return nil, err
	}

	in := &promptRequest{
		op:                op,
		summary:           summary,
		sourceContentType: f.SourceContentType,
		targetContentType: f.TargetContentType,
	}

	if opts.sourceFile != "" {
		data, err := os.ReadFile(opts.sourceFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read source file: %w", err)
		}

		in.source = string(data)
	}

	return in, nil
}
