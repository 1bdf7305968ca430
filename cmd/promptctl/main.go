// promptctl inspects and exercises prompt argument schema files without a
// running server. It is a development aid for prompt authors: describe shows
// the catalog view a schema publishes, resolve runs the full default-merge
// and validation pipeline against a raw argument document.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptwell/prompt-server-go/promptargs"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "promptctl",
		Short:         "Inspect and exercise prompt argument schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(describeCmd(), resolveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var verr *promptargs.ValidationError
		if errors.As(err, &verr) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <schema-file>",
		Short: "Print the published argument descriptors for a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := promptargs.ParseSchemaFile(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, schema.Describe())
		},
	}
}

func resolveCmd() *cobra.Command {
	var inputFile string
	cmd := &cobra.Command{
		Use:   "resolve <schema-file>",
		Short: "Resolve a raw argument document against a schema",
		Long: "Resolve merges schema defaults into the raw argument document and " +
			"validates the result, printing the fully-resolved argument object. " +
			"Without --input the document is empty, which shows exactly what a " +
			"caller supplying no arguments would receive.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := promptargs.ParseSchemaFile(args[0])
			if err != nil {
				return err
			}
			raw, err := readInput(inputFile)
			if err != nil {
				return err
			}
			resolved, err := promptargs.Resolve(schema, raw)
			if err != nil {
				return err
			}
			return printJSON(cmd, resolved)
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "JSON file with raw arguments ('-' for stdin)")
	return cmd
}

func readInput(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	return raw, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
