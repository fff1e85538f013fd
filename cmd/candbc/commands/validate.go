package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Strict  bool
	JSON    bool
	Verbose bool
	Files   []string
}

// ValidationOutput represents the validation result for a file.
type ValidationOutput struct {
	Valid    bool          `json:"valid"`
	Messages int           `json:"messages"`
	Errors   []IssueOutput `json:"errors,omitempty"`
	Warnings []IssueOutput `json:"warnings,omitempty"`
}

// IssueOutput represents a validation issue.
type IssueOutput struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RunValidate parses and checks DBC files. It exits with exitValidation
// when any file fails.
func RunValidate(env Env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("validate", stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `candbc validate - Parse and check DBC files

Usage:
  candbc validate [flags] <file.dbc>...

Flags:`)
		fs.PrintDefaults()
	}
	opts := ValidateOptions{}
	fs.BoolVar(&opts.Strict, "strict", env.config().Strict, "Reject unresolved references and treat warnings as errors")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Show all warnings")

	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	opts.Files = fs.Args()
	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		fs.Usage()
		return exitCommandError
	}

	hasErrors := false
	results := make(map[string]*ValidationOutput)

	for _, file := range opts.Files {
		result := validateFile(env, file, opts)
		results[file] = result

		if !result.Valid {
			hasErrors = true
		}

		if !opts.JSON {
			printValidationResult(stdout, file, result, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if hasErrors {
		return exitValidation
	}
	return exitSuccess
}

func validateFile(env Env, path string, opts ValidateOptions) *ValidationOutput {
	output := &ValidationOutput{Valid: true}

	d, err := env.readDocument(path, opts.Strict)
	if err != nil {
		output.Valid = false
		output.Errors = append(output.Errors, IssueOutput{Code: "PARSE", Message: err.Error()})
		return output
	}
	defer dbc.Destroy(d)

	output.Messages = d.Messages.Len()
	result := dbc.Check(d)
	output.Valid = result.Valid
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, IssueOutput{Code: e.Code, Message: e.Message})
	}
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, IssueOutput{Code: w.Code, Message: w.Message})
	}
	if opts.Strict && len(result.Warnings) > 0 {
		output.Valid = false
	}
	return output
}

func printValidationResult(w io.Writer, file string, result *ValidationOutput, verbose bool) {
	if result.Valid && len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintf(w, "%s: OK\n", file)
		return
	}

	if result.Valid {
		fmt.Fprintf(w, "%s: OK (with %d warnings)\n", file, len(result.Warnings))
	} else {
		fmt.Fprintf(w, "%s: FAILED (%d errors, %d warnings)\n", file, len(result.Errors), len(result.Warnings))
	}

	if verbose || !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  ERROR %s: %s\n", e.Code, e.Message)
		}
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "  WARNING %s: %s\n", warn.Code, warn.Message)
		}
	}
}
