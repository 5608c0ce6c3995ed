package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"relaykit/courier/pkg/cli"
	"relaykit/courier/pkg/config"
)

var validateFlags struct {
	format string
	env    bool
}

// validationResult is the output shape of the validate command.
type validationResult struct {
	File   string            `json:"file"`
	Valid  bool              `json:"valid"`
	Errors []validationIssue `json:"errors,omitempty"`
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply defaults, and check every field.

All problems are collected and reported together rather than stopping at
the first one, so a broken file can be fixed in a single pass.

Examples:
  # Validate the default config file
  courier validate

  # Validate a specific file
  courier validate --config /etc/courier/config.yaml

  # Include environment variable overrides in the check
  courier validate --env

  # Machine-readable report
  courier validate --format json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().BoolVar(&validateFlags.env, "env", false, "apply environment variable overrides before validating")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	result := checkConfigFile(cfgFile, validateFlags.env)

	formatter := cli.NewFormatter(cli.OutputFormat(validateFlags.format))

	if validateFlags.format == "json" {
		if err := formatter.FormatTo(os.Stdout, result); err != nil {
			return cli.NewCommandError("validate", err)
		}
	} else {
		printValidationResult(result)
	}

	if !result.Valid {
		return fmt.Errorf("configuration is invalid")
	}
	return nil
}

// checkConfigFile loads and validates one configuration file, collecting
// every field error into the result.
func checkConfigFile(path string, withEnv bool) validationResult {
	result := validationResult{File: path}

	var err error
	if withEnv {
		_, err = config.LoadConfigWithEnvOverrides(path)
	} else {
		_, err = config.LoadConfig(path)
	}

	if err == nil {
		result.Valid = true
		return result
	}

	var validationErr config.ValidationError
	if errors.As(err, &validationErr) {
		for _, fieldErr := range validationErr.Errors {
			result.Errors = append(result.Errors, validationIssue{
				Field:   fieldErr.Field,
				Message: fieldErr.Message,
			})
		}
		return result
	}

	// Not a field-level problem: unreadable file, malformed YAML.
	result.Errors = append(result.Errors, validationIssue{Message: err.Error()})
	return result
}

func printValidationResult(result validationResult) {
	fmt.Printf("Validating %s\n", result.File)
	fmt.Println()

	if result.Valid {
		fmt.Println("✓ Configuration valid")
		return
	}

	fmt.Printf("✗ Configuration invalid (%d error(s)):\n", len(result.Errors))
	for _, issue := range result.Errors {
		if issue.Field != "" {
			fmt.Printf("  - %s: %s\n", issue.Field, issue.Message)
		} else {
			fmt.Printf("  - %s\n", issue.Message)
		}
	}
}
