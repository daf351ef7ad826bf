package cmd

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// errInvalid signals a failed check after the messages were printed.
var errInvalid = errors.New("value is invalid")

func newCheckCommand(a *app) *cobra.Command {
	var (
		kind     string
		required bool
		minLen   int
		maxLen   int
		pattern  string
		isFile   bool
	)
	cmd := &cobra.Command{
		Use:   "check [flags] VALUE",
		Short: "Validate a single value, password or file",
		Long: `Runs the same checks a field unit runs after blur.

Text, email and number kinds report the first failing rule. The password
kind reports every strength violation. With --file the argument is a path
and the configured upload rules apply.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			out := cmd.OutOrStdout()

			if isFile {
				return checkFile(out, value, a.cfg.FileRules(required))
			}

			fieldKind, err := validation.ParseKind(kind)
			if err != nil {
				return err
			}
			if fieldKind == validation.KindPassword {
				report := validation.CheckPassword(value, required, a.cfg.PasswordPolicy())
				return printMessages(out, report.Messages())
			}

			rules := validation.RuleSet{Required: required, MinLength: minLen, MaxLength: maxLen}
			if pattern != "" {
				re, err := regexp.Compile(pattern)
				if err != nil {
					return fmt.Errorf("compile pattern: %w", err)
				}
				rules.Pattern = re
			}
			if issue, ok := validation.Validate(value, rules, fieldKind); !ok {
				return printMessages(out, []string{issue.Message})
			}
			if issue, ok := validation.MatchPattern(value, rules, fieldKind); !ok {
				return printMessages(out, []string{issue.Message})
			}
			return printMessages(out, nil)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&kind, "kind", "k", "text", "field kind (text, email, number, password)")
	flags.BoolVar(&required, "required", false, "treat blank values as missing")
	flags.IntVar(&minLen, "min", 0, "minimum length in characters")
	flags.IntVar(&maxLen, "max", 0, "maximum length in characters")
	flags.StringVar(&pattern, "pattern", "", "regular expression the value must match")
	flags.BoolVar(&isFile, "file", false, "treat the argument as a file path")
	return cmd
}

func checkFile(out io.Writer, path string, rules validation.FileRules) error {
	var file *validation.File
	if path != "" {
		f, err := validation.FileFromPath(path)
		if err != nil {
			return err
		}
		file = f
	}
	if issue, ok := validation.CheckFile(file, rules); !ok {
		return printMessages(out, []string{issue.Message})
	}
	return printMessages(out, nil)
}

func printMessages(out io.Writer, messages []string) error {
	if len(messages) == 0 {
		fmt.Fprintln(out, "✓ valid")
		return nil
	}
	for _, msg := range messages {
		fmt.Fprintf(out, "✗ %s\n", msg)
	}
	return errInvalid
}
