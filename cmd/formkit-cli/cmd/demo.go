package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/components/timezones"
	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/snapshot"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func newDemoCommand(a *app) *cobra.Command {
	var (
		rendererName string
		output       string
		format       string
		only         []string
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Fill in a sample signup form",
		Long: `Builds a signup form with every field unit and renders it.

The tui renderer prompts for each field and prints the submitted values;
the snapshot renderer prints the untouched form state as JSON; the vanilla
renderer prints the form as HTML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = a.cfg.Output
			}
			outFormat, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("unknown output format %q", format)
			}

			html, err := vanilla.New()
			if err != nil {
				return err
			}
			registry := render.NewRegistry(
				tui.New(
					tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
					tui.WithOutputFormat(outFormat),
					tui.WithLogger(a.logger),
				),
				snapshot.New(snapshot.WithIndent("  ")),
				html,
			)

			f, err := buildSignupForm(a.cfg, func(_ context.Context, values form.Values) error {
				a.logger.Info("signup submitted", "fields", len(values))
				return nil
			}, form.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), signupTimeout)
			defer cancel()
			payload, err := registry.Render(ctx, rendererName, f, render.RenderOptions{Only: only})
			if err != nil {
				return err
			}
			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return err
			}
			if err := os.WriteFile(output, payload, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "tui", "renderer to use (tui, snapshot, vanilla)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", "", "tui output format (json, form, pretty)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "render only the named fields")
	return cmd
}

// buildSignupForm assembles one of every field unit, tuned by cfg.
func buildSignupForm(cfg config.Config, onSubmit form.SubmitFunc, opts ...form.Option) (*form.Form, error) {
	fields, err := signupFields(cfg)
	if err != nil {
		return nil, err
	}
	f := form.New(onSubmit, append([]form.Option{form.WithHidden("source", "formkit-cli")}, opts...)...)
	if err := attachSignupFields(f, fields); err != nil {
		return nil, err
	}
	return f, nil
}

// attachSignupFields adds fields and the signup button to f. Add is atomic,
// so when it fails f owns none of the fields and they are closed here.
func attachSignupFields(f *form.Form, fields []form.Field) error {
	if err := f.Add(fields...); err != nil {
		closeFields(fields)
		return err
	}
	if err := f.AddButton(field.NewButton(field.ButtonConfig{
		Name:  "signup",
		Label: "Sign up",
		Type:  field.ButtonTypeSubmit,
	})); err != nil {
		f.Close()
		return err
	}
	return nil
}

// signupFields builds the units in display order. Units built before a
// failing constructor are closed.
func signupFields(cfg config.Config) ([]form.Field, error) {
	fields := []form.Field{
		field.NewInput(field.InputConfig{
			Name:  "name",
			Label: "Full name",
			Rules: validation.RuleSet{Required: true, MinLength: 2, MaxLength: 60},
		}, cfg.FieldOptions()...),
		field.NewInput(field.InputConfig{
			Name:  "email",
			Label: "Email",
			Kind:  validation.KindEmail,
			Rules: validation.RuleSet{Required: true},
		}, cfg.FieldOptions()...),
		field.NewPassword(field.PasswordConfig{
			Name:     "password",
			Required: true,
			Policy:   cfg.PasswordPolicy(),
		}, cfg.PasswordOptions()...),
	}

	constructors := []func() (form.Field, error){
		func() (form.Field, error) {
			return field.NewSearchableDropdown(field.SearchableDropdownConfig{
				Name:     "country",
				Label:    "Country",
				Required: true,
				Choices: []field.Choice{
					{Value: "de", Label: "Germany"},
					{Value: "es", Label: "Spain"},
					{Value: "fr", Label: "France"},
					{Value: "it", Label: "Italy"},
					{Value: "us", Label: "United States"},
				},
			}, cfg.SearchOptions()...)
		},
		func() (form.Field, error) {
			return field.NewRadioGroup(field.RadioGroupConfig{
				Name:     "plan",
				Label:    "Plan",
				Value:    "free",
				Required: true,
				Choices: []field.Choice{
					{Value: "free", Label: "Free"},
					{Value: "pro", Label: "Pro"},
				},
			}, cfg.FieldOptions()...)
		},
		func() (form.Field, error) {
			return field.NewDropdown(field.DropdownConfig{
				Name:  "role",
				Label: "Role",
				Choices: []field.Choice{
					{Value: "dev", Label: "Developer"},
					{Value: "ops", Label: "Operations"},
					{Value: "pm", Label: "Product"},
				},
			}, cfg.FieldOptions()...)
		},
		func() (form.Field, error) {
			return timezones.New().NewDropdown(timezones.DropdownConfig{
				Name:  "timezone",
				Value: "UTC",
			}, cfg.SearchOptions()...)
		},
		func() (form.Field, error) {
			return field.NewDatePicker(field.DatePickerConfig{
				Name:  "birthday",
				Label: "Birthday",
			}, cfg.FieldOptions()...)
		},
	}
	for _, build := range constructors {
		fld, err := build()
		if err != nil {
			closeFields(fields)
			return nil, err
		}
		fields = append(fields, fld)
	}

	return append(fields, field.NewFileUpload(field.FileUploadConfig{
		Name:  "avatar",
		Label: "Avatar",
		Rules: cfg.FileRules(false),
	})), nil
}

func closeFields(fields []form.Field) {
	for _, fld := range fields {
		_ = fld.Close()
	}
}

// signupTimeout bounds an interactive demo session.
const signupTimeout = 30 * time.Minute
