package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rgehrsitz/egpension/internal/calculation"
	"github.com/rgehrsitz/egpension/internal/config"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/internal/output"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var formatExtensions = map[string]string{
	"console":        "txt",
	"console-lite":   "txt",
	"json":           "json",
	"csv":            "csv",
	"settlement-csv": "csv",
	"html":           "html",
}

func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(slogLogger{})
	engine.Debug = viper.GetBool("calculation.debug")
	return engine
}

func loadTables(parser *config.InputParser) (*domain.TableSet, error) {
	path := config.ExpandPath(viper.GetString("tables.path"))
	set, err := parser.LoadTablesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading authority tables: %w", err)
	}
	for _, issue := range parser.ValidateTables(set) {
		slog.Warn("table issue", "issue", issue)
	}
	slog.Debug("loaded authority tables", "path", path, "tables", len(set.Tables))
	return set, nil
}

// loadInputs reads the tables and the form, applying the configured
// calculation.as_of when the form has no calculation date.
func loadInputs(formPath string) (*domain.InsuranceDuesFormData, *domain.TableSet, error) {
	parser := config.NewInputParser()
	set, err := loadTables(parser)
	if err != nil {
		return nil, nil, err
	}
	form, err := parser.LoadFormFromFile(formPath)
	if err != nil {
		return nil, nil, err
	}
	if form.CalculationDate == "" {
		form.CalculationDate = viper.GetString("calculation.as_of")
	}
	return form, set, nil
}

// emit renders report with the named formatter to stdout, or to a
// timestamped file when save is set.
func emit(cmd *cobra.Command, report *output.Report, format string, save bool) error {
	if format == "" {
		format = viper.GetString("output.format")
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (available: %s)", format,
			strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if save {
		filename, err := output.WriteFormatted(f, report, formatExtensions[f.Name()])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func calculateCmd() *cobra.Command {
	var (
		format string
		asOf   string
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "calculate [form-file]",
		Short: "Settle the dues described by a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, set, err := loadInputs(args[0])
			if err != nil {
				return err
			}
			if asOf != "" {
				form.CalculationDate = asOf
			}
			engine := newEngine()
			res, err := engine.Calculate(form, set)
			if err != nil {
				return err
			}
			data, err := engine.ProgressionForForm(form, set)
			if err != nil {
				return err
			}
			return emit(cmd, output.BuildReport(form, data, res), format, save)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVar(&asOf, "as-of", "", "calculation month YYYY-MM (overrides the form)")
	cmd.Flags().BoolVar(&save, "save", false, "write the report to a timestamped file")
	return cmd
}

func progressionCmd() *cobra.Command {
	var (
		format string
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "progression [form-file]",
		Short: "Show the pension progression for a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, set, err := loadInputs(args[0])
			if err != nil {
				return err
			}
			data, err := newEngine().ProgressionForForm(form, set)
			if err != nil {
				return err
			}
			return emit(cmd, output.BuildReport(form, data, nil), format, save)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().BoolVar(&save, "save", false, "write the report to a timestamped file")
	return cmd
}

func pensionAtCmd() *cobra.Command {
	var exceptional bool
	cmd := &cobra.Command{
		Use:   "pension-at [form-file] [date]",
		Short: "Show the pension in force at a date (YYYY-MM or DD/MM/YYYY)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, ok := dateutil.ParseYearMonth(args[1])
			if !ok {
				if target, ok = dateutil.ParseDate(args[1]); !ok {
					return fmt.Errorf("invalid date %q (use YYYY-MM or DD/MM/YYYY)", args[1])
				}
			}
			form, set, err := loadInputs(args[0])
			if err != nil {
				return err
			}
			data, err := newEngine().ProgressionForForm(form, set)
			if err != nil {
				return err
			}
			pension := calculation.PensionAt(target, data, exceptional)
			fmt.Fprintf(cmd.OutOrStdout(), "Pension at %s: %s\n", output.FormatMonth(target), output.FormatCurrency(pension))
			return nil
		},
	}
	cmd.Flags().BoolVar(&exceptional, "exceptional", false, "include exceptional grants")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [form-file]",
		Short: "Validate a form without calculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			form, err := parser.LoadFormFromFile(args[0])
			if err != nil {
				return err
			}
			if err := calculation.NewCalculationEngine().ValidateForm(form); err != nil {
				return fmt.Errorf("form is invalid: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form is valid: %s, %s dues\n", form.LawType.DisplayName(), form.DuesType)
			return nil
		},
	}
}
