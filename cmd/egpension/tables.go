package main

import (
	"fmt"

	"github.com/rgehrsitz/egpension/internal/authority"
	"github.com/rgehrsitz/egpension/internal/config"
	"github.com/rgehrsitz/egpension/internal/domain"
	"github.com/rgehrsitz/egpension/internal/output"
	"github.com/rgehrsitz/egpension/pkg/dateutil"
	"github.com/spf13/cobra"
)

func tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect the authority tables",
	}
	cmd.AddCommand(tablesCheckCmd())
	cmd.AddCommand(tablesResolveCmd())
	return cmd
}

func tablesCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report missing, unsorted or overlapping tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parser := config.NewInputParser()
			set, err := loadTables(parser)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range set.Names() {
				t, _ := set.Find(name)
				fmt.Fprintf(out, "%-40s %4d rows\n", name, len(t.Data))
			}
			issues := parser.ValidateTables(set)
			if len(issues) == 0 {
				fmt.Fprintln(out, "No issues found")
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(out, "ISSUE: %s\n", issue)
			}
			return fmt.Errorf("%d table issue(s) found", len(issues))
		},
	}
}

func tablesResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [date]",
		Short: "Show the bonus table and minimum pension in force at a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, ok := dateutil.ParseYearMonth(args[0])
			if !ok {
				if target, ok = dateutil.ParseDate(args[0]); !ok {
					return fmt.Errorf("invalid date %q (use YYYY-MM or DD/MM/YYYY)", args[0])
				}
			}
			set, err := loadTables(config.NewInputParser())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date:            %s\n", output.FormatDay(target))
			fmt.Fprintf(out, "Bonus table:     %s\n", authority.ResolveBonusTableName(target, set))
			if t, ok := set.Find(domain.MinimumPensionTableName); ok {
				minimum := authority.ResolveMinimumPension(target, authority.ParseMinimumSchedule(t))
				fmt.Fprintf(out, "Minimum pension: %s\n", output.FormatCurrency(minimum))
			}
			return nil
		},
	}
}
