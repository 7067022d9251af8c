package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcalc/internal/config"
	"github.com/rgehrsitz/taxcalc/internal/domain"
	"github.com/rgehrsitz/taxcalc/internal/output"
	"github.com/spf13/cobra"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate [declaration-file]",
	Short: "Calculate the tax for an income declaration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decl, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if year, _ := cmd.Flags().GetInt("year"); year > 0 {
			decl.Year = year
		}

		formatter := output.GetFormatterByName(current.settings.Format)
		if formatter == nil {
			return fmt.Errorf("unknown format %q (available: %s)",
				current.settings.Format, strings.Join(output.FormatterNames(), ", "))
		}

		result, err := current.engine().Calculate(cmd.Context(), decl)
		if err != nil {
			return userError(err)
		}

		data, err := formatter.Format(result)
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// userError turns typed calculation failures into messages for the person at the terminal.
// Configuration faults carry operator detail that has already been logged.
func userError(err error) error {
	var calcErr *domain.CalcError
	switch {
	case errors.Is(err, domain.ErrConfigNotFound) && errors.As(err, &calcErr):
		return fmt.Errorf("tax year %d is not supported", calcErr.Year)
	case errors.Is(err, domain.ErrCategoryUnsupported) && errors.As(err, &calcErr):
		return fmt.Errorf("%s income cannot be calculated for %d", calcErr.Category, calcErr.Year)
	case errors.Is(err, domain.ErrConfigInvalid):
		return fmt.Errorf("the tax rules for this year could not be applied; see the log for details")
	}
	return err
}
