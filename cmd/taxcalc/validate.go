package main

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/taxcalc/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [years...]",
	Short: "Load and validate year configurations",
	Long:  "Loads each year configuration and checks its structure. With no arguments every available year is checked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := yearsToCheck(args)
		if err != nil {
			return err
		}

		failed := 0
		for _, year := range years {
			yc, err := current.store.Load(cmd.Context(), year)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%d: INVALID: %v\n", year, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d: ok (%s, %d categories)\n", year, yc.Status, len(yc.Categories))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d year configurations failed validation", failed, len(years))
		}
		return nil
	},
}

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List the available filing years",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := current.store.Years()
		if err != nil {
			return err
		}
		for _, year := range years {
			status := "unknown"
			if yc, err := current.store.Load(cmd.Context(), year); err == nil {
				status = string(yc.Status)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", year, status)
		}
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <from-year> <to-year>",
	Short: "Show the rule values that changed between two years",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := yearsToCheck(args)
		if err != nil {
			return err
		}
		from, err := current.store.Load(cmd.Context(), years[0])
		if err != nil {
			return userError(err)
		}
		to, err := current.store.Load(cmd.Context(), years[1])
		if err != nil {
			return userError(err)
		}

		changes := config.DiffYears(from, to)
		if len(changes) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d and %d have identical rules\n", years[0], years[1])
			return nil
		}
		for _, c := range changes {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func yearsToCheck(args []string) ([]int, error) {
	if len(args) == 0 {
		return current.store.Years()
	}
	years := make([]int, 0, len(args))
	for _, a := range args {
		year, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", a)
		}
		years = append(years, year)
	}
	return years, nil
}
