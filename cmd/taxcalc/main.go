package main

import (
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/taxcalc/configs"
	"github.com/rgehrsitz/taxcalc/internal/calculation"
	"github.com/rgehrsitz/taxcalc/internal/config"
	"github.com/rgehrsitz/taxcalc/internal/labels"
	"github.com/rgehrsitz/taxcalc/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what every subcommand needs once settings are resolved
type app struct {
	settings *config.Settings
	logger   *zap.Logger
	store    *config.Store
	catalog  *labels.Catalog
}

var current *app

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "taxcalc",
	Short: "Annual personal income tax calculator",
	Long: "Estimates annual personal income tax across employment, pension, freelance, rental,\n" +
		"agricultural, investment and other income, using one ruleset per filing year.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil && current.logger != nil {
			_ = current.logger.Sync()
		}
	},
}

// flagKeys maps persistent flags to settings keys
var flagKeys = map[string]string{
	"config-dir": config.KeyConfigDir,
	"locale":     config.KeyLocale,
	"format":     config.KeyFormat,
	"log-level":  config.KeyLogLevel,
	"log-format": config.KeyLogFormat,
}

// setup resolves settings (flags over env over settings file over defaults) and builds the
// logger, the year configuration store and the label catalogue
func setup(cmd *cobra.Command, args []string) error {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	settingsFile, _ := cmd.Flags().GetString("settings")
	settings, err := config.LoadSettings(v, settingsFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(settings.Log.Level, settings.Log.Format)
	if err != nil {
		return err
	}

	var years fs.FS = configs.Years
	dir := configs.YearsDir
	if settings.ConfigDir != "" {
		years = os.DirFS(settings.ConfigDir)
		dir = "."
	}

	catalog, err := labels.Default()
	if err != nil {
		return err
	}

	current = &app{
		settings: settings,
		logger:   logger,
		store:    config.NewStore(config.NewFSSource(years, dir), logger.Named("store")),
		catalog:  catalog,
	}
	logger.Debug("settings resolved",
		zap.String("config_dir", settings.ConfigDir),
		zap.String("locale", settings.Locale),
		zap.String("format", settings.Format))
	return nil
}

func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine(a.store, a.catalog.Lookup)
	engine.SetLogger(a.logger.Named("engine"))
	engine.DefaultLocale = a.settings.Locale
	return engine
}

func init() {
	// Amounts are emitted as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	pf := rootCmd.PersistentFlags()
	pf.String("settings", "", "Path to a settings file (yaml, json or toml)")
	pf.String("config-dir", "", "Directory of <year>.yaml configurations (default: built-in years)")
	pf.String("locale", "el", "Label locale (el, en)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log format (console, json)")

	calculateCmd.Flags().StringP("format", "f", "table", "Output format (table, json, csv)")
	calculateCmd.Flags().Int("year", 0, "Override the declaration's filing year")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(yearsCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
