// Package cmd implements the dkimcheck CLI: a one-shot DKIM key length check
// as the root command, selector probing, and an HTTP serve mode.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theopenlane/dkimcheck/internal/dkim"
)

// appName is the name of the application used in CLI usage output
const appName = "dkimcheck"

// defaultTimeoutSeconds is the default DNS resolution timeout for one-shot checks
const defaultTimeoutSeconds = 4.0

// k is the global koanf instance used for configuration and flag management
var k *koanf.Koanf

// rootCmd resolves a selector/domain pair and reports the DKIM key length
var rootCmd = &cobra.Command{
	Use:   appName + " <selector> <domain>",
	Short: "check the published DKIM public key length for a selector/domain pair",
	Args:  cobra.ExactArgs(2),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		err := initCmdFlags(cmd)
		cobra.CheckErr(err)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		return check(cmd.Context(), args[0], args[1])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// init initializes the koanf instance and registers flags on the root command
func init() {
	k = koanf.New(".")
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().Bool("pretty", false, "enable pretty (human readable) logging output")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging output")

	rootCmd.Flags().StringP("nameserver", "n", "", "nameserver IP to query instead of the system resolver")
	rootCmd.Flags().Float64("timeout", defaultTimeoutSeconds, "DNS resolution timeout in seconds")
	rootCmd.Flags().String("output", outputText, "output encoding (text or json)")
}

// initConfig reads in flags set for command startup
func initConfig() {
	if err := initCmdFlags(rootCmd); err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	setupLogging()
}

// initCmdFlags loads the flags from the command line into the koanf instance
func initCmdFlags(cmd *cobra.Command) error {
	return k.Load(posflag.Provider(cmd.Flags(), k.Delim(), k), nil)
}

// setupLogging configures zerolog based on the debug and pretty flags
func setupLogging() {
	level := zerolog.InfoLevel
	debug := k.Bool("debug")

	if debug {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	if k.Bool("pretty") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// check runs the one-shot key length check and renders the result in the
// selected output encoding; any failure is rendered once and exits 1
func check(ctx context.Context, selector, domain string) error {
	format := k.String("output")
	if format != outputText && format != outputJSON {
		err := fmt.Errorf("%w: %s", errUnknownOutputFormat, format)
		renderError(os.Stderr, outputText, err)

		return err
	}

	checker := dkim.NewChecker(checkerOptions()...)

	report, err := checker.Check(ctx, selector, domain)
	if err != nil {
		renderError(os.Stderr, format, err)
		return err
	}

	return renderReport(os.Stdout, format, report)
}

// checkerOptions builds checker options from the root command flags
func checkerOptions() []dkim.CheckerOption {
	timeout := time.Duration(k.Float64("timeout") * float64(time.Second))

	opts := []dkim.CheckerOption{dkim.WithTimeout(timeout)}

	if ns := k.String("nameserver"); ns != "" {
		opts = append(opts, dkim.WithNameserver(ns))
	}

	return opts
}
