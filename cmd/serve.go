package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theopenlane/dkimcheck/config"
	"github.com/theopenlane/dkimcheck/internal/api"
	"github.com/theopenlane/dkimcheck/internal/dkim"
	"github.com/theopenlane/dkimcheck/internal/slack"
)

// serveCmd is the cobra command that starts the dkimcheck API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the dkimcheck api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command and its flags on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
}

// serve initializes dependencies and starts the dkimcheck API server
func serve(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Server.Debug = k.Bool("debug")
	cfg.Server.Pretty = k.Bool("pretty")

	checker := dkim.NewChecker(resolverOptions(cfg.Resolver)...)
	slackClient := setupSlack(cfg)

	routerCfg := api.RouterConfig{
		Checker:        checker,
		NotifyWeakKeys: cfg.Slack.NotifyWeakKeys,
		MaxBodySize:    cfg.Server.MaxBodySize,
		CheckTimeout:   cfg.Server.CheckTimeout,
	}

	if slackClient != nil {
		routerCfg.Notifier = slackClient
	}

	handler := api.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Msg("starting dkimcheck service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// resolverOptions builds checker options from resolver config
func resolverOptions(rc config.Resolver) []dkim.CheckerOption {
	opts := []dkim.CheckerOption{dkim.WithTimeout(rc.Timeout)}

	if rc.Nameserver != "" {
		opts = append(opts, dkim.WithNameserver(rc.Nameserver))
	}

	return opts
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.Slack.WebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.Slack.WebhookURL,
		slack.WithHTTPClient(&http.Client{Timeout: cfg.Slack.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}
