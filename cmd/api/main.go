package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/uplift/internal/auth"
	"github.com/justsurfingit/uplift/internal/config"
	"github.com/justsurfingit/uplift/internal/database"
	"github.com/justsurfingit/uplift/internal/handlers"
	"github.com/justsurfingit/uplift/internal/logging"
	"github.com/justsurfingit/uplift/internal/models"
	"github.com/justsurfingit/uplift/internal/repository"
	"github.com/justsurfingit/uplift/internal/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "uplift",
		Short:        "Uplift job discovery API",
		SilenceUsage: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v)
		},
	}
	serve.Flags().String("addr", "", "listen address (overrides HTTP_LISTEN_ADDR)")
	serve.Flags().String("log-level", "", "log level (overrides LOG_LEVEL)")
	serve.Flags().Bool("no-inbox", false, "do not start the Gmail inbox importer")
	_ = v.BindPFlag("http_listen_addr", serve.Flags().Lookup("addr"))
	_ = v.BindPFlag("log_level", serve.Flags().Lookup("log-level"))
	_ = v.BindPFlag("no_inbox", serve.Flags().Lookup("no-inbox"))

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	root.AddCommand(serve, versionCmd)
	return root
}

func runServe(parent context.Context, v *viper.Viper) error {
	// 1. Load configuration
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	// 2. Logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Listing storage: Postgres when configured, memory otherwise
	var repo repository.JobRepository
	if cfg.DatabaseDSN != "" {
		db, err := database.Connect(cfg.DatabaseDSN, logger)
		if err != nil {
			return err
		}
		repo = repository.NewGormJobRepository(db)
	} else {
		logger.Info("DATABASE_DSN not set, listings are kept in memory")
		repo = repository.NewMemoryJobRepository(models.SeedJobs(time.Now()))
	}

	// 4. Initialize Core Services
	accountService := services.NewAccountService(repo, logger)
	if cfg.SeedDemoAccount {
		if err := accountService.SeedDemo(cfg.DemoPassword); err != nil {
			return fmt.Errorf("seed demo account: %w", err)
		}
	}
	listingService := services.NewListingService(repo, accountService, logger)

	llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		return err
	}
	skillService, err := services.NewSkillService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		return err
	}

	// 5. Handlers & Router
	gin.SetMode(gin.ReleaseMode)
	router, err := handlers.NewRouter(handlers.RouterConfig{
		Jobs:         handlers.NewJobHandler(listingService, accountService, skillService, llmService),
		Accounts:     handlers.NewAccountHandler(accountService, listingService),
		Logger:       logger,
		CORSAllowAll: cfg.CORSAllowAll,
	})
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              cfg.HTTPListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// 6. Inbox importer (optional)
	if cfg.InboxEnabled() && !v.GetBool("no_inbox") {
		if !cfg.AIEnabled() {
			logger.Warn("Inbox importer needs GEMINI_API_KEY, not starting it")
		} else {
			gmailService, err := auth.NewGmailService(ctx, cfg.GmailCredentialsFile, cfg.GmailTokenFile, os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			inbox := services.NewGmailInbox(gmailService, cfg.InboxQuery, logger)
			emailService := services.NewEmailService(inbox, llmService, listingService, logger)
			g.Go(func() error {
				return emailService.RunWatcher(gctx, cfg.InboxSchedule)
			})
		}
	}

	// 7. HTTP server
	g.Go(func() error {
		logger.Info("Server starting", zap.String("addr", cfg.HTTPListenAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
