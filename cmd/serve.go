package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-evaluator/internal/logger"
	"github.com/spigell/resume-evaluator/internal/pipeline"
	"github.com/spigell/resume-evaluator/internal/server"
	"github.com/spigell/resume-evaluator/internal/store"
)

const (
	defaultListenAddr   = ":8080"
	shutdownGracePeriod = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation pipeline over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default "+defaultListenAddr+")")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client, err := newClient(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building provider client", zap.Error(err))
	}

	p := pipeline.New(client, logger, pipeline.Config{
		MaxAttempts:  config.AI.MaxAttempts,
		BaseBackoff:  config.AI.BaseBackoff,
		MaxLogLength: config.AI.MaxLogLength,
	})

	var history server.History
	if config.Store != nil && config.Store.Path != "" {
		db, err := store.Open(config.Store.Path)
		if err != nil {
			logger.Fatal("opening history store", zap.Error(err))
		}
		defer db.Close()

		history = db
		logger.Info("evaluation history enabled", zap.String("db", config.Store.Path))
	}

	addr := viper.GetString("server.listen")
	if addr == "" && config.Server != nil {
		addr = config.Server.Listen
	}
	if addr == "" {
		addr = defaultListenAddr
	}

	srv := server.New(p, history, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr)
	}()

	logger.Info("serving", zap.String("addr", addr), zap.String("version", version))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down", zap.Duration("grace_period", shutdownGracePeriod))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Fatal("shutdown failed", zap.Error(err))
		}
	}
}
