package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"drivedash/config"
	"drivedash/jobs"
	"drivedash/metrics"
	"drivedash/routes"
	"drivedash/utils"

	"go.uber.org/zap"
)

func main() {
	// .env is loaded before the configuration so it can fill the environment.
	envPath, envErr := config.LoadEnvFile()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "drivedash: %v\n", err)
		os.Exit(2)
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "drivedash: init logger: %v\n", err)
		os.Exit(2)
	}
	defer utils.SyncLogger()

	switch {
	case envErr != nil:
		utils.LogWarning("could not load .env file", zap.Error(envErr))
	case envPath != "":
		utils.LogDebug("loaded environment", zap.String("path", envPath))
	default:
		utils.LogDebug("no .env file found, using process environment")
	}
	utils.LogDebug("configuration loaded", cfg.Fields()...)

	container, err := routes.NewServiceContainer(cfg, os.Stdout)
	if err != nil {
		utils.LogError("failed to initialize services", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		go func() {
			utils.LogInfo("serving metrics", zap.String("addr", cfg.MetricsAddr))
			if err := metrics.Serve(cfg.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				utils.LogError("metrics server stopped", err)
			}
		}()
	}

	watcher := jobs.NewSessionWatcher(container.Auth, cfg.SessionCheckInterval, func() {
		container.Notices.Error("Your session has expired. Sign in again with `login <token>`.")
	})
	watcher.Start(ctx)

	// One-shot mode: `drivedash ls`, `drivedash upload a.txt` ...
	if args := os.Args[1:]; len(args) > 0 {
		if needsListing(args[0]) {
			// Items are referenced by their position in the listing.
			_ = container.Dashboard.Refresh(ctx)
		}
		if err := routes.Execute(ctx, container, args); err != nil {
			if !routes.Notified(err) {
				fmt.Fprintf(os.Stderr, "drivedash: %v\n", err)
			}
			os.Exit(1)
		}
		return
	}

	if err := routes.Execute(ctx, container, []string{"ls"}); err != nil {
		utils.LogDebug("initial listing failed", zap.Error(err))
	}
	if err := routes.RunShell(ctx, container, os.Stdin); err != nil {
		utils.LogError("shell stopped", err)
		os.Exit(1)
	}
}

func needsListing(command string) bool {
	switch command {
	case "ls", "refresh", "login", "logout", "whoami", "help", "search", "shared", "upload", "mkdir", "-h", "--help":
		return false
	}
	return true
}
