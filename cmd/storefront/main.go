package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/notifications"
	"github.com/angelmondragon/shopfront/internal/storefront"
	"github.com/angelmondragon/shopfront/internal/tui"
	"github.com/angelmondragon/shopfront/pkg/config"
	"github.com/angelmondragon/shopfront/pkg/instance"
	"github.com/angelmondragon/shopfront/pkg/logger"
	"github.com/angelmondragon/shopfront/pkg/storeapi"
)

const serviceName = "storefront"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

// run keeps logs in a file so they do not paint over the terminal UI.
func run(cfg *config.Config) (err error) {
	logFile, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, logFile.Close())
	}()

	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
		Output:      logFile,
	})

	machine, err := catalog.NewMachine(catalog.MachineParams{
		Source: storeapi.NewClient(
			storeapi.WithBaseURL(cfg.Catalog.BaseURL),
			storeapi.WithTimeout(cfg.Catalog.Timeout),
		),
		Logger: logg,
	})
	if err != nil {
		return err
	}
	svc, err := storefront.NewService(storefront.ServiceParams{
		Catalog: machine,
		Notifications: notifications.NewMachine(notifications.MachineParams{
			Duration: cfg.Notification.Duration,
			Logger:   logg,
		}),
		ConfirmDelay: cfg.Dialog.ConfirmDelay,
		Logger:       logg,
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting storefront")

	program := tea.NewProgram(tui.New(ctx, svc, logg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logg.Info(ctx, "storefront terminated")
			return nil
		}
		return fmt.Errorf("run program: %w", err)
	}
	logg.Info(ctx, "storefront closed")
	return nil
}
