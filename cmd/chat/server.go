package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"

	"chat-go/internal"
	"chat-go/moderation"
	"chat-go/runtime"
	"chat-go/runtime/workers"
)

func serverCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the chat server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), port)
		},
	}
	cmd.Flags().IntVar(&port, "port", -1, "TCP port to listen on (overrides CHAT_PORT)")
	return cmd
}

func runServer(parent context.Context, portFlag int) error {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if portFlag >= 0 {
		config.Port = portFlag
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	replacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}
	moderator, err := moderation.NewModerator(config.Words(), replacement, log)
	if err != nil {
		return fmt.Errorf("moderation setup: %w", err)
	}

	registry := runtime.NewRegistry(config.ServerName)
	server, err := runtime.NewServer(log, registry, moderator, config.Host, config.Port)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(server, workers.NewTelemetryWorker(log, registry, config.TelemetryInterval))
	if config.DebugPort > 0 {
		sup.Add(internal.NewDebugServer(log, config.DebugPort, func() any {
			return registry.Snapshot()
		}))
	}

	sup.Run(ctx)
	log.Info("server stopped")
	return nil
}
