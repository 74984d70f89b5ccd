package main

import (
	"fmt"
	"os"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"

	"chat-go/client"
	"chat-go/internal"
)

func clientCmd() *cobra.Command {
	var (
		server string
		port   int
		name   string
	)

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Connect to a chat server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			_ = godotenv.Load()
			var config internal.Config
			if _, err := env.UnmarshalFromEnviron(&config); err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			log := logs.GetLoggerFromString(config.LogLevel)

			c := client.New(log, name, server, port, os.Stdout)
			return c.Run(cmd.Context(), os.Stdin)
		},
	}

	cmd.Flags().StringVar(&server, "server", "127.0.0.1", "server host")
	cmd.Flags().IntVar(&port, "port", 30388, "server port")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}
