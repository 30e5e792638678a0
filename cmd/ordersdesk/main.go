// Command ordersdesk runs the auth service or the orders service.
//
//	ordersdesk auth     # /api/v1/Auth
//	ordersdesk orders   # /api/v1/Orders, /api/v1/Clients
//
// Both read their configuration from the environment (and an optional .env).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ordersdesk/ordersdesk/internal/infrastructure/config"
	"github.com/ordersdesk/ordersdesk/pkg/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:           "ordersdesk",
		Short:         "Orders management back end",
		Long:          `ordersdesk serves the token-issuing auth API and the orders/clients API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ordersdesk",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ordersdesk version %s\n", version)
		},
	}
)

func init() {
	rootCmd.AddCommand(versionCmd, authCmd, ordersCmd)
}

// setup loads the configuration and initialises the logger for a service.
func setup(cmd *cobra.Command, service string) error {
	c, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	cfg = c
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: service,
	})
	return nil
}

// @title                       ordersdesk API
// @version                     1.0
// @description                 Auth service issuing bearer tokens and orders service managing orders, clients and dashboard statistics.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
