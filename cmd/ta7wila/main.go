package main

import (
	"os"

	"github.com/spf13/cobra"

	"ta7wila/internal/interfaces/cli/migrate"
	"ta7wila/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ta7wila",
		Short: "Ta7wila payment aggregation platform",
		Long:  `Ta7wila collects payments on Egyptian wallets and InstaPay accounts and verifies customer payment claims against provider callbacks.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
