package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "recipeway",
		Short: "A terminal client for the family recipe service",
		Long:  "Recipeway — browse, edit, and share the family's recipes, with a local cache that works when the service is slow or away.",
	}

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newFamilyCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newFullscreenCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
