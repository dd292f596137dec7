package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags, overriding the environment when set
	dbDriver string
	dbConn   string
)

var rootCmd = &cobra.Command{
	Use:   "graze",
	Short: "Graze - farmers market API server",
	Long: `Graze serves the farmers market catalog (markets, vendors, products,
price lists) and the note-taking surface (folders, notes) as a JSON API over
a relational store. SQLite and PostgreSQL are supported.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver (sqlite3 or postgres)")
	rootCmd.PersistentFlags().StringVar(&dbConn, "db-conn", "", "Database connection string")
}
