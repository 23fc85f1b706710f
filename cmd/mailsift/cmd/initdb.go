package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize the database schema",
	Long: `Initialize the mailsift database with the required schema.

This creates the email record table and the FTS5 full-text index. It is
safe to run multiple times - tables are only created if they don't already
exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("initializing database", "path", cfg.DatabasePath())

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if !s.FTS5Available() {
			logger.Warn("this SQLite build lacks FTS5; search will be unavailable")
		}

		stats, err := s.GetStats()
		if err != nil {
			return fmt.Errorf("get stats: %w", err)
		}

		fmt.Printf("Database: %s\n", cfg.DatabasePath())
		fmt.Printf("  Emails: %d\n", stats.EmailCount)
		fmt.Printf("  Size:   %.2f MB\n", float64(stats.DatabaseSize)/(1024*1024))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
