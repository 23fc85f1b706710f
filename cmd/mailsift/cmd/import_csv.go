package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/indexer"
	"github.com/mailsift/mailsift/internal/source"
)

var (
	importLimit    int
	importBatch    int
	importMaxBytes int
)

var importCSVCmd = &cobra.Command{
	Use:   "import-csv <emails.csv>",
	Short: "Import a corpus CSV into the search index",
	Long: `Import a corpus CSV into the mailsift database.

The CSV must have a header row with a "file" column (source path of each
message) and a "message" column (the raw RFC 822 text). Rows whose message
exceeds the size ceiling are skipped and counted, not imported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()

		src, err := source.NewCSVSource(f, maxMessageBytes())
		if err != nil {
			return err
		}

		return runImport(cmd, src)
	},
}

func init() {
	rootCmd.AddCommand(importCSVCmd)
	addImportFlags(importCSVCmd)
}

func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&importLimit, "limit", 0, "only import this many rows (0 means all)")
	cmd.Flags().IntVar(&importBatch, "batch-size", 0, "rows per commit (default from config)")
	cmd.Flags().IntVar(&importMaxBytes, "max-message-bytes", 0, "skip rows with larger raw messages (default from config)")
}

func maxMessageBytes() int {
	if importMaxBytes > 0 {
		return importMaxBytes
	}
	return cfg.Index.MaxMessageBytes
}

// runImport drives the indexer over src and reports the outcome.
func runImport(cmd *cobra.Command, src source.Source) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	batchSize := importBatch
	if batchSize <= 0 {
		batchSize = cfg.Index.BatchSize
	}

	summary, err := indexer.BuildIndex(cmd.Context(), s, src, indexer.Options{
		BatchSize: batchSize,
		MaxRows:   importLimit,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	fmt.Printf("Imported %d rows in %s\n", summary.Imported, summary.Duration.Round(10*time.Millisecond))
	if summary.SkippedOversize > 0 {
		fmt.Printf("Skipped %d oversized rows (over %d bytes).\n", summary.SkippedOversize, maxMessageBytes())
	}
	return nil
}
