package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/source"
)

var importMboxCmd = &cobra.Command{
	Use:   "import-mbox <file.mbox>",
	Short: "Import an mbox archive into the search index",
	Long: `Import a Unix mbox file into the mailsift database.

Messages are split on "From " separator lines (mboxrd ">From" escaping is
undone). Each message is recorded with a "file.mbox#N" source path.
Messages over the size ceiling are skipped and counted, not imported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open mbox: %w", err)
		}
		defer f.Close()

		src := source.NewMboxSource(args[0], f, maxMessageBytes())
		return runImport(cmd, src)
	},
}

func init() {
	rootCmd.AddCommand(importMboxCmd)
	addImportFlags(importMboxCmd)
}
