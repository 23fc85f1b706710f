package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/source"
)

var inspectRows int

var inspectCSVCmd = &cobra.Command{
	Use:   "inspect-csv <emails.csv>",
	Short: "Peek at the first rows of a corpus CSV",
	Long: `Print the source path and the leading lines of the first few
messages in a corpus CSV, without importing anything. Useful for checking
a corpus before a long import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()

		// No size ceiling here; we only print the head of each message.
		src, err := source.NewCSVSource(f, 0)
		if err != nil {
			return err
		}

		const headLines = 20
		for n := 1; n <= inspectRows; n++ {
			row, err := src.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}

			fmt.Printf("Row %d\n", n)
			fmt.Printf("file: %s\n", row.Path)
			lines := strings.Split(strings.TrimSpace(row.RawMessage), "\n")
			for i, line := range lines {
				if i >= headLines {
					fmt.Println("  ...")
					break
				}
				fmt.Printf("    %s\n", strings.TrimRight(line, "\r"))
			}
			fmt.Println(strings.Repeat("-", 30))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCSVCmd)
	inspectCSVCmd.Flags().IntVar(&inspectRows, "rows", 5, "number of rows to show")
}
