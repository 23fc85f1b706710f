package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/search"
	"github.com/mailsift/mailsift/internal/store"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the indexed corpus",
	Long: `Search the indexed corpus with fuzzy boolean keywords.

Terms are AND-ed together; the word OR separates alternative groups. Every
term also matches prefixes and close misspellings drawn from the corpus
vocabulary.

Examples:
  mailsift search fraud energy
  mailsift search fraud energy OR bankruptcy
  mailsift search --json -n 5 pipeline capacity`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queryStr := strings.Join(args, " ")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		searcher, err := search.NewSearcher(cmd.Context(), s, search.Options{
			VocabRows:      cfg.Search.VocabRows,
			VocabMaxTokens: cfg.Search.VocabMaxTokens,
			Similarity:     cfg.Search.Similarity,
			MaxExpansions:  cfg.Search.MaxExpansions,
		})
		if err != nil {
			return err
		}
		logger.Debug("vocabulary loaded",
			"tokens", searcher.VocabularySize(),
			"match", searcher.CompileMatch(queryStr),
		)

		limit := searchLimit
		if limit <= 0 {
			limit = cfg.Search.ResultLimit
		}
		results, err := searcher.Search(cmd.Context(), queryStr, limit)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No messages found.")
			return nil
		}

		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		return outputResultsTable(results)
	},
}

func outputResultsTable(results []store.SearchResult) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCORE\tDATE\tFROM\tSUBJECT\tSNIPPET")
	fmt.Fprintln(w, "──\t─────\t────\t────\t───────\t───────")

	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.2f\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Score,
			truncate(r.SentAt, 22),
			truncate(r.Sender, 30),
			truncate(r.Subject, 40),
			truncate(strings.ReplaceAll(r.Snippet, "\n", " "), 60),
		)
	}

	w.Flush()
	fmt.Printf("\nShowing %d results\n", len(results))
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
}
