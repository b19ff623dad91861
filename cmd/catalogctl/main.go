// catalogctl is the back-office command line for the storefront catalog:
// it seeds the SQLite store from a JSON export and runs search/suggest
// queries against it without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/storelens/backend/internal/infrastructure/sqlite"
	"github.com/storelens/backend/internal/usecase"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Manage and query the storefront catalog",
	Long: `catalogctl works directly against the embedded catalog database.
Use it to import product data and to try search and autocomplete
queries from the terminal.`,
	SilenceUsage: true,
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Import products from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		inserted, err := store.Seed(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("imported %d products into %s\n", inserted, dbPath)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank catalog products against a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		items, err := store.List(context.Background())
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		results := usecase.Rank(query, items, limit)
		if len(results) == 0 {
			fmt.Printf("no matches for %q\n", query)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SCORE\tTYPE\tNAME\tBRAND\tFIELDS")
		for _, r := range results {
			fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\t%v\n",
				r.Score, r.MatchType, r.Item.Name, r.Item.Brand, r.MatchedFields)
		}
		return w.Flush()
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Show autocomplete suggestions for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		items, err := store.List(context.Background())
		if err != nil {
			return err
		}

		for _, s := range usecase.Suggestions(strings.Join(args, " "), items, limit) {
			fmt.Println(s)
		}
		return nil
	},
}

func openStore() (*sqlite.Store, error) {
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}


func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "storelens.db", "path to the catalog database")
	searchCmd.Flags().Int("limit", usecase.DefaultResultLimit, "maximum results")
	suggestCmd.Flags().Int("limit", 8, "maximum suggestions")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
