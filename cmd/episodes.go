package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portal/internal/provider"
)

var (
	flagPage int
	flagJSON bool
)

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Print one page of episodes",
	Args:  cobra.NoArgs,
	RunE:  episodesRun,
}

func init() {
	episodesCmd.Flags().IntVar(&flagPage, "page", 1, "Page to fetch (1-based)")
	episodesCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Output the page as JSON")
}

func episodesRun(cmd *cobra.Command, args []string) error {
	if flagPage < 1 {
		return fmt.Errorf("page must be at least 1, got %d", flagPage)
	}

	p, err := newProvider(cmd.Context())
	if err != nil {
		return err
	}

	page, err := p.Episodes(cmd.Context(), flagPage)
	if err != nil {
		return fmt.Errorf("getting episodes: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	if len(page.Episodes) == 0 {
		fmt.Println("No episodes found.")
		return nil
	}
	for _, e := range page.Episodes {
		line := provider.FormatDisplayTitle(e)
		if e.VideoURL == "" {
			line += "  [no video]"
		}
		fmt.Println(line)
	}
	if page.HasNext {
		fmt.Printf("\nMore on page %d.\n", flagPage+1)
	}
	return nil
}
