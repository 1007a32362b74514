package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"portal/internal/config"
	"portal/internal/fzf"
	"portal/internal/history"
	"portal/internal/httputil"
	"portal/internal/media"
	"portal/internal/player"
	"portal/internal/ui"
)

var (
	flagHistoryPlay   bool
	flagHistoryRemove string
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, replay or prune watch history",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryPlay, "play", false, "Pick an entry with fzf and play it again")
	historyCmd.Flags().StringVar(&flagHistoryRemove, "remove", "", "Remove the entry for an episode code (e.g. S01E01)")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all history")
	historyCmd.MarkFlagsMutuallyExclusive("play", "remove", "clear")
}

func historyRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path, err := config.HistoryPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	switch {
	case flagHistoryRemove != "":
		code := strings.ToUpper(flagHistoryRemove)
		if err := httputil.ValidateEpisodeCode(code); err != nil {
			return err
		}
		if err := store.Remove(ctx, code); err != nil {
			return err
		}
		fmt.Printf("Removed %s from history.\n", code)
		return nil

	case flagHistoryClear:
		ok, err := fzf.Confirm("Clear all history?")
		if errors.Is(err, fzf.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	entries, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	items := history.FormatForDisplay(entries)
	if !flagHistoryPlay {
		for _, item := range items {
			fmt.Println(item)
		}
		return nil
	}

	idx, err := fzf.Select("History", items)
	if errors.Is(err, fzf.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	selected := entries[idx]
	debugf("replaying: %s (%s)", selected.Code, selected.VideoURL)
	if err := replayable(selected); err != nil {
		return err
	}

	p := player.New(strings.ToLower(cfg.Player))
	if !p.Available() {
		return fmt.Errorf("%s not found in PATH", p.Name())
	}

	size := ui.SizeFor(ui.ResolveDesktop(cfg.FormFactor, int(os.Stdout.Fd())))
	res, err := p.Play(ctx, player.Request{
		URL:    selected.VideoURL,
		Title:  strings.TrimSpace(selected.Code + " " + selected.Name),
		Width:  size.Width,
		Height: size.Height,
	})
	if err != nil {
		return fmt.Errorf("playing %s: %w", selected.Code, err)
	}

	selected.Position = res.Position
	if res.Duration > 0 {
		selected.Duration = res.Duration
	}
	selected.WatchedAt = time.Now()
	return store.Record(ctx, selected)
}

// replayable reports why an entry cannot be played again, if it can't.
func replayable(e media.HistoryEntry) error {
	if strings.TrimSpace(e.VideoURL) == "" {
		return fmt.Errorf("no video recorded for %s", e.Code)
	}
	return nil
}
