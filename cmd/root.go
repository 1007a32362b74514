// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"portal/internal/config"
	"portal/internal/episodes"
	"portal/internal/history"
	"portal/internal/httputil"
	"portal/internal/logging"
	"portal/internal/player"
	"portal/internal/provider"
	"portal/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagPlayer     string
	flagFormFactor string
	flagAPI        string
	flagDebug      bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

// logCloser flushes the log file on exit.
var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Browse and play Rick and Morty episodes from the terminal",
	Long: `Portal shows a paged row of episodes above a player panel.
Select an episode to play it in mpv or vlc; close the panel to stop.`,
	Args:               cobra.NoArgs,
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: closeLog,
	RunE:               screenRun,
	SilenceUsage:       true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().StringVar(&flagFormFactor, "form-factor", "", "Layout: auto | desktop | compact")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Episode API base URL")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging")

	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagFormFactor != "" {
		cfg.FormFactor = flagFormFactor
	}
	if flagAPI != "" {
		cfg.APIBase = flagAPI
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logPath, err := config.LogPath()
	if err != nil {
		logging.Discard()
		return nil
	}
	logCloser, err = logging.Setup(logPath, cfg.Debug)
	if err != nil {
		// Logging is best effort; the terminal belongs to the UI.
		logging.Discard()
	}
	return nil
}

func closeLog(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}

// newProvider builds the episode provider from cfg: the API client, the
// video index from config and the optional index page, and the page cache.
func newProvider(ctx context.Context) (provider.Provider, error) {
	client := httputil.NewClient()

	videos, rejected := provider.NewVideoIndex(cfg.Videos)
	for _, key := range rejected {
		logrus.WithField("key", key).Warn("ignoring invalid video entry")
	}

	if cfg.VideoIndex != "" {
		remote, err := provider.FetchVideoIndex(ctx, client, cfg.VideoIndex)
		if err != nil {
			logrus.WithError(err).Warn("video index unavailable")
		} else {
			videos.Merge(remote)
		}
	}
	debugf("video index has %d entries", videos.Len())

	var p provider.Provider = provider.NewRickAndMorty(cfg.APIBase,
		provider.WithClient(client),
		provider.WithVideos(videos),
	)

	ttl, err := cfg.CacheLifetime()
	if err != nil {
		return nil, err
	}
	if ttl > 0 {
		path, err := config.CachePath()
		if err != nil {
			return nil, err
		}
		p = provider.NewCached(p, path, ttl)
	}
	return p, nil
}

// openHistory opens the history store, or returns nil when history is off.
func openHistory() (*history.Store, error) {
	if !cfg.History {
		return nil, nil
	}
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

func screenRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := newProvider(ctx)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Desktop: ui.ResolveDesktop(cfg.FormFactor, int(os.Stdout.Fd())),
		Player:  player.New(strings.ToLower(cfg.Player)),
	}

	store, err := openHistory()
	if err != nil {
		logrus.WithError(err).Warn("history disabled")
	}
	if store != nil {
		defer store.Close()
		opts.History = store
	}
	debugf("desktop=%v player=%s", opts.Desktop, opts.Player.Name())

	vm := episodes.NewViewModel(p)
	screen := ui.NewScreen(vm, opts)

	prog := tea.NewProgram(screen, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running screen: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("portal", Version)
	},
}
