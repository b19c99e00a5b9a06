package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/playground-x/neoradio/internal/metadata"
	"github.com/playground-x/neoradio/internal/rating"
	"github.com/playground-x/neoradio/internal/session"
	"github.com/playground-x/neoradio/internal/stream"
	"github.com/playground-x/neoradio/internal/tui"
	"github.com/playground-x/neoradio/internal/tui/styles"
)

var (
	playVolume int
	playURL    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the live stream",
	Long: `Opens the live player: follows the stream, shows the current track,
play history, audio quality, and ratings.

Keys:
  s    start/stop the stream
  u/d  rate the current track up/down
  +/-  volume
  q    quit`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playVolume, "volume", -1, "Initial volume (0-100, default from config)")
	playCmd.Flags().StringVar(&playURL, "url", "", "Stream URL (default from config)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	streamURL := cfg.Stream.URL
	if playURL != "" {
		streamURL = playURL
	}

	volume := cfg.Playback.Volume
	if playVolume >= 0 {
		if playVolume > 100 {
			return fmt.Errorf("volume must be between 0 and 100")
		}
		volume = playVolume
	}

	styles.SetTheme(cfg.TUI.Theme)
	logger := newLogger(cfg, true)

	apiTimeout := time.Duration(cfg.API.Timeout) * time.Millisecond

	metaClient := metadata.NewClient(cfg.API.BaseURL, apiTimeout)
	ratingClient := rating.NewClient(cfg.API.BaseURL, apiTimeout)
	if Verbose() {
		metaClient.SetVerbose(true, logger.Printf)
		ratingClient.SetVerbose(true, logger.Printf)
	}

	renderer := tui.NewRenderer()
	sink := stream.NewSink()

	sess := session.New(session.Options{
		Transport: stream.NewFactory(stream.TransportConfig{
			URL:    streamURL,
			Logger: logger,
		}),
		Media:        sink,
		Renderer:     renderer,
		Metadata:     metaClient,
		Ratings:      rating.NewCoordinator(ratingClient),
		PollInterval: time.Duration(cfg.Stream.PollInterval) * time.Millisecond,
		Logger:       logger,
	})
	sink.Attach(sess)

	model := tui.NewModel(ctx, sess, volume)
	program := tea.NewProgram(model, tea.WithAltScreen())
	renderer.Attach(program)

	if _, err := program.Run(); err != nil {
		sess.Stop()
		return fmt.Errorf("player failed: %w", err)
	}

	sess.Stop()
	return nil
}
