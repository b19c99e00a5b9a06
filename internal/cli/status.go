package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/playground-x/neoradio/internal/core"
	"github.com/playground-x/neoradio/internal/metadata"
	"github.com/playground-x/neoradio/internal/rating"
	"github.com/playground-x/neoradio/internal/track"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is playing right now",
	Long:  `Fetches the current track and its rating from the radio API without opening the player.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusResult struct {
	Track     core.TrackIdentity `json:"track"`
	Rating    core.RatingState   `json:"rating"`
	FetchedAt time.Time          `json:"fetched_at"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	apiTimeout := time.Duration(cfg.API.Timeout) * time.Millisecond
	metaClient := metadata.NewClient(cfg.API.BaseURL, apiTimeout)
	ratingClient := rating.NewClient(cfg.API.BaseURL, apiTimeout)
	if Verbose() {
		logf := func(format string, a ...interface{}) { fmt.Fprintf(os.Stderr, format+"\n", a...) }
		metaClient.SetVerbose(true, logf)
		ratingClient.SetVerbose(true, logf)
	}

	frag, ok, err := metaClient.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch metadata: %w", err)
	}

	// Merge whatever the API reported over the placeholder defaults.
	reconciler := track.NewReconciler()
	res := reconciler.Reconcile(frag)

	result := statusResult{
		Track:     res.Track,
		FetchedAt: time.Now(),
	}

	if ok && frag.HasIdentity() {
		result.Rating = rating.NewCoordinator(ratingClient).Load(ctx, res.Track.Title, res.Track.Artist)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	t := NewTable("FIELD", "VALUE")
	t.AddRow("Title", result.Track.Title)
	t.AddRow("Artist", result.Track.Artist)
	t.AddRow("Album", result.Track.Album)
	t.AddRow("Year", result.Track.Year)
	if ok && frag.HasIdentity() {
		t.AddRow("Thumbs up", fmt.Sprintf("%d", result.Rating.ThumbsUp))
		t.AddRow("Thumbs down", fmt.Sprintf("%d", result.Rating.ThumbsDown))
	}
	t.AddRow("Fetched", humanize.Time(result.FetchedAt))
	t.Flush()

	if !ok {
		fmt.Println()
		fmt.Println("No metadata reported by the stream; showing placeholder values.")
	}

	return nil
}
