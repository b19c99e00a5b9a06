package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/playground-x/neoradio/internal/core"
	errs "github.com/playground-x/neoradio/internal/errors"
	"github.com/playground-x/neoradio/internal/metadata"
	"github.com/playground-x/neoradio/internal/rating"
	"github.com/playground-x/neoradio/internal/track"
)

var rateYes bool

var rateCmd = &cobra.Command{
	Use:   "rate <up|down>",
	Short: "Rate the track playing right now",
	Long: `Fetches the current track from the radio API and submits a thumbs-up or
thumbs-down vote for it.

Examples:
  neoradio rate up
  neoradio rate down --yes`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE:      runRate,
}

func init() {
	rateCmd.Flags().BoolVarP(&rateYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(rateCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	var vote core.Rating
	switch args[0] {
	case "up":
		vote = core.RatingUp
	case "down":
		vote = core.RatingDown
	default:
		return fmt.Errorf("rating must be \"up\" or \"down\", got %q", args[0])
	}

	ctx := context.Background()
	apiTimeout := time.Duration(cfg.API.Timeout) * time.Millisecond

	metaClient := metadata.NewClient(cfg.API.BaseURL, apiTimeout)
	frag, ok, err := metaClient.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current track: %w", err)
	}
	if !ok || !frag.HasIdentity() {
		return errs.WithSuggestion(errs.ErrNoTrack,
			"The stream is not reporting track metadata right now. Try again later")
	}

	reconciler := track.NewReconciler()
	res := reconciler.Reconcile(frag)
	current := res.Track

	if !rateYes && isTerminal() {
		confirmed, err := confirmRating(current, vote)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	coordinator := rating.NewCoordinator(rating.NewClient(cfg.API.BaseURL, apiTimeout))
	state, err := coordinator.Submit(ctx, &current, vote)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(state)
	}

	fmt.Printf("Rated %q by %s %s\n", current.Title, current.Artist, voteLabel(vote))
	fmt.Printf("👍 %d   👎 %d\n", state.ThumbsUp, state.ThumbsDown)
	return nil
}

func confirmRating(t core.TrackIdentity, vote core.Rating) (bool, error) {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Rate %q by %s %s?", t.Title, t.Artist, voteLabel(vote))).
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

func voteLabel(vote core.Rating) string {
	if vote == core.RatingUp {
		return "👍"
	}
	return "👎"
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
