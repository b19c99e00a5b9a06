package core

// Rating is a listener's thumbs vote for a track.
type Rating int

const (
	RatingNone Rating = 0
	RatingUp   Rating = 1
	RatingDown Rating = -1
)

// RatingState holds the aggregate vote counts for a track plus the
// listener's own vote, if any.
type RatingState struct {
	ThumbsUp   int    `json:"thumbs_up"`
	ThumbsDown int    `json:"thumbs_down"`
	UserRating Rating `json:"user_rating"`
}

// NeutralRating is what the UI shows when no rating data is available.
// A failed rating load is indistinguishable from a track with zero votes.
func NeutralRating() RatingState {
	return RatingState{}
}
