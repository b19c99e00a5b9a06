package core

// StatusKind categorizes a status message for display purposes.
type StatusKind int

const (
	StatusNeutral StatusKind = iota
	StatusLoading
	StatusPlaying
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// Renderer is the display collaborator. The session pushes every visible
// state change through it; implementations own all cosmetic concerns.
type Renderer interface {
	RenderTrack(track TrackIdentity)
	RenderHistory(entries []HistoryEntry)
	RenderRating(state RatingState)
	RenderQuality(info QualityInfo)
	RenderStatus(message string, kind StatusKind)
}
