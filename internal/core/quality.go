package core

// QualityLevel describes one variant of the stream as reported by the
// transport's level list.
type QualityLevel struct {
	AudioCodec string `json:"audio_codec"`
	Bitrate    int    `json:"bitrate"` // bits per second
}

// QualityInfo is the human-readable quality summary shown to the listener.
// SampleRate and Channels are fixed display constants; the transport does
// not supply them.
type QualityInfo struct {
	Codec      string `json:"codec"`
	Bitrate    string `json:"bitrate"`
	SampleRate string `json:"sample_rate"`
	Channels   string `json:"channels"`
}
