package playlist

import "net/url"

// Kind distinguishes the audio and video variants of a track.
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// Segment is one byte range of a rendition, addressed relative to the track
// base URL. Size is authoritative for layout; End-Start is never used.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Size  int64   `json:"size"`
	URL   string  `json:"url"`
}

// Media holds the fields shared by audio and video renditions.
type Media struct {
	ID                 string    `json:"id"`
	AvgID              string    `json:"avg_id"`
	BaseURL            string    `json:"base_url"`
	Format             string    `json:"format"`
	MimeType           string    `json:"mime_type"`
	Codecs             string    `json:"codecs"`
	Bitrate            int64     `json:"bitrate"`
	AvgBitrate         int64     `json:"avg_bitrate"`
	Duration           float64   `json:"duration"`
	MaxSegmentDuration float64   `json:"max_segment_duration"`
	InitSegment        string    `json:"init_segment"`
	InitSegmentURL     string    `json:"init_segment_url"`
	IndexSegment       string    `json:"index_segment"`
	Segments           []Segment `json:"segments"`
}

// Audio is an audio rendition.
type Audio struct {
	Media
	AudioPrimary bool  `json:"audio_primary"`
	Channels     int   `json:"channels"`
	SampleRate   int64 `json:"sample_rate"`
}

// Video is a video rendition.
type Video struct {
	Media
	Framerate float64 `json:"framerate"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

// Playlist is the decoded manifest. It is never mutated after Fetch returns.
type Playlist struct {
	ClipID  string  `json:"clip_id"`
	BaseURL string  `json:"base_url"`
	Audio   []Audio `json:"audio"`
	Video   []Video `json:"video"`

	// Source is the URL the manifest was fetched from; relative references
	// resolve against its directory and origin.
	Source *url.URL `json:"-"`
}

// Track is the kind-tagged view of a rendition consumed by the assembler.
type Track struct {
	Kind Kind
	Media
}

// Track returns the audio rendition as a tagged track.
func (a Audio) Track() Track {
	return Track{Kind: KindAudio, Media: a.Media}
}

// Track returns the video rendition as a tagged track.
func (v Video) Track() Track {
	return Track{Kind: KindVideo, Media: v.Media}
}

// PayloadSize is the sum of the declared segment sizes.
func (m Media) PayloadSize() int64 {
	var total int64
	for _, seg := range m.Segments {
		total += seg.Size
	}
	return total
}
