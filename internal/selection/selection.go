// Package selection picks the renditions to download from a playlist.
package selection

import (
	"fmt"

	"vimdl/internal/playlist"
	"vimdl/internal/services"
)

// TargetHeight is the only video height eligible for download.
const TargetHeight = 1080

// RenditionNotFoundError reports that no rendition of Kind satisfied the
// selection rule.
type RenditionNotFoundError struct {
	Kind   playlist.Kind
	Detail string
}

func (e *RenditionNotFoundError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("no %s rendition available", e.Kind)
	}
	return fmt.Sprintf("no %s rendition available: %s", e.Kind, e.Detail)
}

func (e *RenditionNotFoundError) Unwrap() error {
	return services.ErrNotFound
}

// SelectAudio returns the audio rendition with the highest bitrate. Ties keep
// the earliest entry.
func SelectAudio(p *playlist.Playlist) (playlist.Audio, error) {
	best := -1
	for i, a := range p.Audio {
		if best < 0 || a.Bitrate > p.Audio[best].Bitrate {
			best = i
		}
	}
	if best < 0 {
		return playlist.Audio{}, &RenditionNotFoundError{Kind: playlist.KindAudio, Detail: "playlist has no audio tracks"}
	}
	return p.Audio[best], nil
}

// SelectVideo returns the first video rendition whose height is exactly
// TargetHeight.
func SelectVideo(p *playlist.Playlist) (playlist.Video, error) {
	for _, v := range p.Video {
		if v.Height == TargetHeight {
			return v, nil
		}
	}
	return playlist.Video{}, &RenditionNotFoundError{
		Kind:   playlist.KindVideo,
		Detail: fmt.Sprintf("no track with height %d among %d", TargetHeight, len(p.Video)),
	}
}

// Select applies both rules. Audio is resolved first, so a playlist missing
// both reports the audio failure.
func Select(p *playlist.Playlist) (playlist.Audio, playlist.Video, error) {
	audio, err := SelectAudio(p)
	if err != nil {
		return playlist.Audio{}, playlist.Video{}, err
	}
	video, err := SelectVideo(p)
	if err != nil {
		return playlist.Audio{}, playlist.Video{}, err
	}
	return audio, video, nil
}
