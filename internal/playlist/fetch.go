package playlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"vimdl/internal/httpx"
	"vimdl/internal/logging"
)

// Fetch retrieves the manifest at rawURL with a single GET, validates it
// strictly against the playlist shape, and decodes it. Transport failures and
// non-success responses yield *FetchError; structural mismatches yield
// *SchemaError.
func Fetch(ctx context.Context, client *http.Client, logger *slog.Logger, rawURL string) (*Playlist, error) {
	logger = logging.NewComponentLogger(logger, "playlist")

	source, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	if source.Scheme != "http" && source.Scheme != "https" {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("unsupported scheme %q", source.Scheme)}
	}

	logger.Debug("fetching manifest", logging.String("url", rawURL))
	data, err := httpx.Get(ctx, client, rawURL)
	if err != nil {
		var statusErr *httpx.StatusError
		if errors.As(err, &statusErr) {
			return nil, &FetchError{URL: rawURL, StatusCode: statusErr.StatusCode, Err: err}
		}
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	p, err := Decode(data)
	if err != nil {
		return nil, err
	}
	p.Source = source

	logger.Info("manifest loaded",
		logging.String(logging.FieldEventType, "manifest_loaded"),
		logging.String("clip_id", p.ClipID),
		logging.Int("audio_tracks", len(p.Audio)),
		logging.Int("video_tracks", len(p.Video)),
	)
	return p, nil
}

// Decode validates and decodes a manifest body. The returned playlist has no
// Source; callers that resolve URLs must set it.
func Decode(data []byte) (*Playlist, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p Playlist
	if err := dec.Decode(&p); err != nil {
		return nil, &SchemaError{Reason: "decode: " + err.Error(), Err: err}
	}
	return &p, nil
}
