package playlist

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// TrackBase returns the absolute path every reference of the rendition
// resolves against: the manifest directory, then the playlist base URL, then
// the track base URL. Absolute components reset the path.
func (p *Playlist) TrackBase(m Media) string {
	manifestPath := "/"
	if p.Source != nil {
		manifestPath = p.Source.EscapedPath()
	}
	return resolvePath(manifestPath, "..", p.BaseURL, m.BaseURL)
}

// ResolveURL turns a track-relative reference into an absolute URL on the
// manifest server's origin. References that are already absolute URLs are
// returned unchanged.
func (p *Playlist) ResolveURL(trackBase, ref string) (string, error) {
	if p.Source == nil {
		return "", errors.New("playlist has no source URL")
	}
	if ref = strings.TrimSpace(ref); ref == "" {
		return "", errors.New("empty reference")
	}
	if parsed, err := url.Parse(ref); err == nil && parsed.IsAbs() {
		return parsed.String(), nil
	}
	rel, err := url.Parse(resolvePath(trackBase, ref))
	if err != nil {
		return "", fmt.Errorf("parse reference %q: %w", ref, err)
	}
	origin := &url.URL{Scheme: p.Source.Scheme, Host: p.Source.Host}
	return origin.ResolveReference(rel).String(), nil
}

// Resolver binds ResolveURL to one rendition.
func (p *Playlist) Resolver(m Media) func(ref string) (string, error) {
	base := p.TrackBase(m)
	return func(ref string) (string, error) {
		return p.ResolveURL(base, ref)
	}
}

func resolvePath(parts ...string) string {
	resolved := "/"
	for _, part := range parts {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "/") {
			resolved = part
			continue
		}
		resolved = resolved + "/" + part
	}
	return path.Clean(resolved)
}
