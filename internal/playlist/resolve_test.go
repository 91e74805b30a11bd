package playlist_test

import (
	"net/url"
	"testing"

	"vimdl/internal/playlist"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestTrackBase(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		baseURL   string
		trackBase string
		want      string
	}{
		{"relative chain", "https://cdn.example/exp/sep/video/playlist.json", "../", "avf/abc/", "/exp/sep/avf/abc"},
		{"absolute playlist base", "https://cdn.example/a/b/playlist.json", "/range/", "abc/", "/range/abc"},
		{"absolute track base", "https://cdn.example/a/b/playlist.json", "../x/", "/other/", "/other"},
		{"empty bases", "https://cdn.example/a/b/playlist.json", "", "", "/a/b"},
		{"climb past root", "https://cdn.example/playlist.json", "../../../", "t/", "/t"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &playlist.Playlist{BaseURL: tc.baseURL, Source: mustParse(t, tc.source)}
			got := p.TrackBase(playlist.Media{BaseURL: tc.trackBase})
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	p := &playlist.Playlist{
		BaseURL: "../",
		Source:  mustParse(t, "https://cdn.example:8443/exp/video/playlist.json?token=abc"),
	}
	base := p.TrackBase(playlist.Media{BaseURL: "avf/1/"})

	tests := []struct {
		ref  string
		want string
	}{
		{"segment-1.m4s", "https://cdn.example:8443/exp/avf/1/segment-1.m4s"},
		{"segment.mp4?r=abc&range=0-99", "https://cdn.example:8443/exp/avf/1/segment.mp4?r=abc&range=0-99"},
		{"../2/segment-1.m4s", "https://cdn.example:8443/exp/avf/2/segment-1.m4s"},
		{"/root/seg.m4s", "https://cdn.example:8443/root/seg.m4s"},
		{"https://other.example/s.m4s", "https://other.example/s.m4s"},
	}
	for _, tc := range tests {
		got, err := p.ResolveURL(base, tc.ref)
		if err != nil {
			t.Fatalf("ResolveURL(%q) returned error: %v", tc.ref, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveURL(%q) = %q, want %q", tc.ref, got, tc.want)
		}
	}
}

func TestResolveURLRequiresSource(t *testing.T) {
	p := &playlist.Playlist{}
	if _, err := p.ResolveURL("/", "seg.m4s"); err == nil {
		t.Fatalf("expected error without source URL")
	}
}

func TestResolverBindsTrack(t *testing.T) {
	p := &playlist.Playlist{BaseURL: "", Source: mustParse(t, "http://h/a/playlist.json")}
	resolve := p.Resolver(playlist.Media{BaseURL: "t/"})
	got, err := resolve("index.mp4")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "http://h/a/t/index.mp4" {
		t.Fatalf("unexpected resolved url %q", got)
	}
}
