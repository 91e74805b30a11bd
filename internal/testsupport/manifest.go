package testsupport

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"vimdl/internal/playlist"
)

// ManifestPath is where ManifestServer publishes the playlist.
const ManifestPath = "/video/clip-1/playlist.json"

// FixtureTrack describes one rendition served by ManifestServer.
type FixtureTrack struct {
	ID       string
	Bitrate  int64
	Height   int
	Width    int
	Init     []byte
	Index    []byte
	Segments [][]byte
}

// NewFixtureTrack builds a track with patterned init, index, and segment
// payloads of the given sizes.
func NewFixtureTrack(id string, initSize, indexSize int64, segmentSizes ...int64) FixtureTrack {
	track := FixtureTrack{
		ID:    id,
		Init:  Pattern(initSize, 'I'),
		Index: Pattern(indexSize, 'X'),
	}
	for i, size := range segmentSizes {
		track.Segments = append(track.Segments, Pattern(size, byte(i*17)))
	}
	return track
}

// Fixture is the manifest content served by ManifestServer.
type Fixture struct {
	ClipID string
	Audio  []FixtureTrack
	Video  []FixtureTrack
}

// ManifestServer serves a strict playlist manifest plus the index and segment
// bodies it references.
type ManifestServer struct {
	*httptest.Server

	mu       sync.Mutex
	bodies   map[string][]byte
	statuses map[string]int
	hits     map[string]int
	before   func(path string)
}

// NewManifestServer starts a server for fixture. It is closed on test cleanup.
func NewManifestServer(t testing.TB, fixture Fixture) *ManifestServer {
	t.Helper()

	ms := &ManifestServer{
		bodies:   map[string][]byte{},
		statuses: map[string]int{},
		hits:     map[string]int{},
	}

	p := playlist.Playlist{
		ClipID:  fixture.ClipID,
		BaseURL: "../media/",
		Audio:   []playlist.Audio{},
		Video:   []playlist.Video{},
	}
	for _, ft := range fixture.Audio {
		p.Audio = append(p.Audio, playlist.Audio{
			Media:        ms.media(ft),
			AudioPrimary: true,
			Channels:     2,
			SampleRate:   48000,
		})
	}
	for _, ft := range fixture.Video {
		p.Video = append(p.Video, playlist.Video{
			Media:     ms.media(ft),
			Framerate: 25,
			Width:     ft.Width,
			Height:    ft.Height,
		})
	}
	manifest, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal fixture manifest: %v", err)
	}
	ms.bodies[ManifestPath] = manifest

	ms.Server = httptest.NewServer(http.HandlerFunc(ms.serve))
	t.Cleanup(ms.Close)
	return ms
}

func (ms *ManifestServer) media(ft FixtureTrack) playlist.Media {
	base := "/video/media/" + ft.ID + "/"
	m := playlist.Media{
		ID:             ft.ID,
		AvgID:          ft.ID + "-avg",
		BaseURL:        ft.ID + "/",
		Format:         "dash",
		MimeType:       "video/mp4",
		Codecs:         "avc1.640028",
		Bitrate:        ft.Bitrate,
		AvgBitrate:     ft.Bitrate,
		Duration:       float64(len(ft.Segments)) * 6,
		InitSegment:    base64.StdEncoding.EncodeToString(ft.Init),
		InitSegmentURL: "init.mp4",
		IndexSegment:   "index.mp4",
		Segments:       []playlist.Segment{},
	}
	ms.bodies[base+"index.mp4"] = ft.Index
	for i, body := range ft.Segments {
		name := fmt.Sprintf("segment-%d.m4s", i)
		m.Segments = append(m.Segments, playlist.Segment{
			Start: float64(i) * 6,
			End:   float64(i+1) * 6,
			Size:  int64(len(body)),
			URL:   name,
		})
		ms.bodies[base+name] = body
	}
	m.MaxSegmentDuration = 6
	return m
}

func (ms *ManifestServer) serve(w http.ResponseWriter, r *http.Request) {
	ms.mu.Lock()
	ms.hits[r.URL.Path]++
	before := ms.before
	status, hasStatus := ms.statuses[r.URL.Path]
	body, ok := ms.bodies[r.URL.Path]
	ms.mu.Unlock()

	if before != nil {
		before(r.URL.Path)
	}
	if hasStatus {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write(body)
}

// ManifestURL returns the absolute playlist URL.
func (ms *ManifestServer) ManifestURL() string {
	return ms.URL + ManifestPath
}

// SegmentPath returns the server path for a track segment.
func SegmentPath(trackID string, index int) string {
	return fmt.Sprintf("/video/media/%s/segment-%d.m4s", trackID, index)
}

// IndexPath returns the server path for a track index blob.
func IndexPath(trackID string) string {
	return "/video/media/" + trackID + "/index.mp4"
}

// SetStatus forces path to answer with the given HTTP status.
func (ms *ManifestServer) SetStatus(path string, status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.statuses[path] = status
}

// SetBody replaces the body served at path.
func (ms *ManifestServer) SetBody(path string, body []byte) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.bodies[path] = body
}

// BeforeServe installs a hook invoked before each response is written.
func (ms *ManifestServer) BeforeServe(fn func(path string)) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.before = fn
}

// Hits reports how many requests reached path.
func (ms *ManifestServer) Hits(path string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.hits[path]
}

// SegmentHits counts requests for any segment of trackID.
func (ms *ManifestServer) SegmentHits(trackID string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	prefix := "/video/media/" + trackID + "/segment-"
	total := 0
	for path, n := range ms.hits {
		if strings.HasPrefix(path, prefix) {
			total += n
		}
	}
	return total
}
