package main

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"vimdl/internal/assembler"
	"vimdl/internal/playlist"
)

// downloadProgress renders one byte-based bar across both tracks. The bar
// maximum grows as each track reports its payload size.
type downloadProgress struct {
	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	totals map[playlist.Kind]int64
}

func newDownloadProgress(w io.Writer) *downloadProgress {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &downloadProgress{bar: bar, totals: map[playlist.Kind]int64{}}
}

func (p *downloadProgress) update(ev assembler.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, seen := p.totals[ev.Track]; !seen {
		p.totals[ev.Track] = ev.TotalBytes
		var sum int64
		for _, total := range p.totals {
			sum += total
		}
		p.bar.ChangeMax64(sum)
	}
	_ = p.bar.Add64(ev.Bytes)
}

func (p *downloadProgress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}

func (p *downloadProgress) abort() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Clear()
}
