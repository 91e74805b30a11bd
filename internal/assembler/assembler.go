package assembler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"vimdl/internal/fileutil"
	"vimdl/internal/httpx"
	"vimdl/internal/logging"
	"vimdl/internal/playlist"
	"vimdl/internal/services"
)

const (
	DefaultDownloadConcurrency = 2
	DefaultWriteConcurrency    = 1
)

// Progress is reported after each segment lands in the output file.
type Progress struct {
	Track      playlist.Kind
	Index      int
	Bytes      int64
	Completed  int
	Total      int
	TotalBytes int64
}

// Options tunes an Assembler.
type Options struct {
	// DownloadConcurrency bounds in-flight segment requests per track.
	DownloadConcurrency int
	// WriteConcurrency bounds simultaneous positioned writes per track.
	WriteConcurrency int
	// Padding is the number of bytes reserved after every segment (0 or 1).
	Padding int64
	// Progress, when set, is called serially after each segment write.
	Progress func(Progress)
}

// Job describes one track to assemble.
type Job struct {
	Track playlist.Track
	// Resolve turns a track-relative reference into an absolute URL.
	Resolve    func(ref string) (string, error)
	OutputPath string
}

// Assembler downloads the segments of a track and writes them at their
// computed offsets in a single output file.
type Assembler struct {
	client *http.Client
	logger *slog.Logger
	opts   Options
}

// New constructs an Assembler. Zero concurrency values fall back to the
// defaults.
func New(client *http.Client, logger *slog.Logger, opts Options) *Assembler {
	if opts.DownloadConcurrency <= 0 {
		opts.DownloadConcurrency = DefaultDownloadConcurrency
	}
	if opts.WriteConcurrency <= 0 {
		opts.WriteConcurrency = DefaultWriteConcurrency
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	return &Assembler{
		client: client,
		logger: logging.NewComponentLogger(logger, "assembler"),
		opts:   opts,
	}
}

// Assemble produces job.OutputPath containing the init blob, the index blob,
// and every segment at its layout offset. On failure the partially written
// file is left in place for the caller to dispose of.
func (a *Assembler) Assemble(ctx context.Context, job Job) (string, error) {
	track := job.Track
	ctx = services.WithTrack(ctx, string(track.Kind))
	logger := logging.WithContext(ctx, a.logger)

	if job.Resolve == nil {
		return "", services.Wrap(services.ErrConfiguration, "assemble", "resolve", "no URL resolver for track "+track.ID, nil)
	}

	initBlob, err := base64.StdEncoding.DecodeString(track.InitSegment)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "assemble", "decode init segment", "track "+track.ID, err)
	}

	if err := checkSegmentSizes(track.Segments); err != nil {
		return "", err
	}

	indexURL, err := job.Resolve(track.IndexSegment)
	if err != nil {
		return "", &SegmentDownloadError{Index: IndexBlob, URL: track.IndexSegment, Err: err}
	}
	indexBlob, err := a.fetch(ctx, IndexBlob, indexURL)
	if err != nil {
		return "", err
	}

	layout, err := NewLayout(int64(len(initBlob)), int64(len(indexBlob)), track.Segments, a.opts.Padding)
	if err != nil {
		return "", err
	}
	logger.Info("assembling track",
		logging.String(logging.FieldEventType, "track_assembly_started"),
		logging.TrackID(track.ID),
		logging.Int("segments", layout.Segments()),
		logging.Int64("total_bytes", layout.Total()),
		logging.Output(job.OutputPath),
	)

	out, err := os.OpenFile(job.OutputPath, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", job.OutputPath, err)
	}
	if err := fileutil.Preallocate(out, layout.Total()); err != nil {
		_ = out.Close()
		return "", err
	}
	if _, err := out.WriteAt(initBlob, 0); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("write init segment: %w", err)
	}
	if _, err := out.WriteAt(indexBlob, layout.IndexOffset()); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("write index segment: %w", err)
	}

	if err := a.writeSegments(ctx, logger, out, job, layout); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", job.OutputPath, err)
	}

	logger.Info("track assembled",
		logging.String(logging.FieldEventType, "track_assembled"),
		logging.TrackID(track.ID),
		logging.Int64("total_bytes", layout.Total()),
	)
	return job.OutputPath, nil
}

func (a *Assembler) writeSegments(ctx context.Context, logger *slog.Logger, out *os.File, job Job, layout Layout) error {
	segments := job.Track.Segments
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(a.opts.DownloadConcurrency)
	writeSlots := semaphore.NewWeighted(int64(a.opts.WriteConcurrency))

	var (
		progressMu sync.Mutex
		completed  int
		payload    = job.Track.PayloadSize()
	)

	for i := range segments {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seg := segments[i]
			segURL, err := job.Resolve(seg.URL)
			if err != nil {
				return &SegmentDownloadError{Index: i, URL: seg.URL, Err: err}
			}
			body, err := a.fetch(gctx, i, segURL)
			if err != nil {
				return err
			}

			// The download slot stays held until the write finishes.
			if err := writeSlots.Acquire(gctx, 1); err != nil {
				return err
			}
			defer writeSlots.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}

			received := int64(len(body))
			n := min(received, seg.Size)
			offset := layout.Offset(i)
			logger.Debug("writing segment",
				logging.Segment(i),
				logging.Int64("offset", offset),
				logging.Int64("size", n),
			)
			if _, err := out.WriteAt(body[:n], offset); err != nil {
				return fmt.Errorf("write segment %d at offset %d: %w", i, offset, err)
			}
			if received != seg.Size {
				return &SegmentSizeError{Index: i, URL: segURL, Declared: seg.Size, Received: received}
			}

			if a.opts.Progress != nil {
				progressMu.Lock()
				completed++
				a.opts.Progress(Progress{
					Track:      job.Track.Kind,
					Index:      i,
					Bytes:      n,
					Completed:  completed,
					Total:      len(segments),
					TotalBytes: payload,
				})
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return ctx.Err()
}

func (a *Assembler) fetch(ctx context.Context, index int, rawURL string) ([]byte, error) {
	body, err := httpx.Get(ctx, a.client, rawURL)
	if err == nil {
		return body, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	var statusErr *httpx.StatusError
	if errors.As(err, &statusErr) {
		return nil, &SegmentDownloadError{Index: index, URL: rawURL, StatusCode: statusErr.StatusCode, Err: err}
	}
	return nil, &SegmentDownloadError{Index: index, URL: rawURL, Err: err}
}
