package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vimdl/internal/assembler"
	"vimdl/internal/fileutil"
	"vimdl/internal/history"
	"vimdl/internal/logging"
	"vimdl/internal/muxer"
	"vimdl/internal/playlist"
	"vimdl/internal/selection"
	"vimdl/internal/services"
)

// ErrOutputLocked reports that another download is writing the same output.
var ErrOutputLocked = errors.New("output is locked by another download")

// Recorder journals run lifecycle events. Implementations must be safe to
// call from a single goroutine per run.
type Recorder interface {
	Start(ctx context.Context, id, playlistURL, outputPath string) error
	Finish(ctx context.Context, id string, outcome history.Outcome) error
}

// Options configures a Downloader.
type Options struct {
	// WorkDir holds the per-run temporary track files.
	WorkDir string
	// KeepTempOnFailure leaves temporaries in place when a run fails.
	KeepTempOnFailure bool
	Assembler         assembler.Options
}

// Dependencies are the collaborators a Downloader drives.
type Dependencies struct {
	Client   *http.Client
	Logger   *slog.Logger
	Muxer    muxer.Muxer
	Recorder Recorder
	// NewRunID overrides run identifier generation.
	NewRunID func() string
}

// Request names the manifest to download and where to put the result.
type Request struct {
	PlaylistURL string
	Output      string
}

// Result describes a completed download.
type Result struct {
	Output   string
	RunID    string
	ClipID   string
	AudioID  string
	VideoID  string
	Bytes    int64
	Duration time.Duration
}

// Downloader runs the fetch, select, assemble, and mux pipeline.
type Downloader struct {
	opts      Options
	client    *http.Client
	base      *slog.Logger
	logger    *slog.Logger
	muxer     muxer.Muxer
	recorder  Recorder
	newRunID  func() string
	assembler *assembler.Assembler
}

// New constructs a Downloader.
func New(opts Options, deps Dependencies) *Downloader {
	if strings.TrimSpace(opts.WorkDir) == "" {
		opts.WorkDir = "."
	}
	logger := logging.NewComponentLogger(deps.Logger, "downloader")
	newRunID := deps.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	return &Downloader{
		opts:      opts,
		client:    deps.Client,
		base:      deps.Logger,
		logger:    logger,
		muxer:     deps.Muxer,
		recorder:  deps.Recorder,
		newRunID:  newRunID,
		assembler: assembler.New(deps.Client, deps.Logger, opts.Assembler),
	}
}

// Download fetches the manifest at req.PlaylistURL, assembles the selected
// audio and video renditions into temporaries, and muxes them into
// req.Output. Temporaries are removed on success, and on failure unless
// KeepTempOnFailure is set.
func (d *Downloader) Download(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.PlaylistURL) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "download", "validate request", "playlist URL is required", nil)
	}
	if strings.TrimSpace(req.Output) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "download", "validate request", "output path is required", nil)
	}
	if d.muxer == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "download", "validate request", "no muxer configured", nil)
	}

	lock := flock.New(req.Output + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrOutputLocked, req.Output)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	runID := d.newRunID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, d.logger)
	started := time.Now()

	d.recordStart(ctx, logger, runID, req)
	logger.Info("download started",
		logging.String(logging.FieldEventType, "download_started"),
		logging.String("playlist_url", req.PlaylistURL),
		logging.Output(req.Output),
	)

	result, err := d.run(ctx, logger, runID, req)
	result.RunID = runID
	result.Duration = time.Since(started)
	d.recordFinish(ctx, logger, runID, result, err)

	if err != nil {
		logging.ErrorWithContext(logger, "download failed", "download_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		return result, err
	}
	logger.Info("download complete",
		logging.String(logging.FieldEventType, "download_complete"),
		logging.Output(result.Output),
		logging.Int64("bytes", result.Bytes),
		logging.Duration("elapsed", result.Duration),
	)
	return result, nil
}

func (d *Downloader) run(ctx context.Context, logger *slog.Logger, runID string, req Request) (Result, error) {
	var result Result

	list, err := playlist.Fetch(ctx, d.client, logging.WithContext(ctx, d.base), req.PlaylistURL)
	if err != nil {
		return result, stageError("fetch manifest", err)
	}
	result.ClipID = list.ClipID

	audio, video, err := selection.Select(list)
	if err != nil {
		return result, stageError("select renditions", err)
	}
	result.AudioID = audio.ID
	result.VideoID = video.ID
	logger.Info("renditions selected",
		logging.String(logging.FieldEventType, "renditions_selected"),
		logging.String("audio_id", audio.ID),
		logging.Int64("audio_bitrate", audio.Bitrate),
		logging.String("video_id", video.ID),
		logging.Int("video_height", video.Height),
	)

	if err := os.MkdirAll(d.opts.WorkDir, 0o755); err != nil {
		return result, stageError("prepare work dir", err)
	}
	audioPath := filepath.Join(d.opts.WorkDir, runID+".audio.tmp")
	videoPath := filepath.Join(d.opts.WorkDir, runID+".video.tmp")
	temps := []string{audioPath, videoPath}

	succeeded := false
	defer func() {
		if !succeeded && d.opts.KeepTempOnFailure {
			logger.Warn("keeping temporary track files",
				logging.String(logging.FieldEventType, "temp_kept"),
				logging.String("audio_tmp", audioPath),
				logging.String("video_tmp", videoPath),
			)
			return
		}
		d.removeTemps(logger, temps)
	}()

	assembleCtx := services.WithStage(ctx, "assemble")
	group, gctx := errgroup.WithContext(assembleCtx)
	group.Go(func() error {
		_, err := d.assembler.Assemble(gctx, assembler.Job{
			Track:      audio.Track(),
			Resolve:    list.Resolver(audio.Media),
			OutputPath: audioPath,
		})
		if err != nil {
			return stageError("assemble audio", err)
		}
		return nil
	})
	group.Go(func() error {
		_, err := d.assembler.Assemble(gctx, assembler.Job{
			Track:      video.Track(),
			Resolve:    list.Resolver(video.Media),
			OutputPath: videoPath,
		})
		if err != nil {
			return stageError("assemble video", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return result, err
	}

	for _, path := range temps {
		if info, err := os.Stat(path); err == nil {
			result.Bytes += info.Size()
		}
	}

	if err := d.muxer.Mux(services.WithStage(ctx, "mux"), audioPath, videoPath, req.Output); err != nil {
		return result, stageError("mux", err)
	}
	succeeded = true
	result.Output = req.Output
	return result, nil
}

func (d *Downloader) removeTemps(logger *slog.Logger, paths []string) {
	for _, path := range paths {
		if err := fileutil.RemoveIfExists(path); err != nil {
			logger.Warn("failed to remove temporary file",
				logging.String(logging.FieldEventType, "temp_cleanup_failed"),
				logging.String("path", path),
				logging.Error(err),
			)
		}
	}
}

func (d *Downloader) recordStart(ctx context.Context, logger *slog.Logger, runID string, req Request) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Start(context.WithoutCancel(ctx), runID, req.PlaylistURL, req.Output); err != nil {
		logger.Warn("failed to record run start",
			logging.String(logging.FieldEventType, "history_write_failed"),
			logging.Error(err),
		)
	}
}

func (d *Downloader) recordFinish(ctx context.Context, logger *slog.Logger, runID string, result Result, runErr error) {
	if d.recorder == nil {
		return
	}
	outcome := history.Outcome{
		Status:       history.StatusCompleted,
		ClipID:       result.ClipID,
		AudioID:      result.AudioID,
		VideoID:      result.VideoID,
		BytesWritten: result.Bytes,
		Err:          runErr,
	}
	if runErr != nil {
		outcome.Status = services.FailureStatus(runErr)
	}
	if err := d.recorder.Finish(context.WithoutCancel(ctx), runID, outcome); err != nil {
		logger.Warn("failed to record run outcome",
			logging.String(logging.FieldEventType, "history_write_failed"),
			logging.Error(err),
		)
	}
}

func stageError(stage string, err error) error {
	return fmt.Errorf("download: %s: %w", stage, err)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "download was cancelled"
	case errors.Is(err, services.ErrNotFound):
		return "run `vimdl renditions` to list the available tracks"
	case errors.Is(err, services.ErrValidation):
		return "the manifest or a segment did not match its declared shape"
	case errors.Is(err, services.ErrExternalTool):
		return "run `vimdl doctor` to check the ffmpeg installation"
	case errors.Is(err, services.ErrTransient):
		return "check network access to the manifest host and retry"
	default:
		return "check logs for details"
	}
}
