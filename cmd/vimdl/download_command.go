package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vimdl/internal/assembler"
	"vimdl/internal/config"
	"vimdl/internal/deps"
	"vimdl/internal/downloader"
	"vimdl/internal/history"
	"vimdl/internal/logging"
	"vimdl/internal/muxer"
	"vimdl/internal/services"
)

type downloadFlags struct {
	playlistURL string
	filename    string
	workDir     string
	keepTemp    bool
	overwrite   bool
	noProgress  bool
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a playlist and mux it into a single file",
		Example: `  vimdl download -p "https://host/exp/video/playlist.json?token=..." -f clip.mp4
  vimdl download -p "$URL" -f clip.mp4 --workdir /tmp/vimdl --keep-temp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			applyDownloadOverrides(cfg, cmd, flags)

			if status := deps.CheckFFmpeg(cfg.Muxer.FFmpegBinary); !status.Available {
				return services.Wrap(services.ErrExternalTool, "download", "preflight", status.Detail+"; run `vimdl doctor`", nil)
			}

			output, err := config.ExpandPath(strings.TrimSpace(flags.filename))
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			var recorder downloader.Recorder
			if cfg.History.Enabled {
				store, err := history.Open(cfg.HistoryPath())
				if err != nil {
					logger.Warn("run history unavailable",
						logging.String(logging.FieldEventType, "history_open_failed"),
						logging.String("path", cfg.HistoryPath()),
						logging.Error(err),
					)
				} else {
					defer store.Close()
					recorder = store
				}
			}

			assemblerOpts := assembler.Options{
				DownloadConcurrency: cfg.Assembler.DownloadConcurrency,
				WriteConcurrency:    cfg.Assembler.WriteConcurrency,
				Padding:             int64(cfg.Assembler.PaddingBytes),
			}
			var progress *downloadProgress
			if !flags.noProgress && isTerminal(cmd.ErrOrStderr()) {
				progress = newDownloadProgress(cmd.ErrOrStderr())
				assemblerOpts.Progress = progress.update
			}

			d := downloader.New(downloader.Options{
				WorkDir:           cfg.Paths.WorkDir,
				KeepTempOnFailure: cfg.Download.KeepTempOnFailure,
				Assembler:         assemblerOpts,
			}, downloader.Dependencies{
				Client:   newHTTPClient(cfg),
				Logger:   logger,
				Muxer:    muxer.NewFFmpeg(cfg.Muxer.FFmpegBinary, cfg.Muxer.Overwrite, logger),
				Recorder: recorder,
			})

			result, err := d.Download(cmd.Context(), downloader.Request{
				PlaylistURL: strings.TrimSpace(flags.playlistURL),
				Output:      output,
			})
			if progress != nil {
				if err != nil {
					progress.abort()
				} else {
					progress.finish()
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded: %s\n", result.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.playlistURL, "playlist-url", "p", "", "Playlist manifest URL")
	cmd.Flags().StringVarP(&flags.filename, "filename", "f", "", "Output file name")
	cmd.Flags().StringVar(&flags.workDir, "workdir", "", "Directory for temporary track files")
	cmd.Flags().BoolVar(&flags.keepTemp, "keep-temp", false, "Keep temporary track files when the download fails")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Replace the output file if it exists")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Disable the progress bar")
	_ = cmd.MarkFlagRequired("playlist-url")
	_ = cmd.MarkFlagRequired("filename")

	return cmd
}

func applyDownloadOverrides(cfg *config.Config, cmd *cobra.Command, flags downloadFlags) {
	if dir := strings.TrimSpace(flags.workDir); dir != "" {
		if expanded, err := config.ExpandPath(dir); err == nil {
			cfg.Paths.WorkDir = expanded
		}
	}
	if cmd.Flags().Changed("keep-temp") {
		cfg.Download.KeepTempOnFailure = flags.keepTemp
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Muxer.Overwrite = flags.overwrite
	}
}
