package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vimdl/internal/playlist"
	"vimdl/internal/selection"
)

func newRenditionsCommand(ctx *commandContext) *cobra.Command {
	var playlistURL string

	cmd := &cobra.Command{
		Use:   "renditions",
		Short: "List the audio and video renditions of a playlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			list, err := playlist.Fetch(cmd.Context(), newHTTPClient(cfg), logger, strings.TrimSpace(playlistURL))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Clip %s\n", list.ClipID)
			fmt.Fprint(out, renderRenditions(list))
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&playlistURL, "playlist-url", "p", "", "Playlist manifest URL")
	_ = cmd.MarkFlagRequired("playlist-url")
	return cmd
}

func renderRenditions(list *playlist.Playlist) string {
	selectedAudio, audioErr := selection.SelectAudio(list)
	selectedVideo, videoErr := selection.SelectVideo(list)

	cols := []column{
		textColumn(""),
		textColumn("Kind"),
		textColumn("ID"),
		textColumn("Codecs"),
		numericColumn("Bitrate"),
		numericColumn("Resolution"),
		numericColumn("Segments"),
		numericColumn("Size"),
	}
	rows := make([][]string, 0, len(list.Audio)+len(list.Video))

	for _, a := range list.Audio {
		rows = append(rows, []string{
			marker(audioErr == nil && a.ID == selectedAudio.ID),
			string(playlist.KindAudio),
			a.ID,
			a.Codecs,
			formatCount(a.Bitrate),
			fmt.Sprintf("%dch %s Hz", a.Channels, formatCount(a.SampleRate)),
			formatCount(int64(len(a.Segments))),
			formatBytes(a.PayloadSize()),
		})
	}
	for _, v := range list.Video {
		rows = append(rows, []string{
			marker(videoErr == nil && v.ID == selectedVideo.ID),
			string(playlist.KindVideo),
			v.ID,
			v.Codecs,
			formatCount(v.Bitrate),
			formatResolution(v.Width, v.Height),
			formatCount(int64(len(v.Segments))),
			formatBytes(v.PayloadSize()),
		})
	}
	return renderTable(cols, rows)
}

func marker(selected bool) string {
	if selected {
		return "*"
	}
	return ""
}
