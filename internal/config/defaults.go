package config

const (
	defaultConfigPath          = "~/.config/vimdl/config.toml"
	defaultWorkDir             = "."
	defaultLogDir              = "~/.local/share/vimdl/logs"
	defaultUserAgent           = "vimdl/dev"
	defaultDownloadConcurrency = 2
	defaultWriteConcurrency    = 1
	defaultFFmpegBinary        = "ffmpeg"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	maxConcurrency             = 32
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			StateDir: defaultStateDir(),
			LogDir:   defaultLogDir,
		},
		HTTP: HTTP{
			UserAgent: defaultUserAgent,
		},
		Assembler: Assembler{
			DownloadConcurrency: defaultDownloadConcurrency,
			WriteConcurrency:    defaultWriteConcurrency,
		},
		Muxer: Muxer{
			FFmpegBinary: defaultFFmpegBinary,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
