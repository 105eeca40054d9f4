package config

const (
	defaultAudioDir      = "~/lingopipe/audio"
	defaultWorkDir       = "~/.local/share/lingopipe/work"
	defaultLogDir        = "~/.local/share/lingopipe/logs"
	defaultDatabasePath  = "~/.local/share/lingopipe/journal.db"
	defaultASRCommand    = "vosk-transcriber"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultTolerance     = 1.7
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AudioDir:     defaultAudioDir,
			WorkDir:      defaultWorkDir,
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
		},
		ASR: ASR{
			Command:       defaultASRCommand,
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Alignment: Alignment{
			Tolerance:   defaultTolerance,
			KeepBackups: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
