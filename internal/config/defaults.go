package config

const (
	defaultLogDir     = "~/.local/share/gensubs/logs"
	defaultTranscoder = "ffmpeg"
	defaultRecognizer = "whisper"
	defaultModel      = "small"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// ModelSizes lists the recognizer model sizes in prompt order.
var ModelSizes = []string{"tiny", "base", "small", "medium", "large"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Tools: Tools{
			Transcoder: defaultTranscoder,
			Recognizer: defaultRecognizer,
		},
		Defaults: Defaults{
			Model:    defaultModel,
			CleanWAV: true,
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
