package config

const (
	defaultAgentBaseURL        = "http://127.0.0.1:8000/api/agent"
	defaultAgentRequestTimeout = 15
	defaultAgentPollInterval   = 3
	defaultAgentMaxPollSeconds = 0
	defaultOutputLanguage      = "ko"
	defaultOutputColor         = "auto"
	defaultBookmarksDBPath     = "~/.local/share/ladle/bookmarks.db"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Agent: Agent{
			BaseURL:        defaultAgentBaseURL,
			RequestTimeout: defaultAgentRequestTimeout,
			PollInterval:   defaultAgentPollInterval,
			MaxPollSeconds: defaultAgentMaxPollSeconds,
		},
		Output: Output{
			Language: defaultOutputLanguage,
			Color:    defaultOutputColor,
		},
		Bookmarks: Bookmarks{
			Enabled: true,
			DBPath:  defaultBookmarksDBPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
