package config

const (
	defaultWatchDir      = "~/screenshots"
	defaultDestDir       = "~/screenshots"
	defaultLogDir        = "~/.local/share/snapsort/logs"
	defaultPeriodDays    = 10
	defaultOrigin        = "2025-05-01"
	defaultTimeSource    = "creation"
	defaultSettleDelayMs = 200
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultNtfyTimeout   = 10
)

func defaultExtensions() []string {
	return []string{"png", "jpg", "jpeg"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir: defaultWatchDir,
			DestDir:  defaultDestDir,
			LogDir:   defaultLogDir,
		},
		Classification: Classification{
			PeriodDays:    defaultPeriodDays,
			Origin:        defaultOrigin,
			TimeSource:    defaultTimeSource,
			Extensions:    defaultExtensions(),
			SettleDelayMs: defaultSettleDelayMs,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
	}
}
