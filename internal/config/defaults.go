package config

const (
	defaultStagingDir   = "~/.local/share/lutforge/staging"
	defaultWorkingSpace = "ACES - ACEScg"
	defaultFamily       = "lutforge"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
		},
		OCIO: OCIO{
			WorkingSpace: defaultWorkingSpace,
			Family:       defaultFamily,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
