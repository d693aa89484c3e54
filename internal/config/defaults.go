package config

const (
	defaultConfigPath          = "~/.config/licmatch/config.toml"
	defaultStorePath           = "~/.local/share/licmatch/licenses.db"
	defaultLogDir              = "~/.local/share/licmatch/logs"
	defaultConfidenceThreshold = 0.9
	defaultShallowLimit        = 0.99
	defaultMaxPasses           = 10
	defaultStepSize            = 5
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultFileLogLevel        = "debug"

	// ModeElimination repeatedly matches and blanks out the best license.
	ModeElimination = "elimination"
	// ModeTopDown slides a window down the file looking for license starts.
	ModeTopDown = "top_down"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StorePath: defaultStorePath,
			LogDir:    defaultLogDir,
		},
		Scan: Scan{
			ConfidenceThreshold: defaultConfidenceThreshold,
			ShallowLimit:        defaultShallowLimit,
			Optimize:            true,
			MaxPasses:           defaultMaxPasses,
			Mode:                ModeElimination,
			StepSize:            defaultStepSize,
		},
		Logging: Logging{
			Format:    defaultLogFormat,
			Level:     defaultLogLevel,
			FileLevel: defaultFileLogLevel,
		},
	}
}
