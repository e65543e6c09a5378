// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Encode  EncodeConfig  `yaml:"encode"`
	Logging LoggingConfig `yaml:"logging"`
}

// EncodeConfig holds scene-to-codec encoding settings.
type EncodeConfig struct {
	// SimplifyRatio decimates the mesh to the given fraction of its
	// triangles before encoding. 0 or 1 disables decimation.
	SimplifyRatio float64 `yaml:"simplify_ratio"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Encode: EncodeConfig{
			SimplifyRatio: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
