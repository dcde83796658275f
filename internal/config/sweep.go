package config

// SweepConfig controls the in-process membership expiry schedule.
// When disabled, the sweep still runs via cmd/sweep or POST /internal/sweep.
type SweepConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}
