package metrics

// Config defines metrics configuration.
type Config struct {
	Backend string       `yaml:"type" validate:"regexp=^(|disabled|default|statsd)$"`
	Statsd  StatsdConfig `yaml:"statsd"`
}

// StatsdConfig defines statsd configuration.
type StatsdConfig struct {
	HostPort string `yaml:"host_port"`
	Prefix   string `yaml:"prefix"`
}
