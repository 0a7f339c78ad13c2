package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Room engine knobs.
	ChatCapacity      int           `mapstructure:"chat_capacity" yaml:"chat_capacity"`
	RoomIdleThreshold time.Duration `mapstructure:"room_idle_threshold" yaml:"room_idle_threshold"`
	SweepInterval     time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`
	MetadataTimeout   time.Duration `mapstructure:"metadata_timeout" yaml:"metadata_timeout"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		ChatCapacity:      100,
		RoomIdleThreshold: 10 * time.Minute,
		SweepInterval:     2 * time.Minute,
		MetadataTimeout:   3 * time.Second,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ChatCapacity != 0 {
		c.ChatCapacity = other.ChatCapacity
	}
	if other.RoomIdleThreshold != 0 {
		c.RoomIdleThreshold = other.RoomIdleThreshold
	}
	if other.SweepInterval != 0 {
		c.SweepInterval = other.SweepInterval
	}
	if other.MetadataTimeout != 0 {
		c.MetadataTimeout = other.MetadataTimeout
	}
}
