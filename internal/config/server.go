package config

import (
	"fmt"
	"strings"
)

type ServerConfig struct {
	Addr                string `json:"addr"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
	// PlanRatePerSecond limits POST /plans; zero disables the limit.
	PlanRatePerSecond float64 `json:"plan_rate_per_second"`
	PlanBurst         int     `json:"plan_burst"`
	// FrameIntervalMillis paces frames streamed over the animation socket.
	FrameIntervalMillis int `json:"frame_interval_millis"`
	// AllowedOrigins lists browser origins that may open the animation socket.
	// Empty means same-origin only; "*" allows any origin.
	AllowedOrigins []string `json:"allowed_origins"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeoutSeconds == 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.WriteTimeoutSeconds == 0 {
		c.WriteTimeoutSeconds = 60
	}
	if c.PlanRatePerSecond > 0 && c.PlanBurst == 0 {
		c.PlanBurst = 1
	}
	if c.FrameIntervalMillis == 0 {
		c.FrameIntervalMillis = 500
	}
}

func (c ServerConfig) Validate() error {
	if c.ReadTimeoutSeconds < 0 || c.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.PlanRatePerSecond < 0 || c.PlanBurst < 0 {
		return fmt.Errorf("plan rate limit must not be negative")
	}
	if c.FrameIntervalMillis < 0 {
		return fmt.Errorf("frame interval must not be negative")
	}
	for _, o := range c.AllowedOrigins {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("allowed origins must not contain blank entries")
		}
	}
	return nil
}
