// Package config loads edgeframe settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"edgeframe/internal/algorithms/canny"
	"edgeframe/internal/exposure"
	"edgeframe/internal/logger"
	"edgeframe/internal/memory"

	"gopkg.in/yaml.v3"
)

type Configuration struct {
	Logging  LoggingSettings  `yaml:"logging"`
	Memory   MemorySettings   `yaml:"memory"`
	Canny    CannySettings    `yaml:"canny"`
	Exposure ExposureSettings `yaml:"exposure"`
}

type LoggingSettings struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// MemorySettings caps scratch memory. A limit of 0 disables the cap.
type MemorySettings struct {
	LimitBytes int64 `yaml:"limit_bytes"`
}

type CannySettings struct {
	GaussianSize  int     `yaml:"gaussian_size"`
	Sigma         float64 `yaml:"sigma"`
	SobelSize     int     `yaml:"sobel_size"`
	HighThreshold int     `yaml:"high_threshold"`
	LowThreshold  int     `yaml:"low_threshold"`
	Workers       int     `yaml:"workers"`
}

type ExposureSettings struct {
	Initial  uint32 `yaml:"initial"`
	Target   int    `yaml:"target"`
	StepHigh uint32 `yaml:"step_high"`
	StepMid  uint32 `yaml:"step_mid"`
	StepLow  uint32 `yaml:"step_low"`
	FarBand  int    `yaml:"far_band"`
	NearBand int    `yaml:"near_band"`
}

// ParameterRange bounds a numeric setting. Step is the slider increment
// used by the viewer.
type ParameterRange struct {
	Min  float64
	Max  float64
	Step float64
}

// Ranges lists the accepted bounds of every bounded setting by YAML path.
var Ranges = map[string]ParameterRange{
	"canny.gaussian_size":  {Min: 1, Max: 31, Step: 2},
	"canny.sigma":          {Min: 0.1, Max: 10, Step: 0.1},
	"canny.sobel_size":     {Min: 3, Max: 31, Step: 2},
	"canny.high_threshold": {Min: 0, Max: 255, Step: 1},
	"canny.low_threshold":  {Min: 0, Max: 255, Step: 1},
	"canny.workers":        {Min: 1, Max: 64, Step: 1},
	"exposure.target":      {Min: 0, Max: 255, Step: 1},
	"exposure.far_band":    {Min: 1, Max: 255, Step: 1},
	"exposure.near_band":   {Min: 1, Max: 255, Step: 1},
}

func Default() *Configuration {
	p := canny.DefaultParams()
	c := exposure.DefaultController()

	return &Configuration{
		Logging: LoggingSettings{Level: "info"},
		Memory:  MemorySettings{LimitBytes: memory.DefaultLimit},
		Canny: CannySettings{
			GaussianSize:  p.GaussianSize,
			Sigma:         p.Sigma,
			SobelSize:     p.SobelSize,
			HighThreshold: int(p.High),
			LowThreshold:  int(p.Low),
			Workers:       p.Workers,
		},
		Exposure: ExposureSettings{
			Initial:  exposure.DefaultExposure,
			Target:   int(c.Target),
			StepHigh: c.StepHigh,
			StepMid:  c.StepMid,
			StepLow:  c.StepLow,
			FarBand:  int(c.FarBand),
			NearBand: int(c.NearBand),
		},
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values; unknown keys are an error.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Configuration, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Configuration) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

func (c *Configuration) Validate() error {
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Memory.LimitBytes < 0 {
		return fmt.Errorf("memory.limit_bytes must not be negative, got: %d", c.Memory.LimitBytes)
	}

	checks := []struct {
		key   string
		value float64
	}{
		{"canny.gaussian_size", float64(c.Canny.GaussianSize)},
		{"canny.sigma", c.Canny.Sigma},
		{"canny.sobel_size", float64(c.Canny.SobelSize)},
		{"canny.high_threshold", float64(c.Canny.HighThreshold)},
		{"canny.low_threshold", float64(c.Canny.LowThreshold)},
		{"canny.workers", float64(c.Canny.Workers)},
		{"exposure.target", float64(c.Exposure.Target)},
		{"exposure.far_band", float64(c.Exposure.FarBand)},
		{"exposure.near_band", float64(c.Exposure.NearBand)},
	}
	for _, check := range checks {
		r := Ranges[check.key]
		if !(check.value >= r.Min && check.value <= r.Max) {
			return fmt.Errorf("%s must be between %g and %g, got: %g", check.key, r.Min, r.Max, check.value)
		}
	}

	if err := c.CannyParams().Validate(); err != nil {
		return fmt.Errorf("canny: %w", err)
	}
	if err := c.Controller().Validate(); err != nil {
		return fmt.Errorf("exposure: %w", err)
	}
	return nil
}

// CannyParams converts the canny section. Call Validate first.
func (c *Configuration) CannyParams() canny.Params {
	return canny.Params{
		GaussianSize: c.Canny.GaussianSize,
		Sigma:        c.Canny.Sigma,
		SobelSize:    c.Canny.SobelSize,
		High:         uint8(c.Canny.HighThreshold),
		Low:          uint8(c.Canny.LowThreshold),
		Workers:      c.Canny.Workers,
	}
}

// Controller converts the exposure section. Call Validate first.
func (c *Configuration) Controller() exposure.Controller {
	return exposure.Controller{
		Target:   uint8(c.Exposure.Target),
		StepHigh: c.Exposure.StepHigh,
		StepMid:  c.Exposure.StepMid,
		StepLow:  c.Exposure.StepLow,
		FarBand:  uint8(c.Exposure.FarBand),
		NearBand: uint8(c.Exposure.NearBand),
	}
}
