// Package app wires configuration, logging, memory and the algorithm
// registry into the services shared by the CLI and the viewer.
package app

import (
	"fmt"
	"io"

	"edgeframe/internal/algorithms"
	"edgeframe/internal/config"
	"edgeframe/internal/debug/timing"
	"edgeframe/internal/exposure"
	"edgeframe/internal/imageio"
	"edgeframe/internal/logger"
	"edgeframe/internal/memory"
)

const (
	AppName    = "edgeframe"
	AppID      = "io.edgeframe.viewer"
	AppVersion = "0.3.0"
)

type Environment struct {
	Config     *config.Configuration
	Logger     logger.Logger
	Memory     *memory.Manager
	Tracker    *timing.Tracker
	Algorithms *algorithms.Manager
	Codec      *imageio.Codec
	Exposure   exposure.Controller

	shutdown bool
}

// NewEnvironment builds the services described by cfg. Logs go to logOut.
func NewEnvironment(cfg *config.Configuration, logOut io.Writer) (*Environment, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	log := logger.NewWriter(logOut, level, cfg.Logging.JSON)

	mem := memory.NewManager(cfg.Memory.LimitBytes, log)
	tracker := timing.NewTracker()

	env := &Environment{
		Config:     cfg,
		Logger:     log,
		Memory:     mem,
		Tracker:    tracker,
		Algorithms: algorithms.NewManager(mem, tracker, log, cfg.CannyParams()),
		Codec:      imageio.NewCodec(log, tracker),
		Exposure:   cfg.Controller(),
	}

	log.Debug("Environment", "services ready", map[string]interface{}{
		"version":      AppVersion,
		"memory_limit": cfg.Memory.LimitBytes,
		"backend":      imageio.Backend,
	})
	return env, nil
}

// Shutdown drops pooled buffers and logs usage statistics. Later calls do
// nothing.
func (e *Environment) Shutdown() {
	if e.shutdown {
		return
	}
	e.shutdown = true

	stats := e.Memory.GetStats()
	e.Memory.Cleanup()

	fields := map[string]interface{}{
		"allocated_bytes": stats.TotalAllocated,
		"pool_hits":       stats.PoolHits,
		"pool_misses":     stats.PoolMisses,
		"active_buffers":  stats.ActiveBuffers,
	}
	for _, op := range e.Tracker.Operations() {
		fields[op] = e.Tracker.Summarize(op).Mean.String()
	}
	e.Logger.Debug("Environment", "shutdown complete", fields)
}
