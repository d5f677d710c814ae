package memory

import (
	"fmt"
	"sync"

	"edgeframe/internal/frame"
	"edgeframe/internal/logger"
)

const (
	// DefaultLimit caps outstanding scratch memory at 256 MiB.
	DefaultLimit int64 = 256 * 1024 * 1024

	poolDepth = 4
)

// Manager hands out scratch buffers for kernels and intermediate frames and
// takes them back for reuse. Outstanding bytes never exceed the limit.
type Manager struct {
	floatPools map[int]*Pool[float64]
	framePools map[frameKey]*Pool[uint8]
	mu         sync.Mutex
	stats      Stats
	logger     logger.Logger
}

type frameKey struct {
	Width  int
	Height int
}

type Stats struct {
	TotalAllocated int64
	TotalReleased  int64
	ActiveBuffers  int64
	PoolHits       int64
	PoolMisses     int64
	MaxAllowed     int64
}

// NewManager creates a manager. A limit <= 0 disables the cap.
func NewManager(limit int64, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}

	return &Manager{
		floatPools: make(map[int]*Pool[float64]),
		framePools: make(map[frameKey]*Pool[uint8]),
		stats:      Stats{MaxAllowed: limit},
		logger:     log,
	}
}

// Scratch is a leased float64 buffer. Release returns it to the manager.
type Scratch struct {
	data     []float64
	manager  *Manager
	released bool
}

func (s *Scratch) Float64s() []float64 { return s.data }

func (s *Scratch) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.manager.releaseFloats(s.data)
	s.data = nil
}

// FrameLease is a leased intermediate frame.
type FrameLease struct {
	frame    *frame.Frame
	manager  *Manager
	released bool
}

func (l *FrameLease) Frame() *frame.Frame { return l.frame }

func (l *FrameLease) Release() {
	if l == nil || l.released {
		return
	}
	l.released = true
	l.manager.releaseFrame(l.frame)
	l.frame = nil
}

// AcquireFloat64 leases a zeroed buffer of n float64 values.
func (m *Manager) AcquireFloat64(n int) (*Scratch, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: scratch length %d", frame.ErrInvalidArgument, n)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	size := int64(n) * 8
	if err := m.reserve(size); err != nil {
		return nil, err
	}

	var data []float64
	if pool, ok := m.floatPools[n]; ok {
		data = pool.Get()
	}
	if data != nil {
		m.stats.PoolHits++
		clear(data)
	} else {
		m.stats.PoolMisses++
		data = make([]float64, n)
	}

	return &Scratch{data: data, manager: m}, nil
}

// AcquireFrame leases a zeroed frame of the given size.
func (m *Manager) AcquireFrame(width, height int) (*FrameLease, error) {
	if err := frame.ValidateDimensions(width, height, "AcquireFrame"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	size := int64(width) * int64(height)
	if err := m.reserve(size); err != nil {
		return nil, err
	}

	key := frameKey{Width: width, Height: height}
	var pix []uint8
	if pool, ok := m.framePools[key]; ok {
		pix = pool.Get()
	}
	if pix != nil {
		m.stats.PoolHits++
		clear(pix)
	} else {
		m.stats.PoolMisses++
		pix = make([]uint8, width*height)
	}

	f, err := frame.FromPixels(width, height, pix)
	if err != nil {
		m.unreserve(size)
		return nil, err
	}

	return &FrameLease{frame: f, manager: m}, nil
}

// reserve must be called with m.mu held.
func (m *Manager) reserve(size int64) error {
	active := m.stats.TotalAllocated - m.stats.TotalReleased
	if m.stats.MaxAllowed > 0 && active+size > m.stats.MaxAllowed {
		m.logger.Warning("MemoryManager", "scratch limit reached", map[string]interface{}{
			"requested": size,
			"active":    active,
			"limit":     m.stats.MaxAllowed,
		})
		return fmt.Errorf("%w: %d bytes requested with %d of %d in use",
			frame.ErrAllocationFailure, size, active, m.stats.MaxAllowed)
	}

	m.stats.TotalAllocated += size
	m.stats.ActiveBuffers++
	return nil
}

func (m *Manager) unreserve(size int64) {
	m.stats.TotalReleased += size
	m.stats.ActiveBuffers--
}

func (m *Manager) releaseFloats(data []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unreserve(int64(len(data)) * 8)

	pool, ok := m.floatPools[len(data)]
	if !ok {
		pool = NewPool[float64](poolDepth)
		m.floatPools[len(data)] = pool
	}
	if !pool.Put(data) {
		m.logger.Debug("MemoryManager", "scratch pool full, dropping buffer", map[string]interface{}{
			"length": len(data),
		})
	}
}

func (m *Manager) releaseFrame(f *frame.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unreserve(int64(f.Len()))

	key := frameKey{Width: f.Width(), Height: f.Height()}
	pool, ok := m.framePools[key]
	if !ok {
		pool = NewPool[uint8](poolDepth)
		m.framePools[key] = pool
	}
	if !pool.Put(f.Pix()) {
		m.logger.Debug("MemoryManager", "frame pool full, dropping buffer", map[string]interface{}{
			"width":  f.Width(),
			"height": f.Height(),
		})
	}
}

func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Cleanup drops every pooled buffer.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for key, pool := range m.floatPools {
		count += pool.Cleanup()
		delete(m.floatPools, key)
	}
	for key, pool := range m.framePools {
		count += pool.Cleanup()
		delete(m.framePools, key)
	}

	m.logger.Debug("MemoryManager", "pools cleared", map[string]interface{}{
		"buffers": count,
	})
}
