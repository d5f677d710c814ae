package algorithms

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"edgeframe/internal/algorithms/canny"
	"edgeframe/internal/algorithms/otsu"
	"edgeframe/internal/debug/timing"
	"edgeframe/internal/frame"
	"edgeframe/internal/logger"
	"edgeframe/internal/memory"
)

// Manager owns the registered algorithms, the current selection and the
// parameter set of each algorithm.
type Manager struct {
	algorithms       map[string]Algorithm
	currentAlgorithm string
	parameters       map[string]map[string]interface{}
	logger           logger.Logger
	mu               sync.RWMutex
}

// NewManager registers Otsu and Canny. Canny starts from cannyDefaults and
// is the initial selection.
func NewManager(mem *memory.Manager, tracker *timing.Tracker, log logger.Logger, cannyDefaults canny.Params) *Manager {
	if log == nil {
		log = logger.NewNop()
	}

	manager := &Manager{
		algorithms:       make(map[string]Algorithm),
		currentAlgorithm: canny.Name,
		parameters:       make(map[string]map[string]interface{}),
		logger:           log,
	}

	manager.register(otsu.NewProcessor(log))
	manager.register(canny.NewProcessor(canny.NewDetector(mem, tracker, log), cannyDefaults))

	return manager
}

func (m *Manager) register(algorithm Algorithm) {
	m.algorithms[algorithm.GetName()] = algorithm
	m.parameters[algorithm.GetName()] = algorithm.GetDefaultParameters()
}

func (m *Manager) SetCurrentAlgorithm(algorithm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.algorithms[algorithm]; !exists {
		return fmt.Errorf("unknown algorithm: %s", algorithm)
	}

	m.currentAlgorithm = algorithm
	return nil
}

func (m *Manager) GetCurrentAlgorithm() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentAlgorithm
}

// GetParameters returns a copy of the parameters stored for algorithm.
func (m *Manager) GetParameters(algorithm string) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if params, exists := m.parameters[algorithm]; exists {
		return maps.Clone(params)
	}

	return make(map[string]interface{})
}

// SetParameter updates one parameter. The change is rejected if the
// resulting set fails the algorithm's validation.
func (m *Manager) SetParameter(algorithm, name string, value interface{}) error {
	return m.SetParameters(algorithm, map[string]interface{}{name: value})
}

// SetParameters merges updates into the stored parameters of algorithm.
func (m *Manager) SetParameters(algorithm string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alg, exists := m.algorithms[algorithm]
	if !exists {
		return fmt.Errorf("unknown algorithm: %s", algorithm)
	}

	next := maps.Clone(m.parameters[algorithm])
	maps.Copy(next, updates)
	if err := alg.ValidateParameters(next); err != nil {
		return fmt.Errorf("%s parameters: %w", algorithm, err)
	}

	m.parameters[algorithm] = next
	return nil
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

// GetAvailableAlgorithms lists registered names in sorted order.
func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.algorithms))
}

// Run processes input with the named algorithm and its stored parameters.
func (m *Manager) Run(name string, input *frame.Frame) (*ProcessingResult, error) {
	alg, err := m.GetAlgorithm(name)
	if err != nil {
		return nil, err
	}
	params := m.GetParameters(name)

	result := &ProcessingResult{Algorithm: name}
	if withMetrics, ok := alg.(MetricsAlgorithm); ok {
		result.Output, result.Metrics, err = withMetrics.ProcessWithMetrics(input, params)
	} else {
		result.Output, err = alg.Process(input, params)
	}
	if err != nil {
		m.logger.Error("AlgorithmManager", err, map[string]interface{}{"algorithm": name})
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	m.logger.Debug("AlgorithmManager", "processing complete", map[string]interface{}{
		"algorithm": name,
		"metrics":   result.Metrics,
	})
	return result, nil
}

// RunCurrent processes input with the current selection.
func (m *Manager) RunCurrent(input *frame.Frame) (*ProcessingResult, error) {
	return m.Run(m.GetCurrentAlgorithm(), input)
}
