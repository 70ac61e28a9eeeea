package layer

import (
	"fmt"
	"slices"
	"sync"
)

// Manager manages configuration layers and provides merged access.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer       // Sorted by priority (ascending)
	merged map[string]any // Cached merged result
	dirty  bool           // Whether merged cache needs refresh
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{
		layers: make([]*Layer, 0, 4),
		dirty:  true,
	}
}

// AddLayer adds a layer to the manager, replacing any layer with the same
// name. Layers are kept sorted by priority.
func (m *Manager) AddLayer(layer *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(layer.Name); i >= 0 {
		m.layers[i] = layer
	} else {
		m.layers = append(m.layers, layer)
	}
	m.sortLayers()
	m.dirty = true
}

// RemoveLayer removes a layer by name.
// Returns true if the layer was found and removed.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(name)
	if i < 0 {
		return false
	}
	m.layers = slices.Delete(m.layers, i, i+1)
	m.dirty = true
	return true
}

// GetLayer returns a layer by name.
func (m *Manager) GetLayer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(name); i >= 0 {
		return m.layers[i]
	}
	return nil
}

// Layers returns a copy of all layers sorted by priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.layers)
}

// LayerCount returns the number of layers.
func (m *Manager) LayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// Merge combines all layers into a single configuration map.
// Results are cached until a layer is added, removed, or updated.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty || m.merged == nil {
		result := make(map[string]any)
		for _, layer := range m.layers {
			result = DeepMerge(result, layer.Data)
		}
		m.merged = result
		m.dirty = false
	}
	return cloneMap(m.merged)
}

// Get returns the effective value for a setting path.
// Returns the value, the layer it came from, and whether it was found.
func (m *Manager) Get(path string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		layer := m.layers[i]
		if val, ok := GetByPath(layer.Data, path); ok {
			return val, layer, true
		}
	}
	return nil, nil, false
}

// GetValue returns the effective value for a setting path.
func (m *Manager) GetValue(path string) (any, bool) {
	val, _, ok := m.Get(path)
	return val, ok
}

// Set sets a value in a specific layer.
// Returns an error if the layer is not found or is read-only.
func (m *Manager) Set(layerName, path string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	layer, err := m.writable(layerName)
	if err != nil {
		return err
	}
	if layer.Data == nil {
		layer.Data = make(map[string]any)
	}
	SetByPath(layer.Data, path, value)
	m.dirty = true
	return nil
}

// Delete removes a value from a specific layer.
func (m *Manager) Delete(layerName, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	layer, err := m.writable(layerName)
	if err != nil {
		return err
	}
	if DeleteByPath(layer.Data, path) {
		m.dirty = true
	}
	return nil
}

// UpdateLayer replaces a layer's data entirely.
func (m *Manager) UpdateLayer(name string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	layer, err := m.writable(name)
	if err != nil {
		return err
	}
	layer.Data = cloneMap(data)
	if layer.Data == nil {
		layer.Data = make(map[string]any)
	}
	m.dirty = true
	return nil
}

// WhichLayer returns the name of the layer that provides a value.
func (m *Manager) WhichLayer(path string) string {
	_, layer, found := m.Get(path)
	if !found {
		return ""
	}
	return layer.Name
}

func (m *Manager) writable(name string) (*Layer, error) {
	i := m.indexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("layer not found: %s", name)
	}
	if m.layers[i].ReadOnly {
		return nil, fmt.Errorf("layer is read-only: %s", name)
	}
	return m.layers[i], nil
}

// sortLayers sorts layers by priority (ascending). Equal priorities keep
// insertion order.
func (m *Manager) sortLayers() {
	slices.SortStableFunc(m.layers, func(a, b *Layer) int {
		return a.Priority - b.Priority
	})
}

// indexOf finds a layer by name (must be called with lock held).
func (m *Manager) indexOf(name string) int {
	return slices.IndexFunc(m.layers, func(l *Layer) bool {
		return l.Name == name
	})
}
