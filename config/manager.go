package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Manager holds nested configuration values addressed with dot notation,
// e.g. "database.connections.mysql.host".
type Manager struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewManager creates a manager over data. A nil map starts empty.
func NewManager(data map[string]any) *Manager {
	if data == nil {
		data = make(map[string]any)
	}
	return &Manager{values: data}
}

// Load replaces the whole configuration.
func (m *Manager) Load(data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if data == nil {
		data = make(map[string]any)
	}
	m.values = data
}

// Set stores value under key, creating intermediate maps.
func (m *Manager) Set(key string, value any) {
	if key == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parts := strings.Split(key, ".")
	current := m.values
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// Get returns the value at key or nil.
func (m *Manager) Get(key string) any {
	if key == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var current any = m.values
	for _, part := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = node[part]; !ok {
			return nil
		}
	}
	return current
}

// Has checks if a configuration key exists
func (m *Manager) Has(key string) bool {
	return m.Get(key) != nil
}

func (m *Manager) GetString(key string) string {
	switch v := m.Get(key).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (m *Manager) GetInt(key string) int {
	switch v := m.Get(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return 0
}

func (m *Manager) GetBool(key string) bool {
	switch v := m.Get(key).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}
