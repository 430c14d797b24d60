package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerGetSet(t *testing.T) {
	m := NewManager(map[string]any{
		"database": map[string]any{
			"default": "sqlite",
			"connections": map[string]any{
				"mysql": map[string]any{"port": 3306, "strict": "true"},
			},
		},
	})

	assert.Equal(t, "sqlite", m.GetString("database.default"))
	assert.Equal(t, 3306, m.GetInt("database.connections.mysql.port"))
	assert.Equal(t, "3306", m.GetString("database.connections.mysql.port"))
	assert.True(t, m.GetBool("database.connections.mysql.strict"))
	assert.Nil(t, m.Get("database.default.deeper"))
	assert.False(t, m.Has("database.connections.pgsql"))

	m.Set("database.connections.pgsql.host", "localhost")
	assert.True(t, m.Has("database.connections.pgsql"))
	assert.Equal(t, "localhost", m.GetString("database.connections.pgsql.host"))

	m.Set("", "ignored")
	assert.Nil(t, m.Get(""))

	m.Load(nil)
	assert.False(t, m.Has("database"))
}
