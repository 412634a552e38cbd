package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/world"
)

type stubMap struct{ id string }

func (s stubMap) ID() string    { return s.id }
func (s stubMap) Title() string { return "Stub " + s.id }
func (s stubMap) Build(int64) (*world.TileMap, core.Cell, error) {
	return world.NewOpenField(2, 2), core.C(0, 0), nil
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Map { return stubMap{id: "stub_a"} })

	assert.True(t, Exists("stub_a"))
	m, err := Create("stub_a")
	require.NoError(t, err)
	assert.Equal(t, "stub_a", m.ID())

	found := false
	for _, info := range List() {
		if info.ID == "stub_a" {
			found = true
			assert.Equal(t, "Stub stub_a", info.Title)
		}
	}
	assert.True(t, found)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_b", func() Map { return stubMap{id: "stub_b"} })

	assert.Panics(t, func() {
		Register("stub_b", func() Map { return stubMap{id: "stub_b"} })
	})
	assert.False(t, TryRegister("stub_b", func() Map { return stubMap{id: "stub_b"} }))
	assert.True(t, TryRegister("stub_c", func() Map { return stubMap{id: "stub_c"} }))
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does_not_exist")
	assert.ErrorIs(t, err, ErrUnknownMap)
}
