package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/openworld/internal/model"
)

func box(x0, x1 float32) model.BBox {
	return model.BBox{Min: model.V3(x0, -1000, -1000), Max: model.V3(x1, 1000, 1000)}
}

func TestZone_Label(t *testing.T) {
	assert.Equal(t, "OC", New("MUSICZONE_OC", model.BBox{}).Label())
	assert.Equal(t, "OW_DAY", New("ZONE_OW_DAY", model.BBox{}).Label())
	assert.Equal(t, "WORLD", New("WORLD", model.BBox{}).Label())
}

func TestZone_ContainsHalfOpen(t *testing.T) {
	z := New("Z_A", box(0, 100))
	assert.True(t, z.Contains(model.V3(0, 0, 0)))
	assert.True(t, z.Contains(model.V3(99.9, 0, 0)))
	assert.False(t, z.Contains(model.V3(100, 0, 0)))
	assert.False(t, z.Contains(model.V3(-0.1, 0, 0)))
}

func TestManager_Resolve(t *testing.T) {
	m := NewManager()
	m.AddVob(model.ZoneVob{Name: "MUSICZONE_DEF", IsDefault: true})
	m.AddVob(model.ZoneVob{Name: "MUSICZONE_A", BBox: box(0, 100)})
	m.AddVob(model.ZoneVob{Name: "MUSICZONE_B", BBox: box(50, 200)})

	require.Equal(t, 2, m.Len())
	require.NotNil(t, m.Default())

	assert.Equal(t, "MUSICZONE_A", m.Resolve(model.V3(10, 0, 0)).Name())
	assert.Equal(t, "MUSICZONE_DEF", m.Resolve(model.V3(500, 0, 0)).Name())
	assert.Nil(t, m.Current())

	// Overlap without a cache: last zone wins.
	assert.Equal(t, "MUSICZONE_B", m.Resolve(model.V3(60, 0, 0)).Name())

	// Cached zone is kept while it still contains the position.
	assert.Equal(t, "MUSICZONE_B", m.Resolve(model.V3(55, 0, 0)).Name())
	assert.Equal(t, "MUSICZONE_A", m.Resolve(model.V3(20, 0, 0)).Name())
	assert.Equal(t, "MUSICZONE_A", m.Resolve(model.V3(60, 0, 0)).Name())
}

func TestManager_Deterministic(t *testing.T) {
	build := func() *Manager {
		m := NewManager()
		m.Add(New("Z_A", box(0, 100)))
		m.Add(New("Z_B", box(50, 200)))
		return m
	}

	for range 3 {
		assert.Equal(t, "Z_B", build().Resolve(model.V3(75, 0, 0)).Name())
	}
}

func TestManager_NoDefault(t *testing.T) {
	m := NewManager()
	assert.Nil(t, m.Resolve(model.V3(0, 0, 0)))

	m.Add(New("Z_A", box(0, 10)))
	m.Reset()
	assert.Zero(t, m.Len())
	assert.Nil(t, m.Resolve(model.V3(1, 0, 0)))
}
