package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/udisondev/openworld/internal/game/zone"
	"github.com/udisondev/openworld/internal/model"
)

type themeTable map[string]*Theme

func (t themeTable) MusicTheme(name string) (*Theme, bool) {
	th, ok := t[name]
	return th, ok
}

func table(names ...string) themeTable {
	t := themeTable{}
	for _, n := range names {
		t[n] = &Theme{Name: n}
	}
	return t
}

type playerMock struct {
	mock.Mock
}

func (m *playerMock) SetMusic(t *Theme) bool {
	args := m.Called(t.Name)
	return args.Bool(0)
}

func TestName(t *testing.T) {
	assert.Equal(t, "OC_DAY_STD", Name("OC", Day, Std))
	assert.Equal(t, "NEWWORLD_NGT_FGT", Name("NEWWORLD", Night, Fgt))
	assert.Equal(t, "X_DAY_THR", Name("X", Day, Thr))
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, Std, ModeFor(false, false))
	assert.Equal(t, Std, ModeFor(false, true))
	assert.Equal(t, Thr, ModeFor(true, false))
	assert.Equal(t, Fgt, ModeFor(true, true))
}

func TestIsDay(t *testing.T) {
	tests := []struct {
		at   model.GameTime
		want bool
	}{
		{model.ClockTime(3, 59), false},
		{model.ClockTime(4, 0), true},
		{model.ClockTime(12, 0), true},
		{model.ClockTime(21, 0), true},
		{model.ClockTime(21, 1), false},
		{model.NewGameTime(3, 10, 0), true},
		{model.NewGameTime(3, 23, 0), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDay(tt.at), tt.at.String())
	}
	assert.Equal(t, Night, DayTagFor(model.ClockTime(2, 0)))
}

func TestSelector_Fallback(t *testing.T) {
	oc := zone.New("MUSICZONE_OC", model.BBox{})
	def := zone.New("MUSICZONE_DEF", model.BBox{})

	tests := []struct {
		name   string
		themes themeTable
		day    DayTag
		mode   Mode
		want   string
	}{
		{"exact", table("OC_NGT_THR", "OC_DAY_STD"), Night, Thr, "OC_NGT_THR"},
		{"threat downgrades to fight", table("OC_NGT_FGT", "OC_NGT_STD"), Night, Thr, "OC_NGT_FGT"},
		{"fight downgrades to standard", table("OC_NGT_STD", "OC_DAY_FGT"), Night, Fgt, "OC_NGT_STD"},
		{"night falls back to day", table("OC_DAY_STD"), Night, Std, "OC_DAY_STD"},
		{"zone falls back to default", table("DEF_NGT_STD", "DEF_DAY_STD"), Night, Std, "DEF_NGT_STD"},
		{"default day", table("DEF_DAY_STD"), Night, Fgt, "DEF_DAY_STD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &playerMock{}
			p.On("SetMusic", tt.want).Return(true).Once()

			s := NewSelector(tt.themes, p)
			assert.True(t, s.Evaluate(oc, def, tt.day, tt.mode))
			assert.Equal(t, tt.want, s.Current().Name)
			p.AssertExpectations(t)
		})
	}
}

func TestSelector_CachesUntilChange(t *testing.T) {
	oc := zone.New("MUSICZONE_OC", model.BBox{})
	def := zone.New("MUSICZONE_DEF", model.BBox{})
	p := &playerMock{}
	p.On("SetMusic", "OC_DAY_STD").Return(true).Once()
	p.On("SetMusic", "OC_DAY_FGT").Return(true).Once()

	s := NewSelector(table("OC_DAY_STD", "OC_DAY_FGT"), p)
	assert.True(t, s.Evaluate(oc, def, Day, Std))
	assert.False(t, s.Evaluate(oc, def, Day, Std))
	assert.True(t, s.Evaluate(oc, def, Day, Fgt))

	s.Invalidate()
	p.On("SetMusic", "OC_DAY_FGT").Return(true).Once()
	assert.True(t, s.Evaluate(oc, def, Day, Fgt))
	p.AssertExpectations(t)
}

func TestSelector_NothingResolves(t *testing.T) {
	p := &playerMock{}
	s := NewSelector(table("OTHER_DAY_STD"), p)

	assert.False(t, s.Evaluate(zone.New("Z_A", model.BBox{}), nil, Day, Std))
	assert.Nil(t, s.Current())
	p.AssertNotCalled(t, "SetMusic", mock.Anything)
}

func TestSelector_RejectedThemeIsRetried(t *testing.T) {
	oc := zone.New("MUSICZONE_OC", model.BBox{})
	p := &playerMock{}
	p.On("SetMusic", "OC_DAY_STD").Return(false).Once()

	s := NewSelector(table("OC_DAY_STD"), p)
	assert.False(t, s.Evaluate(oc, nil, Day, Std))
	assert.Nil(t, s.Current(), "rejected theme is not current")

	p.On("SetMusic", "OC_DAY_STD").Return(true).Once()
	assert.True(t, s.Evaluate(oc, nil, Day, Std))
	assert.Equal(t, "OC_DAY_STD", s.Current().Name)
	p.AssertExpectations(t)
}
