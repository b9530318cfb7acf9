package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/game/interactive"
	"github.com/udisondev/openworld/internal/model"
	"github.com/udisondev/openworld/internal/testutil"
)

func TestClock(t *testing.T) {
	c := NewClock(1, 8, 6)
	assert.Equal(t, model.NewGameTime(1, 8, 0), c.Time())

	c.Advance(10 * time.Second)
	assert.Equal(t, uint64(10000), c.TickCount())
	assert.Equal(t, model.NewGameTime(1, 9, 0), c.Time())

	c.Advance(-time.Second)
	assert.Equal(t, uint64(10000), c.TickCount())
}

func TestClock_WrapsDay(t *testing.T) {
	c := NewClock(0, 23.5, 1)
	c.Advance(time.Minute)
	assert.Equal(t, 1, c.Time().Day())
	assert.Equal(t, model.ClockTime(0, 30), c.Time().TimeInDay())
}

func TestObjectIDGenerator(t *testing.T) {
	g := NewObjectIDGenerator()
	p := g.NextPlayerID()
	n := g.NextNpcID()
	assert.True(t, IsPlayerID(p))
	assert.False(t, IsPlayerID(n))
	assert.NotEqual(t, p, g.NextPlayerID())
}

func TestRegistry(t *testing.T) {
	var r Registry[string]
	r.Add(1, "a")
	r.Add(2, "b")
	r.Add(1, "c")
	assert.Equal(t, 2, r.Len())

	v, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "c", v)

	assert.True(t, r.Remove(1))
	assert.False(t, r.Remove(1))
	_, ok = r.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	seen := 0
	r.Range(func(model.ObjectID, string) bool { seen++; return true })
	assert.Equal(t, 1, seen)
}

func TestNpc_AnimationWaitsForClip(t *testing.T) {
	clock := NewClock(0, 12, 0)
	npc := NewNpc(1, "DIEGO", false, model.V3(0, 0, 0), 90, nil, clock)

	sit := &anim.Sequence{Name: "T_BENCH_STAND_2_S0", Duration: 500 * time.Millisecond}
	require.True(t, npc.SetAnimation(anim.InteractIn, sit))

	clock.Advance(100 * time.Millisecond)
	assert.False(t, npc.SetAnimation(anim.Idle, nil), "transition still running")
	tag, seq := npc.Animation()
	assert.Equal(t, anim.InteractIn, tag)
	assert.Same(t, sit, seq)

	clock.Advance(400 * time.Millisecond)
	assert.True(t, npc.SetAnimation(anim.Idle, nil))
	tag, seq = npc.Animation()
	assert.Equal(t, anim.Idle, tag)
	assert.Nil(t, seq)
}

func TestNpc_Listener(t *testing.T) {
	npc := NewNpc(1, "HERO", true, model.V3(1, 2, 3), 90, nil, NewClock(0, 0, 0))
	assert.False(t, npc.IsTargeted())
	npc.SetTargeted(true)
	npc.SetWeaponDrawn(true)
	assert.True(t, npc.IsTargeted())
	assert.True(t, npc.WeaponDrawn())
	assert.Equal(t, float32(90), npc.TranslateY())
	assert.Equal(t, model.V3(0, 0, 1), npc.Direction())
}

func TestWorld_Handles(t *testing.T) {
	w := New()
	clock := NewClock(0, 12, 0)
	hero := NewNpc(w.IDs().NextPlayerID(), "HERO", true, model.Vec3{}, 90, nil, clock)
	diego := NewNpc(w.IDs().NextNpcID(), "DIEGO", false, model.Vec3{}, 90, nil, clock)
	w.AddNpc(hero)
	w.AddNpc(diego)

	assert.Same(t, hero, w.Player())
	assert.Equal(t, 2, w.Len())

	ch, ok := w.Character(diego.ID())
	require.True(t, ok)
	assert.Equal(t, diego.ID(), ch.ID())

	w.RemoveNpc(diego.ID())
	_, ok = w.Character(diego.ID())
	assert.False(t, ok, "stale handle")

	w.RemoveNpc(hero.ID())
	assert.Nil(t, w.Player())
}

func TestBus(t *testing.T) {
	b := NewBus()
	var got []string
	b.OnTrigger("gate", func(target, source string) { got = append(got, target+"<-"+source) })
	var perceived []string
	b.OnPerception(func(_ model.ObjectID, p string) { perceived = append(perceived, p) })

	b.TriggerEvent("GATE", "LEVER_01")
	b.TriggerEvent("NOBODY", "LEVER_01")
	b.PassivePerception(7, interactive.PercAssessUseMob)

	assert.Equal(t, []string{"GATE<-LEVER_01"}, got)
	assert.Equal(t, []string{interactive.PercAssessUseMob}, perceived)
}

func TestScripts(t *testing.T) {
	s := NewScripts()
	var who model.ObjectID
	s.Register("bench_s1", func(id model.ObjectID) { who = id })

	s.UseInteractive(5, "BENCH_S1")
	s.UseInteractive(6, "UNKNOWN")
	assert.Equal(t, model.ObjectID(5), who)

	assert.True(t, s.DialogFinished())
	s.StartDialog()
	assert.False(t, s.DialogFinished())
	s.EndDialog()
	s.EndDialog()
	assert.True(t, s.DialogFinished())
	s.StartDialog()
	assert.False(t, s.DialogFinished(), "extra EndDialog does not go negative")
}

type worldFixture struct {
	world   *World
	clock   *Clock
	bus     *Bus
	scripts *Scripts
	ctrl    *interactive.Controller
	visuals *testutil.Visuals
	hero    *Npc
}

func newWorldFixture() *worldFixture {
	f := &worldFixture{
		world:   New(),
		clock:   NewClock(0, 12, 0),
		bus:     NewBus(),
		scripts: NewScripts(),
		visuals: testutil.NewVisuals(),
	}
	f.ctrl = interactive.NewController(interactive.Deps{
		Characters: f.world,
		Clock:      f.clock,
		Bus:        f.bus,
		Scripts:    f.scripts,
	})
	f.hero = NewNpc(f.world.IDs().NextPlayerID(), "HERO", true, model.V3(0, 0, 200), 90, nil, f.clock)
	f.world.AddNpc(f.hero)
	return f
}

func (f *worldFixture) object(kind model.VobKind, stateNum int32, fn, target string) *interactive.Object {
	f.visuals.Points["MOB.MDS"] = []model.AttachPointDef{{Name: "ZS_POS0", Offset: model.V3(0, 0, 100)}}
	obj := interactive.NewObject(model.MobVob{
		Kind:          kind,
		Name:          "MOB_01",
		Visual:        "MOB.MDS",
		StateNum:      stateNum,
		OnStateFunc:   fn,
		TriggerTarget: target,
		Transform:     model.Identity(),
	}, f.visuals)
	f.ctrl.Add(obj)
	return obj
}

func (f *worldFixture) tick(n int) {
	for range n {
		f.clock.Advance(50 * time.Millisecond)
		f.ctrl.Tick()
	}
}

func TestWorld_SwitchCycle(t *testing.T) {
	f := newWorldFixture()
	lever := f.object(model.VobMobSwitch, 1, "", "GATE")

	var triggers, perceptions int
	f.bus.OnTrigger("GATE", func(string, string) { triggers++ })
	f.bus.OnPerception(func(model.ObjectID, string) { perceptions++ })

	require.NoError(t, f.ctrl.Attach(f.hero, lever))
	assert.Equal(t, model.V3(0, -90, 100), f.hero.Position())

	f.tick(2)
	assert.Equal(t, int32(1), lever.State())
	assert.Equal(t, 1, triggers)
	assert.Equal(t, 1, perceptions)
	assert.Equal(t, 1, f.hero.Quits())
	_, busy := f.ctrl.Occupied(f.hero.ID())
	assert.False(t, busy)
}

func TestWorld_BenchWithDialog(t *testing.T) {
	f := newWorldFixture()
	bench := f.object(model.VobMobInter, 1, "BENCH", "")

	calls := map[string]int{}
	for _, fn := range []string{"BENCH_S0", "BENCH_S1"} {
		f.scripts.Register(fn, func(model.ObjectID) { calls[fn]++ })
	}

	require.NoError(t, f.ctrl.Attach(f.hero, bench))
	f.tick(4)
	assert.Equal(t, 1, calls["BENCH_S0"])
	assert.Equal(t, 1, calls["BENCH_S1"])
	assert.True(t, bench.LoopState())

	f.scripts.StartDialog()
	require.True(t, f.ctrl.Detach(f.hero, bench))
	f.tick(3)
	assert.Equal(t, int32(-1), bench.State())
	_, busy := f.ctrl.Occupied(f.hero.ID())
	assert.True(t, busy, "player keeps the bench while talking")

	f.scripts.EndDialog()
	f.tick(1)
	_, busy = f.ctrl.Occupied(f.hero.ID())
	assert.False(t, busy)
	assert.Equal(t, 1, f.hero.Quits())
}
