package data

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/udisondev/openworld/internal/model"
)

// Character is a character placement.
type Character struct {
	Name       string
	Position   model.Vec3
	Yaw        float32
	TranslateY float32
	Skeleton   string
	Overlays   []string
}

// World is the static content of one world file.
type World struct {
	Name     string
	Player   Character
	Npcs     []Character
	Mobs     []model.MobVob
	Sounds   []model.SoundVob
	Zones    []model.ZoneVob
	Blockers []model.BBox
}

// LoadWorld reads a world file. Unlike content tables the file is required.
func LoadWorld(fsys fs.FS, name string) (*World, error) {
	var f worldFile
	found, err := decodeFile(fsys, name, &f)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("world file %s: %w", name, fs.ErrNotExist)
	}

	w := &World{
		Name:     f.Name,
		Player:   f.Player.character(),
		Npcs:     make([]Character, 0, len(f.Npcs)),
		Mobs:     make([]model.MobVob, 0, len(f.Mobs)),
		Sounds:   make([]model.SoundVob, 0, len(f.Sounds)),
		Zones:    make([]model.ZoneVob, 0, len(f.Zones)),
		Blockers: make([]model.BBox, 0, len(f.Blockers)),
	}
	for _, n := range f.Npcs {
		w.Npcs = append(w.Npcs, n.character())
	}
	for _, m := range f.Mobs {
		w.Mobs = append(w.Mobs, m.vob())
	}
	for _, s := range f.Sounds {
		vob, err := s.vob()
		if err != nil {
			return nil, fmt.Errorf("world file %s: %w", name, err)
		}
		w.Sounds = append(w.Sounds, vob)
	}
	for _, z := range f.Zones {
		w.Zones = append(w.Zones, model.ZoneVob{
			Name:      z.Name,
			BBox:      model.BBox{Min: z.Min.model(), Max: z.Max.model()},
			IsDefault: z.Default,
		})
	}
	for _, b := range f.Blockers {
		w.Blockers = append(w.Blockers, b.model())
	}

	slog.Info("loaded world file",
		"world", w.Name,
		"mobs", len(w.Mobs),
		"sounds", len(w.Sounds),
		"zones", len(w.Zones),
		"npcs", len(w.Npcs))
	return w, nil
}

func (c characterDef) character() Character {
	return Character{
		Name:       c.Name,
		Position:   c.Position.model(),
		Yaw:        c.Yaw,
		TranslateY: c.TranslateY,
		Skeleton:   c.Skeleton,
		Overlays:   c.Overlays,
	}
}

func (m mobDef) vob() model.MobVob {
	p := m.Position.model()
	return model.MobVob{
		Kind:          model.ParseVobKind(m.Kind),
		Name:          m.Name,
		FocusName:     m.Focus,
		Visual:        m.Visual,
		Owner:         m.Owner,
		StateNum:      m.StateNum,
		TriggerTarget: m.TriggerTarget,
		OnStateFunc:   m.OnStateFunc,
		Contains:      m.Contains,
		BBox:          m.BBox.model(),
		Transform:     model.Translation(p.X, p.Y, p.Z).Mul(model.RotationY(m.Yaw)),
	}
}

func (s soundDef) vob() (model.SoundVob, error) {
	mode, err := parseSoundMode(s.Mode)
	if err != nil {
		return model.SoundVob{}, fmt.Errorf("sound %s: %w", s.Name, err)
	}
	startOn := true
	if s.StartOn != nil {
		startOn = *s.StartOn
	}
	return model.SoundVob{
		Name:         s.Name,
		Position:     s.Position.model(),
		Radius:       s.Radius,
		Mode:         mode,
		StartOn:      startOn,
		RandDelay:    s.Delay,
		RandDelayVar: s.DelayVar,
		Daytime:      s.Daytime,
		StartHour:    s.StartHour,
		EndHour:      s.EndHour,
		Name2:        s.Name2,
	}, nil
}

func parseSoundMode(s string) (model.SoundMode, error) {
	switch strings.ToLower(s) {
	case "", "loop":
		return model.SoundLoop, nil
	case "once":
		return model.SoundOnce, nil
	case "random":
		return model.SoundRandom, nil
	default:
		return 0, fmt.Errorf("unknown sound mode %q", s)
	}
}
