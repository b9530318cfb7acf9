// Package data loads YAML content: effect and theme tables, skeletons,
// mesh attach points and world files.
package data

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/game/music"
	"github.com/udisondev/openworld/internal/game/sound"
	"github.com/udisondev/openworld/internal/model"
)

// Content table file names inside the data directory.
const (
	EffectsFile = "sfx.yaml"
	ThemesFile  = "music.yaml"
	VisualsFile = "visuals.yaml"
)

type visual struct {
	points   []model.AttachPointDef
	skeleton anim.Catalog
}

// Tables holds the loaded content. Effect and theme keys are upper-cased;
// visual and skeleton names are matched case-insensitively.
type Tables struct {
	effects   map[string]sound.Descriptor
	themes    map[string]*music.Theme
	skeletons map[string]*anim.MemCatalog
	visuals   map[string]*visual
}

// LoadTables reads all content tables from fsys. Missing files yield empty tables.
func LoadTables(fsys fs.FS) (*Tables, error) {
	t := &Tables{
		effects:   make(map[string]sound.Descriptor),
		themes:    make(map[string]*music.Theme),
		skeletons: make(map[string]*anim.MemCatalog),
		visuals:   make(map[string]*visual),
	}
	if err := t.loadEffects(fsys); err != nil {
		return nil, err
	}
	if err := t.loadThemes(fsys); err != nil {
		return nil, err
	}
	if err := t.loadVisuals(fsys); err != nil {
		return nil, err
	}

	slog.Info("loaded content tables",
		"effects", len(t.effects),
		"themes", len(t.themes),
		"skeletons", len(t.skeletons),
		"visuals", len(t.visuals))
	return t, nil
}

func (t *Tables) loadEffects(fsys fs.FS) error {
	var f effectFile
	found, err := decodeFile(fsys, EffectsFile, &f)
	if err != nil {
		return err
	}
	if !found {
		slog.Warn("effect table not found", "file", EffectsFile)
		return nil
	}
	for _, e := range f.Effects {
		if e.Name == "" || e.File == "" {
			return fmt.Errorf("%s: effect %q: name and file are required", EffectsFile, e.Name)
		}
		key := strings.ToUpper(e.Name)
		t.effects[key] = sound.Descriptor{
			Name:   key,
			File:   e.File,
			Volume: volumeOr1(e.Volume),
			Loop:   e.Loop,
		}
	}
	return nil
}

func (t *Tables) loadThemes(fsys fs.FS) error {
	var f themeFile
	found, err := decodeFile(fsys, ThemesFile, &f)
	if err != nil {
		return err
	}
	if !found {
		slog.Warn("music theme table not found", "file", ThemesFile)
		return nil
	}
	for _, th := range f.Themes {
		if th.Name == "" || th.File == "" {
			return fmt.Errorf("%s: theme %q: name and file are required", ThemesFile, th.Name)
		}
		key := strings.ToUpper(th.Name)
		loop := true
		if th.Loop != nil {
			loop = *th.Loop
		}
		t.themes[key] = &music.Theme{
			Name:   key,
			File:   th.File,
			Volume: volumeOr1(th.Volume),
			Loop:   loop,
		}
	}
	return nil
}

func (t *Tables) loadVisuals(fsys fs.FS) error {
	var f visualFile
	found, err := decodeFile(fsys, VisualsFile, &f)
	if err != nil {
		return err
	}
	if !found {
		slog.Warn("visual table not found", "file", VisualsFile)
		return nil
	}

	for _, s := range f.Skeletons {
		t.skeletons[strings.ToUpper(s.Name)] = anim.NewMemCatalog(s.Name, clips(s.Clips)...)
	}

	for _, v := range f.Visuals {
		vis := &visual{points: make([]model.AttachPointDef, 0, len(v.Points))}
		for _, p := range v.Points {
			vis.points = append(vis.points, model.AttachPointDef{
				Name:   strings.ToUpper(p.Name),
				Node:   p.Node,
				Offset: p.Offset.model(),
				Yaw:    p.Yaw,
			})
		}

		switch {
		case len(v.Clips) > 0:
			vis.skeleton = anim.NewMemCatalog(v.Name, clips(v.Clips)...)
		case v.Skeleton != "":
			s, ok := t.skeletons[strings.ToUpper(v.Skeleton)]
			if !ok {
				return fmt.Errorf("%s: visual %s: unknown skeleton %s", VisualsFile, v.Name, v.Skeleton)
			}
			vis.skeleton = s
		}
		t.visuals[strings.ToUpper(v.Name)] = vis
	}
	return nil
}

func clips(defs []clipDef) []anim.Sequence {
	out := make([]anim.Sequence, 0, len(defs))
	for _, c := range defs {
		out = append(out, anim.Sequence{
			Name:     strings.ToUpper(c.Name),
			Duration: c.Duration,
			Loop:     c.Loop,
		})
	}
	return out
}

func volumeOr1(v *float32) float32 {
	if v == nil {
		return 1
	}
	return *v
}

// Effects returns the effect table.
func (t *Tables) Effects() map[string]sound.Descriptor { return t.effects }

// Themes returns the music theme table.
func (t *Tables) Themes() map[string]*music.Theme { return t.themes }

// AttachPoints returns the mesh attach points of a visual.
func (t *Tables) AttachPoints(name string) []model.AttachPointDef {
	v, ok := t.visuals[strings.ToUpper(name)]
	if !ok {
		return nil
	}
	return v.points
}

// Skeleton returns the clip catalog of a visual. Visuals without one report false.
func (t *Tables) Skeleton(name string) (anim.Catalog, bool) {
	v, ok := t.visuals[strings.ToUpper(name)]
	if !ok || v.skeleton == nil {
		return nil, false
	}
	return v.skeleton, true
}

// CharacterSkeleton returns a shared skeleton by name, for characters and overlays.
func (t *Tables) CharacterSkeleton(name string) (*anim.MemCatalog, bool) {
	s, ok := t.skeletons[strings.ToUpper(name)]
	return s, ok
}
