package data

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/openworld/internal/model"
)

// vec3 is written as a flow sequence: [x, y, z].
type vec3 [3]float32

func (v vec3) model() model.Vec3 { return model.V3(v[0], v[1], v[2]) }

type bboxDef struct {
	Min vec3 `yaml:"min"`
	Max vec3 `yaml:"max"`
}

func (b bboxDef) model() model.BBox {
	return model.BBox{Min: b.Min.model(), Max: b.Max.model()}
}

type effectDef struct {
	Name   string   `yaml:"name"`
	File   string   `yaml:"file"`
	Volume *float32 `yaml:"volume"`
	Loop   bool     `yaml:"loop"`
}

type effectFile struct {
	Effects []effectDef `yaml:"effects"`
}

type themeDef struct {
	Name   string   `yaml:"name"`
	File   string   `yaml:"file"`
	Volume *float32 `yaml:"volume"`
	Loop   *bool    `yaml:"loop"`
}

type themeFile struct {
	Themes []themeDef `yaml:"themes"`
}

type clipDef struct {
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
	Loop     bool          `yaml:"loop"`
}

type skeletonDef struct {
	Name  string    `yaml:"name"`
	Clips []clipDef `yaml:"clips"`
}

type pointDef struct {
	Name   string  `yaml:"name"`
	Node   int     `yaml:"node"`
	Offset vec3    `yaml:"offset"`
	Yaw    float32 `yaml:"yaw"`
}

type visualDef struct {
	Name string `yaml:"name"`
	// Skeleton references a shared skeleton; inline clips build a private one.
	Skeleton string     `yaml:"skeleton"`
	Clips    []clipDef  `yaml:"clips"`
	Points   []pointDef `yaml:"points"`
}

type visualFile struct {
	Skeletons []skeletonDef `yaml:"skeletons"`
	Visuals   []visualDef   `yaml:"visuals"`
}

type characterDef struct {
	Name       string   `yaml:"name"`
	Position   vec3     `yaml:"position"`
	Yaw        float32  `yaml:"yaw"`
	TranslateY float32  `yaml:"translate_y"`
	Skeleton   string   `yaml:"skeleton"`
	Overlays   []string `yaml:"overlays"`
}

type mobDef struct {
	Kind          string  `yaml:"kind"`
	Name          string  `yaml:"name"`
	Focus         string  `yaml:"focus"`
	Visual        string  `yaml:"visual"`
	Owner         string  `yaml:"owner"`
	StateNum      int32   `yaml:"state_num"`
	TriggerTarget string  `yaml:"trigger_target"`
	OnStateFunc   string  `yaml:"on_state_func"`
	Contains      string  `yaml:"contains"`
	Position      vec3    `yaml:"position"`
	Yaw           float32 `yaml:"yaw"`
	BBox          bboxDef `yaml:"bbox"`
}

type soundDef struct {
	Name      string  `yaml:"name"`
	Name2     string  `yaml:"name2"`
	Position  vec3    `yaml:"position"`
	Radius    float32 `yaml:"radius"`
	Mode      string  `yaml:"mode"`
	StartOn   *bool   `yaml:"start_on"`
	Delay     float32 `yaml:"delay"`
	DelayVar  float32 `yaml:"delay_var"`
	Daytime   bool    `yaml:"daytime"`
	StartHour float32 `yaml:"start_hour"`
	EndHour   float32 `yaml:"end_hour"`
}

type zoneDef struct {
	Name    string `yaml:"name"`
	Min     vec3   `yaml:"min"`
	Max     vec3   `yaml:"max"`
	Default bool   `yaml:"default"`
}

type worldFile struct {
	Name     string         `yaml:"name"`
	Player   characterDef   `yaml:"player"`
	Npcs     []characterDef `yaml:"npcs"`
	Mobs     []mobDef       `yaml:"mobs"`
	Sounds   []soundDef     `yaml:"sounds"`
	Zones    []zoneDef      `yaml:"zones"`
	Blockers []bboxDef      `yaml:"blockers"`
}

// decodeFile reads name from fsys into out. A missing file reports false, nil.
func decodeFile(fsys fs.FS, name string, out any) (bool, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("parsing %s: %w", name, err)
	}
	return true, nil
}
