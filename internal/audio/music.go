package audio

import (
	"log/slog"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/udisondev/openworld/internal/game/music"
	"github.com/udisondev/openworld/internal/model"
)

// MusicPlayer plays one ambient theme at a time on the device.
type MusicPlayer struct {
	dev     *Device
	catalog *Catalog

	mu      sync.Mutex
	current *music.Theme
	ctrl    *beep.Ctrl
}

// NewMusicPlayer creates a player that loads themes through catalog.
func NewMusicPlayer(dev *Device, catalog *Catalog) *MusicPlayer {
	return &MusicPlayer{dev: dev, catalog: catalog}
}

// SetMusic switches to t. The same theme keeps playing uninterrupted.
// Returns false when the theme file is not loaded; the old theme keeps playing.
func (p *MusicPlayer) SetMusic(t *music.Theme) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil && p.current.Name == t.Name {
		return true
	}

	buf, err := p.catalog.Buffer(ThemePath(t.File))
	if err != nil {
		slog.Debug("unable to play music theme", "theme", t.Name, "err", err)
		return false
	}

	p.stopLocked()

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if t.Loop {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	p.ctrl = &beep.Ctrl{Streamer: newVolume(s, float64(t.Volume))}
	p.current = t
	p.dev.Play(p.ctrl)

	slog.Info("music theme changed", "theme", t.Name, "file", t.File)
	return true
}

// Current returns the playing theme, nil if none.
func (p *MusicPlayer) Current() *music.Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Stop silences the music.
func (p *MusicPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.current = nil
}

func (p *MusicPlayer) stopLocked() {
	if p.ctrl == nil {
		return
	}
	ctrl := p.ctrl
	p.dev.update(func(model.Vec3) { ctrl.Streamer = nil })
	p.ctrl = nil
}

// newVolume maps a linear volume onto effects.Volume; zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
