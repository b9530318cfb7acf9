package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/udisondev/openworld/internal/game/music"
	"github.com/udisondev/openworld/internal/game/sound"
	"github.com/udisondev/openworld/internal/model"
)

// Asset directories inside the content FS.
const (
	SfxDir    = "sfx"
	SpeechDir = "speech"
	MusicDir  = "music"
)

const resampleQuality = 4

// ErrNotLoaded is returned for files Preload did not decode.
var ErrNotLoaded = errors.New("sound not preloaded")

// Catalog resolves effect and theme names against content tables. Wav files are
// decoded once by Preload; runtime lookups only read the cache and never touch
// the file system.
type Catalog struct {
	dev    *Device
	fsys   fs.FS
	sfx    map[string]sound.Descriptor
	themes map[string]*music.Theme

	mu    sync.RWMutex
	cache map[string]*beep.Buffer
	bad   map[string]struct{}
}

// NewCatalog creates a catalog. Table keys are matched case-insensitively.
func NewCatalog(dev *Device, fsys fs.FS, sfx map[string]sound.Descriptor, themes map[string]*music.Theme) *Catalog {
	c := &Catalog{
		dev:    dev,
		fsys:   fsys,
		sfx:    make(map[string]sound.Descriptor, len(sfx)),
		themes: make(map[string]*music.Theme, len(themes)),
		cache:  make(map[string]*beep.Buffer),
		bad:    make(map[string]struct{}),
	}
	for k, v := range sfx {
		c.sfx[strings.ToUpper(k)] = v
	}
	for k, v := range themes {
		c.themes[strings.ToUpper(k)] = v
	}
	return c
}

// EffectDescriptor looks up the effect table.
func (c *Catalog) EffectDescriptor(name string) (*sound.Descriptor, bool) {
	d, ok := c.sfx[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	if d.Name == "" {
		d.Name = name
	}
	return &d, true
}

// WavDescriptor addresses a wav in the effect directory directly.
func (c *Catalog) WavDescriptor(name string) (*sound.Descriptor, bool) {
	return c.fileDescriptor(SfxDir, name)
}

// DialogDescriptor addresses a voice line in the speech directory.
func (c *Catalog) DialogDescriptor(name string) (*sound.Descriptor, bool) {
	return c.fileDescriptor(SpeechDir, name)
}

func (c *Catalog) fileDescriptor(dir, name string) (*sound.Descriptor, bool) {
	file := path.Join(dir, name)
	c.mu.RLock()
	_, ok := c.cache[file]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &sound.Descriptor{Name: name, File: file, Volume: 1}, true
}

// MusicTheme looks up the theme table.
func (c *Catalog) MusicTheme(name string) (*music.Theme, bool) {
	t, ok := c.themes[strings.ToUpper(name)]
	return t, ok
}

// Instantiate decodes the descriptor's file and wraps it in an Effect.
// Returns nil when the file cannot be decoded.
func (c *Catalog) Instantiate(d *sound.Descriptor) sound.Handle {
	buf, err := c.Buffer(c.effectPath(d.File))
	if err != nil {
		slog.Debug("unable to instantiate sound", "sound", d.Name, "err", err)
		return nil
	}
	vol := d.Volume
	if vol <= 0 {
		vol = 1
	}
	return newEffect(c.dev, buf, vol)
}

// PlayGlobal plays a descriptor without position or occlusion.
func (c *Catalog) PlayGlobal(d *sound.Descriptor) {
	buf, err := c.Buffer(c.effectPath(d.File))
	if err != nil {
		slog.Debug("unable to play global sound", "sound", d.Name, "err", err)
		return
	}
	c.dev.Play(buf.Streamer(0, buf.Len()))
}

// SetListenerPosition forwards the listener to the device.
func (c *Catalog) SetListenerPosition(p model.Vec3) {
	c.dev.SetListenerPosition(p)
}

// effectPath maps table file names ("FIRE.WAV") into the effect directory.
func (c *Catalog) effectPath(file string) string {
	if strings.Contains(file, "/") {
		return file
	}
	return path.Join(SfxDir, file)
}

// ThemePath maps a theme file name into the music directory.
func ThemePath(file string) string {
	if strings.Contains(file, "/") {
		return file
	}
	return path.Join(MusicDir, file)
}

// Preload decodes every file the effect and theme tables reference plus all
// wavs under the effect and speech directories. Broken or missing files are
// logged and left out. Returns the number of cached buffers.
func (c *Catalog) Preload() int {
	for _, d := range c.sfx {
		c.load(c.effectPath(d.File))
	}
	for _, t := range c.themes {
		c.load(ThemePath(t.File))
	}
	// Голос и сырые wav ищутся по имени файла, поэтому грузим каталоги целиком
	for _, dir := range [...]string{SfxDir, SpeechDir} {
		err := fs.WalkDir(c.fsys, dir, func(file string, e fs.DirEntry, err error) error {
			if err != nil {
				if file == dir {
					return fs.SkipDir
				}
				return nil
			}
			if !e.IsDir() && strings.EqualFold(path.Ext(file), ".wav") {
				c.load(file)
			}
			return nil
		})
		if err != nil {
			slog.Warn("unable to scan sound directory", "dir", dir, "err", err)
		}
	}
	return c.Cached()
}

func (c *Catalog) load(file string) {
	c.mu.RLock()
	_, ok := c.cache[file]
	_, bad := c.bad[file]
	c.mu.RUnlock()
	if ok || bad {
		return
	}

	buf, err := c.decode(file)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		slog.Warn("unable to load sound", "file", file, "err", err)
		c.bad[file] = struct{}{}
		return
	}
	c.cache[file] = buf
}

// Buffer returns the preloaded, device rate buffer of a file.
func (c *Catalog) Buffer(file string) (*beep.Buffer, error) {
	c.mu.RLock()
	buf, ok := c.cache[file]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("sound %s: %w", file, ErrNotLoaded)
	}
	return buf, nil
}

// Cached returns the number of decoded buffers.
func (c *Catalog) Cached() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *Catalog) decode(file string) (*beep.Buffer, error) {
	f, err := c.fsys.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening sound %s: %w", file, err)
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding sound %s: %w", file, err)
	}
	defer s.Close()

	rate := c.dev.Format().SampleRate
	var src beep.Streamer = s
	if format.SampleRate != rate {
		src = beep.Resample(resampleQuality, format.SampleRate, rate, s)
	}
	format.SampleRate = rate

	buf := beep.NewBuffer(format)
	buf.Append(src)
	return buf, nil
}
