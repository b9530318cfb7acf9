package world

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/udisondev/openworld/internal/model"
)

// ScriptFunc is a game script function bound by name.
type ScriptFunc func(who model.ObjectID)

// Scripts binds script function names to Go handlers and tracks whether a
// dialog is running.
type Scripts struct {
	mu    sync.RWMutex
	funcs map[string]ScriptFunc

	dialogs atomic.Int32
}

// NewScripts creates an empty script table.
func NewScripts() *Scripts {
	return &Scripts{funcs: make(map[string]ScriptFunc)}
}

// Register binds name (case-insensitive) to fn.
func (s *Scripts) Register(name string, fn ScriptFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs[strings.ToUpper(name)] = fn
}

// UseInteractive calls the named function. Unknown names are ignored.
func (s *Scripts) UseInteractive(who model.ObjectID, function string) {
	s.mu.RLock()
	fn, ok := s.funcs[strings.ToUpper(function)]
	s.mu.RUnlock()

	if !ok {
		slog.Debug("script function not found", "func", function, "who", who)
		return
	}
	fn(who)
}

// StartDialog opens a dialog; interactions that wait for dialogs hold until EndDialog.
func (s *Scripts) StartDialog() { s.dialogs.Add(1) }

// EndDialog закрывает один диалог. Счётчик не уходит ниже нуля.
func (s *Scripts) EndDialog() {
	if s.dialogs.Add(-1) < 0 {
		s.dialogs.Store(0)
	}
}

func (s *Scripts) DialogFinished() bool { return s.dialogs.Load() == 0 }
