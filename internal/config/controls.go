package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/blockbuster/internal/core"
)

// ErrDuplicateKey is returned when a key is bound to two actions.
var ErrDuplicateKey = errors.New("config: key already bound")

// Bindings maps each action to the key names that trigger it. Key names use
// Bubble Tea's notation ("left", "a", "ctrl+c").
type Bindings map[core.Action][]string

// DefaultBindings returns the stock key layout.
func DefaultBindings() Bindings {
	return Bindings{
		core.ActionLeft:     {"left", "a"},
		core.ActionRight:    {"right", "d"},
		core.ActionRotate:   {"up", "w"},
		core.ActionDrop:     {"down", "s"},
		core.ActionMulligan: {"m"},
		core.ActionPause:    {"p", "esc"},
		core.ActionRestart:  {"r"},
		core.ActionQuit:     {"q"},
	}
}

// ControlsPath returns ~/.blockbuster/controls, or empty if home is unavailable.
func ControlsPath() string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "controls")
}

// ActionFor returns the action bound to key, or ActionNone.
func (b Bindings) ActionFor(key string) core.Action {
	for action, keys := range b {
		for _, k := range keys {
			if k == key {
				return action
			}
		}
	}
	return core.ActionNone
}

// Set replaces the keys of an action with a single key. A key that already
// triggers a different action is rejected.
func (b Bindings) Set(action core.Action, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("config: empty key for %s", action.Key())
	}
	if owner := b.ActionFor(key); owner != core.ActionNone && owner != action {
		return fmt.Errorf("%w: %q triggers %s", ErrDuplicateKey, key, owner.Key())
	}
	b[action] = []string{key}
	return nil
}

// Clone returns a deep copy.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for action, keys := range b {
		out[action] = append([]string(nil), keys...)
	}
	return out
}

// ParseControls reads "action|key" lines. Blank lines and lines starting
// with '#' are skipped. An action may appear on several lines.
func ParseControls(r io.Reader) (Bindings, error) {
	b := make(Bindings)
	seen := make(map[string]core.Action)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, key, ok := strings.Cut(line, "|")
		if !ok || key == "" {
			return nil, fmt.Errorf("config: controls line %d: want action|key", lineNo)
		}
		action, ok := core.ParseAction(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("config: controls line %d: unknown action %q", lineNo, name)
		}
		if owner, dup := seen[key]; dup && owner != action {
			return nil, fmt.Errorf("config: controls line %d: %w: %q", lineNo, ErrDuplicateKey, key)
		}
		seen[key] = action
		b[action] = append(b[action], key)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: read controls: %w", err)
	}

	// Unlisted actions keep their default keys unless those are taken.
	for action, keys := range DefaultBindings() {
		if len(b[action]) > 0 {
			continue
		}
		for _, k := range keys {
			if _, taken := seen[k]; !taken {
				b[action] = append(b[action], k)
			}
		}
	}
	return b, nil
}

// WriteControls writes bindings in the format ParseControls reads.
func WriteControls(w io.Writer, b Bindings) error {
	for _, action := range core.Actions() {
		for _, k := range b[action] {
			if _, err := fmt.Fprintf(w, "%s|%s\n", action.Key(), k); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadControls reads a controls file. A missing file yields the defaults.
// A malformed file yields the defaults together with the parse error so the
// caller can report it.
func LoadControls(path string) (Bindings, error) {
	if path == "" {
		return DefaultBindings(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultBindings(), nil
	}
	if err != nil {
		return DefaultBindings(), fmt.Errorf("config: open controls %s: %w", path, err)
	}
	defer f.Close()

	b, err := ParseControls(f)
	if err != nil {
		return DefaultBindings(), err
	}
	return b, nil
}

// SaveControls writes bindings to path, creating its directory.
func SaveControls(path string, b Bindings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create controls dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create controls %s: %w", path, err)
	}
	if err := WriteControls(f, b); err != nil {
		f.Close()
		return fmt.Errorf("config: write controls %s: %w", path, err)
	}
	return f.Close()
}
