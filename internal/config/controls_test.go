package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/blockbuster/internal/core"
)

func TestDefaultBindingsHaveNoDuplicates(t *testing.T) {
	seen := make(map[string]core.Action)
	for action, keys := range DefaultBindings() {
		for _, k := range keys {
			if owner, ok := seen[k]; ok {
				t.Errorf("key %q bound to %s and %s", k, owner, action)
			}
			seen[k] = action
		}
	}
	for _, action := range core.Actions() {
		if len(DefaultBindings()[action]) == 0 {
			t.Errorf("%s has no default key", action)
		}
	}
}

func TestParseControls(t *testing.T) {
	input := strings.Join([]string{
		"# custom layout",
		"move_left|h",
		"move_right|l",
		"",
		"rotate|k",
		"rotate|up",
	}, "\n")

	b, err := ParseControls(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseControls() failed: %v", err)
	}
	if got := b.ActionFor("h"); got != core.ActionLeft {
		t.Errorf("ActionFor(h) = %v, expected Left", got)
	}
	if got := b[core.ActionRotate]; !reflect.DeepEqual(got, []string{"k", "up"}) {
		t.Errorf("rotate keys = %v, expected [k up]", got)
	}
	if got := b.ActionFor("m"); got != core.ActionMulligan {
		t.Errorf("unlisted mulligan lost its default key, ActionFor(m) = %v", got)
	}
	if got := b.ActionFor("a"); got != core.ActionNone {
		t.Errorf("listed action kept its default key, ActionFor(a) = %v", got)
	}
}

func TestParseControlsRejects(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		dup   bool
	}{
		{"missing separator", "move_left", false},
		{"missing key", "move_left|", false},
		{"unknown action", "jump|space", false},
		{"duplicate key", "move_left|x\nrotate|x", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseControls(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("ParseControls() accepted malformed input")
			}
			if got := errors.Is(err, ErrDuplicateKey); got != tc.dup {
				t.Errorf("errors.Is(err, ErrDuplicateKey) = %v, expected %v", got, tc.dup)
			}
		})
	}
}

func TestBindingsSet(t *testing.T) {
	b := DefaultBindings()
	if err := b.Set(core.ActionDrop, "space"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if got := b.ActionFor("space"); got != core.ActionDrop {
		t.Errorf("ActionFor(space) = %v, expected Drop", got)
	}
	if got := b.ActionFor("down"); got != core.ActionNone {
		t.Errorf("old drop key still bound to %v", got)
	}

	err := b.Set(core.ActionRotate, "space")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("Set() error = %v, expected ErrDuplicateKey", err)
	}
	if err := b.Set(core.ActionDrop, "space"); err != nil {
		t.Errorf("rebinding the same key failed: %v", err)
	}
}

func TestControlsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "controls")
	b := DefaultBindings()
	if err := b.Set(core.ActionMulligan, "n"); err != nil {
		t.Fatal(err)
	}
	if err := SaveControls(path, b); err != nil {
		t.Fatalf("SaveControls() failed: %v", err)
	}

	loaded, err := LoadControls(path)
	if err != nil {
		t.Fatalf("LoadControls() failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, b) {
		t.Errorf("LoadControls() = %v, expected %v", loaded, b)
	}
}

func TestLoadControlsFallsBack(t *testing.T) {
	dir := t.TempDir()

	b, err := LoadControls(filepath.Join(dir, "missing"))
	if err != nil {
		t.Errorf("missing file: unexpected error %v", err)
	}
	if !reflect.DeepEqual(b, DefaultBindings()) {
		t.Error("missing file did not yield defaults")
	}

	bad := filepath.Join(dir, "bad")
	if err := os.WriteFile(bad, []byte("move_left|x\nrotate|x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	b, err = LoadControls(bad)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("LoadControls() error = %v, expected ErrDuplicateKey", err)
	}
	if !reflect.DeepEqual(b, DefaultBindings()) {
		t.Error("malformed file did not yield defaults")
	}
}

func TestWriteControlsOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteControls(&buf, DefaultBindings()); err != nil {
		t.Fatal(err)
	}
	first, _, _ := strings.Cut(buf.String(), "\n")
	if first != "move_left|left" {
		t.Errorf("first line = %q, expected move_left|left", first)
	}
}
