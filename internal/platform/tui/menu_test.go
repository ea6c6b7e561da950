package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbuster/internal/core"
	"github.com/vovakirdan/blockbuster/internal/registry"
)

func init() {
	for _, id := range []string{"stub", "stub_two"} {
		registry.Register(registry.Info{ID: id, Title: "Stub " + id, Description: "test preset"},
			func(registry.Env) (registry.Game, error) {
				return &stubGame{stepsLeft: 1, score: 10}, nil
			})
	}
}

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), "")
	if m.Cursor() != "stub" {
		t.Fatalf("cursor = %q, want stub", m.Cursor())
	}

	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != "stub" {
		t.Error("cursor moved above the first item")
	}
	m = sendMenu(t, m, runes("j"))
	m = sendMenu(t, m, runes("j"))
	if m.Cursor() != "stub_two" {
		t.Errorf("cursor = %q, want stub_two", m.Cursor())
	}

	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().GameID != "stub_two" {
		t.Errorf("selected = %+v", m.Selected())
	}
}

func TestMenuStartsOnLastPreset(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), "stub_two")
	if m.Cursor() != "stub_two" {
		t.Errorf("cursor = %q, want stub_two", m.Cursor())
	}
	if !strings.Contains(m.View(), "Select a preset") {
		t.Error("menu heading missing")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := sendMenu(t, NewMenuModel(nil, testConfig(), ""), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab did not request the scoreboard")
	}

	m = sendMenu(t, NewMenuModel(nil, testConfig(), ""), runes("q"))
	if !m.IsQuitting() {
		t.Error("q did not quit the menu")
	}
}

func TestMenuShowsHighScores(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("stub", core.ScoreRecord{Score: 777, Level: 3, Name: "bo"}, ""); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}
	m := NewMenuModel(store, testConfig(), "")
	if !strings.Contains(m.View(), "777") {
		t.Error("high score missing from the menu")
	}
}

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionModel(Services{Player: "ssh-user"}, registry.Env{}, testConfig())

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatal("selecting a preset did not start a game")
	}

	m = sendSession(t, m, TickMsg{})
	if !m.gameModel.State().GameOver {
		t.Fatal("stub game did not end")
	}

	m = sendSession(t, m, runes("b"))
	if m.current != screenMenu {
		t.Fatal("back did not return to the menu")
	}
	if m.quitting {
		t.Error("back ended the session")
	}
	if m.menu.Cursor() != "stub" {
		t.Errorf("menu cursor = %q, want the last played preset", m.menu.Cursor())
	}
}

func TestSessionScoreboardStaysConnected(t *testing.T) {
	m := NewSessionModel(Services{Store: openStore(t)}, registry.Env{}, testConfig())

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScores {
		t.Fatal("tab did not open the scoreboard")
	}
	if m.quitting {
		t.Fatal("opening the scoreboard ended the session")
	}

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Error("esc did not return to the menu")
	}

	m = sendSession(t, m, runes("q"))
	if !m.quitting {
		t.Error("q did not end the session")
	}
}

func TestScoreboardSwitchesPresets(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("stub_two", core.ScoreRecord{Score: 4321, Level: 5, Name: "cy"}, ""); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}

	for _, width := range []int{120, 60} {
		m := NewScoreboardModel(store, "stub", width, 30)
		if m.Preset() != "stub" {
			t.Fatalf("preset = %q, want stub", m.Preset())
		}
		if strings.Contains(m.View(), "4321") {
			t.Errorf("width %d: other preset's score shown", width)
		}

		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = next.(ScoreboardModel)
		if m.Preset() != "stub_two" {
			t.Fatalf("preset = %q after right, want stub_two", m.Preset())
		}
		if !strings.Contains(m.View(), "4321") {
			t.Errorf("width %d: score missing after switching", width)
		}

		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
		if next.(ScoreboardModel).Preset() != "stub" {
			t.Errorf("preset cursor did not wrap")
		}
	}
}
