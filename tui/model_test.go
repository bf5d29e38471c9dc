package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/grooveseq/grooveseq/tui"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSurface(t *testing.T) (tui.Model, *sequencer.Model, *sequencer.FreeRunContext) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	seq, _ := sequencer.NewModelPlayer(sequencer.NewBroker(), sequencer.WithSeed(3, 4), sequencer.WithLogger(logger))
	transport := sequencer.NewFreeRunContext(44100, 120)
	return tui.NewModel(seq, transport, nil), seq, transport
}

func press(t *testing.T, m tui.Model, keys ...tea.KeyMsg) tui.Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		var ok bool
		m, ok = updated.(tui.Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorWraps(t *testing.T) {
	m, _, _ := newSurface(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	pad, step := m.Cursor()
	assert.Equal(t, grooveseq.PadCount-1, pad)
	assert.Equal(t, grooveseq.StepCount-1, step)
	m = press(t, m, runes("j"), runes("l"), runes("l"))
	pad, step = m.Cursor()
	assert.Equal(t, 0, pad)
	assert.Equal(t, 1, step)
}

func TestToggleAndClear(t *testing.T) {
	m, seq, _ := newSurface(t)
	m = press(t, m, runes("c"))
	assert.Zero(t, seq.Pattern().Get().Count())
	m = press(t, m, runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, seq.Pattern().Step(0, 1))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, seq.Pattern().Step(0, 1))
}

func TestRegenerate(t *testing.T) {
	m, seq, _ := newSurface(t)
	before := seq.Pattern().LastSeed()
	press(t, m, runes("g"))
	assert.NotEqual(t, before, seq.Pattern().LastSeed())
	assert.Equal(t, []int{0, 8, 16, 24}, seq.Pattern().Get().Hits(grooveseq.PadKick))
}

func TestArmAndPreview(t *testing.T) {
	m, seq, _ := newSurface(t)
	m = press(t, m, runes("j"), runes("a"))
	assert.True(t, seq.Pads().Armed(1))
	assert.Equal(t, "Snare", seq.Pads().Name(1))
	m = press(t, m, runes("v"), runes("a"))
	assert.False(t, seq.Pads().Armed(1))
	assert.Equal(t, "", seq.Pads().Name(1))
	press(t, m, runes("v"))
}

func TestParamAdjustment(t *testing.T) {
	m, seq, _ := newSurface(t)
	assert.Equal(t, sequencer.SwingParam, m.SelectedParam())
	m = press(t, m, runes("+"), runes("+"))
	assert.Equal(t, float32(10), seq.Params().Float(sequencer.SwingParam).Value())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("-"))
	assert.Equal(t, sequencer.HumanizeParam, m.SelectedParam())
	assert.Equal(t, float32(5.5), seq.Params().Float(sequencer.HumanizeParam).Value())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, sequencer.VelocityRandomParam, m.SelectedParam())
}

func TestTransportKeys(t *testing.T) {
	m, _, transport := newSurface(t)
	m = press(t, m, runes("p"))
	assert.True(t, transport.Playing())
	m = press(t, m, runes("p"))
	assert.False(t, transport.Playing())
	press(t, m, runes("]"), runes("]"), runes("["))
	assert.Equal(t, 122.0, transport.BPM())
}

func TestStepMsgMovesPlayhead(t *testing.T) {
	m, _, _ := newSurface(t)
	assert.Equal(t, sequencer.NotPlaying, m.Playhead())
	updated, _ := m.Update(tui.StepMsg(7))
	assert.Equal(t, 7, updated.(tui.Model).Playhead())
	assert.Contains(t, updated.View(), "step:08")
}

func TestQuit(t *testing.T) {
	m, _, _ := newSurface(t)
	updated, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, updated.View())
}

func TestViewShowsGridAndParams(t *testing.T) {
	m, _, _ := newSurface(t)
	view := m.View()
	assert.Contains(t, view, "grooveseq")
	assert.Contains(t, view, "Kick")
	assert.Contains(t, view, "Swing")
	assert.Contains(t, view, "Velocity Random")
	lines := 0
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "x") || strings.Contains(line, "·") {
			lines++
		}
	}
	assert.GreaterOrEqual(t, lines, grooveseq.PadCount)
}

func TestKeyMapUnbind(t *testing.T) {
	keys := tui.DefaultKeyMap()
	assert.Equal(t, tui.Quit, keys["q"])
	assert.Equal(t, "ctrl+c", keys.Hint(tui.Quit))
	keys.Bind(tui.KeyBinding{Key: "q"}, tui.KeyBinding{Key: "x", Action: tui.Quit})
	_, bound := keys["q"]
	assert.False(t, bound)
	assert.Equal(t, "ctrl+c", keys.Hint(tui.Quit))
	assert.Equal(t, "enter", keys.Hint(tui.ToggleStep))
}
