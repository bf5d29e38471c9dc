// Package tui is a terminal control surface for the sequencer, built on
// bubbletea: a grid of the pattern with the playhead, the parameters and the
// pads.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/sequencer"
)

type (
	// Transport is the transport the surface can start and stop. When the
	// host owns the transport, Model is given none.
	Transport interface {
		Play(rewind bool)
		Stop()
		Playing() bool
		BPM() float64
		SetBPM(bpm float64)
	}

	Model struct {
		seq       *sequencer.Model
		transport Transport
		keys      KeyMap
		styles    styles

		pad, step int
		param     sequencer.ParamID
		playhead  int
		padLabel  func(pad int) string
		now       func() time.Time
		quitting  bool
	}

	// StepMsg tells the playhead moved. It is the only source of the
	// playhead; feed it from sequencer.Watch.
	StepMsg int

	tickMsg time.Time
)

const (
	paramSteps = 20 // ParamUp and ParamDown move by 1/paramSteps of the range
	bpmStep    = 2
	minBPM     = 20
	maxBPM     = 300
)

// NewModel creates the surface. transport may be nil.
func NewModel(seq *sequencer.Model, transport Transport, keys KeyMap) Model {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return Model{
		seq:       seq,
		transport: transport,
		keys:      keys,
		styles:    defaultStyles(),
		playhead:  sequencer.NotPlaying,
		padLabel:  defaultPadLabel,
		now:       time.Now,
	}
}

// WithPadLabel sets the label shown for the pads that have no name.
func (m Model) WithPadLabel(label func(pad int) string) Model {
	m.padLabel = label
	return m
}

func tick() tea.Cmd {
	return tea.Tick(sequencer.DefaultWatchInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys[msg.String()])
	case StepMsg:
		m.playhead = int(msg)
	case tickMsg:
		m.seq.Drain()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleAction(action KeyAction) (tea.Model, tea.Cmd) {
	switch action {
	case Quit:
		m.quitting = true
		return m, tea.Quit
	case MoveUp:
		m.pad = (m.pad + grooveseq.PadCount - 1) % grooveseq.PadCount
	case MoveDown:
		m.pad = (m.pad + 1) % grooveseq.PadCount
	case MoveLeft:
		m.step = (m.step + grooveseq.StepCount - 1) % grooveseq.StepCount
	case MoveRight:
		m.step = (m.step + 1) % grooveseq.StepCount
	case ToggleStep:
		m.seq.Pattern().Toggle(m.pad, m.step)
	case Regenerate:
		m.seq.Pattern().Regenerate()
	case ClearPattern:
		m.seq.Pattern().Clear()
	case TogglePadArmed:
		if m.seq.Pads().Armed(m.pad) {
			m.seq.Pads().Disarm(m.pad)
		} else {
			m.seq.Pads().Arm(m.pad, m.padLabel(m.pad))
		}
	case PreviewPad:
		m.seq.Pads().Preview(m.pad)
	case PlayStop:
		if m.transport != nil {
			if m.transport.Playing() {
				m.transport.Stop()
			} else {
				m.transport.Play(false)
			}
		}
	case Rewind:
		if m.transport != nil {
			m.transport.Play(true)
		}
	case NextParam:
		m.param = (m.param + 1) % sequencer.NumParams
	case PreviousParam:
		m.param = (m.param + sequencer.NumParams - 1) % sequencer.NumParams
	case ParamUp, ParamDown:
		f := m.seq.Params().Float(m.param)
		r := f.Range()
		delta := (r.Max - r.Min) / paramSteps
		if action == ParamDown {
			delta = -delta
		}
		f.Add(delta)
	case TempoUp, TempoDown:
		if m.transport != nil {
			bpm := m.transport.BPM() + bpmStep
			if action == TempoDown {
				bpm = m.transport.BPM() - bpmStep
			}
			m.transport.SetBPM(min(max(bpm, minBPM), maxBPM))
		}
	}
	return m, nil
}

// Cursor returns the pad and step under the edit cursor.
func (m Model) Cursor() (pad, step int) { return m.pad, m.step }

// SelectedParam returns the parameter ParamUp and ParamDown adjust.
func (m Model) SelectedParam() sequencer.ParamID { return m.param }

// Playhead returns the step shown as playing, or sequencer.NotPlaying.
func (m Model) Playhead() int { return m.playhead }

func defaultPadLabel(pad int) string {
	switch pad {
	case grooveseq.PadKick:
		return "Kick"
	case grooveseq.PadSnare:
		return "Snare"
	case grooveseq.PadClosedHat:
		return "Closed Hat"
	case grooveseq.PadOpenHat:
		return "Open Hat"
	case grooveseq.PadPercussion:
		return "Perc"
	}
	return fmt.Sprintf("Layer %d", pad+1)
}
