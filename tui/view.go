package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/sequencer"
)

type styles struct {
	header, dim, selected, warning lipgloss.Style
	hit, rest, cursor, playhead    lipgloss.Style
	armed, disarmed                lipgloss.Style
}

const labelWidth = 16

func defaultStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true),
		warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		hit:      lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		rest:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		cursor:   lipgloss.NewStyle().Reverse(true),
		playhead: lipgloss.NewStyle().Background(lipgloss.Color("58")),
		armed:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		disarmed: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(m.headerView())
	out.WriteString("\n\n")
	out.WriteString(m.gridView())
	out.WriteString("\n")
	out.WriteString(m.paramsView())
	out.WriteString("\n\n")
	if alert := m.alertView(); alert != "" {
		out.WriteString(alert)
		out.WriteString("\n")
	}
	out.WriteString(m.helpView())
	return out.String()
}

func (m Model) headerView() string {
	state := "STOP"
	if m.seq.Playing() {
		state = "PLAY"
	}
	tempo := "host"
	if m.transport != nil {
		tempo = fmt.Sprintf("%3.0fbpm", m.transport.BPM())
	}
	step := "--"
	if m.playhead != sequencer.NotPlaying {
		step = fmt.Sprintf("%02d", m.playhead+1)
	}
	return m.styles.header.Render(fmt.Sprintf("grooveseq  %s  %s  step:%s  seed:%d", state, tempo, step, m.seq.Pattern().LastSeed()))
}

func (m Model) gridView() string {
	pattern := m.seq.Pattern().Get()
	var out strings.Builder
	for pad := 0; pad < grooveseq.PadCount; pad++ {
		out.WriteString(m.padLabelView(pad))
		out.WriteString(" ")
		for step := 0; step < grooveseq.StepCount; step++ {
			if step > 0 && step%4 == 0 {
				out.WriteString(" ")
			}
			out.WriteString(m.cellView(pad, step, pattern[pad][step]))
		}
		out.WriteString("\n")
	}
	return out.String()
}

func (m Model) padLabelView(pad int) string {
	name := m.seq.Pads().Name(pad)
	if name == "" {
		name = m.padLabel(pad)
	}
	if len(name) > labelWidth {
		name = name[:labelWidth]
	}
	label := fmt.Sprintf("%2d %-*s", pad+1, labelWidth, name)
	if pad == m.pad {
		return m.styles.selected.Render(label)
	}
	if m.seq.Pads().Armed(pad) {
		return m.styles.armed.Render(label)
	}
	return m.styles.disarmed.Render(label)
}

func (m Model) cellView(pad, step int, hit bool) string {
	style := m.styles.rest
	cell := "·"
	if hit {
		style = m.styles.hit
		cell = "x"
	}
	if step == m.playhead {
		style = style.Inherit(m.styles.playhead)
	}
	if pad == m.pad && step == m.step {
		style = style.Inherit(m.styles.cursor)
	}
	return style.Render(cell)
}

func (m Model) paramsView() string {
	parts := make([]string, 0, sequencer.NumParams)
	for id := sequencer.ParamID(0); id < sequencer.NumParams; id++ {
		info := id.Info()
		text := fmt.Sprintf("%s %s%s", info.Name, formatParam(m.seq.Params().Float(id).Value(), info), info.Unit)
		if id == m.param {
			text = m.styles.selected.Render(text)
		} else {
			text = m.styles.dim.Render(text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "   ")
}

func formatParam(v float32, info sequencer.ParamInfo) string {
	if info.Max > 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func (m Model) alertView() string {
	alerts := m.seq.Alerts()
	now := m.now()
	for i := len(alerts) - 1; i >= 0; i-- {
		if alerts[i].Active(now) {
			return m.styles.warning.Render(fmt.Sprintf("%s: %s", alerts[i].Priority, alerts[i].Message))
		}
	}
	return ""
}

type hint struct {
	action KeyAction
	text   string
}

func (m Model) helpView() string {
	hints := []hint{
		{MoveUp, "pad"}, {MoveLeft, "step"}, {ToggleStep, "toggle"}, {Regenerate, "generate"},
		{ClearPattern, "clear"}, {TogglePadArmed, "arm"}, {PreviewPad, "preview"},
		{NextParam, "param"}, {ParamUp, "more"}, {ParamDown, "less"},
	}
	if m.transport != nil {
		hints = append(hints, hint{PlayStop, "play"}, hint{TempoUp, "tempo"})
	}
	hints = append(hints, hint{Quit, "quit"})
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		if key := m.keys.Hint(h.action); key != "" {
			parts = append(parts, key+":"+h.text)
		}
	}
	return m.styles.dim.Render(strings.Join(parts, "  "))
}
