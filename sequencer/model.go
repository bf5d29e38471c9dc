package sequencer

import (
	"math/rand/v2"
	"time"

	"github.com/grooveseq/grooveseq"
	"github.com/sirupsen/logrus"
)

type (
	// Model is the control surface half of the sequencer, owned by the UI
	// goroutine. It shares the stores with the Player it was created with.
	Model struct {
		store   *PatternStore
		params  *Params
		pads    *PadTable
		preview *PreviewQueue
		cursor  *StepCursor
		broker  *Broker
		log     logrus.FieldLogger

		rng      *rand.Rand
		playing  bool
		lastSeed uint32
		alerts   []Alert
	}

	// ModelOption configures NewModelPlayer.
	ModelOption func(*modelOptions)

	modelOptions struct {
		log          logrus.FieldLogger
		seed1, seed2 uint64
		seeded       bool
	}

	PatternModel Model
	ParamsModel  Model
	PadsModel    Model
)

// WithLogger sets the logger of the Model; the default is the logrus standard
// logger.
func WithLogger(log logrus.FieldLogger) ModelOption {
	return func(o *modelOptions) { o.log = log }
}

// WithSeed makes the seeds of Regenerate, and the jitter of the Player,
// reproducible.
func WithSeed(seed1, seed2 uint64) ModelOption {
	return func(o *modelOptions) { o.seed1, o.seed2, o.seeded = seed1, seed2, true }
}

const maxAlerts = 8

// NewModelPlayer creates a Model and a Player sharing the same pattern,
// parameters, pads, preview queue and step cursor. The pattern starts out
// generated with the default parameters, a random seed and all pads active.
func NewModelPlayer(broker *Broker, opts ...ModelOption) (*Model, *Player) {
	o := modelOptions{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed1, o.seed2 = rand.Uint64(), rand.Uint64()
	}
	m := &Model{
		store:   NewPatternStore(grooveseq.Pattern{}),
		params:  NewParams(),
		pads:    &PadTable{},
		preview: &PreviewQueue{},
		cursor:  NewStepCursor(),
		broker:  broker,
		log:     o.log,
		rng:     rand.New(rand.NewPCG(o.seed1, o.seed2)),
	}
	m.Pattern().Regenerate()
	p := &Player{
		store:     m.store,
		params:    m.params,
		cursor:    m.cursor,
		preview:   m.preview,
		broker:    broker,
		scheduler: grooveseq.NewScheduler(o.seed2, o.seed1),
	}
	return m, p
}

func (m *Model) Pattern() *PatternModel { return (*PatternModel)(m) }
func (m *Model) Params() *ParamsModel   { return (*ParamsModel)(m) }
func (m *Model) Pads() *PadsModel       { return (*PadsModel)(m) }

// Cursor returns the step cursor published by the Player, e.g. for Watch.
func (m *Model) Cursor() *StepCursor { return m.cursor }

// CurrentStep returns the in-cycle step last started by the Player, or
// NotPlaying.
func (m *Model) CurrentStep() int { return m.cursor.Load() }

// Playing reports whether the Player last reported the transport as playing.
func (m *Model) Playing() bool { return m.playing }

// Alerts returns the most recent alerts, oldest first. Expired alerts are
// kept until newer ones push them out; see Alert.Active.
func (m *Model) Alerts() []Alert { return m.alerts }

// Drain processes all the messages the Player has sent so far, without
// blocking.
func (m *Model) Drain() {
	for {
		select {
		case msg := <-m.broker.ToModel:
			m.ProcessPlayerMessage(msg)
		default:
			return
		}
	}
}

func (m *Model) ProcessPlayerMessage(msg MsgToModel) {
	if msg.HasPlaying && msg.Playing != m.playing {
		m.playing = msg.Playing
		if m.playing {
			m.log.Info("transport started")
		} else {
			m.log.Info("transport stopped")
		}
	}
	if msg.HasAlert {
		m.addAlert(msg.Alert)
	}
}

func (m *Model) addAlert(a Alert) {
	if a.Duration == 0 {
		a.Duration = defaultAlertDuration
	}
	if a.Posted.IsZero() {
		a.Posted = time.Now()
	}
	entry := m.log.WithField("alert", a.Name)
	switch a.Priority {
	case Error:
		entry.Error(a.Message)
	case Warning:
		entry.Warn(a.Message)
	default:
		entry.Info(a.Message)
	}
	for i := range m.alerts {
		if m.alerts[i].Name != "" && m.alerts[i].Name == a.Name {
			m.alerts = append(m.alerts[:i], m.alerts[i+1:]...)
			break
		}
	}
	m.alerts = append(m.alerts, a)
	if len(m.alerts) > maxAlerts {
		m.alerts = m.alerts[len(m.alerts)-maxAlerts:]
	}
}

// Pattern methods

// Step returns false for indices out of range.
func (m *PatternModel) Step(pad, step int) bool { return m.store.Step(pad, step) }

// SetStep ignores indices out of range.
func (m *PatternModel) SetStep(pad, step int, active bool) { m.store.SetStep(pad, step, active) }

func (m *PatternModel) Toggle(pad, step int) bool { return m.store.Toggle(pad, step) }

// Get returns a copy of the current pattern.
func (m *PatternModel) Get() grooveseq.Pattern { return m.store.Pattern() }

// Set replaces the whole pattern.
func (m *PatternModel) Set(p grooveseq.Pattern) { m.store.Replace(p) }

func (m *PatternModel) Clear() { m.store.Replace(grooveseq.Pattern{}) }

// LastSeed returns the seed of the last generated pattern.
func (m *PatternModel) LastSeed() uint32 { return m.lastSeed }

// Regenerate generates a new pattern with a random seed, the current density
// and fills, and the armed pads (all pads if none is armed).
func (m *PatternModel) Regenerate() {
	m.RegenerateWith(grooveseq.GenerateParams{
		Density:    m.params.Get(DensityParam),
		Fills:      m.params.Get(FillsParam),
		Seed:       m.rng.Uint32(),
		ActivePads: (*PadsModel)(m).Active(),
	})
}

// RegenerateWith replaces the pattern with one generated from params.
func (m *PatternModel) RegenerateWith(params grooveseq.GenerateParams) {
	p := grooveseq.Generate(params)
	m.store.Replace(p)
	m.lastSeed = params.Seed
	m.log.WithFields(logrus.Fields{
		"seed":    params.Seed,
		"density": params.Density,
		"fills":   params.Fills,
		"hits":    p.Count(),
	}).Debug("pattern generated")
}

// Params methods

// Float returns a Float controlling the parameter. Changes are seen by the
// Player on the next block and by the next regeneration.
func (m *ParamsModel) Float(id ParamID) Float { return Float{paramFloat{m.params, id}} }

// Groove returns the current timing and dynamics parameters.
func (m *ParamsModel) Groove() grooveseq.Groove { return m.params.Groove() }

// Reset sets every parameter back to its default.
func (m *ParamsModel) Reset() {
	for id := ParamID(0); id < NumParams; id++ {
		m.params.Set(id, id.Info().Default)
	}
}

// Pads methods

// Arm marks the pad as playable with a display name.
func (m *PadsModel) Arm(pad int, name string) { m.pads.Arm(pad, name) }

func (m *PadsModel) Disarm(pad int) { m.pads.Disarm(pad) }

func (m *PadsModel) Armed(pad int) bool { return m.pads.Armed(pad) }

func (m *PadsModel) Name(pad int) string { return m.pads.Name(pad) }

// Mask returns the armed pads.
func (m *PadsModel) Mask() grooveseq.PadMask { return m.pads.Mask() }

// Active returns the pads a regeneration writes to: the armed pads, or all
// pads if none is armed.
func (m *PadsModel) Active() grooveseq.PadMask {
	if mask := m.pads.Mask(); mask.Any() {
		return mask
	}
	return grooveseq.AllPads()
}

// Preview asks the Player to trigger the pad at the start of the next block.
// It reports whether the trigger was queued: pads that are not armed are not
// previewed.
func (m *PadsModel) Preview(pad int) bool {
	if !m.pads.Armed(pad) {
		return false
	}
	if !m.preview.Push(pad) {
		(*Model)(m).addAlert(Alert{Name: "PreviewFull", Priority: Warning, Message: "too many pad previews queued"})
		return false
	}
	return true
}
