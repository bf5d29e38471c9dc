//go:build plugin

package main

import (
	"bytes"
	"time"

	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/cmd"
	"github.com/grooveseq/grooveseq/config"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/sirupsen/logrus"
	"pipelined.dev/audio/vst2"
)

const (
	PLUGIN_ID   = 'G'<<24 | 'r'<<16 | 'v'<<8 | 'S'
	PLUGIN_NAME = "grooveseq"
)

type VSTIProcessContext struct {
	host       vst2.Host
	sampleRate float64
}

const timeInfoFlags = vst2.TempoValid | vst2.PpqPosValid | vst2.TimeSigValid

func (c *VSTIProcessContext) Transport() (grooveseq.Transport, bool) {
	timeInfo := c.host.GetTimeInfo(timeInfoFlags)
	if timeInfo == nil {
		return grooveseq.Transport{}, false
	}
	if timeInfo.SampleRate > 0 {
		c.sampleRate = timeInfo.SampleRate
	}
	tr := grooveseq.Transport{Playing: timeInfo.Flags&vst2.TransportPlaying != 0}
	if timeInfo.Flags&vst2.TempoValid != 0 {
		tr.BPM = timeInfo.Tempo
	}
	if timeInfo.Flags&vst2.PpqPosValid != 0 {
		tr.PPQ = timeInfo.PpqPos
	} else {
		// derive the position from the sample position, assuming the tempo
		// has been constant
		bpm := tr.BPM
		if bpm <= 0 {
			bpm = grooveseq.DefaultBPM
		}
		tr.PPQ = timeInfo.SamplePos / c.SampleRate() * bpm / 60
	}
	if timeInfo.Flags&vst2.TimeSigValid != 0 {
		tr.TimeSigNumerator = int(timeInfo.TimeSigNumerator)
		tr.TimeSigDenominator = int(timeInfo.TimeSigDenominator)
	}
	return tr, true
}

func (c *VSTIProcessContext) SampleRate() float64 {
	if c.sampleRate <= 0 {
		return grooveseq.DefaultSampleRate
	}
	return c.sampleRate
}

func (c *VSTIProcessContext) FinishBlock(frames int) {}

// modelLoop owns the model: the functions sent to exec are run in the same
// goroutine that drains the player messages.
func modelLoop(model *sequencer.Model, exec <-chan func(), quit <-chan struct{}) {
	ticker := time.NewTicker(sequencer.DefaultWatchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case f := <-exec:
			f()
		case <-ticker.C:
			model.Drain()
		}
	}
}

func init() {
	var (
		version = int32(100)
	)
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		prefs := config.MakePreferences()
		logger := logrus.New()
		logger.SetLevel(prefs.LogLevel())
		if prefs.YmlError != nil {
			logger.WithError(prefs.YmlError).Warn("ignoring the user preferences")
			prefs = config.Defaults()
		}
		broker := sequencer.NewBroker()
		model, player := sequencer.NewModelPlayer(broker, sequencer.WithLogger(logger))
		prefs.ApplyParams(model.Params())
		output, err := cmd.OpenMIDIOutput(prefs.MIDI.Output, prefs.MIDI.Channel)
		if err == nil {
			cmd.ArmGMDrums(model.Pads())
			player.SetForwarding(true)
			go sequencer.RunOutput(broker, output, prefs.MIDI.Latency(), func(err error) {
				logger.WithError(err).Error("MIDI output failed")
			})
		} else {
			logger.WithError(err).Warn("running without MIDI output")
		}
		exec := make(chan func())
		quit := make(chan struct{})
		go modelLoop(model, exec, quit)

		context := VSTIProcessContext{host: h}
		events := make([]grooveseq.NoteEvent, 0, 1024)
		return vst2.Plugin{
				UniqueID:       PLUGIN_ID,
				Version:        version,
				InputChannels:  0,
				OutputChannels: 2,
				Name:           PLUGIN_NAME,
				Vendor:         "grooveseq",
				Category:       vst2.PluginCategorySynth,
				Flags:          vst2.PluginIsSynth,
				ProcessFloatFunc: func(in, out vst2.FloatBuffer) {
					events = player.Process(out.Frames, &context, events[:0])
					for ch := 0; ch < 2; ch++ {
						clear(out.Channel(ch))
					}
				},
			}, vst2.Dispatcher{
				CanDoFunc: func(pcds vst2.PluginCanDoString) vst2.CanDoResponse {
					switch pcds {
					case vst2.PluginCanReceiveEvents, vst2.PluginCanReceiveMIDIEvent, vst2.PluginCanReceiveTimeInfo:
						return vst2.YesCanDo
					}
					return vst2.NoCanDo
				},
				ProcessEventsFunc: func(ev *vst2.EventsPtr) {
					for i := 0; i < ev.NumEvents(); i++ {
						v, ok := ev.Event(i).(*vst2.MIDIEvent)
						// note-ons with a non-zero velocity trigger the pads
						if !ok || v.Data[0]&0xf0 != 0x90 || v.Data[2] == 0 {
							continue
						}
						if pad, ok := grooveseq.PadForNote(v.Data[1]); ok {
							player.Trigger(pad)
						}
					}
				},
				CloseFunc: func() {
					close(quit)
					if output != nil {
						broker.CloseOutput <- struct{}{}
						sequencer.TimeoutReceive(broker.FinishedOutput, 3*time.Second)
						if err := output.Close(); err != nil {
							logger.WithError(err).Error("closing the MIDI output failed")
						}
					}
				},
				GetChunkFunc: func(isPreset bool) []byte {
					retChn := make(chan []byte)
					exec <- func() {
						var buf bytes.Buffer
						if err := model.Document().Write(&buf); err != nil {
							logger.WithError(err).Error("saving the pattern failed")
						}
						retChn <- buf.Bytes()
					}
					return <-retChn
				},
				SetChunkFunc: func(data []byte, isPreset bool) {
					doc, err := sequencer.ReadDocument(bytes.NewReader(data))
					if err != nil {
						logger.WithError(err).Error("loading the pattern failed")
						return
					}
					exec <- func() { model.SetDocument(doc) }
				},
			}

	}
}

func main() {}
