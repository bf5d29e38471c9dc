package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/cmd"
	"github.com/grooveseq/grooveseq/config"
	"github.com/grooveseq/grooveseq/oto"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/grooveseq/grooveseq/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type playOptions struct {
	pattern    string
	midiOutput string
	bpm        float64
	headless   bool
	stopped    bool
	logFile    string
}

func init() {
	rootCmd.AddCommand(newPlayCmd())
}

func newPlayCmd() *cobra.Command {
	var opts playOptions
	c := &cobra.Command{
		Use:   "play",
		Short: "Play patterns to a MIDI output",
		Long: `Play runs the sequencer on the audio clock of the system, sending the notes to a
MIDI output port, and shows the pattern in the terminal for editing.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			prefs, logger, err := loadPreferences()
			if err != nil {
				return err
			}
			if !c.Flags().Changed("midi-output") {
				opts.midiOutput = prefs.MIDI.Output
			}
			if !c.Flags().Changed("bpm") {
				opts.bpm = prefs.FreeRun.BPM
			}
			return play(opts, prefs, logger)
		},
	}
	f := c.Flags()
	f.StringVarP(&opts.pattern, "pattern", "p", "", "load the pattern `file` written by generate")
	f.StringVar(&opts.midiOutput, "midi-output", "", "connect to the MIDI output with matching name prefix")
	f.Float64Var(&opts.bpm, "bpm", grooveseq.DefaultBPM, "tempo")
	f.BoolVar(&opts.headless, "headless", false, "play without the terminal interface until interrupted")
	f.BoolVar(&opts.stopped, "stopped", false, "do not start the transport")
	f.StringVar(&opts.logFile, "log-file", "", "append the log to `file`")
	return c
}

func play(opts playOptions, prefs config.Preferences, logger *logrus.Logger) error {
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("could not open the log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else if !opts.headless {
		// the terminal belongs to the interface
		logger.SetOutput(io.Discard)
	}

	broker := sequencer.NewBroker()
	model, player := sequencer.NewModelPlayer(broker, sequencer.WithLogger(logger))
	prefs.ApplyParams(model.Params())
	if opts.pattern != "" {
		f, err := os.Open(opts.pattern)
		if err != nil {
			return fmt.Errorf("could not open the pattern: %w", err)
		}
		doc, err := sequencer.ReadDocument(f)
		f.Close()
		if err != nil {
			return err
		}
		model.SetDocument(doc)
	}

	output, err := cmd.OpenMIDIOutput(opts.midiOutput, prefs.MIDI.Channel)
	switch {
	case err == nil:
		logger.WithField("port", output.Name()).Info("MIDI output opened")
		cmd.ArmGMDrums(model.Pads())
		player.SetForwarding(true)
		go sequencer.RunOutput(broker, output, prefs.MIDI.Latency(), func(err error) {
			logger.WithError(err).Error("MIDI output failed")
		})
		defer closeOutput(broker, output, logger)
	case opts.midiOutput != "" || errors.Is(err, cmd.ErrNoMIDI):
		return err
	default:
		logger.WithError(err).Warn("playing without MIDI output")
	}

	audio, err := oto.NewContext(prefs.Audio.SampleRate, prefs.Audio.BufferSize())
	if err != nil {
		return err
	}
	defer audio.Close()
	transport := sequencer.NewFreeRunContext(float64(audio.SampleRate()), opts.bpm)
	if !opts.stopped {
		transport.Play(true)
	}
	audioCloser := startAudio(audio, player, transport)
	defer func() {
		if err := audioCloser.Close(); err != nil {
			logger.WithError(err).Error("audio playback failed")
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if opts.headless {
		runHeadless(ctx, model, logger)
		return nil
	}
	keys, err := tui.LoadKeyMap()
	if err != nil {
		logger.WithError(err).Warn("ignoring the user key bindings")
	}
	program := tea.NewProgram(tui.NewModel(model, transport, keys), tea.WithAltScreen(), tea.WithContext(ctx))
	go sequencer.Watch(ctx, model.Cursor(), sequencer.DefaultWatchInterval, func(step int) {
		program.Send(tui.StepMsg(step))
	})
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal interface failed: %w", err)
	}
	return nil
}

// startAudio processes the player every time the audio context needs a
// buffer. The notes only go to the MIDI output, so the audio is silence.
func startAudio(audio grooveseq.AudioContext, player *sequencer.Player, transport sequencer.PlayerProcessContext) io.Closer {
	events := make([]grooveseq.NoteEvent, 0, 1024)
	return audio.Play(func(buf grooveseq.AudioBuffer) error {
		events = player.Process(len(buf), transport, events[:0])
		buf.Clear()
		return nil
	})
}

// runHeadless owns the model until ctx is done, logging the playhead.
func runHeadless(ctx context.Context, model *sequencer.Model, logger *logrus.Logger) {
	go sequencer.Watch(ctx, model.Cursor(), sequencer.DefaultWatchInterval, func(step int) {
		logger.WithField("step", step).Trace("playhead moved")
	})
	ticker := time.NewTicker(sequencer.DefaultWatchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			model.Drain()
		}
	}
}

func closeOutput(broker *sequencer.Broker, output cmd.MIDIOutput, logger *logrus.Logger) {
	broker.CloseOutput <- struct{}{}
	select {
	case <-broker.FinishedOutput:
	case <-time.After(3 * time.Second):
		logger.Warn("MIDI output did not finish in time")
	}
	if err := output.Close(); err != nil {
		logger.WithError(err).Error("closing the MIDI output failed")
	}
}
