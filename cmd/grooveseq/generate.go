package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/cmd"
	"github.com/grooveseq/grooveseq/report"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/grooveseq/grooveseq/sequencer/gomidi"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	density, fills float32
	seed           uint32
	inactive       []int
	format         string
	output         string
	templates      string
	bpm            float64
	swing          float32
	cycles         int
	channel        uint8
}

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a pattern",
		Long: `Generate a pattern and write it as a pattern file (yaml), a report (text,
markdown or any template given with --templates) or a Standard MIDI File (smf).
The same density, fills, seed and pads always give the same pattern.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			prefs, logger, err := loadPreferences()
			if err != nil {
				return err
			}
			if !c.Flags().Changed("density") {
				opts.density = prefs.Params[sequencer.DensityParam.Info().Key]
			}
			if !c.Flags().Changed("fills") {
				opts.fills = prefs.Params[sequencer.FillsParam.Info().Key]
			}
			if !c.Flags().Changed("swing") {
				opts.swing = prefs.Params[sequencer.SwingParam.Info().Key]
			}
			if !c.Flags().Changed("bpm") {
				opts.bpm = prefs.FreeRun.BPM
			}
			opts.channel = prefs.MIDI.Channel
			if !c.Flags().Changed("seed") {
				opts.seed = rand.Uint32()
			}
			params, err := opts.params()
			if err != nil {
				return err
			}
			pattern := grooveseq.Generate(params)
			logger.WithField("seed", params.Seed).WithField("hits", pattern.Count()).Debug("pattern generated")

			w := c.OutOrStdout()
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return fmt.Errorf("could not create output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return opts.write(w, pattern)
		},
	}
	f := c.Flags()
	f.Float32Var(&opts.density, "density", 0.6, "density of the random hits, 0..1")
	f.Float32Var(&opts.fills, "fills", 0.15, "probability of fills in the last four steps, 0..1")
	f.Uint32Var(&opts.seed, "seed", 0, "random seed (default random)")
	f.IntSliceVar(&opts.inactive, "inactive", nil, "pads (1..16) that get no hits")
	f.StringVarP(&opts.format, "format", "f", "yaml", "output format: yaml, smf or a report format (text, markdown)")
	f.StringVarP(&opts.output, "output", "o", "", "write to `file` instead of stdout")
	f.StringVar(&opts.templates, "templates", "", "use the report templates in `dir`")
	f.Float64Var(&opts.bpm, "bpm", grooveseq.DefaultBPM, "tempo of the MIDI file")
	f.Float32Var(&opts.swing, "swing", 0, "swing of the MIDI file, 0..100")
	f.IntVar(&opts.cycles, "cycles", 1, "how many times the pattern is repeated in the MIDI file")
	return c
}

func (o generateOptions) params() (grooveseq.GenerateParams, error) {
	if o.density < 0 || o.density > 1 || o.fills < 0 || o.fills > 1 {
		return grooveseq.GenerateParams{}, fmt.Errorf("density and fills should be within 0..1")
	}
	active := grooveseq.AllPads()
	for _, pad := range o.inactive {
		if pad < 1 || pad > grooveseq.PadCount {
			return grooveseq.GenerateParams{}, fmt.Errorf("pad %d is not within 1..%d", pad, grooveseq.PadCount)
		}
		active[pad-1] = false
	}
	return grooveseq.GenerateParams{Density: o.density, Fills: o.fills, Seed: o.seed, ActivePads: active}, nil
}

func (o generateOptions) write(w io.Writer, pattern grooveseq.Pattern) error {
	switch o.format {
	case "yaml":
		doc := sequencer.Document{
			Seed: o.seed,
			Params: map[string]float32{
				sequencer.DensityParam.Info().Key: o.density,
				sequencer.FillsParam.Info().Key:   o.fills,
			},
			Pattern: pattern,
		}
		return doc.Write(w)
	case "smf":
		return gomidi.WriteSMF(w, &pattern, gomidi.SMFOptions{BPM: o.bpm, Channel: o.channel, Cycles: o.cycles, SwingPercent: o.swing})
	}
	var (
		r   *report.Report
		err error
	)
	if o.templates != "" {
		r, err = report.NewFromTemplates(o.templates)
	} else {
		r, err = report.New()
	}
	if err != nil {
		return err
	}
	return r.Render(w, o.format, report.Data{
		Pattern:  pattern,
		Seed:     o.seed,
		Density:  o.density,
		Fills:    o.fills,
		PadNames: cmd.GMDrumNames(),
	})
}
