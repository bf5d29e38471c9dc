package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grooveseq/grooveseq/config"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchParams(t *testing.T) {
	p := config.Defaults()
	require.NoError(t, p.Validate())
	assert.Equal(t, 44100, p.Audio.SampleRate)
	assert.Equal(t, 20*time.Millisecond, p.Audio.BufferSize())
	assert.Equal(t, 120.0, p.FreeRun.BPM)
	assert.Equal(t, uint8(9), p.MIDI.Channel)
	assert.Equal(t, logrus.InfoLevel, p.LogLevel())
	require.Len(t, p.Params, int(sequencer.NumParams))
	for id := sequencer.ParamID(0); id < sequencer.NumParams; id++ {
		assert.Equal(t, id.Info().Default, p.Params[id.Info().Key], id.Info().Key)
	}
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preferences.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "freerun:\n  bpm: 96\nparams:\n  swing: 55\n")
	p, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 96.0, p.FreeRun.BPM)
	assert.Equal(t, float32(55), p.Params["swing"])
	assert.Equal(t, float32(8), p.Params["humanize"], "keys not in the file keep their defaults")
	assert.Equal(t, 44100, p.Audio.SampleRate)

	model, _ := sequencer.NewModelPlayer(sequencer.NewBroker())
	p.ApplyParams(model.Params())
	assert.Equal(t, float32(55), model.Params().Float(sequencer.SwingParam).Value())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := config.LoadFile(writeFile(t, "audio:\n  samplerat: 48000\n"))
	assert.Error(t, err, "unknown fields should be rejected")

	_, err = config.LoadFile(writeFile(t, "params:\n  tempo: 3\n"))
	assert.ErrorIs(t, err, config.ErrUnknownParam)

	_, err = config.LoadFile(writeFile(t, "log:\n  level: loud\n"))
	assert.Error(t, err)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFileOverridesEveryParam(t *testing.T) {
	path := writeFile(t, "params:\n  swing: 20\n  humanize: 0\n  fills: 1\n  density: 0.25\n  velocity: 0\n")
	p, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]float32{"swing": 20, "humanize": 0, "fills": 1, "density": 0.25, "velocity": 0}, p.Params)
}

func TestLoadFileRejectsDuplicateParams(t *testing.T) {
	_, err := config.LoadFile(writeFile(t, "params:\n  swing: 20\n  swing: 30\n"))
	assert.Error(t, err)
}

func TestMakePreferencesReadsUserConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)
	path, err := config.CustomConfigPath("preferences.yml")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("params:\n  density: 0.9\n"), 0o644))

	p := config.MakePreferences()
	require.NoError(t, p.YmlError)
	assert.Equal(t, float32(0.9), p.Params["density"])
	assert.Equal(t, float32(0.15), p.Params["fills"])
}
