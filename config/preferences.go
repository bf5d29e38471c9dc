// Package config loads the preferences of grooveseq: the embedded defaults,
// overridden by preferences.yml in the grooveseq directory of the user config
// dir.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type (
	Preferences struct {
		Audio   AudioPreferences
		FreeRun FreeRunPreferences
		MIDI    MIDIPreferences
		Params  map[string]float32
		Log     LogPreferences

		// YmlError is the error of reading the user preferences, if the file
		// existed but could not be read.
		YmlError error `yaml:"-"`
	}

	AudioPreferences struct {
		SampleRate         int
		BufferMilliseconds int
	}

	FreeRunPreferences struct {
		BPM float64
	}

	MIDIPreferences struct {
		Output              string // prefix of the output port name; empty takes the first port
		Channel             uint8  // 0..15
		LatencyMilliseconds int
	}

	LogPreferences struct {
		Level string
	}
)

const configDirName = "grooveseq"

var ErrUnknownParam = errors.New("unknown parameter")

//go:embed defaults.yml
var defaultPreferencesYaml []byte

// Defaults returns the embedded default preferences.
func Defaults() Preferences {
	var preferences Preferences
	err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// ReadCustomConfigYml reads filename from the grooveseq directory of the user
// config dir into target, which should be a pointer.
func ReadCustomConfigYml(filename string, target any) (exists bool, err error) {
	path, err := CustomConfigPath(filename)
	if err != nil {
		return false, err
	}
	return ReadConfigYml(path, target)
}

// CustomConfigPath returns the path of filename in the grooveseq directory of
// the user config dir.
func CustomConfigPath(filename string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configDirName, filename), nil
}

// ReadConfigYml reads the file into target. Unknown fields are errors.
func ReadConfigYml(path string, target any) (exists bool, err error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if err := yaml.UnmarshalStrict(bytes, target); err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// MakePreferences returns the defaults overridden by the user preferences.
// Errors in the user preferences are reported in YmlError.
func MakePreferences() Preferences {
	preferences := Defaults()
	exists, err := preferences.override(func(target any) (bool, error) {
		return ReadCustomConfigYml("preferences.yml", target)
	})
	if exists {
		preferences.YmlError = err
	}
	if err == nil {
		preferences.YmlError = preferences.Validate()
	}
	return preferences
}

// LoadFile returns the defaults overridden by the preferences in path.
func LoadFile(path string) (Preferences, error) {
	preferences := Defaults()
	_, err := preferences.override(func(target any) (bool, error) {
		return ReadConfigYml(path, target)
	})
	if err != nil {
		return preferences, fmt.Errorf("reading preferences failed: %w", err)
	}
	return preferences, preferences.Validate()
}

// override reads the user preferences on top of p. Strict decoding refuses
// keys already present in a map, so the default parameters are taken out
// while reading and put back for the keys the file did not set.
func (p *Preferences) override(read func(target any) (bool, error)) (exists bool, err error) {
	defaults := p.Params
	p.Params = nil
	exists, err = read(p)
	if p.Params == nil {
		p.Params = make(map[string]float32, len(defaults))
	}
	for key, value := range defaults {
		if _, ok := p.Params[key]; !ok {
			p.Params[key] = value
		}
	}
	return exists, err
}

// Validate checks the parameter names.
func (p Preferences) Validate() error {
	for key := range p.Params {
		if _, ok := sequencer.ParamByKey(key); !ok {
			return fmt.Errorf("%w %q in preferences", ErrUnknownParam, key)
		}
	}
	if _, err := logrus.ParseLevel(p.Log.Level); err != nil {
		return fmt.Errorf("invalid log level in preferences: %w", err)
	}
	return nil
}

// ApplyParams sets the parameters of the model to the preferred values.
// Unknown keys are ignored; values are clamped to the ranges of the
// parameters.
func (p Preferences) ApplyParams(params *sequencer.ParamsModel) {
	for key, value := range p.Params {
		if id, ok := sequencer.ParamByKey(key); ok {
			params.Float(id).Set(value)
		}
	}
}

// LogLevel returns the preferred level, or logrus.InfoLevel if it is invalid.
func (p Preferences) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(p.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (a AudioPreferences) BufferSize() time.Duration {
	return time.Duration(a.BufferMilliseconds) * time.Millisecond
}

func (m MIDIPreferences) Latency() time.Duration {
	return time.Duration(m.LatencyMilliseconds) * time.Millisecond
}
