package tui

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/grooveseq/grooveseq/config"
	"gopkg.in/yaml.v3"
)

type (
	KeyAction string

	KeyBinding struct {
		Key    string
		Action KeyAction
	}

	// KeyMap maps the strings of tea.KeyMsg to actions.
	KeyMap map[string]KeyAction
)

const (
	Quit           KeyAction = "Quit"
	MoveUp         KeyAction = "MoveUp"
	MoveDown       KeyAction = "MoveDown"
	MoveLeft       KeyAction = "MoveLeft"
	MoveRight      KeyAction = "MoveRight"
	ToggleStep     KeyAction = "ToggleStep"
	Regenerate     KeyAction = "Regenerate"
	ClearPattern   KeyAction = "ClearPattern"
	TogglePadArmed KeyAction = "TogglePadArmed"
	PreviewPad     KeyAction = "PreviewPad"
	PlayStop       KeyAction = "PlayStop"
	Rewind         KeyAction = "Rewind"
	NextParam      KeyAction = "NextParam"
	PreviousParam  KeyAction = "PreviousParam"
	ParamUp        KeyAction = "ParamUp"
	ParamDown      KeyAction = "ParamDown"
	TempoUp        KeyAction = "TempoUp"
	TempoDown      KeyAction = "TempoDown"
)

//go:embed keybindings.yml
var defaultKeyBindings []byte

// DefaultKeyMap returns the embedded key bindings.
func DefaultKeyMap() KeyMap {
	var keyBindings []KeyBinding
	if err := decodeKeyBindings(defaultKeyBindings, &keyBindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	return KeyMap{}.Bind(keyBindings...)
}

// LoadKeyMap returns the default key bindings, extended by keybindings.yml in
// the user config dir if it exists. A binding with an empty action unbinds
// the key.
func LoadKeyMap() (KeyMap, error) {
	keyMap := DefaultKeyMap()
	path, err := config.CustomConfigPath("keybindings.yml")
	if err != nil {
		return keyMap, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return keyMap, nil
	}
	var userKeyBindings []KeyBinding
	if err := decodeKeyBindings(contents, &userKeyBindings); err != nil {
		return keyMap, fmt.Errorf("%s: %w", path, err)
	}
	return keyMap.Bind(userKeyBindings...), nil
}

// Bind adds the bindings to the map, later bindings of the same key winning.
func (k KeyMap) Bind(bindings ...KeyBinding) KeyMap {
	for _, kb := range bindings {
		if kb.Action == "" { // unbind
			delete(k, kb.Key)
		} else {
			k[kb.Key] = kb.Action
		}
	}
	return k
}

// Hint returns the first printable key, in sorted order, bound to the
// action.
func (k KeyMap) Hint(action KeyAction) string {
	hint := ""
	for key, a := range k {
		if strings.TrimSpace(key) == "" {
			continue
		}
		if a == action && (hint == "" || key < hint) {
			hint = key
		}
	}
	return hint
}

func decodeKeyBindings(contents []byte, target *[]KeyBinding) error {
	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(true)
	return dec.Decode(target)
}
