package sequencer

import (
	"errors"
	"fmt"
	"io"

	"github.com/grooveseq/grooveseq"
	"gopkg.in/yaml.v3"
)

// Document is the state of the control surface that is saved to pattern files
// and plugin chunks: the pattern, the seed it was generated from and the
// parameter values keyed by ParamInfo.Key.
type Document struct {
	Seed    uint32             `yaml:",omitempty"`
	Params  map[string]float32 `yaml:",omitempty"`
	Pattern grooveseq.Pattern
}

var ErrInvalidDocument = errors.New("invalid pattern document")

// ReadDocument decodes a YAML document. Unknown fields and parameters are
// errors.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	for key := range d.Params {
		if _, ok := ParamByKey(key); !ok {
			return Document{}, fmt.Errorf("%w: unknown parameter %q", ErrInvalidDocument, key)
		}
	}
	return d, nil
}

func (d Document) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding the pattern document failed: %w", err)
	}
	return enc.Close()
}

// Document returns the current state of the Model.
func (m *Model) Document() Document {
	d := Document{
		Seed:    m.lastSeed,
		Params:  make(map[string]float32, NumParams),
		Pattern: m.store.Pattern(),
	}
	for id := ParamID(0); id < NumParams; id++ {
		d.Params[id.Info().Key] = m.params.Get(id)
	}
	return d
}

// SetDocument replaces the pattern and sets the parameters in the document;
// parameters missing from the document keep their values.
func (m *Model) SetDocument(d Document) {
	for key, value := range d.Params {
		if id, ok := ParamByKey(key); ok {
			m.params.Set(id, value)
		}
	}
	m.store.Replace(d.Pattern)
	m.lastSeed = d.Seed
	m.log.WithField("seed", d.Seed).Debug("pattern document loaded")
}
