// Package report renders patterns as text using text/template and the sprig
// function library.
package report

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/grooveseq/grooveseq"
)

type (
	Report struct {
		Template *template.Template
	}

	// Data is what the templates are executed with.
	Data struct {
		Pattern  grooveseq.Pattern
		Seed     uint32
		Density  float32
		Fills    float32
		PadNames [grooveseq.PadCount]string
	}

	PadRow struct {
		Index int
		Name  string
		Row   string
		Hits  []int
		Count int
	}
)

//go:embed templates/*
var templateFS embed.FS

// New returns a report using the embedded templates.
func New() (*Report, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.*")
	if err != nil {
		return nil, fmt.Errorf("could not create templates: %w", err)
	}
	return &Report{Template: tmpl}, nil
}

// NewFromTemplates returns a report using the templates in a directory.
func NewFromTemplates(templateDirectory string) (*Report, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf("could not create template based on directory %q: %w", templateDirectory, err)
	}
	return &Report{Template: tmpl}, nil
}

// Formats returns the names of the templates without their extensions, sorted.
func (r *Report) Formats() []string {
	var ret []string
	for _, t := range r.Template.Templates() {
		name := t.Name()
		if ext := filepath.Ext(name); ext != "" {
			ret = append(ret, strings.TrimSuffix(name, ext))
		}
	}
	slices.Sort(ret)
	return ret
}

// Render executes the template of the format, e.g. "text" for text.txt.
func (r *Report) Render(w io.Writer, format string, data Data) error {
	for _, t := range r.Template.Templates() {
		name := t.Name()
		if ext := filepath.Ext(name); ext != "" && strings.TrimSuffix(name, ext) == format {
			if err := r.Template.ExecuteTemplate(w, name, data); err != nil {
				return fmt.Errorf("could not execute template %q: %w", name, err)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown report format %q, available formats are %s", format, strings.Join(r.Formats(), ", "))
}

// Pads returns the rows of the pattern with the pad names.
func (d Data) Pads() []PadRow {
	ret := make([]PadRow, grooveseq.PadCount)
	for pad := range ret {
		hits := d.Pattern.Hits(pad)
		ret[pad] = PadRow{Index: pad, Name: d.PadNames[pad], Row: d.Pattern.Row(pad), Hits: hits, Count: len(hits)}
	}
	return ret
}

func (d Data) Total() int { return d.Pattern.Count() }

// Grouped returns the row with the beats separated by spaces.
func (r PadRow) Grouped() string {
	var b strings.Builder
	for i := 0; i < len(r.Row); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.Row[i:min(i+4, len(r.Row))])
	}
	return b.String()
}
