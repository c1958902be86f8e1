package presentation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"FinCompare/internal/domain/models"
)

// ErrNoDescription is returned for codes without a description.
var ErrNoDescription = errors.New("no description for ratio")

// Describer renders ratio descriptions as markdown or HTML.
type Describer struct {
	md goldmark.Markdown
}

// NewDescriber creates a Describer with GitHub flavored markdown enabled.
func NewDescriber() *Describer {
	return &Describer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

// Describe returns the description for a display code. When withHTML is set
// the markdown is also rendered to HTML.
func (d *Describer) Describe(code string, withHTML bool) (models.RatioDescription, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	text, ok := descriptionText[code]
	if !ok {
		return models.RatioDescription{}, fmt.Errorf("%w: %q", ErrNoDescription, code)
	}

	desc := models.RatioDescription{
		Code:     code,
		Title:    text.title,
		Markdown: "# " + text.title + "\n\n" + text.body + "\n",
	}
	if !withHTML {
		return desc, nil
	}

	var buf bytes.Buffer
	if err := d.md.Convert([]byte(desc.Markdown), &buf); err != nil {
		return models.RatioDescription{}, fmt.Errorf("render description %s: %w", code, err)
	}
	desc.HTML = buf.String()
	return desc, nil
}
