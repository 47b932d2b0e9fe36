package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/sensim/index"
	"github.com/revelaction/sensim/sense"
)

const (
	Defaultformat = "score"

	barWidth = 30
)

var (
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

func SupportedFormats() []string {
	return []string{"score", "bar", "id"}
}

// Neighbors is a sense and its most similar senses, best first.
type Neighbors struct {
	Sense string      `json:"sense"`
	Terms []string    `json:"terms,omitempty"`
	Hits  []index.Hit `json:"neighbors"`
}

// Renderer writes neighbor lists.
type Renderer interface {
	Render(results []Neighbors)
}

var _ Renderer = (*TextRenderer)(nil)

type TextRenderer struct {
	W io.Writer

	HasColor bool

	// HasPrefix prints the rank of each neighbor
	HasPrefix bool

	// Format determines the line of each neighbor
	//
	// score: identifier and score
	// bar: identifier and a bar relative to the best score
	// id: identifier only
	Format string
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w, Format: Defaultformat, HasPrefix: true}
}

func (r *TextRenderer) Render(results []Neighbors) {
	for _, n := range results {
		fmt.Fprintln(r.W, r.color(Yellow256, n.Sense))

		if len(n.Hits) == 0 {
			fmt.Fprintln(r.W, r.color(Grey256, "  no similar senses"))
			continue
		}

		top := n.Hits[0].Score
		for i, h := range n.Hits {
			var prefix string
			if r.HasPrefix {
				prefix = fmt.Sprintf("[%3d] ", i+1)
			}

			fmt.Fprintf(r.W, "  %s%s\n", prefix, r.line(h, top))
		}
	}
}

func (r *TextRenderer) line(h index.Hit, top float64) string {
	switch r.Format {
	case "bar":
		return fmt.Sprintf("%-40s %s", h.Id, r.color(Green256, bar(h.Score, top)))
	case "id":
		return h.Id
	}

	return fmt.Sprintf("%-40s %s", h.Id, r.color(Grey256, sense.FormatWeight(h.Score)))
}

func (r *TextRenderer) color(c, s string) string {
	if !r.HasColor {
		return s
	}
	return c + s + Off
}

func bar(score, top float64) string {
	if top <= 0 {
		return ""
	}

	n := int(barWidth * score / top)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("▇", n)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *TextRenderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			return
		}
	}

	r.Format = Defaultformat
}

func (r *TextRenderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}
