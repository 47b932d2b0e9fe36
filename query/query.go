package query

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/sensim/index"
	"github.com/revelaction/sensim/render"
	"github.com/revelaction/sensim/sense"
)

const (
	completionThreshold = 2
	maxCompletions      = 50

	// termsPrefix is the Character in the prompt that prefixes a free list
	// of terms
	termsPrefix = "/"
)

var termSep = regexp.MustCompile(`,\s*`)

type Handler struct {
	Index *index.Index
	K     int

	// Renderer writes the neighbors of each lookup. It is a
	// render.TextRenderer for the interactive prompt.
	Renderer render.Renderer

	terms map[string][]string
	keys  []string
}

// NewHandler returns a Handler answering lookups for the given clusters
// from idx. The clusters must be the ones indexed in idx.
func NewHandler(idx *index.Index, clusters []sense.Cluster, tagged bool, k int, r render.Renderer) *Handler {
	h := &Handler{
		Index:    idx,
		K:        k,
		Renderer: r,
		terms:    make(map[string][]string, len(clusters)),
		keys:     make([]string, 0, len(clusters)),
	}

	for _, c := range clusters {
		key := c.Sense.Key(tagged)
		if _, ok := h.terms[key]; !ok {
			h.keys = append(h.keys, key)
		}
		h.terms[key] = c.Terms(tagged)
	}

	sort.Strings(h.keys)
	return h
}

// Lookup returns the neighbors for a prompt line. The line is either a
// sense identifier or, after termsPrefix, a comma separated list of terms.
func (h *Handler) Lookup(in string) (render.Neighbors, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return render.Neighbors{}, errors.New("empty query")
	}

	if strings.HasPrefix(in, termsPrefix) {
		terms := termSep.Split(strings.TrimSpace(in[len(termsPrefix):]), -1)
		hits, err := h.Index.Search(terms, h.K, "")
		if err != nil {
			return render.Neighbors{}, err
		}
		return render.Neighbors{Sense: in, Terms: terms, Hits: hits}, nil
	}

	terms, ok := h.terms[in]
	if !ok {
		return render.Neighbors{}, fmt.Errorf("unknown sense %q", in)
	}

	hits, err := h.Index.Search(terms, h.K, in)
	if err != nil {
		return render.Neighbors{}, err
	}

	return render.Neighbors{Sense: in, Terms: terms, Hits: hits}, nil
}

// Run reads lookups from the prompt until "quit".
func (h *Handler) Run() error {

	fmt.Println("🔑 Ctrl+X: Toggle rank, Ctrl+F: next Format, /term, term: free query, 🔧 quit")

	// initialize prompt history
	history := []string{}

	text, _ := h.Renderer.(*render.TextRenderer)

	for {

		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("sensim query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					if text == nil {
						return
					}
					text.NextFormat()
					fmt.Println("Format set to: " + text.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					if text == nil {
						return
					}
					text.NextPrefix()
					fmt.Println("Rank set to " + fmt.Sprintf("%t", text.HasPrefix))
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		n, err := h.Lookup(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}

		h.Renderer.Render([]render.Neighbors{n})
	}
}

// Batch answers one lookup per line of r, without prompt.
func (h *Handler) Batch(r io.Reader, errOut io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	var results []render.Neighbors
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n, err := h.Lookup(line)
		if err != nil {
			fmt.Fprintf(errOut, "%v\n", err)
			continue
		}
		results = append(results, n)
	}

	h.Renderer.Render(results)
	return nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.Complete(in.TextBeforeCursor())
}

// Complete returns the sense identifiers starting with the text before the
// cursor.
func (h *Handler) Complete(befCursor string) []prompt.Suggest {
	s := []prompt.Suggest{}

	if len(befCursor) < completionThreshold || strings.HasPrefix(befCursor, termsPrefix) {
		return s
	}

	i := sort.SearchStrings(h.keys, befCursor)
	for ; i < len(h.keys) && len(s) < maxCompletions; i++ {
		key := h.keys[i]
		if !strings.HasPrefix(key, befCursor) {
			break
		}

		s = append(s, prompt.Suggest{Text: key, Description: fmt.Sprintf("%d terms", len(h.terms[key]))})
	}

	return s
}
