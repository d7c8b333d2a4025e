package ui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// jsonRenderer highlights raw JSON records with glamour. Renders are cached
// per width because the view is rebuilt on every key press.
type jsonRenderer struct {
	mu    sync.Mutex
	cache map[string]string
}

func newJSONRenderer() *jsonRenderer {
	return &jsonRenderer{cache: make(map[string]string)}
}

func (r *jsonRenderer) render(raw string, width int) string {
	if r == nil || raw == "" {
		return raw
	}
	key := strconv.Itoa(width) + "\x00" + raw

	r.mu.Lock()
	defer r.mu.Unlock()
	if out, ok := r.cache[key]; ok {
		return out
	}

	out := raw
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := tr.Render("```json\n" + raw + "\n```"); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	r.cache[key] = out
	return out
}
