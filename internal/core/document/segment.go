// Package document splits a combined upload blob into named documents.
//
// The wire convention is line based: a line exactly of the form
// "--- Name ---" starts a new section named "Name"; every following line
// belongs to that section until the next marker line. Text before the first
// marker, or a blob with no marker at all, forms a single unnamed section.
package document

import (
	"strings"

	"github.com/Diogenes67/aurum-asd/internal/core/model"
)

const (
	markerPrefix = "--- "
	markerSuffix = " ---"
)

// Split segments text into ordered documents. Sections whose trimmed text is
// empty are dropped. Pure function, no side effects.
func Split(text string) []model.Document {
	var docs []model.Document

	var current strings.Builder
	currentName := ""

	flush := func() {
		body := strings.TrimSpace(current.String())
		if body != "" {
			docs = append(docs, model.Document{Name: currentName, Text: body})
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, markerPrefix) && strings.HasSuffix(line, markerSuffix) && len(line) >= len(markerPrefix)+len(markerSuffix) {
			flush()
			currentName = line[len(markerPrefix) : len(line)-len(markerSuffix)]
		} else {
			current.WriteString(line)
			current.WriteString("\n")
		}
	}
	flush()

	return docs
}
