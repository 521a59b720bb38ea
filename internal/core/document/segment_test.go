package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitNamedSections(t *testing.T) {
	text := "--- GP_Referral.pdf ---\nReferral letter body.\n--- Teacher_Report.docx ---\nObservation notes.\n"

	docs := Split(text)

	assert.Len(t, docs, 2)
	assert.Equal(t, "GP_Referral.pdf", docs[0].Name)
	assert.Equal(t, "Referral letter body.", docs[0].Text)
	assert.Equal(t, "Teacher_Report.docx", docs[1].Name)
	assert.Equal(t, "Observation notes.", docs[1].Text)
}

func TestSplitNoMarkerIsSingleUnnamedSection(t *testing.T) {
	text := "Just one blob of text\nwith two lines."

	docs := Split(text)

	assert.Len(t, docs, 1)
	assert.Equal(t, "", docs[0].Name)
	assert.Equal(t, text, docs[0].Text)
}

func TestSplitDropsEmptySections(t *testing.T) {
	text := "--- Empty.pdf ---\n\n   \n--- Full.pdf ---\ncontent here"

	docs := Split(text)

	assert.Len(t, docs, 1)
	assert.Equal(t, "Full.pdf", docs[0].Name)
	assert.Equal(t, "content here", docs[0].Text)
}

func TestSplitKeepsPreambleBeforeFirstMarker(t *testing.T) {
	text := "intro text\n--- A.pdf ---\nbody"

	docs := Split(text)

	assert.Len(t, docs, 2)
	assert.Equal(t, "", docs[0].Name)
	assert.Equal(t, "intro text", docs[0].Text)
	assert.Equal(t, "A.pdf", docs[1].Name)
}

func TestSplitMarkerMidLineIsBody(t *testing.T) {
	// The marker convention is line based; a marker-looking span inside a
	// line stays body text.
	text := "--- A.pdf ---\nsee --- B.pdf --- inline\nmore"

	docs := Split(text)

	assert.Len(t, docs, 1)
	assert.Equal(t, "A.pdf", docs[0].Name)
	assert.Equal(t, "see --- B.pdf --- inline\nmore", docs[0].Text)
}
