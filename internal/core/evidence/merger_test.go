package evidence

import (
	"context"
	"errors"
	"testing"

	"github.com/Diogenes67/aurum-asd/internal/config"
	"github.com/Diogenes67/aurum-asd/internal/core/model"
	"github.com/stretchr/testify/assert"
)

const twoDocBlob = "--- DocA.pdf ---\nFirst document body.\n--- DocB.pdf ---\nSecond document body.\n"

func newTestMerger(mock *MockCompletionClient) *Merger {
	return NewMerger(mock, config.Default().Extraction)
}

func TestMergerMergesAcrossDocumentsFirstSourceWins(t *testing.T) {
	mock := &MockCompletionClient{
		Script: []MockReply{
			{Response: `{"A1": ["Does not respond to his name being called", "short"], "B1": ["Lines up toy cars for hours every afternoon"]}`},
			{Response: `{"A1": ["Does not respond to his name being called", "Avoids eye contact with unfamiliar adults consistently"]}`},
		},
	}
	m := newTestMerger(mock)

	bucket := m.Extract(context.Background(), twoDocBlob)

	assert.Len(t, mock.Prompts, 2)
	assert.Equal(t, []model.EvidenceItem{
		{Text: "Does not respond to his name being called", Source: "DocA.pdf"},
		{Text: "Avoids eye contact with unfamiliar adults consistently", Source: "DocB.pdf"},
	}, bucket["A1"])
	assert.Equal(t, []model.EvidenceItem{
		{Text: "Lines up toy cars for hours every afternoon", Source: "DocA.pdf"},
	}, bucket["B1"])
	assert.Equal(t, 3, bucket.Total())
}

func TestMergerFiltersShortAndEchoedQuotes(t *testing.T) {
	mock := &MockCompletionClient{
		// First is a verbatim prompt fragment, second is just under the
		// length floor, third passes both filters.
		Response: `{"A2": ["back-and-forth interaction", "too short to count", "Struggles with back-and-forth interaction at school"]}`,
	}
	m := newTestMerger(mock)

	bucket := m.Extract(context.Background(), "--- DocA.pdf ---\nBody.\n")

	assert.Equal(t, []model.EvidenceItem{
		{Text: "Struggles with back-and-forth interaction at school", Source: "DocA.pdf"},
	}, bucket["A2"])
}

func TestMergerKeepsShortClinicalPhrase(t *testing.T) {
	// Both quotes sit between the length floor and the echo ceiling; only
	// the verbatim prompt fragment is suppressed.
	mock := &MockCompletionClient{
		Response: `{"A3": ["Prefers to play alone daily", "back-and-forth interaction"]}`,
	}
	m := newTestMerger(mock)

	bucket := m.Extract(context.Background(), "--- DocA.pdf ---\nBody.\n")

	assert.Equal(t, []model.EvidenceItem{
		{Text: "Prefers to play alone daily", Source: "DocA.pdf"},
	}, bucket["A3"])
}

func TestMergerTrimsWrappingQuotes(t *testing.T) {
	mock := &MockCompletionClient{
		Response: `{"C": ["\"Concerns were first noted before his second birthday\""]}`,
	}
	m := newTestMerger(mock)

	bucket := m.Extract(context.Background(), "--- DocA.pdf ---\nBody.\n")

	assert.Equal(t, "Concerns were first noted before his second birthday", bucket["C"][0].Text)
}

func TestMergerDocumentFailureIsIsolated(t *testing.T) {
	mock := &MockCompletionClient{
		Script: []MockReply{
			{Response: `{"A1": ["Does not respond to his name being called"]}`},
			{Err: errors.New("router unavailable")},
		},
	}
	m := newTestMerger(mock)

	bucket := m.Extract(context.Background(), twoDocBlob)

	assert.Equal(t, 1, bucket.Total())
	assert.Equal(t, "DocA.pdf", bucket["A1"][0].Source)
}

func TestMergerRepairsMalformedResponse(t *testing.T) {
	mock := &MockCompletionClient{
		Response: `{"A1": [""Does not respond to his name being called""]}`,
	}
	m := newTestMerger(mock)

	bucket := m.Extract(context.Background(), "--- DocA.pdf ---\nBody.\n")

	assert.Equal(t, []model.EvidenceItem{
		{Text: "Does not respond to his name being called", Source: "DocA.pdf"},
	}, bucket["A1"])
}

func TestMergerNoUsableJSONYieldsEmptyBucket(t *testing.T) {
	mock := &MockCompletionClient{Response: "I found no relevant quotes."}
	m := newTestMerger(mock)

	bucket := m.Extract(context.Background(), "--- DocA.pdf ---\nBody.\n")

	assert.Equal(t, 0, bucket.Total())
	for _, key := range model.CriteriaKeys {
		assert.NotNil(t, bucket[key])
	}
}
