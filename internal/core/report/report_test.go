package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Diogenes67/aurum-asd/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCompletionClient records the budget of the last call alongside the
// prompt.
type mockCompletionClient struct {
	Response string
	Err      error

	Prompt    string
	Timeout   time.Duration
	MaxTokens int
}

func (m *mockCompletionClient) Complete(ctx context.Context, prompt string, timeout time.Duration, maxTokens int) (string, error) {
	m.Prompt = prompt
	m.Timeout = timeout
	m.MaxTokens = maxTokens
	return m.Response, m.Err
}

func newTestBuilder(mock *mockCompletionClient) *Builder {
	return NewBuilder(mock, DiskTemplateStore{Dir: "no-such-dir"})
}

func TestGenerateNDISGetsLargestBudget(t *testing.T) {
	mock := &mockCompletionClient{Response: "# Report"}
	b := newTestBuilder(mock)

	result, err := b.Generate(context.Background(), Request{
		Type:      "ndis",
		Client:    ClientInfo{Name: "Sam", Age: "6", Pronouns: "he/him"},
		Documents: []model.Document{{Name: "Psych_Report.pdf", Text: "Assessment findings."}},
	})
	require.NoError(t, err)
	assert.Equal(t, "# Report", result)

	assert.Equal(t, 8000, mock.MaxTokens)
	assert.Equal(t, 300*time.Second, mock.Timeout)
	assert.Contains(t, mock.Prompt, "CHILD: Sam")
	assert.Contains(t, mock.Prompt, "--- Psych_Report.pdf ---")
	assert.Contains(t, mock.Prompt, "**NDIS Supporting Evidence Template - Fallback**")
}

func TestGenerateCaregiverDefaultsAndDiagnosis(t *testing.T) {
	mock := &mockCompletionClient{Response: "report"}
	b := newTestBuilder(mock)

	_, err := b.Generate(context.Background(), Request{
		Type:       "caregiver",
		Diagnostic: DiagnosticDecisions{ASDMet: true, SeverityLevel: "Level 2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 6000, mock.MaxTokens)
	assert.Equal(t, 180*time.Second, mock.Timeout)
	assert.Contains(t, mock.Prompt, "CHILD: [Name]")
	assert.Contains(t, mock.Prompt, "PRONOUNS: they/them")
	assert.Contains(t, mock.Prompt, "DIAGNOSIS: ASD confirmed - Level 2")
}

func TestGenerateDefaultSummaryUsesEvidenceAndFunctional(t *testing.T) {
	mock := &mockCompletionClient{Response: "report"}
	b := newTestBuilder(mock)

	evidence := model.NewEvidenceBucket()
	evidence["A1"] = []model.EvidenceItem{{Text: "Does not respond to his name", Source: "DocA.pdf"}}

	_, err := b.Generate(context.Background(), Request{
		Type:       "summary",
		Client:     ClientInfo{Name: "Sam"},
		Evidence:   evidence,
		Functional: map[string]string{"speech": "Uses short phrases."},
		CaseNote:   "Seen with mother.",
	})
	require.NoError(t, err)

	assert.Equal(t, 2000, mock.MaxTokens)
	assert.Contains(t, mock.Prompt, `- A1: "Does not respond to his name"`)
	assert.Contains(t, mock.Prompt, "- speech: Uses short phrases.")
	assert.Contains(t, mock.Prompt, "Seen with mother.")
	assert.Contains(t, mock.Prompt, "DIAGNOSIS: ASD not confirmed - Level 1")
}

func TestGenerateWrapsClientError(t *testing.T) {
	mock := &mockCompletionClient{Err: errors.New("router unavailable")}
	b := newTestBuilder(mock)

	_, err := b.Generate(context.Background(), Request{Type: "gp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report generation failed")
}

func TestDiskTemplateStoreLoadsAndFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gp_letter_template.md"), []byte("# GP Letter"), 0o644))

	store := DiskTemplateStore{Dir: dir}

	assert.Equal(t, "# GP Letter", store.Load("gp"))
	assert.Equal(t, "**Teacher Letter Template - Fallback**", store.Load("teacher"))
	assert.Equal(t, "", store.Load("unknown"))
}
