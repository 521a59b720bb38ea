package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/Diogenes67/aurum-asd/internal/config"
	"github.com/Diogenes67/aurum-asd/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func newTestHybrid(mock *MockCompletionClient) *HybridClassifier {
	return NewHybridClassifier(mock, config.Default().Classify)
}

func TestHybridSkipsModelWhenRulesResolveEverything(t *testing.T) {
	mock := &MockCompletionClient{}
	h := newTestHybrid(mock)

	docs := []model.Document{
		{Name: "GP_Referral.pdf", Text: "Audiometry normal. Milestones were reviewed in detail."},
		{Name: "Teacher_Letter.docx", Text: "Classroom observations attached."},
	}

	rec := h.Classify(context.Background(), docs)

	assert.Empty(t, mock.Prompts, "no model call expected when rules resolve all fields")
	assert.Equal(t, model.StatusPresent, rec.GPReferral.Status)
	assert.Equal(t, model.StatusNormal, rec.HearingTest.Status)
	assert.Equal(t, model.StatusPresent, rec.DevHistory.Status)
	assert.Equal(t, model.StatusPresent, rec.TeacherInput.Status)
	assert.Empty(t, rec.RedFlags)
}

func TestHybridAcceptsVerifiedSource(t *testing.T) {
	mock := &MockCompletionClient{
		Response: `{"dev_history": {"status": "present", "source": "Obs_Notes.docx"}}`,
	}
	h := newTestHybrid(mock)

	docs := []model.Document{
		{Name: "Obs_Notes.docx", Text: "Summary of the parent interview."},
	}

	rec := h.Classify(context.Background(), docs)

	assert.Len(t, mock.Prompts, 1)
	assert.Equal(t, model.FieldStatus{Status: model.StatusPresent, Source: "Obs_Notes.docx"}, rec.DevHistory)
}

func TestHybridIgnoresFieldsRulesAlreadyResolved(t *testing.T) {
	mock := &MockCompletionClient{
		Response: `{"gp_referral": {"status": "missing"}, "dev_history": {"status": "present", "source": "GP_Referral.pdf"}}`,
	}
	h := newTestHybrid(mock)

	docs := []model.Document{
		{Name: "GP_Referral.pdf", Text: "Brief referral letter."},
	}

	rec := h.Classify(context.Background(), docs)

	// gp_referral was rule-resolved, so the model's contradiction is discarded.
	assert.Equal(t, model.FieldStatus{Status: model.StatusPresent, Source: "GP_Referral.pdf"}, rec.GPReferral)
	assert.Equal(t, model.FieldStatus{Status: model.StatusPresent, Source: "GP_Referral.pdf"}, rec.DevHistory)
}

func TestHybridRecoversPositiveClaimViaFilenameHeuristic(t *testing.T) {
	mock := &MockCompletionClient{
		Response: `{"teacher_input": {"status": "present", "source": "made_up.pdf"}}`,
	}
	h := newTestHybrid(mock)

	docs := []model.Document{
		{Name: "Classroom_Observation.docx", Text: "Functions well in structured settings."},
	}

	rec := h.Classify(context.Background(), docs)

	assert.Equal(t, model.FieldStatus{Status: model.StatusPresent, Source: "Classroom_Observation.docx"}, rec.TeacherInput)
}

func TestHybridPositiveClaimWithoutHeuristicLeavesRuleResult(t *testing.T) {
	mock := &MockCompletionClient{
		Response: `{"dev_history": {"status": "present", "source": "made_up.pdf"}}`,
	}
	h := newTestHybrid(mock)

	docs := []model.Document{
		{Name: "notes.txt", Text: "General notes."},
	}

	rec := h.Classify(context.Background(), docs)

	// dev_history has no recovery heuristic, so the unverifiable positive
	// claim is dropped and the field stays missing.
	assert.Equal(t, model.FieldStatus{Status: model.StatusMissing}, rec.DevHistory)
}

func TestHybridConservativeDowngradeOnUnverifiableNegative(t *testing.T) {
	mock := &MockCompletionClient{
		Response: `{"hearing_test": {"status": "not_done", "source": "made_up.pdf"}, "teacher_input": {"status": "nonsense"}}`,
	}
	h := newTestHybrid(mock)

	docs := []model.Document{
		{Name: "notes.txt", Text: "General notes."},
	}

	rec := h.Classify(context.Background(), docs)

	assert.Equal(t, model.FieldStatus{Status: model.StatusNotDone}, rec.HearingTest)
	// An unrecognized status coerces to missing.
	assert.Equal(t, model.FieldStatus{Status: model.StatusMissing}, rec.TeacherInput)
}

func TestHybridModelFailureLeavesRuleResults(t *testing.T) {
	mock := &MockCompletionClient{Err: errors.New("router unavailable")}
	h := newTestHybrid(mock)

	docs := []model.Document{
		{Name: "GP_Referral.pdf", Text: "Brief referral letter."},
	}

	rec := h.Classify(context.Background(), docs)

	assert.Len(t, mock.Prompts, 1)
	assert.Equal(t, model.StatusPresent, rec.GPReferral.Status)
	assert.Equal(t, model.StatusNotDone, rec.HearingTest.Status)
	assert.Contains(t, rec.RedFlags, "No hearing test - REFER NOW, cannot diagnose without ruling out hearing loss")
}

func TestHybridUnparsableResponseLeavesRuleResults(t *testing.T) {
	mock := &MockCompletionClient{Response: "I could not determine the statuses."}
	h := newTestHybrid(mock)

	docs := []model.Document{
		{Name: "notes.txt", Text: "General notes."},
	}

	rec := h.Classify(context.Background(), docs)

	assert.Equal(t, model.StatusMissing, rec.GPReferral.Status)
	assert.Equal(t, model.StatusNotDone, rec.HearingTest.Status)
}
