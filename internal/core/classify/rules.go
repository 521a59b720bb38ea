// Package classify resolves the pre-assessment document checklist: a
// deterministic keyword pass first, then a single validated model-assisted
// fallback for whatever that pass left unresolved.
package classify

import (
	"strings"

	"github.com/Diogenes67/aurum-asd/internal/core/model"
)

// Filename and content keyword sets for the rule pass. Matching is
// case-insensitive containment.
var (
	gpNameKeywords = []string{"gp", "referral", "paed"}

	hearingKeywords = []string{
		"bera", "abr", "audiometry", "audiolog", "hearing screen",
		"peripheral hearing", "hearing test", "brainstem auditory",
	}
	hearingNormalKeywords = []string{"normal", "passed", "within normal", "no concerns"}

	gpDevHistoryKeywords = []string{
		"milestone", "developmental history", "birth history", "pregnancy",
		"early development", "developmental concerns",
	}

	teacherNameKeywords = []string{"teacher", "school", "educator", "kindergarten"}

	reportNameKeywords       = []string{"speech", "psych", "social", "worker", "ot", "occupational"}
	reportDevHistoryKeywords = []string{
		"developmental history", "milestone", "birth", "early development",
		"background information",
	}

	previousASDKeywords = []string{
		"previous autism", "prior asd", "previously assessed for autism",
		"earlier autism assessment",
	}
)

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// RuleClassifier is the deterministic first pass. Statuses only move from a
// "not found" state toward a "found" state; a field already resolved is never
// overwritten by a later document, which makes the pass order-independent for
// any field rules can resolve.
type RuleClassifier struct{}

func (RuleClassifier) Classify(docs []model.Document) *model.ClassificationRecord {
	rec := model.NewClassificationRecord()

	for _, doc := range docs {
		lowerName := strings.ToLower(doc.Name)
		lowerText := strings.ToLower(doc.Text)

		if containsAny(lowerName, gpNameKeywords) {
			if rec.GPReferral.Status == model.StatusMissing {
				rec.GPReferral = model.FieldStatus{Status: model.StatusPresent, Source: doc.Name}
			}

			if rec.HearingTest.Status == model.StatusNotDone && containsAny(lowerText, hearingKeywords) {
				status := model.StatusConcerns
				if containsAny(lowerText, hearingNormalKeywords) {
					status = model.StatusNormal
				}
				rec.HearingTest = model.FieldStatus{Status: status, Source: doc.Name}
			}

			if rec.DevHistory.Status == model.StatusMissing && containsAny(lowerText, gpDevHistoryKeywords) {
				rec.DevHistory = model.FieldStatus{Status: model.StatusPresent, Source: doc.Name}
			}
		}

		if rec.TeacherInput.Status == model.StatusMissing && containsAny(lowerName, teacherNameKeywords) {
			rec.TeacherInput = model.FieldStatus{Status: model.StatusPresent, Source: doc.Name}
		}

		if rec.DevHistory.Status == model.StatusMissing &&
			containsAny(lowerName, reportNameKeywords) &&
			containsAny(lowerText, reportDevHistoryKeywords) {
			rec.DevHistory = model.FieldStatus{Status: model.StatusPresent, Source: doc.Name}
		}

		// Mentioned but not supplied as a document. Distinct from "none",
		// which means never mentioned at all.
		if rec.PreviousASD.Status == model.StatusNone && containsAny(lowerText, previousASDKeywords) {
			rec.PreviousASD = model.FieldStatus{Status: model.StatusMissing}
		}
	}

	return rec
}

// Unresolved lists the fields still in their initial state after the rule
// pass, in stable field order. previous_asd is never in the list: the model
// fallback cannot distinguish "never mentioned" from "mentioned but absent".
func Unresolved(rec *model.ClassificationRecord) []string {
	var unresolved []string
	if rec.GPReferral.Status == model.StatusMissing {
		unresolved = append(unresolved, model.FieldGPReferral)
	}
	if rec.HearingTest.Status == model.StatusNotDone {
		unresolved = append(unresolved, model.FieldHearingTest)
	}
	if rec.DevHistory.Status == model.StatusMissing {
		unresolved = append(unresolved, model.FieldDevHistory)
	}
	if rec.TeacherInput.Status == model.StatusMissing {
		unresolved = append(unresolved, model.FieldTeacherInput)
	}
	return unresolved
}
