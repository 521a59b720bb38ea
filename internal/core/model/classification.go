package model

// Field names of the pre-assessment checklist.
const (
	FieldGPReferral   = "gp_referral"
	FieldHearingTest  = "hearing_test"
	FieldDevHistory   = "dev_history"
	FieldTeacherInput = "teacher_input"
	FieldPreviousASD  = "previous_asd"
)

// FieldOrder is the stable evaluation order for unresolved-field computation
// and red-flag derivation.
var FieldOrder = []string{
	FieldGPReferral,
	FieldHearingTest,
	FieldDevHistory,
	FieldTeacherInput,
	FieldPreviousASD,
}

// Field statuses. Not every status applies to every field: hearing_test uses
// not_done/normal/concerns, previous_asd uses none (never mentioned) and
// missing (mentioned but not obtained), the rest use missing/present.
const (
	StatusMissing  = "missing"
	StatusPresent  = "present"
	StatusNormal   = "normal"
	StatusConcerns = "concerns"
	StatusNotDone  = "not_done"
	StatusNone     = "none"
)

// FieldStatus is the classification outcome for one checklist field. Source,
// when set, names the input document the status was derived from.
type FieldStatus struct {
	Status string `json:"status"`
	Source string `json:"source,omitempty"`
}

// ClassificationRecord is the per-request checklist result plus derived
// red-flag warnings. Created fresh per request, never persisted.
type ClassificationRecord struct {
	GPReferral   FieldStatus `json:"gp_referral"`
	HearingTest  FieldStatus `json:"hearing_test"`
	DevHistory   FieldStatus `json:"dev_history"`
	TeacherInput FieldStatus `json:"teacher_input"`
	PreviousASD  FieldStatus `json:"previous_asd"`
	RedFlags     []string    `json:"red_flags"`
}

// NewClassificationRecord returns a record with every field in its initial
// "not found" state.
func NewClassificationRecord() *ClassificationRecord {
	return &ClassificationRecord{
		GPReferral:   FieldStatus{Status: StatusMissing},
		HearingTest:  FieldStatus{Status: StatusNotDone},
		DevHistory:   FieldStatus{Status: StatusMissing},
		TeacherInput: FieldStatus{Status: StatusMissing},
		PreviousASD:  FieldStatus{Status: StatusNone},
		RedFlags:     []string{},
	}
}

// Field returns a pointer to the named field's status, or nil for an unknown
// name.
func (r *ClassificationRecord) Field(name string) *FieldStatus {
	switch name {
	case FieldGPReferral:
		return &r.GPReferral
	case FieldHearingTest:
		return &r.HearingTest
	case FieldDevHistory:
		return &r.DevHistory
	case FieldTeacherInput:
		return &r.TeacherInput
	case FieldPreviousASD:
		return &r.PreviousASD
	}
	return nil
}
