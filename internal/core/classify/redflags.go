package classify

import "github.com/Diogenes67/aurum-asd/internal/core/model"

// Red-flag lookup table, evaluated in stable field order. hearing_test flags
// on not_done as well as missing; previous_asd flags only on missing
// (mentioned but not obtained), never on none.
var redFlagTable = []struct {
	field   string
	message string
}{
	{model.FieldGPReferral, "No referral letter - REQUEST before assessment"},
	{model.FieldHearingTest, "No hearing test - REFER NOW, cannot diagnose without ruling out hearing loss"},
	{model.FieldDevHistory, "No developmental history - SEND TO PARENT or extend interview"},
	{model.FieldTeacherInput, "No teacher/school input - FOLLOW UP, need multi-context evidence"},
}

const previousASDFlag = "Previous ASD assessment mentioned but not obtained - REQUEST"

// DeriveRedFlags recomputes rec.RedFlags from terminal field statuses. Always
// runs, whether or not the model pass did.
func DeriveRedFlags(rec *model.ClassificationRecord) {
	flags := []string{}

	for _, entry := range redFlagTable {
		status := rec.Field(entry.field).Status
		if status == model.StatusMissing ||
			(entry.field == model.FieldHearingTest && status == model.StatusNotDone) {
			flags = append(flags, entry.message)
		}
	}

	if rec.PreviousASD.Status == model.StatusMissing {
		flags = append(flags, previousASDFlag)
	}

	rec.RedFlags = flags
}
