package evidence

import "strings"

// Instructional vocabulary from the extraction prompts. A short candidate
// that merely repeats one of these fragments is the model echoing the prompt
// back, not clinical content.
var promptFragments = []string{
	"response to name", "sharing enjoyment", "back-and-forth interaction",
	"eye contact", "pointing", "gestures", "facial expressions", "joint attention",
	"peer interest", "friendships", "imaginative play", "cooperative play",
	"hand flapping", "rocking", "toe walking", "head banging", "echolalia", "lining up",
	"distress at changes", "rigid routines", "need for sameness", "transitions",
	"intense interests", "fixations", "preoccupations", "perseverative focus",
	"sound sensitivity", "texture aversion", "pain response", "food selectivity", "mouthing",
	"early milestones", "regression", "when concerns first noted",
	"school difficulties", "social difficulties", "daily living impact",
	"hearing tests", "vision tests", "cognitive assessment", "other diagnoses",
}

// Echo suppression only applies below this length; a long quote containing a
// fragment is real evidence.
const echoLengthCeiling = 30

// promptEcho reports whether text is a near-exact echo (modulo a trailing
// plural) of a denylisted prompt fragment.
func promptEcho(text string) bool {
	if len(text) >= echoLengthCeiling {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, frag := range promptFragments {
		if lower == frag || lower == frag+"s" {
			return true
		}
	}
	return false
}
