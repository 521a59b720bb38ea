package model

// CriteriaKeys are the DSM-5 evidence categories, in canonical order.
var CriteriaKeys = []string{"A1", "A2", "A3", "B1", "B2", "B3", "B4", "C", "D", "E"}

// EvidenceItem is one accepted verbatim quote with its source document.
type EvidenceItem struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// EvidenceBucket maps each criterion key to its ordered, exact-text-unique
// quote list. Insertion order follows document processing order.
type EvidenceBucket map[string][]EvidenceItem

// NewEvidenceBucket returns a bucket with every criterion present and empty,
// so the serialized shape always carries all ten keys.
func NewEvidenceBucket() EvidenceBucket {
	b := make(EvidenceBucket, len(CriteriaKeys))
	for _, k := range CriteriaKeys {
		b[k] = []EvidenceItem{}
	}
	return b
}

// Total counts accepted quotes across all criteria.
func (b EvidenceBucket) Total() int {
	n := 0
	for _, items := range b {
		n += len(items)
	}
	return n
}

// Quote is a stage-1 extraction result: a raw quote tagged with its source
// document and coarse category.
type Quote struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// CriterionEvidence is the stage-2 verdict for one DSM-5 criterion.
type CriterionEvidence struct {
	Supporting    []string `json:"supporting"`
	Contradicting []string `json:"contradicting"`
}

// FunctionalSummary holds per-domain narrative summaries for the functional
// assessment. A domain with no findings is the empty string.
type FunctionalSummary struct {
	Strengths  string `json:"strengths"`
	Medical    string `json:"medical"`
	Cognitive  string `json:"cognitive"`
	Speech     string `json:"speech"`
	Motor      string `json:"motor"`
	Social     string `json:"social"`
	Emotional  string `json:"emotional"`
	Attention  string `json:"attention"`
	Adaptive   string `json:"adaptive"`
	Background string `json:"background"`
}
