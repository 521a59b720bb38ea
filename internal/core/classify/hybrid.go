package classify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Diogenes67/aurum-asd/internal/config"
	"github.com/Diogenes67/aurum-asd/internal/core/common"
	"github.com/Diogenes67/aurum-asd/internal/core/model"
	"github.com/Diogenes67/aurum-asd/internal/llm"
)

const (
	fallbackTimeout   = 120 * time.Second
	fallbackMaxTokens = 2000

	// Per-document text prefix sent to the model pass.
	docPrefixLimit = 4000
)

// Secondary filename heuristics for recovering a source when the model claims
// a positive status but cites a filename that was never supplied. Only fields
// listed here are recoverable.
var recoveryKeywords = map[string][]string{
	model.FieldTeacherInput: {"report", "observation", "assessment"},
}

var validStatuses = map[string]bool{
	model.StatusPresent:  true,
	model.StatusMissing:  true,
	model.StatusNormal:   true,
	model.StatusNotDone:  true,
	model.StatusConcerns: true,
}

// HybridClassifier runs the deterministic rule pass and, only when fields
// remain unresolved, exactly one model completion restricted to those fields.
// The model's claims are never trusted without provenance validation.
type HybridClassifier struct {
	Rules   RuleClassifier
	LLM     llm.CompletionClient
	Prompts config.ClassifyPrompts
}

func NewHybridClassifier(client llm.CompletionClient, prompts config.ClassifyPrompts) *HybridClassifier {
	return &HybridClassifier{
		LLM:     client,
		Prompts: prompts,
	}
}

// Classify produces the checklist record for one request's documents. Model
// failures are logged and swallowed: rule-pass results stand, and red flags
// are derived either way.
func (h *HybridClassifier) Classify(ctx context.Context, docs []model.Document) *model.ClassificationRecord {
	rec := h.Rules.Classify(docs)

	unresolved := Unresolved(rec)
	log.Printf("[PreScan] Pass 1 results: %d items unresolved: %v", len(unresolved), unresolved)

	if len(unresolved) > 0 && len(docs) > 0 {
		log.Printf("[PreScan] Pass 2: model analysis for unresolved items...")
		h.modelPass(ctx, docs, rec, unresolved)
	}

	DeriveRedFlags(rec)
	return rec
}

func (h *HybridClassifier) modelPass(ctx context.Context, docs []model.Document, rec *model.ClassificationRecord, unresolved []string) {
	var combined strings.Builder
	names := make([]string, 0, len(docs))
	nameSet := make(map[string]bool, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
		nameSet[doc.Name] = true
		fmt.Fprintf(&combined, "\n\n=== %s ===\n%s\n", doc.Name, prefix(doc.Text, docPrefixLimit))
	}

	prompt := fmt.Sprintf(h.Prompts.Fallback,
		combined.String(),
		strings.Join(names, ", "),
		strings.Join(unresolved, ", "))

	start := time.Now()
	response, err := h.LLM.Complete(ctx, prompt, fallbackTimeout, fallbackMaxTokens)
	if err != nil {
		log.Printf("[PreScan] Model pass failed: %v", err)
		return
	}
	log.Printf("[PreScan] Model response in %.1fs", time.Since(start).Seconds())

	parsed, err := common.ParseJSON[map[string]model.FieldStatus](response)
	if err != nil {
		log.Printf("[PreScan] Model response unparsable: %v", err)
		return
	}

	unresolvedSet := make(map[string]bool, len(unresolved))
	for _, f := range unresolved {
		unresolvedSet[f] = true
	}

	for key, val := range parsed {
		if !unresolvedSet[key] {
			continue
		}
		field := rec.Field(key)
		if field == nil {
			continue
		}
		if !validStatuses[val.Status] {
			val.Status = ""
		}

		switch {
		case val.Source != "" && nameSet[val.Source]:
			// Verified citation: accept as-is.
			if val.Status == "" {
				val.Status = model.StatusPresent
			}
			*field = val

		case val.Status == model.StatusPresent || val.Status == model.StatusNormal:
			// Positive claim with an unverifiable source: recover only via
			// a defined filename heuristic, else leave the rule result.
			keywords, ok := recoveryKeywords[key]
			if !ok {
				continue
			}
			for _, doc := range docs {
				if containsAny(strings.ToLower(doc.Name), keywords) {
					*field = model.FieldStatus{Status: val.Status, Source: doc.Name}
					break
				}
			}

		default:
			// Unverifiable and not positive: conservative downgrade.
			if val.Status == "" {
				val.Status = model.StatusMissing
			}
			*field = model.FieldStatus{Status: val.Status}
		}
	}
}

func prefix(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
