// Package evidence turns completion responses into validated, deduplicated
// clinical evidence structures: the per-document DSM-5 extraction merge, the
// two-stage quote categorizer, and the functional assessment extractor.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Diogenes67/aurum-asd/internal/config"
	"github.com/Diogenes67/aurum-asd/internal/core/common"
	"github.com/Diogenes67/aurum-asd/internal/core/document"
	"github.com/Diogenes67/aurum-asd/internal/core/model"
	"github.com/Diogenes67/aurum-asd/internal/core/repair"
	"github.com/Diogenes67/aurum-asd/internal/llm"
)

const (
	extractTimeout   = 120 * time.Second
	extractMaxTokens = 2000

	// Fragments at or below this length are unlikely to carry clinical
	// meaning.
	minQuoteLength = 25
)

// Merger extracts DSM-5 evidence quotes from each document and merges them
// into one canonical bucket. A document whose call fails or whose response
// cannot be parsed or repaired contributes nothing and never blocks the rest.
type Merger struct {
	LLM    llm.CompletionClient
	Prompt string
}

func NewMerger(client llm.CompletionClient, prompts config.ExtractionPrompts) *Merger {
	return &Merger{
		LLM:    client,
		Prompt: prompts.Evidence,
	}
}

// Extract segments the combined blob and merges per-document extractions in
// document order. First occurrence of an exact quote within a category wins.
func (m *Merger) Extract(ctx context.Context, text string) model.EvidenceBucket {
	docs := document.Split(text)
	log.Printf("[Extract] Split into %d documents", len(docs))

	merged := model.NewEvidenceBucket()
	for _, doc := range docs {
		m.mergeDocument(ctx, doc, merged)
	}

	log.Printf("[Extract] Final: %d total quotes", merged.Total())
	return merged
}

func (m *Merger) mergeDocument(ctx context.Context, doc model.Document, merged model.EvidenceBucket) {
	log.Printf("[Extract] Processing: %s (%d chars)", doc.Name, len(doc.Text))

	response, err := m.LLM.Complete(ctx, fmt.Sprintf(m.Prompt, doc.Text), extractTimeout, extractMaxTokens)
	if err != nil {
		log.Printf("[Extract]   Call failed for %s: %v", doc.Name, err)
		return
	}

	arrays, ok := parseQuoteArrays(response)
	if !ok {
		log.Printf("[Extract]   No usable JSON in response for %s", doc.Name)
		return
	}

	accepted := 0
	for _, key := range model.CriteriaKeys {
		for _, raw := range arrays[key] {
			q := strings.Trim(strings.TrimSpace(raw), `"`)
			if q == "" || len(q) <= minQuoteLength || promptEcho(q) {
				continue
			}
			if bucketContains(merged[key], q) {
				continue
			}
			merged[key] = append(merged[key], model.EvidenceItem{Text: q, Source: doc.Name})
			accepted++
		}
	}
	log.Printf("[Extract]   Accepted %d quotes", accepted)
}

// parseQuoteArrays tries a strict parse first and falls back to the tolerant
// repairer. The repaired text gets one final strict attempt; past that the
// response counts as a miss.
func parseQuoteArrays(response string) (map[string][]string, bool) {
	jsonStr, ok := common.ExtractObject(response)
	if !ok {
		return nil, false
	}

	var arrays map[string][]string
	if err := json.Unmarshal([]byte(jsonStr), &arrays); err == nil {
		return arrays, true
	}

	rec, normalized := repair.Repair(jsonStr)
	if len(rec) > 0 {
		return rec, true
	}
	if err := json.Unmarshal([]byte(normalized), &arrays); err == nil {
		return arrays, true
	}
	return nil, false
}

func bucketContains(items []model.EvidenceItem, text string) bool {
	for _, item := range items {
		if item.Text == text {
			return true
		}
	}
	return false
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
