package evidence

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
	stage1Timeout  = 120 * time.Second
	stage2Timeout  = 180 * time.Second
	stageMaxTokens = 2000

	stage1DocLimit   = 3000
	minStage1Length  = 15
	dedupPrefixBytes = 50
	stage2QuoteCap   = 30
)

// Stage-1 coarse categories, in prompt order. Keys outside this set in a
// response are ignored so quote order stays deterministic.
var stage1Categories = []string{"social", "communication", "repetitive", "sensory", "development"}

// TwoStageStats reports timing and volume for one categorization run.
type TwoStageStats struct {
	Stage1Seconds     float64 `json:"stage1_time"`
	Stage2Seconds     float64 `json:"stage2_time"`
	TotalQuotes       int     `json:"total_quotes"`
	QuotesCategorized int     `json:"quotes_categorized"`
}

// TwoStageCategorizer extracts raw quotes per document, dedups them by
// normalized prefix, then issues one categorization call sorting a capped
// batch into supporting/contradicting buckets for the ten DSM-5 criteria.
type TwoStageCategorizer struct {
	LLM     llm.CompletionClient
	Prompts config.TwoStagePrompts
}

func NewTwoStageCategorizer(client llm.CompletionClient, prompts config.TwoStagePrompts) *TwoStageCategorizer {
	return &TwoStageCategorizer{
		LLM:     client,
		Prompts: prompts,
	}
}

// Categorize runs both stages. Stage 1 failures are per-document and
// non-fatal; the stage-2 call is all-or-nothing and its transport error is
// returned.
func (t *TwoStageCategorizer) Categorize(ctx context.Context, docs []model.Document) (map[string]model.CriterionEvidence, TwoStageStats, error) {
	var stats TwoStageStats

	log.Printf("[Two-Stage] Processing %d documents", len(docs))
	stage1Start := time.Now()

	var all []model.Quote
	for _, doc := range docs {
		quotes, err := t.extractQuotes(ctx, doc)
		if err != nil {
			log.Printf("[Stage 1] %s failed: %v", doc.Name, err)
			continue
		}
		log.Printf("[Stage 1] %s: %d quotes", doc.Name, len(quotes))
		all = append(all, quotes...)
	}

	unique := dedupByPrefix(all)
	stats.Stage1Seconds = time.Since(stage1Start).Seconds()
	stats.TotalQuotes = len(unique)
	log.Printf("[Stage 1] Complete: %d unique quotes in %.1fs", len(unique), stats.Stage1Seconds)

	capped := unique
	if len(capped) > stage2QuoteCap {
		capped = capped[:stage2QuoteCap]
	}
	stats.QuotesCategorized = len(capped)

	lines := make([]string, 0, len(capped))
	for _, q := range capped {
		lines = append(lines, fmt.Sprintf("\"%s\" [%s]", q.Text, q.Source))
	}

	stage2Start := time.Now()
	response, err := t.LLM.Complete(ctx, fmt.Sprintf(t.Prompts.Categorize, strings.Join(lines, "\n")), stage2Timeout, stageMaxTokens)
	if err != nil {
		return nil, stats, fmt.Errorf("stage 2 categorization failed: %w", err)
	}

	result := parseCategorized(response)
	stats.Stage2Seconds = time.Since(stage2Start).Seconds()
	log.Printf("[Stage 2] Complete in %.1fs", stats.Stage2Seconds)

	return result, stats, nil
}

func (t *TwoStageCategorizer) extractQuotes(ctx context.Context, doc model.Document) ([]model.Quote, error) {
	response, err := t.LLM.Complete(ctx, fmt.Sprintf(t.Prompts.Quotes, clip(doc.Text, stage1DocLimit)), stage1Timeout, stageMaxTokens)
	if err != nil {
		return nil, err
	}

	parsed, err := common.ParseJSON[map[string][]string](response)
	if err != nil {
		// Unparsable stage-1 output is a miss for this document, not an
		// error.
		return nil, nil
	}

	var quotes []model.Quote
	for _, category := range stage1Categories {
		for _, q := range parsed[category] {
			if len(q) > minStage1Length {
				quotes = append(quotes, model.Quote{Text: q, Source: doc.Name, Category: category})
			}
		}
	}
	return quotes, nil
}

// dedupByPrefix keeps the first quote for each fixed-length prefix key.
// Prefix equality trades exact precision for resilience against trailing
// punctuation or truncation differences between near-identical quotes.
func dedupByPrefix(quotes []model.Quote) []model.Quote {
	seen := make(map[string]bool, len(quotes))
	unique := make([]model.Quote, 0, len(quotes))
	for _, q := range quotes {
		key := clip(q.Text, dedupPrefixBytes)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, q)
	}
	return unique
}

// parseCategorized parses the stage-2 response. The model may repeat a quote
// across overlapping criteria in one response, so each bucket is de-duplicated
// with order-preserving uniqueness. An unparsable response yields an empty
// result, distinct from a transport failure.
func parseCategorized(response string) map[string]model.CriterionEvidence {
	parsed, err := common.ParseJSON[map[string]model.CriterionEvidence](response)
	if err != nil {
		log.Printf("[Stage 2] Response unparsable: %v", err)
		return map[string]model.CriterionEvidence{}
	}

	for crit, ev := range parsed {
		ev.Supporting = dedupOrdered(ev.Supporting)
		ev.Contradicting = dedupOrdered(ev.Contradicting)
		parsed[crit] = ev
	}
	return parsed
}

func dedupOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
