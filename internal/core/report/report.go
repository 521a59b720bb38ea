// Package report synthesizes audience-specific assessment reports (caregiver,
// teacher, GP, NDIS) with one comprehensive completion call each.
package report

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Diogenes67/aurum-asd/internal/core/model"
	"github.com/Diogenes67/aurum-asd/internal/llm"
)

type ClientInfo struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Pronouns string `json:"pronouns"`
}

type DiagnosticDecisions struct {
	ASDMet        bool   `json:"asdMet"`
	SeverityLevel string `json:"severityLevel"`
}

type Request struct {
	Type       string
	Client     ClientInfo
	Evidence   model.EvidenceBucket
	Functional map[string]string
	Diagnostic DiagnosticDecisions
	CaseNote   string
	Documents  []model.Document
}

// Builder issues the single report-synthesis call. All-or-nothing: there is
// no partial aggregation to preserve for a one-shot combined request.
type Builder struct {
	LLM       llm.CompletionClient
	Templates TemplateStore
}

func NewBuilder(client llm.CompletionClient, templates TemplateStore) *Builder {
	return &Builder{
		LLM:       client,
		Templates: templates,
	}
}

// Generate builds the audience prompt and runs it. The NDIS template is the
// most comprehensive and gets the largest token and time budget.
func (b *Builder) Generate(ctx context.Context, req Request) (string, error) {
	prompt := b.buildPrompt(req)

	maxTokens := 2000
	timeout := 180 * time.Second
	switch req.Type {
	case "ndis":
		maxTokens = 8000
		timeout = 300 * time.Second
	case "teacher", "gp", "caregiver":
		maxTokens = 6000
	}

	result, err := b.LLM.Complete(ctx, prompt, timeout, maxTokens)
	if err != nil {
		return "", fmt.Errorf("report generation failed: %w", err)
	}
	log.Printf("[Report] Generated %d chars", len(result))
	return result, nil
}

func (b *Builder) buildPrompt(req Request) string {
	name := req.Client.Name
	if name == "" {
		name = "[Name]"
	}
	pronouns := req.Client.Pronouns
	if pronouns == "" {
		pronouns = "they/them"
	}

	diagnosis := "ASD not confirmed"
	if req.Diagnostic.ASDMet {
		diagnosis = "ASD confirmed"
	}
	severity := req.Diagnostic.SeverityLevel
	if severity == "" {
		severity = "Level 1"
	}

	switch req.Type {
	case "caregiver":
		return fmt.Sprintf(`Fill in this caregiver report template using the clinical documents provided.

CHILD: %s
AGE: %s
PRONOUNS: %s
DIAGNOSIS: %s - %s

=== ORIGINAL CLINICAL DOCUMENTS ===
%s

=== CAREGIVER REPORT TEMPLATE ===
%s

=== INSTRUCTIONS ===
1. Read through ALL the clinical documents above carefully
2. Fill in EVERY section of the template using actual information from the documents
3. Replace all {placeholders} with real data from the clinical reports
4. Use warm, supportive, plain language - no clinical jargon
5. Use neurodiversity-affirming language (differences not deficits)
6. If information is not in documents, write "[To be discussed with family]" - do not invent

Write the complete filled-in Caregiver Report now in Markdown format:`,
			name, req.Client.Age, pronouns, diagnosis, severity,
			documentsBlock(req.Documents, 6000), b.Templates.Load("caregiver"))

	case "teacher":
		return fmt.Sprintf(`Fill in this teacher letter template using the clinical reports provided.

STUDENT: %s
AGE: %s
PRONOUNS: %s
DIAGNOSIS: %s - %s

=== ORIGINAL CLINICAL REPORTS ===
%s

=== TEMPLATE TO COMPLETE ===
%s
=== END TEMPLATE ===

Output the completed letter:`,
			name, req.Client.Age, pronouns, diagnosis, severity,
			documentsBlock(req.Documents, 4000), b.Templates.Load("teacher"))

	case "gp":
		return fmt.Sprintf(`Fill in this GP letter template using the clinical reports provided.

PATIENT: %s
AGE: %s
PRONOUNS: %s
DIAGNOSIS: %s - %s

=== ORIGINAL CLINICAL REPORTS ===
%s

=== TEMPLATE TO COMPLETE ===
%s
=== END TEMPLATE ===

Output the completed letter:`,
			name, req.Client.Age, pronouns, diagnosis, severity,
			documentsBlock(req.Documents, 4000), b.Templates.Load("gp"))

	case "ndis":
		return fmt.Sprintf(`Fill in this NDIS Supporting Evidence template using the clinical documents provided.

CHILD: %s
AGE: %s
PRONOUNS: %s
DIAGNOSIS: %s - %s

=== ORIGINAL CLINICAL DOCUMENTS ===
%s

=== NDIS SUPPORTING EVIDENCE TEMPLATE ===
%s

Write the complete filled-in NDIS Supporting Evidence Report now in Markdown format:`,
			name, req.Client.Age, pronouns, diagnosis, severity,
			documentsBlock(req.Documents, 6000), b.Templates.Load("ndis"))

	default:
		return fmt.Sprintf(`Generate a summary report for %s.

CLIENT: %s, Age %s
PRONOUNS: %s
DIAGNOSIS: %s - %s

EXTRACTED EVIDENCE:
%s

FUNCTIONAL SUMMARY:
%s

CASE NOTE EXCERPT:
%s`,
			name, name, req.Client.Age, pronouns, diagnosis, severity,
			evidenceBlock(req.Evidence), functionalBlock(req.Functional),
			clip(req.CaseNote, 2000))
	}
}

func documentsBlock(docs []model.Document, limit int) string {
	var b strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&b, "\n--- %s ---\n%s\n", doc.Name, clip(doc.Text, limit))
	}
	return b.String()
}

func evidenceBlock(bucket model.EvidenceBucket) string {
	var b strings.Builder
	for _, criterion := range model.CriteriaKeys {
		items := bucket[criterion]
		if len(items) == 0 {
			continue
		}
		if len(items) > 5 {
			items = items[:5]
		}
		quoted := make([]string, 0, len(items))
		for _, item := range items {
			quoted = append(quoted, fmt.Sprintf("\"%s\"", item.Text))
		}
		fmt.Fprintf(&b, "- %s: %s\n", criterion, strings.Join(quoted, ", "))
	}
	return b.String()
}

func functionalBlock(functional map[string]string) string {
	var b strings.Builder
	for _, domain := range []string{
		"strengths", "medical", "cognitive", "speech", "motor",
		"social", "emotional", "attention", "adaptive", "background",
	} {
		v := functional[domain]
		if v == "" {
			continue
		}
		if len(v) > 200 {
			v = v[:200] + "..."
		}
		fmt.Fprintf(&b, "- %s: %s\n", domain, v)
	}
	return b.String()
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
