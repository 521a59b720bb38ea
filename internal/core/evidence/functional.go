package evidence

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Diogenes67/aurum-asd/internal/config"
	"github.com/Diogenes67/aurum-asd/internal/core/common"
	"github.com/Diogenes67/aurum-asd/internal/core/model"
	"github.com/Diogenes67/aurum-asd/internal/llm"
)

const (
	functionalTimeout   = 180 * time.Second
	functionalMaxTokens = 2000
)

// FunctionalExtractor summarizes the combined documents into the ten
// functional-assessment domains with a single completion call. All-or-nothing
// by construction.
type FunctionalExtractor struct {
	LLM    llm.CompletionClient
	Prompt string
}

func NewFunctionalExtractor(client llm.CompletionClient, prompts config.ExtractionPrompts) *FunctionalExtractor {
	return &FunctionalExtractor{
		LLM:    client,
		Prompt: prompts.Functional,
	}
}

func (f *FunctionalExtractor) Extract(ctx context.Context, text string) (*model.FunctionalSummary, error) {
	log.Printf("[Functional] Document length: %d chars", len(text))

	response, err := f.LLM.Complete(ctx, fmt.Sprintf(f.Prompt, text), functionalTimeout, functionalMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("functional extraction failed: %w", err)
	}

	summary, err := common.ParseJSON[model.FunctionalSummary](response)
	if err != nil {
		return nil, fmt.Errorf("no valid JSON in response: %w", err)
	}
	return &summary, nil
}
