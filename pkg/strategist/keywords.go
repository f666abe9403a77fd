package strategist

import (
	"context"

	"github.com/yppgo/patentgraph/pkg/ai"
	"github.com/yppgo/patentgraph/pkg/logger"
)

type keywordResponse struct {
	Keywords []string `json:"keywords" jsonschema_description:"Distinct domain concepts the question refers to, lowercased"`
}

// ExtractKeywordsLLM asks the model for the domain concepts in a question,
// falling back to rule-based extraction when the call fails or returns
// nothing. A nil client goes straight to the fallback.
func ExtractKeywordsLLM(ctx context.Context, client ai.Client, question string) []string {
	if client == nil {
		return ExtractKeywords(question)
	}

	var resp keywordResponse
	err := client.GenerateCompletionWithFormat(
		ctx,
		"question_keywords",
		"Domain keywords extracted from a research question",
		question,
		&resp,
		ai.WithSystemPrompts(ai.KeywordExtractionSystemPrompt),
	)
	if err != nil || len(resp.Keywords) == 0 {
		if err != nil {
			logger.Warn("[Matcher] Keyword extraction fell back to rules", "err", err)
		}
		return ExtractKeywords(question)
	}

	return resp.Keywords
}
