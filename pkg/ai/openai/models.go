package openai

import (
	"context"

	"github.com/yppgo/patentgraph/pkg/ai"
)

// ListModels returns the model identifiers the configured endpoint serves.
// Aggregators and local gateways expose their whole catalog here, which is
// how the estimate tooling discovers what it can price.
func (c *ExtractorClient) ListModels(
	ctx context.Context,
) ([]ai.ModelInfo, error) {
	models := []ai.ModelInfo{}

	page, err := c.ChatClient.Models.List(ctx)
	if err != nil {
		return nil, err
	}

	for page != nil {
		for _, m := range page.Data {
			models = append(models, ai.ModelInfo{
				ID:      m.ID,
				OwnedBy: m.OwnedBy,
			})
		}

		page, err = page.GetNextPage()
		if err != nil {
			return nil, err
		}
	}

	return models, nil
}
