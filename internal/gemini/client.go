package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/platefinder/api/internal/dto"
)

// GroundingSource is a titled link attached to a grounding chunk.
type GroundingSource struct {
	Title string
	URI   string
}

// GroundingChunk correlates a generated answer with a real-world place or
// page. Either source may be nil, and chunks carry no guaranteed
// correspondence to the answer text.
type GroundingChunk struct {
	Web  *GroundingSource
	Maps *GroundingSource
}

// GroundedAnswer is the model's free-text reply plus its grounding metadata.
type GroundedAnswer struct {
	Text   string
	Chunks []GroundingChunk
}

// Client calls the Gemini API with the Google Maps grounding tool enabled.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient builds a Gemini client authenticated with an API key.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key must not be empty")
	}
	if model == "" {
		return nil, errors.New("gemini model must not be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// GenerateGrounded submits the prompt with the maps tool enabled and the
// retrieval bias set to the caller coordinate. The maps tool cannot be
// combined with a structured-output schema, so the reply is free text and
// the pipe-delimited line format requested in the prompt is the only
// contract with the model.
func (c *Client) GenerateGrounded(ctx context.Context, prompt string, loc dto.GeoLocation) (*GroundedAnswer, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleMaps: &genai.GoogleMaps{}},
		},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: genai.Ptr(loc.Latitude), Longitude: genai.Ptr(loc.Longitude)},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	answer := &GroundedAnswer{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk == nil {
				continue
			}
			mapped := GroundingChunk{}
			if chunk.Web != nil {
				mapped.Web = &GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI}
			}
			if chunk.Maps != nil {
				mapped.Maps = &GroundingSource{Title: chunk.Maps.Title, URI: chunk.Maps.URI}
			}
			answer.Chunks = append(answer.Chunks, mapped)
		}
	}

	return answer, nil
}
