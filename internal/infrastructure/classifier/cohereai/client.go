package cohereai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/shelfworks/bookintake/internal/core/domain"
	"github.com/shelfworks/bookintake/internal/infrastructure/classifier"
)

// Client is the fallback classifier backend, speaking the Cohere chat API.
// SDK: github.com/cohere-ai/cohere-go/v2
type Client struct {
	client *cohereclient.Client
	model  string
}

func New(apiKey, model string) *Client {
	if model == "" {
		model = "command-r"
	}
	httpClient := &http.Client{Timeout: 120 * time.Second}
	return &Client{
		client: cohereclient.NewClient(
			cohereclient.WithToken(apiKey),
			cohereclient.WithHTTPClient(httpClient),
		),
		model: model,
	}
}

func (c *Client) Name() string { return "cohere" }

func (c *Client) Classify(ctx context.Context, excerpt string) (domain.Metadata, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: classifier.BuildPrompt(excerpt),
		Model:   &c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat: %w", err)
	}
	if resp == nil {
		return nil, errors.New("cohere chat returned empty response")
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, errors.New("cohere chat returned empty completion")
	}
	return classifier.ParseMetadata(text), nil
}
