package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/BerylCAtieno/nutrigen-agent/internal/config"
	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
	"github.com/BerylCAtieno/nutrigen-agent/internal/report"
)

// GeminiClient talks to Gemini through github.com/google/generative-ai-go.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGeminiClient connects with cfg.APIKey and tunes the configured model.
func NewGeminiClient(ctx context.Context, cfg config.BackendConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errNoAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.SetTopP(cfg.TopP)
	if cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		name:   "generative-ai:" + cfg.Model,
	}, nil
}

func (g *GeminiClient) Name() string { return g.name }

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Complete sends one prompt. The configured model is copied so that the
// per-request schema and instruction never touch shared state.
func (g *GeminiClient) Complete(ctx context.Context, req report.Request) (string, error) {
	model := *g.model
	if req.JSONMode {
		model.ResponseMIMEType = "application/json"
		if req.Schema != nil {
			model.ResponseSchema = geminiSchema(req.Schema.Root)
		}
	}
	if req.Locale != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(localeDirective(req.Locale, req.JSONMode)))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

var geminiTypes = map[prompt.Type]genai.Type{
	prompt.TypeString:  genai.TypeString,
	prompt.TypeInteger: genai.TypeInteger,
	prompt.TypeNumber:  genai.TypeNumber,
	prompt.TypeArray:   genai.TypeArray,
	prompt.TypeObject:  genai.TypeObject,
}

// geminiSchema converts a report descriptor to the SDK schema.
func geminiSchema(f *prompt.Field) *genai.Schema {
	if f == nil {
		return nil
	}
	s := &genai.Schema{Type: geminiTypes[f.Type]}
	if len(f.Enum) > 0 {
		s.Format = "enum"
		s.Enum = append([]string(nil), f.Enum...)
	}
	if f.Items != nil {
		s.Items = geminiSchema(f.Items)
	}
	if len(f.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(f.Properties))
		for _, p := range f.Properties {
			s.Properties[p.Name] = geminiSchema(p)
		}
		s.Required = f.RequiredNames()
	}
	return s
}
