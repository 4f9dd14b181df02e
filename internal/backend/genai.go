package backend

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/BerylCAtieno/nutrigen-agent/internal/config"
	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
	"github.com/BerylCAtieno/nutrigen-agent/internal/report"
)

// GenAIClient talks to Gemini through the unified google.golang.org/genai SDK.
type GenAIClient struct {
	client *genai.Client
	model  string

	temperature     float32
	topP            float32
	maxOutputTokens int32
}

func NewGenAIClient(ctx context.Context, cfg config.BackendConfig) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{
		client:          client,
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		topP:            cfg.TopP,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

func (c *GenAIClient) Name() string { return "genai:" + c.model }

// Close is a no-op; the SDK client holds no resources that need releasing.
func (c *GenAIClient) Close() error { return nil }

func (c *GenAIClient) Complete(ctx context.Context, req report.Request) (string, error) {
	gc := c.generateConfig(req)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), gc)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no content generated")
	}
	return text, nil
}

func (c *GenAIClient) generateConfig(req report.Request) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		TopP:            genai.Ptr(c.topP),
		MaxOutputTokens: c.maxOutputTokens,
	}
	if req.JSONMode {
		gc.ResponseMIMEType = "application/json"
		if req.Schema != nil {
			gc.ResponseSchema = genaiSchema(req.Schema.Root)
		}
	}
	if req.Locale != "" {
		gc.SystemInstruction = genai.NewContentFromText(localeDirective(req.Locale, req.JSONMode), genai.RoleUser)
	}
	return gc
}

var genaiTypes = map[prompt.Type]genai.Type{
	prompt.TypeString:  genai.TypeString,
	prompt.TypeInteger: genai.TypeInteger,
	prompt.TypeNumber:  genai.TypeNumber,
	prompt.TypeArray:   genai.TypeArray,
	prompt.TypeObject:  genai.TypeObject,
}

// genaiSchema converts a report descriptor, keeping property order.
func genaiSchema(f *prompt.Field) *genai.Schema {
	if f == nil {
		return nil
	}
	s := &genai.Schema{Type: genaiTypes[f.Type]}
	if len(f.Enum) > 0 {
		s.Format = "enum"
		s.Enum = append([]string(nil), f.Enum...)
	}
	if f.Items != nil {
		s.Items = genaiSchema(f.Items)
	}
	if len(f.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(f.Properties))
		s.PropertyOrdering = make([]string, 0, len(f.Properties))
		for _, p := range f.Properties {
			s.Properties[p.Name] = genaiSchema(p)
			s.PropertyOrdering = append(s.PropertyOrdering, p.Name)
		}
		s.Required = f.RequiredNames()
	}
	return s
}
