// Package backend connects the report pipeline to Google's Gemini models.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/nutrigen-agent/internal/config"
	"github.com/BerylCAtieno/nutrigen-agent/internal/report"
)

// Client is a report backend that holds an SDK connection.
type Client interface {
	report.Backend
	Name() string
	Close() error
}

var errNoAPIKey = errors.New("gemini API key is required")

// New creates the client selected by cfg.SDK.
func New(ctx context.Context, cfg config.BackendConfig) (Client, error) {
	switch cfg.SDK {
	case config.SDKGenerativeAI, "":
		return NewGeminiClient(ctx, cfg)
	case config.SDKGenAI:
		return NewGenAIClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend sdk %q", cfg.SDK)
	}
}

// localeDirective is the system instruction that pins the output language.
func localeDirective(locale string, jsonMode bool) string {
	lang := locale
	if locale == "pt-BR" {
		lang = "Português do Brasil (pt-BR)"
	}
	s := fmt.Sprintf("Escreva todo o texto gerado exclusivamente em %s.", lang)
	if jsonMode {
		s += " Responda somente com JSON que siga o schema fornecido, sem texto adicional nem markdown."
	}
	return s
}
