package report

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/nutrigen-agent/internal/models"
	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
)

// DefaultTimeout bounds a backend call when no other timeout is configured.
const DefaultTimeout = 60 * time.Second

// Request is what a backend receives for one report.
type Request struct {
	Prompt string
	Schema *prompt.Schema
	// Locale is the language every generated text must be written in.
	Locale string
	// JSONMode asks the backend to return only schema-conforming JSON.
	JSONMode bool
}

// Backend is a generative model that turns a prompt into JSON text.
// Implementations must be safe for concurrent use and should honor ctx.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) (string, error)

func (f BackendFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Pipeline generates validated reports. It holds no per-request state and
// may be shared across goroutines.
type Pipeline struct {
	backend  Backend
	glossary prompt.Glossary
	timeout  time.Duration
	policy   Policy
	logger   *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTimeout bounds each backend call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithPolicy selects how BMI/category mismatches are handled.
func WithPolicy(policy Policy) Option {
	return func(p *Pipeline) { p.policy = policy }
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithGlossary replaces the question order embedded in the prompt.
func WithGlossary(g prompt.Glossary) Option {
	return func(p *Pipeline) { p.glossary = g }
}

// New returns a pipeline that calls b, with strict BMI policy and
// DefaultTimeout unless options say otherwise.
func New(b Backend, opts ...Option) *Pipeline {
	p := &Pipeline{
		backend:  b,
		glossary: prompt.DefaultGlossary(),
		timeout:  DefaultTimeout,
		policy:   PolicyStrict,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Policy reports the configured BMI policy.
func (p *Pipeline) Policy() Policy { return p.policy }

// ValidateInput rejects empty or whitespace-only submissions. Callers run
// it before Generate; Generate itself forwards whatever it is given.
func ValidateInput(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &Error{Kind: KindInputRejected, Msg: "raw submission is empty"}
	}
	return nil
}

// Generate turns one raw submission into a validated report. On failure it
// returns a *Error and no report.
func (p *Pipeline) Generate(ctx context.Context, raw string) (*models.Report, error) {
	sub := prompt.ParseSubmission(p.glossary, raw)
	log := p.logger.With(zap.Int("answers", len(sub.Answers)))
	if missing := sub.Missing(p.glossary); missing > 0 {
		log.Warn("submission shorter than questionnaire", zap.Int("missing", missing))
	}
	if len(sub.Extra) > 0 {
		log.Warn("submission longer than questionnaire", zap.Int("extra", len(sub.Extra)))
	}

	text, schema := prompt.Compile(p.glossary, raw)
	req := Request{
		Prompt:   text,
		Schema:   schema,
		Locale:   prompt.Locale,
		JSONMode: true,
	}

	start := time.Now()
	out, err := p.complete(ctx, req)
	if err != nil {
		log.Error("backend call failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, err
	}
	log.Debug("backend responded", zap.Duration("elapsed", time.Since(start)), zap.Int("bytes", len(out)))

	r, err := p.decode(out, schema)
	if err != nil {
		log.Warn("rejected backend response", zap.Stringer("kind", KindOf(err)), zap.Error(err))
		return nil, err
	}

	log.Info("report generated",
		zap.String("bmi_category", r.ProfileSummary.BMICategory),
		zap.Int("warnings", len(r.Warnings)),
	)
	return r, nil
}

// complete calls the backend under the configured deadline. If the backend
// ignores cancellation its late result is dropped.
func (p *Pipeline) complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := p.backend.Complete(ctx, req)
		done <- result{text, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", &Error{Kind: KindTransport, Msg: "backend call failed", Err: res.err}
		}
		return res.text, nil
	case <-ctx.Done():
		return "", &Error{Kind: KindTransport, Msg: "backend call did not complete", Err: ctx.Err()}
	}
}

func (p *Pipeline) decode(out string, schema *prompt.Schema) (*models.Report, error) {
	body, v, err := parse(out)
	if err != nil {
		return nil, err
	}
	if err := conform("", schema.Root, v); err != nil {
		return nil, err
	}

	var r models.Report
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, &Error{Kind: KindSchema, Msg: "response does not fit the report model", Err: err}
	}
	// Warnings are ours to set.
	r.Warnings = nil

	if err := checkStructure(&r); err != nil {
		return nil, err
	}

	if err := checkBMI(r.ProfileSummary.BMI, r.ProfileSummary.BMICategory); err != nil {
		if p.policy == PolicyStrict {
			return nil, err
		}
		p.logger.Warn("bmi category mismatch accepted", zap.Error(err))
		r.Warnings = append(r.Warnings, err.Error())
	}
	return &r, nil
}
