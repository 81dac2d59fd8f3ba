// Package fix talks to an OpenAI-compatible text-generation service to
// propose corrections for findings or whole documents. Every call is
// best-effort: a service failure degrades to an explanatory placeholder
// and a typed failure, it never aborts a scan or a report.
package fix

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/openai/openai-go/option"
	"golang.org/x/sync/errgroup"

	"github.com/KubeVet/kubevet/internal/config"
	"github.com/KubeVet/kubevet/internal/manifest"
	"github.com/KubeVet/kubevet/internal/model"
)

// generator is the single seam between the client and the network. Tests
// plug in a fake, production uses genkit.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

type genkitGenerator struct {
	g       *genkit.Genkit
	modelID string
}

func (g genkitGenerator) generate(ctx context.Context, prompt string) (string, error) {
	return genkit.GenerateText(ctx, g.g,
		ai.WithModelName(g.modelID),
		ai.WithPrompt(prompt),
	)
}

// Suggestion is the outcome of one per-finding fix request. When Err is
// set, Text still carries an explanatory placeholder so reports never end
// up with an empty slot.
type Suggestion struct {
	Text string
	Err  error
}

// Correction is the outcome of a whole-document rewrite. Warning is set,
// non-fatally, when the corrected text failed to re-parse as YAML; the
// text is surfaced regardless.
type Correction struct {
	Text    string
	Warning error
	Err     error
}

// Client requests corrections from a configured provider. Construct it
// explicitly and pass it where needed; there is no package-level state.
type Client struct {
	gen      generator
	parallel int
	timeout  time.Duration
}

// New builds a Client against the OpenAI-compatible endpoint in cfg.
func New(ctx context.Context, cfg config.FixConfig) *Client {
	var opts []option.RequestOption
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	plugin := &oai.OpenAI{
		APIKey: cfg.APIKey,
		Opts:   opts,
	}

	modelID := cfg.Model
	if !strings.Contains(modelID, "/") {
		modelID = "openai/" + modelID
	}

	g := genkit.Init(ctx,
		genkit.WithDefaultModel(modelID),
		genkit.WithPlugins(plugin),
	)

	return &Client{
		gen:      genkitGenerator{g: g, modelID: modelID},
		parallel: max(cfg.Parallel, 1),
		timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// SuggestFix asks for a one-line fix for a single finding.
func (c *Client) SuggestFix(ctx context.Context, snippet, message string) Suggestion {
	prompt := fmt.Sprintf(`You are a Kubernetes configuration expert. Suggest a fix for the following issue in one short sentence.

Issue: %s

Fragment:
%s

Return only the suggestion, no preamble.`, message, snippet)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return Suggestion{
			Text: "suggestion unavailable: " + err.Error(),
			Err:  fmt.Errorf("requesting suggestion: %w", err),
		}
	}
	return Suggestion{Text: strings.TrimSpace(text)}
}

// CorrectDocument asks for a rewrite of the whole YAML document. The
// response is treated as untrusted text: fences are stripped and the
// remainder re-parsed as YAML; a parse failure only sets Warning.
func (c *Client) CorrectDocument(ctx context.Context, yamlText string) Correction {
	prompt := fmt.Sprintf(`You are a Kubernetes configuration expert. Fix the following YAML configuration by correcting any errors, misconfigurations, or missing best practices. Ensure valid syntax and maintain the structure.

Input YAML:
%s

Return only the corrected YAML configuration.`, yamlText)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return Correction{
			Text: "no corrected document available: " + err.Error(),
			Err:  fmt.Errorf("requesting correction: %w", err),
		}
	}

	corrected := StripFences(text)
	if _, err := manifest.Decode(strings.NewReader(corrected)); err != nil {
		return Correction{
			Text:    corrected,
			Warning: fmt.Errorf("corrected document is not valid YAML: %w", err),
		}
	}
	return Correction{Text: corrected}
}

// EnrichFindings requests one suggestion per finding, in parallel up to the
// configured limit. The returned slice matches findings by index, so
// report order is preserved regardless of completion order.
func (c *Client) EnrichFindings(ctx context.Context, findings []model.Finding) []Suggestion {
	suggestions := make([]Suggestion, len(findings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i, f := range findings {
		g.Go(func() error {
			s := c.SuggestFix(gctx, f.Snippet, f.Message)
			if s.Err != nil {
				slog.DebugContext(gctx, "suggestion failed", "error", s.Err)
			}
			suggestions[i] = s
			return nil
		})
	}
	_ = g.Wait()
	return suggestions
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.gen.generate(ctx, prompt)
}

// StripFences removes one leading and one trailing markdown fence pair,
// with an optional language tag, leaving the body untouched otherwise.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	if idx := strings.LastIndex(text, "```"); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
