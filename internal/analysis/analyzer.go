// Package analysis wraps the generative-AI call that produces the one-line
// comic annotation attached to an entry. The analyzer absorbs every upstream
// failure: callers always get a string back, possibly a canned apology, and
// entry creation never blocks on analysis succeeding.
package analysis

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
)

// DefaultModel is the generation model used unless overridden.
const DefaultModel = "gemini-3-flash-preview"

const (
	slipPrompt = `بصفتك خبير لغوي كوميدي، حلل هذه "الكلجة" (خطأ نطقي) التي قالها {name}: "{content}".
أعطني تحليل قصير جداً وفكاهي (سطر واحد) يفسر سبب حدوث الخطأ بأسلوب ساخر.`

	jokePrompt = `بصفتك ناقد كوميدي، قيّم هذه "الذبة" التي أطلقها {name}: "{content}".
أعطني تعليق قصير جداً وساخر (سطر واحد) عن مستوى الذبة.`

	// Returned when the upstream call fails outright.
	fallbackError = "يبدو أن الذكاء الاصطناعي أخذ استراحة من الضحك."

	// Returned when the model answers with an empty body.
	fallbackEmpty = "تحليل معقد لدرجة أن الذكاء الاصطناعي نفسه انصدم!"
)

// Analyzer produces annotations via the Gemini API. The zero-value (or a
// nil *Analyzer) is a disabled analyzer whose Analyze always returns "".
type Analyzer struct {
	model  string
	log    logging.Logger
	client *genai.Client

	// generate is the upstream call, replaceable in tests.
	generate func(ctx context.Context, prompt string) (string, error)
}

// New builds an Analyzer talking to the Gemini API. An empty apiKey yields a
// disabled analyzer (nil, nil): entries are then created without analysis.
func New(ctx context.Context, apiKey, model string, log logging.Logger) (*Analyzer, error) {
	if apiKey == "" {
		return nil, nil
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}

	a := &Analyzer{model: model, log: log.With("module", "analysis"), client: client}
	a.generate = a.generateContent
	return a, nil
}

func (a *Analyzer) generateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Enabled reports whether the analyzer will actually call the model.
func (a *Analyzer) Enabled() bool {
	return a != nil && a.generate != nil
}

// Analyze returns a one-line comic annotation for the given entry fields.
// promptOverride, when non-empty, replaces the built-in prompt for the
// category (admin-configured). Analyze never returns an error: upstream
// failures and empty responses degrade to fixed fallback lines.
func (a *Analyzer) Analyze(ctx context.Context, name, content string, category models.Category, promptOverride string) string {
	if !a.Enabled() {
		return ""
	}

	prompt := promptOverride
	if prompt == "" {
		switch category {
		case models.CategoryJoke:
			prompt = jokePrompt
		default:
			prompt = slipPrompt
		}
	}
	prompt = strings.ReplaceAll(prompt, "{name}", name)
	prompt = strings.ReplaceAll(prompt, "{content}", content)

	text, err := a.generate(ctx, prompt)
	if err != nil {
		if a.log != nil {
			a.log.Warn(ctx, "analysis failed", "error", err.Error())
		}
		return fallbackError
	}
	if strings.TrimSpace(text) == "" {
		return fallbackEmpty
	}
	return strings.TrimSpace(text)
}
