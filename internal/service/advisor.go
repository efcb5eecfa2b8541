package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chibuzordev/owlow/internal/config"
	"github.com/chibuzordev/owlow/internal/model"
)

// FallbackAdvice is returned when every attempt at model-generated advice
// fails validation. It is deliberately a stable constant.
const FallbackAdvice = "No strong AI advice available; consider widening your search area or increasing budget slightly."

const advisorSystemPrompt = "ROLE: Professional property advisor. Output plain text only, one short paragraph, no quotes, no markdown."

// Letters of the Polish alphabet count as alphanumeric during validation, so a
// fully-Polish paragraph is never rejected as garbage.
var nonAlnumRe = regexp.MustCompile(`^[^A-Za-z0-9ąćęłńóśźżĄĆĘŁŃÓŚŹŻ]+$`)

// advisorSentinels are exact strings treated as an empty response.
var advisorSentinels = map[string]struct{}{
	"":     {},
	"''":   {},
	`""`:   {},
	"“”":   {},
	"``":   {},
	"none": {},
	"null": {},
}

// Advisor turns a query plus the top-ranked properties into one short
// natural-language recommendation. Advise is total: it retries a bounded
// number of times and falls back to a fixed sentence rather than ever
// returning empty or unvalidated model text.
type Advisor struct {
	oracle     Oracle
	model      string
	maxTokens  int
	maxRetries int
	retryDelay time.Duration
	log        *logrus.Logger
}

// NewAdvisor creates a new advisor
func NewAdvisor(oracle Oracle, aiCfg *config.OpenAIConfig, cfg *config.AdvisorConfig, log *logrus.Logger) *Advisor {
	return &Advisor{
		oracle:     oracle,
		model:      aiCfg.AdvisorModel,
		maxTokens:  aiCfg.AdvisorMaxTokens,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		log:        log,
	}
}

// Advise generates advice for the query given at most the first 5 top results.
func (a *Advisor) Advise(ctx context.Context, query string, top []model.Property) string {
	if len(top) > 5 {
		top = top[:5]
	}
	payload, err := json.Marshal(top)
	if err != nil {
		payload = []byte("[]")
	}

	userPrompt := "Query: " + query + "\nTop properties (JSON):\n" + string(payload) + "\n Provide concise advice."

	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(a.retryDelay)
		}

		raw, err := a.oracle.Complete(ctx, a.model, advisorSystemPrompt, userPrompt, a.maxTokens)
		if err != nil {
			a.log.WithError(err).WithField("attempt", attempt+1).Warn("advisor completion failed")
			raw = ""
		}

		text := sanitizeAdvice(raw)
		if adviceLooksValid(text) {
			return text
		}
	}

	return FallbackAdvice
}

// sanitizeAdvice trims whitespace, discards wholly code-fenced responses, and
// strips wrapping quote characters. Exact sentinel strings collapse to "".
func sanitizeAdvice(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") && strings.HasSuffix(t, "```") {
		t = ""
	}
	t = strings.Trim(t, " \n\t'\"`“”")
	if _, sentinel := advisorSentinels[t]; sentinel {
		return ""
	}
	return t
}

// adviceLooksValid requires at least 6 whitespace-separated tokens and at
// least one alphanumeric character.
func adviceLooksValid(t string) bool {
	if t == "" || len(strings.Fields(t)) < 6 {
		return false
	}
	if nonAlnumRe.MatchString(t) {
		return false
	}
	return true
}
