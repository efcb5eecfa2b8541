package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chibuzordev/owlow/internal/config"
	"github.com/chibuzordev/owlow/internal/model"
)

func newTestAdvisor(oracle Oracle, maxRetries int) *Advisor {
	return NewAdvisor(oracle, testAIConfig(), &config.AdvisorConfig{
		MaxRetries: maxRetries,
		RetryDelay: 0,
	}, testLogger())
}

func TestAdvise_ValidResponseWinsImmediately(t *testing.T) {
	oracle := &stubOracle{response: "Rozważ mieszkanie A1, dobra cena za metr i balkon w centrum."}
	a := newTestAdvisor(oracle, 2)

	got := a.Advise(context.Background(), "mieszkanie z balkonem", testDataset())

	assert.Equal(t, "Rozważ mieszkanie A1, dobra cena za metr i balkon w centrum.", got)
	assert.Equal(t, 1, oracle.calls)
}

func TestAdvise_EmptyOracleYieldsFallbackAfterAllAttempts(t *testing.T) {
	oracle := &stubOracle{response: ""}
	a := newTestAdvisor(oracle, 2)

	got := a.Advise(context.Background(), "cokolwiek", nil)

	assert.Equal(t, FallbackAdvice, got)
	assert.Equal(t, 3, oracle.calls) // maxRetries + 1 attempts
}

func TestAdvise_OracleErrorYieldsFallback(t *testing.T) {
	oracle := &stubOracle{err: errors.New("connection refused")}
	a := newTestAdvisor(oracle, 1)

	got := a.Advise(context.Background(), "cokolwiek", nil)

	assert.Equal(t, FallbackAdvice, got)
	assert.Equal(t, 2, oracle.calls)
}

func TestAdvise_RetryRecoversOnSecondAttempt(t *testing.T) {
	oracle := &scriptedOracle{responses: []string{
		"null",
		"Warto obejrzeć B2, najniższa cena w zestawieniu i dobry metraż.",
	}}
	a := newTestAdvisor(oracle, 1)

	got := a.Advise(context.Background(), "najtańsze mieszkanie", testDataset())

	assert.Equal(t, "Warto obejrzeć B2, najniższa cena w zestawieniu i dobry metraż.", got)
	assert.Equal(t, 2, oracle.calls)
}

func TestAdvise_StripsWrappingQuotes(t *testing.T) {
	oracle := &stubOracle{response: `"Polecam obejrzeć oferty z balkonem w dzielnicy Mokotów najpierw."`}
	a := newTestAdvisor(oracle, 0)

	got := a.Advise(context.Background(), "z balkonem", nil)

	assert.Equal(t, "Polecam obejrzeć oferty z balkonem w dzielnicy Mokotów najpierw.", got)
}

func TestAdvise_WhollyFencedResponseIsDiscarded(t *testing.T) {
	oracle := &stubOracle{response: "```\nsome fenced payload here\n```"}
	a := newTestAdvisor(oracle, 0)

	got := a.Advise(context.Background(), "cokolwiek", nil)

	assert.Equal(t, FallbackAdvice, got)
}

func TestSanitizeAdvice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  porada  \n", "porada"},
		{"strips quotes", `"porada"`, "porada"},
		{"strips backticks", "`porada`", "porada"},
		{"strips smart quotes", "“porada”", "porada"},
		{"sentinel none", "none", ""},
		{"sentinel null", "null", ""},
		{"sentinel empty quotes", `""`, ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeAdvice(tt.input))
		})
	}
}

func TestAdviceLooksValid(t *testing.T) {
	assert.True(t, adviceLooksValid("jedno dwa trzy cztery pięć sześć"))
	assert.False(t, adviceLooksValid("za mało słów tutaj jest"))
	assert.False(t, adviceLooksValid(""))
	assert.False(t, adviceLooksValid("!!! ??? ... --- ,,, ;;;"))
	// Polish diacritics count as letters.
	assert.True(t, adviceLooksValid("ładne mieszkanie ze świetną łazienką i ogródkiem"))
}

func TestAdvise_TruncatesContextToFiveProperties(t *testing.T) {
	var props []model.Property
	for i := 0; i < 8; i++ {
		props = append(props, model.Property{ID: "p", Price: float64(i)})
	}

	oracle := &stubOracle{response: "Sześć słów wystarczy żeby przejść walidację tutaj."}
	a := newTestAdvisor(oracle, 0)

	got := a.Advise(context.Background(), "q", props)
	assert.NotEqual(t, FallbackAdvice, got)
}
