package classify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jobtrail/jobtrail/internal/types"
)

type fakeGen struct {
	resp string
	err  error
}

func (f *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	return f.resp, f.err
}

func TestClassifyAISuccess(t *testing.T) {
	gen := &fakeGen{resp: `{
		"category": "job_interview",
		"confidence": 0.92,
		"reasoning": "Personalized scheduling email",
		"company": "Acme",
		"role": "Backend Engineer",
		"interview_scheduled": true,
		"status_suggestion": "interview_scheduled"
	}`}
	c := NewClassifier(gen, zerolog.Nop())

	result := c.Classify(context.Background(), types.RawEmail{Subject: "Interview", Body: "..."})
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Source != SourceAI {
		t.Errorf("source: got %s, want %s", result.Source, SourceAI)
	}
	cls := result.Classification
	if cls.Category != types.CategoryInterview {
		t.Errorf("category: got %s, want %s", cls.Category, types.CategoryInterview)
	}
	if cls.Confidence != 0.92 {
		t.Errorf("confidence: got %.2f, want 0.92", cls.Confidence)
	}
	if cls.Company != "Acme" || cls.Role != "Backend Engineer" {
		t.Errorf("entities: got %q/%q", cls.Company, cls.Role)
	}
	if !cls.InterviewScheduled {
		t.Error("InterviewScheduled not set")
	}
	if cls.StatusSuggestion != types.StatusInterviewScheduled {
		t.Errorf("status: got %s", cls.StatusSuggestion)
	}
}

func TestClassifyAIStripsCodeFences(t *testing.T) {
	gen := &fakeGen{resp: "```json\n{\"category\": \"promotional\", \"confidence\": 0.8}\n```"}
	c := NewClassifier(gen, zerolog.Nop())

	result := c.Classify(context.Background(), types.RawEmail{Subject: "Deals"})
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Classification.Category != types.CategoryPromotional {
		t.Errorf("got %s, want %s", result.Classification.Category, types.CategoryPromotional)
	}
}

func TestClassifyAIGenerateFailureFallsBack(t *testing.T) {
	gen := &fakeGen{err: errors.New("rate limited")}
	c := NewClassifier(gen, zerolog.Nop())

	email := types.RawEmail{Subject: "Thank you for applying", Body: "We got it."}
	result := c.Classify(context.Background(), email)
	if result.Err == nil {
		t.Fatal("expected Err to carry the generate failure")
	}
	if result.Source != SourceRules {
		t.Errorf("source: got %s, want %s", result.Source, SourceRules)
	}
	if result.Classification != ClassifyRuleBased(email) {
		t.Errorf("fallback classification does not match rule-based result")
	}
}

func TestClassifyAIUnparseableFallsBack(t *testing.T) {
	gen := &fakeGen{resp: "I think this is a job interview email."}
	c := NewClassifier(gen, zerolog.Nop())

	result := c.Classify(context.Background(), types.RawEmail{Subject: "Interview scheduled"})
	if result.Err == nil {
		t.Fatal("expected Err for unparseable response")
	}
	if result.Source != SourceRules {
		t.Errorf("source: got %s, want %s", result.Source, SourceRules)
	}
	if result.Classification.Category != types.CategoryInterview {
		t.Errorf("fallback category: got %s, want %s", result.Classification.Category, types.CategoryInterview)
	}
}

func TestClassifyNilGeneratorUsesRules(t *testing.T) {
	c := NewClassifier(nil, zerolog.Nop())

	result := c.Classify(context.Background(), types.RawEmail{Subject: "Job alert", Body: "unsubscribe"})
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Source != SourceRules {
		t.Errorf("source: got %s, want %s", result.Source, SourceRules)
	}
	if result.Classification.Category != types.CategoryPromotional {
		t.Errorf("got %s, want %s", result.Classification.Category, types.CategoryPromotional)
	}
}

func TestBuildPromptContentSelection(t *testing.T) {
	// Whichever of body and snippet is longer is sent.
	prompt := buildPrompt(types.RawEmail{Body: "short", Snippet: "a considerably longer preview text"})
	if !strings.Contains(prompt, "Content: a considerably longer preview text") {
		t.Error("longer snippet not selected over shorter body")
	}

	// Ties go to the body.
	prompt = buildPrompt(types.RawEmail{Body: "aaaa", Snippet: "bbbb"})
	if !strings.Contains(prompt, "Content: aaaa") {
		t.Error("body not selected on equal length")
	}
}

func TestBuildPromptTruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the truncation limit must be dropped
	// whole, not split.
	body := strings.Repeat("a", maxContentLen-1) + "é"
	prompt := buildPrompt(types.RawEmail{Body: body})
	if !utf8.ValidString(prompt) {
		t.Error("prompt contains a split rune")
	}
	if !strings.Contains(prompt, "... [truncated]") {
		t.Error("truncation marker missing")
	}
	if strings.Contains(prompt, "é") {
		t.Error("straddling rune should have been dropped entirely")
	}
}

func TestParseResponseDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.Classification
	}{
		{
			name: "missing fields get defaults",
			raw:  `{}`,
			want: types.Classification{
				Category:         types.CategoryIrrelevant,
				Confidence:       0.5,
				Reasoning:        "AI classification",
				StatusSuggestion: types.StatusApplied,
			},
		},
		{
			name: "invalid category and status replaced",
			raw:  `{"category": "spam", "status_suggestion": "ghosted", "confidence": 0.4}`,
			want: types.Classification{
				Category:         types.CategoryIrrelevant,
				Confidence:       0.4,
				Reasoning:        "AI classification",
				StatusSuggestion: types.StatusApplied,
			},
		},
		{
			name: "confidence clamped to range",
			raw:  `{"category": "job_application", "confidence": 1.7, "reasoning": "x"}`,
			want: types.Classification{
				Category:         types.CategoryApplication,
				Confidence:       1.0,
				Reasoning:        "x",
				StatusSuggestion: types.StatusApplied,
			},
		},
		{
			name: "explicit zero confidence kept",
			raw:  `{"category": "irrelevant", "confidence": 0.0, "reasoning": "x"}`,
			want: types.Classification{
				Category:         types.CategoryIrrelevant,
				Confidence:       0.0,
				Reasoning:        "x",
				StatusSuggestion: types.StatusApplied,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
