package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jobtrail/jobtrail/internal/types"
)

// maxContentLen bounds how much email body is sent to the model.
const maxContentLen = 2000

// Generator produces a raw text completion for a prompt. The model name,
// endpoint and authentication are entirely the implementation's concern.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source identifies which path produced a classification.
type Source string

const (
	// SourceAI means the model call succeeded and parsed.
	SourceAI Source = "ai"
	// SourceRules means the rule-based fallback produced the result.
	SourceRules Source = "rules"
)

// Result is a classification together with its provenance. Err carries the
// AI failure that triggered a fallback; it is nil on the AI path and when
// no generator is configured.
type Result struct {
	Classification types.Classification
	Source         Source
	Err            error
}

// Classifier is the AI-first email classifier. Classify never fails: any
// transport or parse error falls back to the rule cascade.
type Classifier struct {
	gen Generator
	log zerolog.Logger
}

// NewClassifier builds a classifier around a text generator. A nil
// generator is allowed and routes every email through the rule cascade.
func NewClassifier(gen Generator, log zerolog.Logger) *Classifier {
	return &Classifier{gen: gen, log: log}
}

// Classify classifies one email. The AI path is tried once with no retry;
// on any failure the rule-based fallback result is returned instead, with
// the triggering error recorded in Result.Err.
func (c *Classifier) Classify(ctx context.Context, email types.RawEmail) Result {
	if c.gen == nil {
		return Result{Classification: ClassifyRuleBased(email), Source: SourceRules}
	}

	raw, err := c.gen.Generate(ctx, buildPrompt(email))
	if err != nil {
		c.log.Warn().Err(err).Str("subject", email.Subject).
			Msg("ai classification failed, using rule-based fallback")
		return Result{Classification: ClassifyRuleBased(email), Source: SourceRules, Err: err}
	}

	cls, err := parseResponse(raw)
	if err != nil {
		c.log.Warn().Err(err).Str("subject", email.Subject).
			Msg("ai response unparseable, using rule-based fallback")
		return Result{Classification: ClassifyRuleBased(email), Source: SourceRules, Err: err}
	}

	return Result{Classification: cls, Source: SourceAI}
}

// buildPrompt renders the classification request. Whichever of body and
// snippet is longer is sent, body winning ties; content is truncated to
// maxContentLen at a rune boundary.
func buildPrompt(email types.RawEmail) string {
	content := email.Body
	if len(email.Snippet) > len(content) {
		content = email.Snippet
	}
	if len(content) > maxContentLen {
		cut := maxContentLen
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut] + "... [truncated]"
	}

	return fmt.Sprintf(`You are an expert email classifier for a job application tracking system. Analyze the following email and provide a detailed classification.

From: %s
Subject: %s
Content: %s

Respond with a JSON object containing:

1. "category": One of:
   - "job_interview": Email is scheduling/confirming an actual job interview
   - "job_application": Email is about a job application (confirmation, status update)
   - "promotional": Email is promotional/marketing from job boards, recruiting agencies
   - "irrelevant": Email is not related to job searching

2. "confidence": Float between 0.0 and 1.0 indicating your confidence in the classification

3. "reasoning": Brief explanation of your classification decision

4. "company": The actual company name (not job board) if identifiable, or null

5. "role": The job role/position if mentioned, or null

6. "interview_scheduled": Boolean - true if this email is scheduling a specific interview

7. "status_suggestion": One of "applied", "interview_scheduled", "interviewed", "rejected", "offer", "accepted"

Focus on:
- Is this from an actual company or a job board/recruiting platform?
- Does it contain specific interview scheduling details?
- Is the language personalized or generic/mass-marketing?
- Are there specific company names, roles, interview times mentioned?

Respond ONLY with valid JSON, no other text.`, email.From, email.Subject, content)
}

// aiResponse mirrors the JSON shape the prompt requests. Pointer fields
// distinguish absent values from explicit zeros.
type aiResponse struct {
	Category           string   `json:"category"`
	Confidence         *float64 `json:"confidence"`
	Reasoning          string   `json:"reasoning"`
	Company            string   `json:"company"`
	Role               string   `json:"role"`
	InterviewScheduled bool     `json:"interview_scheduled"`
	StatusSuggestion   string   `json:"status_suggestion"`
}

// parseResponse strips Markdown fences and decodes the model output,
// applying field defaults for anything missing.
func parseResponse(raw string) (types.Classification, error) {
	clean := stripCodeFences(raw)

	var resp aiResponse
	if err := json.Unmarshal([]byte(clean), &resp); err != nil {
		return types.Classification{}, fmt.Errorf("parse classification response: %w", err)
	}

	cls := types.Classification{
		Category:           types.Category(resp.Category),
		Confidence:         0.5,
		Reasoning:          resp.Reasoning,
		Company:            resp.Company,
		Role:               resp.Role,
		InterviewScheduled: resp.InterviewScheduled,
		StatusSuggestion:   types.Status(resp.StatusSuggestion),
	}
	if !types.IsValidCategory(cls.Category) {
		cls.Category = types.CategoryIrrelevant
	}
	if resp.Confidence != nil {
		cls.Confidence = clamp01(*resp.Confidence)
	}
	if cls.Reasoning == "" {
		cls.Reasoning = "AI classification"
	}
	if !types.IsValidStatus(cls.StatusSuggestion) {
		cls.StatusSuggestion = types.StatusApplied
	}
	return cls, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
