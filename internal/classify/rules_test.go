package classify

import (
	"testing"

	"github.com/jobtrail/jobtrail/internal/types"
)

func TestClassifyRuleBasedCascade(t *testing.T) {
	tests := []struct {
		name           string
		subject        string
		body           string
		wantCategory   types.Category
		wantConfidence float64
	}{
		{
			name:           "job board digest is promotional",
			subject:        "Job Alert: 1000+ openings matching your profile",
			body:           "Click unsubscribe to stop receiving these emails.",
			wantCategory:   types.CategoryPromotional,
			wantConfidence: 0.8,
		},
		{
			name:           "interview scheduling keywords",
			subject:        "Your interview is confirmed",
			body:           "Your interview scheduled for Monday. Zoom link: https://zoom.us/j/123",
			wantCategory:   types.CategoryInterview,
			wantConfidence: 0.7,
		},
		{
			name:           "promotional wins over interview keywords",
			subject:        "Job alert: interview invitation inside",
			body:           "Thousands of jobs waiting for you.",
			wantCategory:   types.CategoryPromotional,
			wantConfidence: 0.8,
		},
		{
			name:           "job related but unclear defaults to application",
			subject:        "Thank you for applying to Acme",
			body:           "We received your submission and will be in touch.",
			wantCategory:   types.CategoryApplication,
			wantConfidence: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := ClassifyRuleBased(types.RawEmail{Subject: tt.subject, Body: tt.body})
			if cls.Category != tt.wantCategory {
				t.Errorf("category: got %s, want %s", cls.Category, tt.wantCategory)
			}
			if cls.Confidence != tt.wantConfidence {
				t.Errorf("confidence: got %.2f, want %.2f", cls.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyRuleBasedUsesSnippetWhenBodyEmpty(t *testing.T) {
	cls := ClassifyRuleBased(types.RawEmail{
		Subject: "Next steps",
		Snippet: "Please join the call, zoom link below",
	})
	if cls.Category != types.CategoryInterview {
		t.Errorf("got %s, want %s", cls.Category, types.CategoryInterview)
	}
	if !cls.InterviewScheduled {
		t.Error("InterviewScheduled not set")
	}
	if cls.StatusSuggestion != types.StatusInterviewScheduled {
		t.Errorf("status: got %s, want %s", cls.StatusSuggestion, types.StatusInterviewScheduled)
	}
}

func TestIsPromotionalEmail(t *testing.T) {
	tests := []struct {
		name  string
		email types.RawEmail
		want  bool
	}{
		{
			name: "three spam indicators",
			email: types.RawEmail{
				Subject: "Job alert for you",
				Body:    "Apply now! Unsubscribe anytime.",
				From:    "noreply@jobs.example.com",
			},
			want: true,
		},
		{
			name: "two legitimate indicators override one spam hit",
			email: types.RawEmail{
				Subject: "Apply now confirmation",
				Body:    "We would like to schedule a call. Zoom link: https://zoom.us/j/9",
				From:    "recruiting@acme.com",
			},
			want: false,
		},
		{
			name: "single spam hit with nothing legitimate",
			email: types.RawEmail{
				Subject: "Weekly update",
				Body:    "Here is what happened this week.",
				From:    "news@example.com",
			},
			want: true,
		},
		{
			name: "neutral email",
			email: types.RawEmail{
				Subject: "Next steps",
				Body:    "We reviewed your application and will respond shortly.",
				From:    "hr@acme.com",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPromotionalEmail(tt.email); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsJobBoardSpam(t *testing.T) {
	tests := []struct {
		name    string
		company string
		from    string
		want    bool
	}{
		{"naukri from its own domain", "Naukri", "noreply@naukri.com", true},
		{"indeed from its own domain", "indeed", "alerts@mail.indeed.com", true},
		{"real employer from board-like name", "Acme", "noreply@naukri.com", false},
		{"board name but different sender", "Indeed", "recruiter@acme.com", false},
		{"empty company", "", "noreply@naukri.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsJobBoardSpam(tt.company, tt.from); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
