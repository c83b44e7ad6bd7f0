// Package display provides terminal formatting for jobtrail output.
package display

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jobtrail/jobtrail/internal/types"
)

var (
	// Styles
	Muted    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	Dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	Bold     = lipgloss.NewStyle().Bold(true)
	Success  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	ErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))

	offerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	interviewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb"))
	appliedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
	rejectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	closedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))

	HighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	MediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
	LowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// StatusLabel returns a styled, fixed-width status label.
func StatusLabel(status types.Status) string {
	label := fmt.Sprintf("%-19s", string(status))
	switch status {
	case types.StatusOffer, types.StatusAccepted:
		return offerStyle.Render(label)
	case types.StatusInterviewScheduled, types.StatusInterviewed:
		return interviewStyle.Render(label)
	case types.StatusApplied:
		return appliedStyle.Render(label)
	case types.StatusRejected:
		return rejectedStyle.Render(label)
	default:
		return label
	}
}

// StageLabel returns a styled board-stage label.
func StageLabel(stage types.Stage) string {
	label := string(stage)
	switch stage {
	case types.StageFinal:
		return offerStyle.Render(label)
	case types.StageInterview, types.StageScreening:
		return interviewStyle.Render(label)
	case types.StageApplied:
		return appliedStyle.Render(label)
	case types.StageClosed:
		return closedStyle.Render(label)
	default:
		return label
	}
}

// PriorityDot returns a colored dot for a priority level.
func PriorityDot(priority string) string {
	switch priority {
	case types.PriorityHigh:
		return HighStyle.Render("●")
	case types.PriorityMedium:
		return MediumStyle.Render("○")
	case types.PriorityLow:
		return LowStyle.Render("○")
	default:
		return Dim.Render("·")
	}
}

// TimeAgo formats an ISO date string as a relative time.
func TimeAgo(isoDate string) string {
	if isoDate == "" {
		return ""
	}

	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05", "2006-01-02", time.RFC3339Nano} {
		t, err = time.Parse(layout, isoDate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return isoDate[:min(10, len(isoDate))]
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		return fmt.Sprintf("%dm ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		return fmt.Sprintf("%dh ago", h)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("Jan 2")
	}
}

// Truncate shortens a string to maxLen, adding ellipsis if needed.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// SuccessMsg prints a green checkmark + message.
func SuccessMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(Success.Render("✓") + " " + msg)
}

// ErrorMsg prints a red X + message to stderr.
func ErrorMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, ErrStyle.Render("✗")+" "+msg)
}

// Header prints a section header.
func Header(title string) {
	fmt.Println(Bold.Render(title))
}

// SubHeader prints a dim subsection label.
func SubHeader(title string) {
	fmt.Println(Muted.Render(title))
}

// ApplicationRow prints one application as a single list line.
func ApplicationRow(rec *types.ApplicationRecord) {
	company := Bold.Render(fmt.Sprintf("%-24s", Truncate(rec.Company, 24)))
	role := fmt.Sprintf("%-32s", Truncate(rec.Role, 32))
	when := Dim.Render(TimeAgo(rec.UpdatedAt))
	fmt.Printf("  %4d  %s %s  %s  %s\n", rec.ID, StatusLabel(rec.Status), company, role, when)
}

// ApplicationDetail prints the full record, one field per line.
func ApplicationDetail(rec *types.ApplicationRecord) {
	Header(fmt.Sprintf("#%d  %s", rec.ID, rec.Company))
	fmt.Printf("  %s %s\n", Muted.Render("role:     "), rec.Role)
	fmt.Printf("  %s %s\n", Muted.Render("status:   "), StatusLabel(rec.Status))
	fmt.Printf("  %s %s %s\n", Muted.Render("stage:    "), StageLabel(rec.BoardStage), PriorityDot(rec.Priority))
	fmt.Printf("  %s %s\n", Muted.Render("source:   "), rec.Source)
	if rec.DateApplied != "" {
		fmt.Printf("  %s %s\n", Muted.Render("applied:  "), rec.DateApplied)
	}
	if rec.InterviewDate != "" {
		round := rec.InterviewRound
		if round == "" {
			round = "unknown"
		}
		fmt.Printf("  %s %s (%s round)\n", Muted.Render("interview:"), rec.InterviewDate, round)
	}
	if rec.EmailSubject != "" {
		fmt.Printf("  %s %s\n", Muted.Render("subject:  "), Truncate(rec.EmailSubject, 70))
	}
	if rec.Snippet != "" {
		fmt.Printf("  %s %s\n", Muted.Render("snippet:  "), Dim.Render(Truncate(strings.TrimSpace(rec.Snippet), 100)))
	}
	if rec.Notes != "" {
		fmt.Printf("  %s %s\n", Muted.Render("notes:    "), rec.Notes)
	}
	fmt.Printf("  %s %s\n", Muted.Render("updated:  "), TimeAgo(rec.UpdatedAt))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
