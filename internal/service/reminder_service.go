package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"daily-quest/internal/model"
)

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	selections *SelectionService
	progress   *ProgressService
	quotes     *QuoteService
}

func NewReminderService(selections *SelectionService, progress *ProgressService, quotes *QuoteService) *ReminderService {
	return &ReminderService{selections: selections, progress: progress, quotes: quotes}
}

// DailySummary renders today's picks, the streak and rank, and a quote as Telegram HTML.
func (s *ReminderService) DailySummary(ctx context.Context, user model.User, now time.Time) (string, error) {
	today := model.DayOf(now, s.selections.loc)
	picks, err := s.selections.List(ctx, user.ID, &today)
	if err != nil {
		return "", err
	}
	summary, err := s.progress.Summarize(ctx, user.ID, now)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily Quest</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.In(s.selections.loc).Format("02.01.2006")))

	builder.WriteString("🔥 <b>Today's tasks</b>\n")
	if len(picks) == 0 {
		builder.WriteString("— nothing picked yet, use /add\n")
	} else {
		for _, sel := range picks {
			builder.WriteString(formatSelection(sel))
		}
	}

	builder.WriteString(fmt.Sprintf("\n⚔️ <b>Rank %s</b> · streak %d · %d/%d completed\n",
		summary.Rank, summary.Streak, summary.TotalCompleted, summary.Total))
	builder.WriteString(html.EscapeString(summary.RankLabel))
	builder.WriteByte('\n')

	quote, err := s.quotes.Random(ctx)
	switch {
	case err == nil:
		builder.WriteString(fmt.Sprintf("\n💬 <i>%s</i>", html.EscapeString(quote.Text)))
		if quote.Character != "" {
			builder.WriteString(fmt.Sprintf(" — %s", html.EscapeString(quote.Character)))
		}
	case !errors.Is(err, ErrNotFound):
		return "", err
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatSelection(sel model.DailySelection) string {
	return fmt.Sprintf("%d. %s <code>#%d</code>\n", sel.Priority, html.EscapeString(strings.TrimSpace(sel.TaskName)), sel.ID)
}
