package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-quest/internal/logging"
	"daily-quest/internal/metrics"
	"daily-quest/internal/model"
	"daily-quest/internal/service"
)

const (
	cbPickPrefix   = "pick:"
	cbUpPrefix     = "up:"
	cbRemovePrefix = "remove:"
	cbClearYes     = "clear:yes"
	cbClearNo      = "clear:no"
	cbNoop         = "noop"
)

const (
	menuLabelToday    = "🔥 Today"
	menuLabelCatalog  = "📚 Catalog"
	menuLabelMissions = "⚔️ Missions"
	menuLabelRank     = "🏅 Rank"
)

// Services groups what the bot needs from the service layer.
type Services struct {
	Users      *service.UserService
	Catalog    *service.CatalogService
	Selections *service.SelectionService
	Missions   *service.MissionService
	Progress   *service.ProgressService
	Quotes     *service.QuoteService
	Reminders  *service.ReminderService
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api     *tgbotapi.BotAPI
	svc     Services
	metrics *metrics.Metrics
}

func New(token string, svc Services, m *metrics.Metrics) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	slog.Info("bot authorized", "account", api.Self.UserName)

	return &Bot{api: api, svc: svc, metrics: m}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	slog.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if b.metrics != nil {
			b.metrics.BotMessages.Inc()
		}
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				slog.Error("handle callback", "error", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				slog.Error("handle message", "error", err)
			}
		}
	}

	return ctx.Err()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		slog.Debug("command", "from", msg.From.ID, "command", msg.Command(), "args", msg.CommandArguments())
		return b.handleCommand(ctx, msg, msg.Command(), strings.TrimSpace(msg.CommandArguments()))
	}

	if command, ok := menuCommand(msg.Text); ok {
		return b.handleCommand(ctx, msg, command, "")
	}

	return b.sendText(msg.Chat.ID, "I did not get that. Use /add &lt;task&gt; to pick a task for today, or /help.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, command, args string) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	chatID := msg.Chat.ID

	switch command {
	case "start":
		return b.handleStart(chatID, msg.From)
	case "help":
		return b.sendText(chatID, helpText)
	case "today":
		return b.sendToday(ctx, chatID, user)
	case "add":
		return b.handleAdd(ctx, chatID, user, args)
	case "priority":
		return b.handlePriority(ctx, chatID, user, args)
	case "remove":
		return b.handleRemove(ctx, chatID, user, args)
	case "clear":
		return b.askClearConfirmation(chatID)
	case "catalog":
		return b.sendCatalog(ctx, chatID)
	case "missions":
		return b.handleMissions(ctx, chatID, user, args)
	case "rank":
		return b.handleRank(ctx, chatID, user)
	case "quote":
		return b.handleQuote(ctx, chatID)
	case "report":
		return b.handleReport(ctx, chatID, user)
	default:
		return b.sendText(chatID, "Unknown command. See /help.")
	}
}

const helpText = "ℹ️ <b>Commands</b>\n" +
	"• /today — today's tasks with reorder and remove buttons\n" +
	"• /add &lt;task&gt; — pick a task for today (up to 5)\n" +
	"• /catalog — pick from the task catalog\n" +
	"• /priority &lt;id&gt; &lt;1-5&gt; — change a task's priority\n" +
	"• /remove &lt;id&gt; — drop a task from today\n" +
	"• /clear — clear today's list\n" +
	"• /missions &lt;energy 1-5&gt; &lt;focused|motivated|drained&gt; &lt;minutes&gt; — missions that fit your state\n" +
	"• /rank — your hunter rank and streak\n" +
	"• /quote — a motivational quote\n" +
	"• /report — the daily report right now"

func (b *Bot) handleStart(chatID int64, from *tgbotapi.User) error {
	name := strings.TrimSpace(from.FirstName)
	if name == "" {
		name = "hunter"
	}
	text := fmt.Sprintf("👋 Welcome, %s!\n<b>A Daily Quest has been issued.</b>\n\n%s", html.EscapeString(name), helpText)
	return b.sendText(chatID, text)
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, user *model.User, args string) error {
	if args == "" {
		return b.sendText(chatID, "Tell me the task, for example /add Workout")
	}
	return b.addAndRefresh(ctx, chatID, user, args)
}

func (b *Bot) addAndRefresh(ctx context.Context, chatID int64, user *model.User, name string) error {
	sel, err := b.svc.Selections.Add(ctx, user.ID, name, nil)
	if b.metrics != nil {
		b.metrics.RecordSelectionAdd(err != nil)
	}
	switch {
	case errors.Is(err, service.ErrCapacityExceeded):
		logging.WithUser(user.ID).Info("daily selection cap reached", "source", "bot")
		return b.sendText(chatID, fmt.Sprintf("⛔ You already picked %d tasks today. Remove one first.", model.MaxDailySelections))
	case errors.Is(err, service.ErrInvalidArgument):
		return b.sendText(chatID, html.EscapeString(err.Error()))
	case err != nil:
		return b.sendFailure(chatID, "add the task", err)
	}
	if err := b.sendText(chatID, fmt.Sprintf("✅ Added <b>%s</b> with priority %d.", html.EscapeString(sel.TaskName), sel.Priority)); err != nil {
		return err
	}
	return b.sendToday(ctx, chatID, user)
}

func (b *Bot) handlePriority(ctx context.Context, chatID int64, user *model.User, args string) error {
	id, priority, err := parsePriorityArgs(args)
	if err != nil {
		return b.sendText(chatID, "Usage: /priority &lt;id&gt; &lt;1-5&gt;, for example /priority 12 1")
	}
	if _, err := b.svc.Selections.Reorder(ctx, user.ID, id, priority); err != nil {
		return b.sendUserError(chatID, "change the priority", err)
	}
	return b.sendToday(ctx, chatID, user)
}

func (b *Bot) handleRemove(ctx context.Context, chatID int64, user *model.User, args string) error {
	id, err := parseID(args)
	if err != nil {
		return b.sendText(chatID, "Usage: /remove &lt;id&gt;, for example /remove 12")
	}
	return b.removeAndRefresh(ctx, chatID, user, id)
}

func (b *Bot) removeAndRefresh(ctx context.Context, chatID int64, user *model.User, id uint) error {
	if err := b.svc.Selections.Remove(ctx, user.ID, id); err != nil {
		return b.sendUserError(chatID, "remove the task", err)
	}
	return b.sendToday(ctx, chatID, user)
}

// moveUp lifts the selection one place in today's list.
func (b *Bot) moveUp(ctx context.Context, chatID int64, user *model.User, id uint) error {
	if _, err := b.svc.Selections.MoveUp(ctx, user.ID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return b.sendText(chatID, "That task is no longer on today's list.")
		}
		return b.sendUserError(chatID, "reorder the tasks", err)
	}
	return b.sendToday(ctx, chatID, user)
}

func (b *Bot) sendToday(ctx context.Context, chatID int64, user *model.User) error {
	today := b.svc.Selections.Today()
	picks, err := b.svc.Selections.List(ctx, user.ID, &today)
	if err != nil {
		return b.sendFailure(chatID, "load today's tasks", err)
	}
	if len(picks) == 0 {
		return b.sendText(chatID, "Nothing picked for today. Use /add or /catalog.")
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("🔥 <b>Today's tasks</b> (%d/%d)\n\n", len(picks), model.MaxDailySelections))
	var buttons [][]tgbotapi.InlineKeyboardButton
	for i, sel := range picks {
		builder.WriteString(fmt.Sprintf("%d. %s <code>#%d</code>\n", sel.Priority, html.EscapeString(sel.TaskName), sel.ID))
		var row []tgbotapi.InlineKeyboardButton
		if i > 0 {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("⬆️ %s", shortTitle(sel.TaskName, 20)), fmt.Sprintf("%s%d", cbUpPrefix, sel.ID)))
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("%s%d", cbRemovePrefix, sel.ID)))
		buttons = append(buttons, row)
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) sendCatalog(ctx context.Context, chatID int64) error {
	templates, err := b.svc.Catalog.List(ctx)
	if err != nil {
		return b.sendFailure(chatID, "load the catalog", err)
	}
	if len(templates) == 0 {
		return b.sendText(chatID, "The catalog is empty. Use /add with your own task.")
	}

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, group := range service.Grouped(templates) {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("— "+group.Category+" —", cbNoop),
		))
		for _, tmpl := range group.Templates {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(shortTitle(tmpl.Name, 32), fmt.Sprintf("%s%d", cbPickPrefix, tmpl.ID)),
			))
		}
	}
	return b.sendWithReplyMarkup(chatID, "📚 <b>Task catalog</b>\nTap a task to add it to today.", tgbotapi.NewInlineKeyboardMarkup(buttons...))
}

func (b *Bot) askClearConfirmation(chatID int64) error {
	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Clear", cbClearYes),
		tgbotapi.NewInlineKeyboardButtonData("↩️ Keep", cbClearNo),
	))
	return b.sendWithReplyMarkup(chatID, "Clear all of today's tasks?", markup)
}

func (b *Bot) handleMissions(ctx context.Context, chatID int64, user *model.User, args string) error {
	req, err := parseGenerateArgs(args)
	if err != nil {
		return b.sendText(chatID, "Usage: /missions &lt;energy 1-5&gt; &lt;focused|motivated|drained&gt; &lt;minutes&gt;, for example /missions 4 focused 60")
	}
	missions, err := b.svc.Missions.Generate(ctx, user.ID, req)
	if err != nil {
		return b.sendUserError(chatID, "pick missions", err)
	}
	placeholder := len(missions) == 1 && !missions[0].Persisted()
	if b.metrics != nil {
		b.metrics.RecordGeneration(placeholder)
	}
	if placeholder {
		logging.WithUser(user.ID).Debug("no mission fits, returning placeholder", "minutes", req.TimeAvailable)
	}
	return b.sendText(chatID, formatMissions(missions, service.Difficulty(req.Energy, req.Mood)))
}

func (b *Bot) handleRank(ctx context.Context, chatID int64, user *model.User) error {
	summary, err := b.svc.Progress.Summarize(ctx, user.ID, time.Now())
	if err != nil {
		return b.sendFailure(chatID, "load your progress", err)
	}
	return b.sendText(chatID, fmt.Sprintf("🏅 <b>Rank %s</b>\n%s\n\n🔥 Streak: %d days\n✅ Completed: %d of %d",
		summary.Rank, html.EscapeString(summary.RankLabel), summary.Streak, summary.TotalCompleted, summary.Total))
}

func (b *Bot) handleQuote(ctx context.Context, chatID int64) error {
	quote, err := b.svc.Quotes.Random(ctx)
	if errors.Is(err, service.ErrNotFound) {
		return b.sendText(chatID, "No quotes yet.")
	}
	if err != nil {
		return b.sendFailure(chatID, "load a quote", err)
	}
	text := fmt.Sprintf("💬 <i>%s</i>", html.EscapeString(quote.Text))
	if quote.Character != "" {
		text += " — " + html.EscapeString(quote.Character)
	}
	return b.sendText(chatID, text)
}

func (b *Bot) handleReport(ctx context.Context, chatID int64, user *model.User) error {
	text, err := b.svc.Reminders.DailySummary(ctx, *user, time.Now())
	if err != nil {
		return b.sendFailure(chatID, "build the report", err)
	}
	return b.sendText(chatID, text)
}

// SendDailyReports sends the daily summary to every Telegram-linked user.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	users, err := b.svc.Users.ListTelegram(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if user.TelegramID == nil {
			continue
		}
		text, err := b.svc.Reminders.DailySummary(ctx, user, now)
		if err != nil {
			slog.Error("build summary", "user_id", user.ID, "error", err)
			continue
		}
		if err := b.sendText(*user.TelegramID, text); err != nil {
			slog.Error("send summary", "user_id", user.ID, "error", err)
		}
	}
	return nil
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		slog.Warn("callback ack", "error", err)
	}

	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return err
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	slog.Debug("callback", "from", cb.From.ID, "data", data)

	switch {
	case strings.HasPrefix(data, cbPickPrefix):
		id, err := parseID(strings.TrimPrefix(data, cbPickPrefix))
		if err != nil {
			return nil
		}
		tmpl, err := b.svc.Catalog.Get(ctx, id)
		if err != nil {
			return b.sendUserError(chatID, "find that template", err)
		}
		return b.addAndRefresh(ctx, chatID, user, tmpl.Name)
	case strings.HasPrefix(data, cbUpPrefix):
		id, err := parseID(strings.TrimPrefix(data, cbUpPrefix))
		if err != nil {
			return nil
		}
		return b.moveUp(ctx, chatID, user, id)
	case strings.HasPrefix(data, cbRemovePrefix):
		id, err := parseID(strings.TrimPrefix(data, cbRemovePrefix))
		if err != nil {
			return nil
		}
		return b.removeAndRefresh(ctx, chatID, user, id)
	case data == cbClearYes:
		today := b.svc.Selections.Today()
		n, err := b.svc.Selections.Clear(ctx, user.ID, &today)
		if err != nil {
			return b.sendFailure(chatID, "clear today's tasks", err)
		}
		return b.sendText(chatID, fmt.Sprintf("🧹 Cleared %d tasks. Pick new ones with /add or /catalog.", n))
	default:
		return nil
	}
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.svc.Users.LinkTelegram(ctx, from.ID, from.FirstName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

// sendUserError explains validation and lookup failures; anything else is a storage failure.
func (b *Bot) sendUserError(chatID int64, action string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return b.sendText(chatID, "Not found. Check the id in /today.")
	case errors.Is(err, service.ErrInvalidArgument):
		return b.sendText(chatID, html.EscapeString(err.Error()))
	default:
		return b.sendFailure(chatID, action, err)
	}
}

func (b *Bot) sendFailure(chatID int64, action string, err error) error {
	slog.Error("bot action failed", "action", action, "error", err)
	return b.sendText(chatID, fmt.Sprintf("Could not %s, try again later.", action))
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelToday),
			tgbotapi.NewKeyboardButton(menuLabelCatalog),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelMissions),
			tgbotapi.NewKeyboardButton(menuLabelRank),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func menuCommand(text string) (string, bool) {
	switch strings.TrimSpace(text) {
	case menuLabelToday:
		return "today", true
	case menuLabelCatalog:
		return "catalog", true
	case menuLabelMissions:
		return "help", true
	case menuLabelRank:
		return "rank", true
	}
	return "", false
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func parsePriorityArgs(args string) (uint, int, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected id and priority")
	}
	id, err := parseID(fields[0])
	if err != nil {
		return 0, 0, err
	}
	priority, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid priority %q", fields[1])
	}
	return id, priority, nil
}

func parseGenerateArgs(args string) (service.GenerateRequest, error) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return service.GenerateRequest{}, fmt.Errorf("expected energy, mood and minutes")
	}
	energy, err := strconv.Atoi(fields[0])
	if err != nil {
		return service.GenerateRequest{}, fmt.Errorf("invalid energy %q", fields[0])
	}
	minutes, err := strconv.Atoi(fields[2])
	if err != nil {
		return service.GenerateRequest{}, fmt.Errorf("invalid minutes %q", fields[2])
	}
	return service.GenerateRequest{
		Energy:        energy,
		Mood:          model.Mood(strings.ToLower(fields[1])),
		TimeAvailable: minutes,
	}, nil
}

func formatMissions(missions []model.Mission, tier model.Difficulty) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚔️ <b>Missions</b> · tier %s\n\n", tier))
	for _, m := range missions {
		sb.WriteString(fmt.Sprintf("• <b>%s</b> · %s · %d min", html.EscapeString(m.Title), m.Difficulty, m.TimeRequired))
		if m.Persisted() {
			sb.WriteString(fmt.Sprintf(" <code>#%d</code>", m.ID))
		}
		if m.Description != "" {
			sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(m.Description)))
		}
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String())
}

func shortTitle(title string, maxLen int) string {
	runes := []rune(strings.TrimSpace(title))
	if len(runes) <= maxLen {
		return string(runes)
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
