package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RunSummary carries the per-run numbers reported after a generation pass.
type RunSummary struct {
	StartedAt       time.Time
	Duration        time.Duration
	ProviderEvents  map[string]int
	ProviderErrors  map[string]string
	MergedEvents    int
	StoredEvents    int
	EvictedEvents   int
	CatalogGroups   int
	ReadOnly        bool
	RenderedOutputs []string
}

// TelegramNotifier posts a short run summary to a Telegram chat.
// Notification failures never affect the run itself.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier, or nil when the bot cannot be
// reached. Callers treat a nil notifier as "notifications disabled".
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// SendRunSummary sends the summary message. Safe to call on a nil notifier.
func (n *TelegramNotifier) SendRunSummary(summary RunSummary) error {
	if n == nil || n.bot == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, formatRunSummary(summary))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Telegram send: failed", "error", err)
		return fmt.Errorf("send run summary: %w", err)
	}
	slog.Info("Telegram send: success", "chat_id", n.chatID)
	return nil
}

func formatRunSummary(s RunSummary) string {
	var builder strings.Builder

	if len(s.ProviderErrors) > 0 {
		builder.WriteString("⚠️ *Listings update (degraded)*\n\n")
	} else {
		builder.WriteString("📺 *Listings update*\n\n")
	}

	for name, count := range s.ProviderEvents {
		builder.WriteString(fmt.Sprintf("• %s: %d events\n", escapeMarkdown(name), count))
	}
	for name, reason := range s.ProviderErrors {
		builder.WriteString(fmt.Sprintf("• %s: failed (%s)\n", escapeMarkdown(name), escapeMarkdown(reason)))
	}

	builder.WriteString(fmt.Sprintf("\n🔀 Merged: *%d* | Stored: *%d* | Evicted: *%d*\n",
		s.MergedEvents, s.StoredEvents, s.EvictedEvents))
	builder.WriteString(fmt.Sprintf("🗂 Groups: %d\n", s.CatalogGroups))
	if s.ReadOnly {
		builder.WriteString("🔒 State file locked by another run, persistence skipped\n")
	}
	if len(s.RenderedOutputs) > 0 {
		builder.WriteString(fmt.Sprintf("📄 Outputs: %s\n", escapeMarkdown(strings.Join(s.RenderedOutputs, ", "))))
	}
	builder.WriteString(fmt.Sprintf("🕐 Finished: %s (%.1fs)\n",
		s.StartedAt.Add(s.Duration).UTC().Format("2006-01-02 15:04 UTC"), s.Duration.Seconds()))

	return builder.String()
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
