// Package notify pushes daily publications to Telegram.
package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/agsports/valuepicks/internal/pkg/models"
)

// Min interval between messages to the same chat to stay clear of the
// Telegram rate limit.
const sendInterval = 2 * time.Second

// TelegramNotifier posts the daily top picks to a chat. A nil notifier
// is valid and does nothing, so wiring stays unconditional.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a notifier. Returns nil (and logs) when
// the bot cannot be reached; publication must not fail on that.
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

// NotifyTopPicks sends one message summarizing the publication.
func (n *TelegramNotifier) NotifyTopPicks(pub models.DailyPublication) error {
	if n == nil {
		return nil
	}
	if len(pub.Content) == 0 {
		return nil
	}

	n.mu.Lock()
	if elapsed := time.Since(n.lastSend); elapsed < sendInterval {
		time.Sleep(sendInterval - elapsed)
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, formatTopPicks(pub))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send top picks message: %w", err)
	}
	return nil
}

func formatTopPicks(pub models.DailyPublication) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top picks for %s\n\n", pub.Date)
	for i, pick := range pub.Content {
		fmt.Fprintf(&b, "%d. %s vs %s (%s)\n", i+1, pick.HomeTeam, pick.AwayTeam, pick.LeagueName)
		fmt.Fprintf(&b, "   %s @ %.2f (fair %.2f, edge %.2f%%, %s)\n",
			pick.MarketDisplay, pick.MarketOdd, pick.FairOdd, pick.EdgePercent, pick.Level)
	}
	return b.String()
}
