package report

import (
	"fmt"
	"strings"

	"jobsweep/internal/config"
	apperrors "jobsweep/internal/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender posts a compact plain-text version of the digest to a chat.
type TelegramSender struct {
	token  string
	chatID int64
}

func NewTelegramSender(config *config.Config) *TelegramSender {
	return &TelegramSender{
		token:  config.TelegramToken,
		chatID: config.TelegramChatID,
	}
}

func (s *TelegramSender) Configured() bool {
	return s.token != "" && s.chatID != 0
}

func (s *TelegramSender) Send(report *Report) error {
	if !s.Configured() {
		return apperrors.InvalidInput("telegram sender not configured", nil)
	}

	bot, err := tgbotapi.NewBotAPI(s.token)
	if err != nil {
		return apperrors.Unavailable("connecting to telegram", err)
	}

	msg := tgbotapi.NewMessage(s.chatID, formatTelegram(report))
	if _, err := bot.Send(msg); err != nil {
		return apperrors.Unavailable("sending telegram message", err)
	}
	return nil
}

func formatTelegram(report *Report) string {
	var b strings.Builder
	b.WriteString(report.Subject())
	b.WriteString("\n\n")

	for _, row := range report.Rows {
		mark := "·"
		if row.Failed() {
			mark = "✗"
		} else if row.NewlyAdded > 0 {
			mark = "+"
		}
		b.WriteString(fmt.Sprintf("%s %s: +%d (total %d, %s)\n",
			mark, row.Source, row.NewlyAdded, row.TotalJobs, row.Status))
	}

	b.WriteString(fmt.Sprintf("\nGrand total: %d (+%d today)\n", report.GrandTotal, report.GrandAdded))

	if len(report.Issues) > 0 {
		b.WriteString(fmt.Sprintf("\nIssues (%d):\n", len(report.Issues)))
		for _, issue := range report.Issues {
			b.WriteString("- " + issue + "\n")
		}
	}

	return b.String()
}
