package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nopass0/repitnew_backend/internal/formatting"
	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// TelegramNotifier отправляет репетитору сводки по задолженности в Telegram
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}, nil
}

// SendDailySummary отправляет сводку агрегатов и список неоплаченных
// прошедших уроков
func (n *TelegramNotifier) SendDailySummary(ctx context.Context, stats model.Stats, unpaid []model.Lesson) error {
	var sb strings.Builder
	sb.WriteString(formatting.FormatStatsSummary(stats))

	if len(unpaid) > 0 {
		sb.WriteString(fmt.Sprintf("\n\n⚠️ Не оплачено %d %s:\n",
			len(unpaid), formatting.PluralizeLessons(len(unpaid))))
		for i := range unpaid {
			sb.WriteString("\n")
			sb.WriteString(formatting.FormatLessonInfo(&unpaid[i]))
			sb.WriteString("\n")
		}
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send daily summary: %w", err)
	}

	n.logger.Info("Daily debt summary sent",
		zap.Int64("chat_id", n.chatID),
		zap.Int("unpaid_lessons", len(unpaid)),
	)

	return nil
}
