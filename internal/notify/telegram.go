// Package notify pushes kit and signup events to Telegram subscribers.
package notify

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"kitserver/internal/config"
)

type Bot struct {
	bot  *tgbotapi.BotAPI
	log  *logrus.Entry
	subs mapset.Set[int64]

	// cancel func to stop the bot
	cancel func()
}

func New(cfg config.TgBot, log *logrus.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramApiToken)
	if err != nil {
		return nil, err
	}
	_, err = bot.GetMe()
	if err != nil {
		return nil, err
	}
	return &Bot{
		bot:  bot,
		log:  log.WithField("name", "tg_bot"),
		subs: mapset.NewSet[int64](),
	}, nil
}

func (b *Bot) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleMessage(update)
		}
	}
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

const helpText = `/sub - subscribe to kit and signup events
/unsub - unsubscribe
/help - this message`

func (b *Bot) handleMessage(update tgbotapi.Update) {
	if update.Message == nil { // ignore any non-Message updates
		return
	}
	chatID := update.Message.Chat.ID
	msg := tgbotapi.NewMessage(chatID, "")
	switch update.Message.Text {
	case "/sub":
		b.subs.Add(chatID)
		msg.Text = "subscribed"
	case "/unsub":
		b.subs.Remove(chatID)
		msg.Text = "unsubscribed"
	default:
		msg.Text = helpText
	}
	if _, err := b.bot.Send(msg); err != nil {
		b.log.WithError(err).Error("send error")
	}
}

// Notify fans the message out to all subscribed chats.
func (b *Bot) Notify(text string) {
	for _, chatID := range b.subs.ToSlice() {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := b.bot.Send(msg); err != nil {
			b.log.WithError(err).Error("send error")
		}
	}
}
