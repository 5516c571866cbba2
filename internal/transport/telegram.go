// Package transport adapts the Telegram Bot API to the narrow contracts
// the relay and the command-dispatch layer consume: message delivery
// (send/edit/delete), profile display-name resolution, and handle/id
// resolution for the gift and admin flows.
//
// The adapter owns all wire concerns; callers hand it final HTML and never
// see Bot API types except for reply keyboards, which are rendering
// concerns of the bot layer.
package transport

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Telegram is the Bot API backed implementation of the relay's Transport,
// ProfileResolver, and the bot layer's Sender contracts.
type Telegram struct {
	bot *tgbotapi.BotAPI
}

// New authenticates against the Bot API with the given token.
func New(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	log.Info().Str("username", bot.Self.UserName).Msg("telegram bot authorized")
	return &Telegram{bot: bot}, nil
}

// SendMessage delivers html to chatID, threading beneath replyTo when
// non-zero, and returns the message id Telegram assigned.
func (t *Telegram) SendMessage(ctx context.Context, chatID int64, html string, replyTo int) (int, error) {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}
	sent, err := t.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send to %d: %w", chatID, err)
	}
	return sent.MessageID, nil
}

// EditMessage replaces a delivered message's text in place.
func (t *Telegram) EditMessage(ctx context.Context, chatID int64, messageID int, html string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, html)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(edit); err != nil {
		return fmt.Errorf("edit %d/%d: %w", chatID, messageID, err)
	}
	return nil
}

// DeleteMessage removes a delivered message.
func (t *Telegram) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if _, err := t.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete %d/%d: %w", chatID, messageID, err)
	}
	return nil
}

// SendText sends plain text with an optional reply keyboard and returns
// the assigned message id. Used by menu flows, not by the relay.
func (t *Telegram) SendText(ctx context.Context, chatID int64, text string, keyboard interface{}) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	sent, err := t.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send to %d: %w", chatID, err)
	}
	return sent.MessageID, nil
}

// EditText replaces a plain-text bot message in place.
func (t *Telegram) EditText(ctx context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := t.bot.Send(edit); err != nil {
		return fmt.Errorf("edit %d/%d: %w", chatID, messageID, err)
	}
	return nil
}

// DisplayName resolves a chat id to "@username" or the trimmed full name.
// An empty result is reported as an error so callers can apply their
// placeholder.
func (t *Telegram) DisplayName(ctx context.Context, chatID int64) (string, error) {
	ch, err := t.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return "", fmt.Errorf("get chat %d: %w", chatID, err)
	}
	if ch.UserName != "" {
		return "@" + ch.UserName, nil
	}
	name := strings.TrimSpace(strings.TrimSpace(ch.FirstName) + " " + strings.TrimSpace(ch.LastName))
	if name == "" {
		return "", fmt.Errorf("chat %d has no resolvable name", chatID)
	}
	return name, nil
}

// ResolveChatID turns a numeric id or an "@handle" into a chat id. Handle
// resolution goes through getChat and only succeeds for chats the bot can
// see; unresolvable handles are an error the calling flow degrades on.
func (t *Telegram) ResolveChatID(ctx context.Context, identifier string) (int64, error) {
	s := strings.TrimSpace(identifier)
	s = strings.TrimPrefix(s, "@")
	if s == "" {
		return 0, fmt.Errorf("empty identifier")
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	ch, err := t.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{SuperGroupUsername: "@" + s},
	})
	if err != nil {
		return 0, fmt.Errorf("resolve %q: %w", identifier, err)
	}
	return ch.ID, nil
}
