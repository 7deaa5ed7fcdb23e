// Package notification provides implementations for various notification services
package notification

import (
	"fmt"
	"net/http"

	"github.com/raykavin/toppairs/pkg/logger"
	"github.com/raykavin/toppairs/pkg/logger/zerolog"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Telegram sends notifications to a fixed list of Telegram users
type Telegram struct {
	client *tb.Bot
	users  []int
	log    logger.Logger
}

type telegramSettings struct {
	apiURL     string
	httpClient *http.Client
	log        logger.Logger
}

// Option is a function that configures a telegram instance
type Option func(settings *telegramSettings)

// WithAPIURL overrides the Telegram Bot API host
func WithAPIURL(url string) Option {
	return func(settings *telegramSettings) {
		settings.apiURL = url
	}
}

// WithHTTPClient sets the client used to reach the Bot API
func WithHTTPClient(client *http.Client) Option {
	return func(settings *telegramSettings) {
		settings.httpClient = client
	}
}

// WithLogger sets the logger used to report delivery failures
func WithLogger(log logger.Logger) Option {
	return func(settings *telegramSettings) {
		settings.log = log
	}
}

// NewTelegram creates a bot client for token. The token is checked against
// the Bot API before returning.
func NewTelegram(token string, users []int, options ...Option) (*Telegram, error) {
	settings := &telegramSettings{log: zerolog.NewNop()}
	for _, option := range options {
		option(settings)
	}

	client, err := tb.NewBot(tb.Settings{
		URL:       settings.apiURL,
		Token:     token,
		Client:    settings.httpClient,
		ParseMode: tb.ModeDefault,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{
		client: client,
		users:  users,
		log:    settings.log,
	}, nil
}

// Notify sends text to every configured user
func (t *Telegram) Notify(text string) {
	for _, user := range t.users {
		_, err := t.client.Send(&tb.User{ID: int64(user)}, text)
		if err != nil {
			t.log.WithError(err).WithField("user", user).Error("notification/telegram: failed to send message")
		}
	}
}
