package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const linePushPath = "/v2/bot/message/push"

// ErrNotifierDisabled is returned when no channel access token is configured
var ErrNotifierDisabled = errors.New("line notifier is not configured")

// Notifier sends a text message to a contact handle. Delivery is best-effort.
type Notifier interface {
	Send(ctx context.Context, to, text string) error
}

type linePushRequest struct {
	To       string            `json:"to"`
	Messages []lineTextMessage `json:"messages"`
}

type lineTextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type lineErrorResponse struct {
	Message string `json:"message"`
}

// LineNotifier pushes text messages through the LINE Messaging API
type LineNotifier struct {
	httpClient *resty.Client
	enabled    bool
	log        *logrus.Logger
}

func NewLineNotifier(baseURL, channelAccessToken string, timeout time.Duration, log *logrus.Logger) *LineNotifier {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(channelAccessToken).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &LineNotifier{
		httpClient: client,
		enabled:    channelAccessToken != "",
		log:        log,
	}
}

func (n *LineNotifier) Send(ctx context.Context, to, text string) error {
	if !n.enabled {
		return ErrNotifierDisabled
	}
	if to == "" {
		return fmt.Errorf("line push: empty recipient")
	}

	var apiErr lineErrorResponse
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(linePushRequest{
			To:       to,
			Messages: []lineTextMessage{{Type: "text", Text: text}},
		}).
		SetError(&apiErr).
		Post(linePushPath)
	if err != nil {
		return fmt.Errorf("line push to %s: %w", to, err)
	}
	if resp.IsError() {
		return fmt.Errorf("line push to %s: status %d: %s", to, resp.StatusCode(), apiErr.Message)
	}

	n.log.Debugf("LINE message pushed to %s", to)
	return nil
}
