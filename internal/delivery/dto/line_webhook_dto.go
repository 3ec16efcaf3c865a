package dto

// LINE Messaging API webhook payload (only the fields we read)

type LineWebhookRequest struct {
	Destination string             `json:"destination"`
	Events      []LineWebhookEvent `json:"events"`
}

type LineWebhookEvent struct {
	Type            string               `json:"type"`
	WebhookEventID  string               `json:"webhookEventId"`
	Timestamp       int64                `json:"timestamp"`
	ReplyToken      string               `json:"replyToken"`
	Source          LineEventSource      `json:"source"`
	Message         *LineEventMessage    `json:"message,omitempty"`
	DeliveryContext *LineDeliveryContext `json:"deliveryContext,omitempty"`
}

type LineEventSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type LineEventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

type LineDeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

type LineWebhookResponse struct {
	Received  int `json:"received"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}
