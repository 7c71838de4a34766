package models

import "time"

// LastMessage — краткие сведения о последнем сообщении диалога.
type LastMessage struct {
	ID       int       `json:"id"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
	SenderID int64     `json:"sender_id"`
	Sender   string    `json:"sender"`
}

// ChatSummary описывает диалог в списке чатов.
type ChatSummary struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	LastMessage *LastMessage `json:"last_message"`
}

// MessageSummary описывает сообщение из конкретного чата.
type MessageSummary struct {
	ID       int       `json:"id"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
	SenderID int64     `json:"sender_id"`
	Sender   string    `json:"sender"`
	Media    bool      `json:"media"`
}
