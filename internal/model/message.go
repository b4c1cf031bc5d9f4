package model

import "time"

// ChatMessage is a single city-chat message. It is immutable once persisted;
// the chat_messages collection is the source of truth and live delivery is
// best-effort on top of it. Used for both Mongo documents and the websocket
// wire format.
type ChatMessage struct {
	ID         string    `bson:"id" json:"id"`
	City       string    `bson:"city" json:"city"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Username   string    `bson:"username" json:"username"`
	UserAvatar string    `bson:"user_avatar" json:"user_avatar,omitempty"`
	Content    string    `bson:"content" json:"content"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// ChatSubmission is the inbound websocket payload. Identity fields may be
// omitted when the connection itself carries a verified identity.
type ChatSubmission struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	UserAvatar string `json:"user_avatar"`
	Content    string `json:"content"`
}
