package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin        = "join"
	InboundTypeMessage     = "message"
	InboundTypeAdminReply  = "admin_reply"
	InboundTypeImage       = "image"
	InboundTypeLoadHistory = "load_history"

	OutboundTypeMessage = "message"
	OutboundTypeHistory = "history"
)

// JoinData subscribes the connection to a conversation room.
type JoinData struct {
	Room string `json:"room"`
}

// MessageData is a text message from a user.
type MessageData struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Text     string `json:"text"`
}

// AdminReplyData is an operator reply into a user's conversation.
type AdminReplyData struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// ImageData is an image message; URL points at an uploaded resource.
type ImageData struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	URL      string `json:"url"`
}

// LoadHistoryData requests a conversation replay for one user.
type LoadHistoryData struct {
	Username string `json:"username"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// EventMessage is emitted to every subscriber of the target room.
// Timestamp is a display-only 24-hour HH:MM string in server local time;
// insertion order, not this field, is the true ordering key.
type EventMessage struct {
	User      string `json:"user"`
	To        string `json:"to"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	IsImage   bool   `json:"is_image,omitempty"`
}

// EventHistory delivers a conversation replay to the requesting client.
type EventHistory struct {
	Messages []HistoryMessage `json:"messages"`
}

// HistoryMessage is one replayed entry of a conversation.
type HistoryMessage struct {
	User    string `json:"user"`
	Text    string `json:"text"`
	IsImage bool   `json:"is_image"`
}
