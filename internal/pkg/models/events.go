package models

// Inbound events from the messaging transport. The conversation logic never
// sees transport-specific payloads beyond these three shapes.

// TextMessage is a plain text message from a user
type TextMessage struct {
	UserID      int64
	DisplayName string
	Body        string
}

// LocationMessage is a shared location from a user
type LocationMessage struct {
	UserID      int64
	DisplayName string
	Latitude    float64
	Longitude   float64
}

// PhotoMessage is an image upload from a user, used only by the KYC gate.
// The image content itself is opaque to the core.
type PhotoMessage struct {
	UserID      int64
	DisplayName string
	FileID      string
}

// Outbound commands to the messaging transport.

// SendText asks the transport to deliver a message, optionally with a
// one-tap suggested-reply keyboard.
type SendText struct {
	UserID           int64
	Body             string
	SuggestedReplies []string
	RequestLocation  bool
	RemoveReplies    bool
}

// EditText asks the transport to replace the body of a previously sent message.
type EditText struct {
	UserID     int64
	MessageRef int64
	Body       string
}
