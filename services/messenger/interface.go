package messenger

import "context"

// Messenger sends outbound text messages through the chat transport.
// The transport itself (WhatsApp session, media, QR pairing) lives in a
// separate gateway process.
type Messenger interface {
	SendText(ctx context.Context, phone, body string) error
}
