package websocket

import "time"

// Envelope wraps every message so the board can dispatch on Type.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
