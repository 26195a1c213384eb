package websocket

// Message is the envelope for every frame pushed to feed clients.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}
