package core

// Client is one live endpoint as seen by the core layer. Its identity is
// whatever the connection declares; it is not verified further.
type Client struct {
	ID     string
	Events chan *Event
}

// NewClient constructs a client with an initialized event channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, 32),
	}
}
