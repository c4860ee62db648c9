package service

// Broadcaster pushes live progress events to proctor monitor connections.
// Implemented by the ws hub; a nil broadcaster drops events.
type Broadcaster interface {
	BroadcastToMonitors(testID string, event string, payload interface{})
}
