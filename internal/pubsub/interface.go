package pubsub

// PubSubClient publishes room events and decodes push-delivered payloads.
type PubSubClient interface {
	SendMessage(topic string, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
