package services

// Event routing keys published to the message broker.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventApiKeyUsed         = "apikey.used"
)

// EventPublisher publishes domain events to the message broker. Satisfied by
// rabbitmq.Client; a nil publisher disables event publication.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}
