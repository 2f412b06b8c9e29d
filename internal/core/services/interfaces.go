package services

import "context"

// EventPublisher delivers a JSON-encodable event to the message broker
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// TelemetrySink stores a flat telemetry record
type TelemetrySink interface {
	Append(ctx context.Context, values map[string]interface{}) error
}
