package kafka

import (
	"github.com/segmentio/kafka-go"
)

// Writer is a kafka-go writer bound to one topic.
type Writer struct {
	*kafka.Writer
}

// NewWriter creates a writer for topic that waits for all in-sync replicas.
func NewWriter(brokers []string, topic string) *Writer {
	return &Writer{
		Writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}
