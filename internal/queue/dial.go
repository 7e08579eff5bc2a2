package queue

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultDialTimeout bounds the TCP connect and AMQP handshake.
const DefaultDialTimeout = 2 * time.Second

// DialConfig is the broker connection config shared by the publisher and the
// consumer. A non-positive timeout means DefaultDialTimeout.
func DialConfig(timeout time.Duration) amqp.Config {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	return amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	}
}
