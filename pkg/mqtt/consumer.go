package mqtt

import (
	"context"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// IConsumer subscribes to a topic and hands every message to the injected
// handler. T documents the payload type the handler expects.
type IConsumer[T any] interface {
	ConsumeMessage(ctx context.Context)
	SetHandler(handler func(topic string, message paho.Message) error)
}

type Consumer struct {
	client  paho.Client
	topic   string
	qos     byte
	handler func(topic string, message paho.Message) error
}

func NewConsumer(client paho.Client, topic string, qos byte, handler func(topic string, message paho.Message) error) *Consumer {
	return &Consumer{client: client, topic: topic, qos: qos, handler: handler}
}

func (c *Consumer) SetHandler(handler func(topic string, message paho.Message) error) {
	c.handler = handler
}

// ConsumeMessage subscribes and blocks until the context is cancelled, then
// unsubscribes.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(c.topic, c.qos, func(_ paho.Client, message paho.Message) {
		if c.handler == nil {
			log.Printf("mqtt: no handler set for topic %s", c.topic)
			return
		}
		if err := c.handler(c.topic, message); err != nil {
			log.Printf("mqtt: handler error on %s: %v", c.topic, err)
		}
	})
	if token.Wait() && token.Error() != nil {
		log.Printf("mqtt: subscribe to %s failed: %v", c.topic, token.Error())
		return
	}
	log.Printf("mqtt: subscribed to %s (qos=%d)", c.topic, c.qos)

	<-ctx.Done()

	unsub := c.client.Unsubscribe(c.topic)
	unsub.Wait()
}
