package mqtt

import (
	"fmt"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher is the publishing surface the services depend on.
type IPublisher interface {
	PublishMessage(topic string, payload string) error
	PublishToQos(topic string, qos byte, retained bool, payload string) error
	Close()
}

type Publisher struct {
	client paho.Client
}

func NewPublisher(client paho.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishMessage publishes at QoS 0 (at most once).
func (p *Publisher) PublishMessage(topic, payload string) error {
	return p.PublishToQos(topic, 0, false, payload)
}

func (p *Publisher) PublishToQos(topic string, qos byte, retained bool, payload string) error {
	token := p.client.Publish(topic, qos, retained, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}
	return nil
}

func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
		log.Println("mqtt: publisher disconnected")
	}
}
