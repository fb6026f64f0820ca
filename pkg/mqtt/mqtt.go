// Package mqtt streams bot activity to an MQTT broker so external tooling can
// follow censorship, voice, and welcome events in real time.
package mqtt

import (
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

// topicPrefix namespaces every topic this bot publishes to.
const topicPrefix = "parangbot/events"

// Communicator handles the MQTT broker connection.
type Communicator struct {
	client   mqtt.Client
	clientID string
}

var (
	communicator *Communicator
	once         sync.Once
)

// Init initializes the global MQTT communicator.
func Init(host, port, username, password, clientID string) *Communicator {
	once.Do(func() {
		communicator = NewCommunicator(host, port, username, password, clientID)
	})
	return communicator
}

// Get returns the global MQTT communicator. May be nil when MQTT is disabled.
func Get() *Communicator {
	return communicator
}

// NewCommunicator connects to the broker with auto-reconnect enabled.
func NewCommunicator(host, port, username, password, clientID string) *Communicator {
	mc := &Communicator{clientID: clientID}

	uniqueID := fmt.Sprintf("%s_%s", clientID, uuid.New().String())

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID(uniqueID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success(fmt.Sprintf("MQTT 브로커에 연결되었습니다: %s", clientID), "MQTT")
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("MQTT 연결이 끊어졌습니다: %v", err), "MQTT")
		})

	mc.client = mqtt.NewClient(opts)

	token := mc.client.Connect()
	if token.Wait() && token.Error() != nil {
		logger.Error(fmt.Sprintf("MQTT 연결 오류: %v", token.Error()), "MQTT")
	}

	return mc
}

// Destroy closes the MQTT connection.
func (mc *Communicator) Destroy() {
	if mc.client != nil && mc.client.IsConnected() {
		mc.client.Disconnect(250)
		logger.System("MQTT 연결을 종료했습니다.", "MQTT")
	}
}

// IsConnected reports whether the broker connection is up.
func (mc *Communicator) IsConnected() bool {
	return mc.client != nil && mc.client.IsConnected()
}

// PublishJSON marshals payload and publishes it to a topic at QoS 0.
func (mc *Communicator) PublishJSON(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mqtt payload: %w", err)
	}

	token := mc.client.Publish(topic, 0, false, data)
	token.Wait()
	return token.Error()
}

// Subscribe subscribes to a topic with a message handler.
func (mc *Communicator) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := mc.client.Subscribe(topic, 0, func(c mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

// Unsubscribe unsubscribes from a topic.
func (mc *Communicator) Unsubscribe(topic string) error {
	token := mc.client.Unsubscribe(topic)
	token.Wait()
	return token.Error()
}

// EventPublisher forwards telemetry events to the broker. Implements
// telemetry.Sink; delivery failures are logged, never propagated.
type EventPublisher struct {
	mc *Communicator
}

// NewEventPublisher wraps a communicator.
func NewEventPublisher(mc *Communicator) *EventPublisher {
	return &EventPublisher{mc: mc}
}

// Publish sends the event to parangbot/events/<kind>.
func (p *EventPublisher) Publish(evt telemetry.Event) {
	if p.mc == nil || !p.mc.IsConnected() {
		return
	}
	topic := fmt.Sprintf("%s/%s", topicPrefix, evt.Kind)
	if err := p.mc.PublishJSON(topic, evt); err != nil {
		logger.Debug(fmt.Sprintf("이벤트 발행 실패 (%s): %v", topic, err), "MQTT")
	}
}
