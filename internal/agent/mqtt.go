package agent

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const (
	// publishTimeout 等待状态消息发布完成的最长时间
	publishTimeout = 5 * time.Second
	// commandBacklog 等待执行的命令消息上限，超出时阻塞 paho 的消息回调
	commandBacklog = 64
)

// MQTTClient MQTT 客户端
// 命令消息按到达顺序由单个 worker 依次执行
type MQTTClient struct {
	broker      string
	client      mqtt.Client
	lightID     string
	logger      *zap.Logger
	connectChan chan bool
	onCommand   func([]byte)

	payloads   chan []byte
	done       chan struct{}
	workerOnce sync.Once
	stopOnce   sync.Once
}

// StatusMessage 状态消息结构
type StatusMessage struct {
	Light     string `json:"light"`
	Command   string `json:"command"`
	Timestamp string `json:"timestamp"`
}

// NewMQTTClient 创建 MQTT 客户端
func NewMQTTClient(broker, lightID string, logger *zap.Logger, onCommand func([]byte)) *MQTTClient {
	return &MQTTClient{
		broker:      broker,
		lightID:     lightID,
		logger:      logger,
		connectChan: make(chan bool, 1),
		onCommand:   onCommand,
		payloads:    make(chan []byte, commandBacklog),
		done:        make(chan struct{}),
	}
}

// CommandTopic 命令主题
func (m *MQTTClient) CommandTopic() string {
	return fmt.Sprintf("light/%s/command", m.lightID)
}

// StatusTopic 状态主题
func (m *MQTTClient) StatusTopic() string {
	return fmt.Sprintf("light/%s/status", m.lightID)
}

// clientOptions 构建 paho 连接参数
// 命令消息必须按顺序投递给 onCommandMessage
func (m *MQTTClient) clientOptions() *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(m.broker)
	opts.SetClientID(fmt.Sprintf("lightremote-agent-%s", m.lightID))
	opts.SetOrderMatters(true)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)
	opts.SetOnConnectHandler(m.onConnect)
	opts.SetConnectionLostHandler(m.onConnectionLost)
	return opts
}

// Connect 连接到 MQTT Broker
func (m *MQTTClient) Connect() error {
	m.client = mqtt.NewClient(m.clientOptions())

	if token := m.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	// 等待订阅完成
	select {
	case <-m.connectChan:
		m.logger.Info("MQTT client connected", zap.String("broker", m.broker))
	case <-time.After(30 * time.Second):
		return fmt.Errorf("MQTT connection timeout")
	}

	return nil
}

// onConnect 连接成功回调，重连后也会重新订阅
func (m *MQTTClient) onConnect(client mqtt.Client) {
	topic := m.CommandTopic()
	if token := client.Subscribe(topic, 0, m.onCommandMessage); token.Wait() && token.Error() != nil {
		m.logger.Error("failed to subscribe to command topic", zap.Error(token.Error()))
		return
	}

	m.logger.Info("subscribed to command topic", zap.String("topic", topic))

	select {
	case m.connectChan <- true:
	default:
	}
}

// onConnectionLost 连接丢失回调
func (m *MQTTClient) onConnectionLost(client mqtt.Client, err error) {
	m.logger.Warn("MQTT connection lost", zap.Error(err))
}

// onCommandMessage 处理命令消息
func (m *MQTTClient) onCommandMessage(client mqtt.Client, msg mqtt.Message) {
	payload := msg.Payload()

	m.logger.Debug("received command message",
		zap.String("topic", msg.Topic()),
		zap.String("payload", string(payload)),
	)

	if m.onCommand == nil {
		return
	}

	m.workerOnce.Do(func() {
		go m.runCommands()
	})

	select {
	case m.payloads <- payload:
	case <-m.done:
		m.logger.Warn("command message dropped, client stopped", zap.String("topic", msg.Topic()))
	}
}

// runCommands 依次执行命令消息，保持发布顺序
// 不在 paho 回调内直接执行，避免回调中发布状态时阻塞 paho 的消息分发
func (m *MQTTClient) runCommands() {
	for {
		select {
		case payload := <-m.payloads:
			m.onCommand(payload)
		case <-m.done:
			return
		}
	}
}

// PublishStatus 发布最近一次执行的命令
func (m *MQTTClient) PublishStatus(command string) error {
	if m.client == nil {
		return fmt.Errorf("MQTT client not connected")
	}

	payload, err := json.Marshal(StatusMessage{
		Light:     m.lightID,
		Command:   command,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}

	topic := m.StatusTopic()
	token := m.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("failed to publish status: timeout after %s", publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish status: %w", err)
	}

	m.logger.Debug("status published",
		zap.String("topic", topic),
		zap.String("command", command),
	)

	return nil
}

// Disconnect 停止命令 worker 并断开连接
func (m *MQTTClient) Disconnect() {
	m.stopOnce.Do(func() {
		close(m.done)
	})

	if m.client != nil && m.client.IsConnected() {
		m.logger.Info("disconnecting MQTT client")
		m.client.Disconnect(250)
	}
}
