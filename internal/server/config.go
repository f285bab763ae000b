package server

import (
	"os"
	"strings"
)

// Config Agent 配置
type Config struct {
	// MQTT Broker 地址
	MQTTBroker string
	// 是否启用 MQTT
	MQTTEnabled bool
	// HTTP 服务地址
	HTTPAddr string
	// 灯的标识，用于 MQTT 主题
	LightID string
	// 灯的名称，出现在状态行中
	LightLabel string
	// 日志级别
	LogLevel string
}

// LoadConfig 从环境变量加载配置
func LoadConfig() *Config {
	return &Config{
		MQTTBroker:  getEnv("LR_MQTT_BROKER", "tcp://localhost:1883"),
		MQTTEnabled: parseBool(getEnv("LR_MQTT_ENABLED", "true")),
		HTTPAddr:    getEnv("LR_HTTP_ADDR", ":8080"),
		LightID:     getEnv("LR_LIGHT_ID", defaultLightID()),
		LightLabel:  getEnv("LR_LIGHT_LABEL", "Light"),
		LogLevel:    getEnv("LR_LOG_LEVEL", "info"),
	}
}

// defaultLightID 默认使用主机名作为灯的标识
func defaultLightID() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "light"
	}
	return strings.ToLower(hostname)
}

// parseBool 解析布尔值
func parseBool(s string) bool {
	return strings.ToLower(s) == "true" || s == "1"
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
