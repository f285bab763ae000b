package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/lucheng0127/lightremote/internal/server"
)

func main() {
	// 加载配置
	cfg := server.LoadConfig()

	// 初始化日志
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting lightremote agent",
		zap.String("light_id", cfg.LightID),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Bool("mqtt_enabled", cfg.MQTTEnabled),
		zap.String("mqtt_broker", cfg.MQTTBroker),
		zap.String("log_level", cfg.LogLevel),
	)

	srv := server.NewServer(cfg, os.Stdout, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("agent exited")
}

// initLogger 初始化日志
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zapLevel

	return cfg.Build()
}
