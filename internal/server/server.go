package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lucheng0127/lightremote/internal/agent"
	"github.com/lucheng0127/lightremote/internal/api"
	"github.com/lucheng0127/lightremote/internal/command"
	"github.com/lucheng0127/lightremote/internal/light"
)

// Server 遥控代理，通过 MQTT 和 HTTP 接收命令
type Server struct {
	config     *Config
	dispatcher *agent.Dispatcher
	httpServer *http.Server
	mqttClient *agent.MQTTClient
	logger     *zap.Logger
}

// NewServer 创建服务器
// out 接收灯的状态行
func NewServer(config *Config, out io.Writer, logger *zap.Logger) *Server {
	l := light.NewLight(config.LightLabel, out)

	dispatcher := agent.NewDispatcher(logger)
	dispatcher.Register(command.NewTurnOnCommand(l))
	dispatcher.Register(command.NewTurnOffCommand(l))

	apiHandler := api.NewHandler(dispatcher, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	apiHandler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    config.HTTPAddr,
		Handler: router,
	}

	s := &Server{
		config:     config,
		dispatcher: dispatcher,
		httpServer: httpServer,
		logger:     logger,
	}

	if config.MQTTEnabled {
		s.mqttClient = agent.NewMQTTClient(config.MQTTBroker, config.LightID, logger, s.handleMessage)
		dispatcher.OnExecuted(s.publishStatus)
	}

	return s
}

// handleMessage 处理 MQTT 命令消息
func (s *Server) handleMessage(payload []byte) {
	name, err := s.dispatcher.Dispatch(context.Background(), payload)
	if err != nil {
		s.logger.Error("command dispatch failed",
			zap.String("command", name),
			zap.Error(err),
		)
	}
}

// publishStatus 发布命令执行结果
func (s *Server) publishStatus(name string) {
	if err := s.mqttClient.PublishStatus(name); err != nil {
		s.logger.Warn("failed to publish status", zap.String("command", name), zap.Error(err))
	}
}

// Start 启动所有服务
func (s *Server) Start(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	if s.mqttClient != nil {
		group.Go(func() error {
			if err := s.mqttClient.Connect(); err != nil {
				return fmt.Errorf("MQTT client error: %w", err)
			}

			<-ctx.Done()
			s.mqttClient.Disconnect()
			return nil
		})
	}

	group.Go(func() error {
		s.logger.Info("HTTP server starting", zap.String("addr", s.config.HTTPAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// 任一服务退出时关闭 HTTP 服务器
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		s.logger.Error("server error", zap.Error(err))
		return err
	}

	return nil
}

// Handler 返回 HTTP 路由
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Shutdown 优雅关闭服务器
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown HTTP server", zap.Error(err))
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Run 运行服务器（带信号处理）
func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	select {
	case <-sigChan:
		s.logger.Info("received shutdown signal")
		cancel()
	case err := <-errChan:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errChan
}
