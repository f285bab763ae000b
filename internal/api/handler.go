package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lucheng0127/lightremote/internal/agent"
)

// Remote 遥控器操作接口
type Remote interface {
	Commands() []string
	Press(ctx context.Context, name string) error
}

// Handler API 处理器
type Handler struct {
	remote    Remote
	logger    *zap.Logger
	startTime time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(remote Remote, logger *zap.Logger) *Handler {
	return &Handler{
		remote:    remote,
		logger:    logger,
		startTime: time.Now(),
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		commands := v1.Group("/commands")
		{
			commands.GET("", h.ListCommands)
			commands.POST("/:name/press", h.PressCommand)
		}
	}

	r.GET("/health", h.HealthCheck)
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorResponse 返回错误响应
func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// CommandsResponse 命令列表响应
type CommandsResponse struct {
	Commands []string `json:"commands"`
}

// PressResponse 执行命令响应
type PressResponse struct {
	Command string `json:"command"`
	Status  string `json:"status"`
}

// ListCommands 列出所有命令
func (h *Handler) ListCommands(c *gin.Context) {
	c.JSON(http.StatusOK, CommandsResponse{Commands: h.remote.Commands()})
}

// PressCommand 执行指定命令
func (h *Handler) PressCommand(c *gin.Context) {
	name := c.Param("name")

	if err := h.remote.Press(c.Request.Context(), name); err != nil {
		if errors.Is(err, agent.ErrUnknownCommand) {
			errorResponse(c, http.StatusNotFound, "command not found")
			return
		}

		h.logger.Error("failed to press command",
			zap.String("command", name),
			zap.Error(err),
		)
		errorResponse(c, http.StatusInternalServerError, "failed to execute command")
		return
	}

	c.JSON(http.StatusOK, PressResponse{Command: name, Status: "executed"})
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	uptime := time.Since(h.startTime)
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: uptime.String(),
	})
}
