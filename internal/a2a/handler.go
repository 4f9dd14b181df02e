package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/nutrigen-agent/internal/agent"
	"github.com/BerylCAtieno/nutrigen-agent/internal/models"
	"github.com/BerylCAtieno/nutrigen-agent/internal/report"
)

// Generator produces a report from a raw submission.
type Generator interface {
	Generate(ctx context.Context, raw string) (*models.Report, error)
}

type A2AHandler struct {
	generator Generator
	card      agent.Card
	logger    *zap.Logger
}

func NewA2AHandler(generator Generator, card agent.Card, logger *zap.Logger) *A2AHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &A2AHandler{
		generator: generator,
		card:      card,
		logger:    logger,
	}
}

// Register mounts every agent route on r.
func (h *A2AHandler) Register(r gin.IRouter) {
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.POST("/api/report", h.HandleReport)
	r.POST("/a2a/report", h.HandleA2A)
}

// RequestLoggingMiddleware logs one line per request. Bodies are not
// logged since submissions carry personal data.
func RequestLoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int64("bytes_in", c.Request.ContentLength),
		)
	}
}

// ServeAgentCard serves the agent card.
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	data, err := h.card.JSON()
	if err != nil {
		h.logger.Error("agent card unavailable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// HandleReport is the plain REST entry point: {"rawData": "..."} in, the
// report JSON out.
func (h *A2AHandler) HandleReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid report request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Corpo da requisição inválido: envie {\"rawData\": \"...\"}.",
		})
		return
	}

	if err := report.ValidateInput(req.RawData); err != nil {
		h.respondError(c, err)
		return
	}

	r, err := h.generator.Generate(c.Request.Context(), req.RawData)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *A2AHandler) respondError(c *gin.Context, err error) {
	kind := report.KindOf(err)
	status := http.StatusBadGateway
	switch {
	case kind == report.KindInputRejected:
		status = http.StatusBadRequest
	case kind == report.KindTransport && errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	h.logger.Warn("report request failed", zap.Stringer("kind", kind), zap.Int("status", status), zap.Error(err))
	c.JSON(status, ErrorResponse{
		Error:   kind.String(),
		Message: report.UserMessage(err),
	})
}

// HandleA2A processes A2A JSON-RPC messages. Bodies that are not JSON-RPC
// are retried as bare message params.
func (h *A2AHandler) HandleA2A(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil || rpcReq.Method == "" {
		h.handleDirectMessage(c, body)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid JSON-RPC version", zap.String("version", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, body []byte) {
	var params MessageParams
	if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}
	h.sendSuccessResponse(c, "direct-message", h.runTask(c.Request.Context(), params.Message))
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	paramsJSON, err := json.Marshal(rpcReq.Params)
	if err != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Failed to parse parameters", CodeInvalidParams)
		return
	}

	var params MessageParams
	if err := json.Unmarshal(paramsJSON, &params); err != nil {
		h.logger.Warn("invalid params", zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	h.sendSuccessResponse(c, rpcReq.ID, h.runTask(c.Request.Context(), params.Message))
}

// runTask generates a report for one message and wraps the outcome in a
// task. Failures become failed tasks, not RPC errors.
func (h *A2AHandler) runTask(ctx context.Context, msg A2AMessage) TaskResult {
	taskID := uuid.New().String()
	if msg.TaskID != nil && *msg.TaskID != "" {
		taskID = *msg.TaskID
	}
	contextID := ""
	if msg.ContextID != nil {
		contextID = *msg.ContextID
	}

	raw := extractSubmission(msg)
	if err := report.ValidateInput(raw); err != nil {
		return h.createErrorTaskResult(taskID, contextID, err)
	}

	r, err := h.generator.Generate(ctx, raw)
	if err != nil {
		h.logger.Warn("report task failed", zap.String("task_id", taskID), zap.Stringer("kind", report.KindOf(err)), zap.Error(err))
		return h.createErrorTaskResult(taskID, contextID, err)
	}

	h.logger.Info("report task completed", zap.String("task_id", taskID))
	return h.createSuccessTaskResult(taskID, contextID, r)
}

// extractSubmission joins the text parts of msg in order. A data part may
// carry the submission as {"rawData": "..."}. Leading blank lines are kept
// since they stand for unanswered questions.
func extractSubmission(msg A2AMessage) string {
	var texts []string
	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if part.Text != nil && strings.TrimSpace(*part.Text) != "" {
				texts = append(texts, strings.TrimRight(*part.Text, "\r\n"))
			}
		case "data":
			if m, ok := part.Data.(map[string]interface{}); ok {
				if s, ok := m["rawData"].(string); ok && strings.TrimSpace(s) != "" {
					texts = append(texts, strings.TrimRight(s, "\r\n"))
				}
			}
		}
	}
	return strings.Join(texts, "\n")
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID string, r *models.Report) TaskResult {
	responseText := formatReport(r)

	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    &taskID,
				Parts: []MessagePart{
					TextPart(responseText),
				},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Relatório Estruturado",
				Parts:      []MessagePart{DataPart(r)},
			},
			{
				ArtifactID: uuid.New().String(),
				Name:       "Relatório",
				Parts:      []MessagePart{TextPart(responseText)},
			},
		},
	}
}

func (h *A2AHandler) createErrorTaskResult(taskID, contextID string, err error) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    &taskID,
				Parts: []MessagePart{
					TextPart(report.UserMessage(err)),
					DataPart(map[string]string{"error": report.KindOf(err).String()}),
				},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id interface{}, result interface{}) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id interface{}, message string, code int) {
	h.logger.Warn("rpc error", zap.Int("code", code), zap.String("message", message))
	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}
