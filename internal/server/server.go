// Package server hosts the sentiment tools over HTTP: the transport
// boundary that dispatches caller requests into the synchronous
// classification core.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crimson-sun/sentir/internal/model"
	"github.com/crimson-sun/sentir/internal/service"
)

// Server exposes the tool table as JSON endpoints.
type Server struct {
	router *gin.Engine
	tools  map[string]service.Tool
	list   []service.Tool
}

// New builds the router: request-id, recovery, and CORS middleware, plus
// the tool dispatch and health routes.
func New(svc *service.Service) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestID())
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	s := &Server{
		router: router,
		tools:  make(map[string]service.Tool),
		list:   svc.Tools(),
	}
	for _, tool := range s.list {
		s.tools[tool.Name] = tool
	}

	router.GET("/health", s.health)
	router.GET("/tools", s.listTools)
	router.POST("/tools/:name", s.callTool)
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listTools(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"tools": s.list})
}

func (s *Server) callTool(c *gin.Context) {
	name := c.Param("name")
	tool, ok := s.tools[name]
	if !ok {
		respondError(c, http.StatusNotFound, "UNKNOWN_TOOL", "unknown tool: "+name)
		return
	}

	args, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "unreadable request body")
		return
	}

	out, err := tool.Handler(c.Request.Context(), args)
	if err != nil {
		status, code := mapError(err)
		if status >= http.StatusInternalServerError {
			slog.Error("tool call failed", "tool", name, "error", err)
		}
		respondError(c, status, code, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, out)
}

// mapError translates the core error taxonomy to HTTP statuses.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, model.ErrCapabilityUnavailable):
		return http.StatusServiceUnavailable, "CAPABILITY_UNAVAILABLE"
	case errors.Is(err, model.ErrSchemaMismatch):
		return http.StatusInternalServerError, "SCHEMA_MISMATCH"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// Response is the uniform envelope for every endpoint.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    Meta       `json:"meta"`
}

// ErrorInfo carries a structured error: kind code plus message, never a
// partially-populated success body.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries per-request metadata.
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(c *gin.Context) Meta {
	return Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: c.GetString("request_id"),
	}
}

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data, Meta: newMeta(c)})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
		Meta:    newMeta(c),
	})
}

// requestID assigns each request a UUID, exposed in the response envelope
// and the X-Request-ID header.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
