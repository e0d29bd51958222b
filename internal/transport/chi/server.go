package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/domain"
	logpkg "github.com/kailas-cloud/pensum/internal/logger"
	healthuc "github.com/kailas-cloud/pensum/internal/usecase/health"
	"github.com/kailas-cloud/pensum/internal/version"
)

const maxBodyBytes = 64 << 10

// Error codes returned to clients.
const (
	CodeBadRequest       = "bad_request"
	CodeGenerationFailed = "generation_failed"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternalError    = "internal_error"
)

// Client-facing messages.
const (
	MsgGenerationFailed = "The assistant could not generate an answer right now. Please try again."
	MsgStoreUnavailable = "The curriculum is not reachable right now. Please try again."
	MsgInternalError    = "internal error"
)

// answerer is the consumer interface for the answer engine (ISP).
type answerer interface {
	Answer(ctx context.Context, question string) (string, error)
	AnswerStream(ctx context.Context, question string) iter.Seq2[string, error]
}

// healthChecker reports component health.
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the chat API.
type Server struct {
	engine        answerer
	health        healthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(engine answerer, health healthChecker, logger *zap.Logger) *Server {
	return &Server{
		engine: engine,
		health: health,
		logger: logger,
		errorHandlers: []errorHandler{
			sentinelHandler(domain.ErrGenerationFailed, http.StatusBadGateway, CodeGenerationFailed, MsgGenerationFailed),
			sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable, MsgStoreUnavailable),
		},
	}
}

// ChatRequest is the body of POST /chat and POST /chat/stream.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the body of a successful POST /chat.
type ChatResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// streamFrame is one SSE data payload. Exactly one group of fields is set.
type streamFrame struct {
	Content *string `json:"content,omitempty"`
	Done    bool    `json:"done,omitempty"`
	Error   string  `json:"error,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "pensum",
		"status":  "running",
		"version": version.Version,
	})
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChat(w, r)
	if !ok {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	answer, err := s.engine.Answer(ctx, req.Question)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)

	writeJSON(w, http.StatusOK, ChatResponse{Question: req.Question, Answer: answer})
}

// ChatStream handles POST /chat/stream as server-sent events.
func (s *Server) ChatStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChat(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	send := func(f streamFrame) bool {
		if err := writeFrame(w, f); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	log := logpkg.FromContextOr(r.Context(), s.logger)
	for frag, err := range s.engine.AnswerStream(r.Context(), req.Question) {
		if err != nil {
			if r.Context().Err() != nil {
				log.Debug("stream abandoned by client", zap.Error(err))
				return
			}
			code, msg := s.streamError(err)
			log.Warn("stream failed", zap.String("code", code), zap.Error(err))
			send(streamFrame{Error: code, Message: msg})
			return
		}
		if !send(streamFrame{Content: &frag}) {
			log.Debug("stream write failed, client gone")
			return
		}
	}
	send(streamFrame{Done: true})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decodeChat(w http.ResponseWriter, r *http.Request) (ChatRequest, bool) {
	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return ChatRequest{}, false
	}
	return req, true
}

func (s *Server) streamError(err error) (code, message string) {
	switch {
	case errors.Is(err, domain.ErrGenerationFailed):
		return CodeGenerationFailed, MsgGenerationFailed
	case errors.Is(err, domain.ErrStoreUnavailable):
		return CodeStoreUnavailable, MsgStoreUnavailable
	default:
		return CodeInternalError, MsgInternalError
	}
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeFrame(w http.ResponseWriter, f streamFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, message)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, MsgInternalError)
}
