package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"devops-assistant/app/usecase"
	"devops-assistant/internal/domain/entity"
)

type AssistantHandler struct {
	generateService *usecase.GenerateService
	jobService      *usecase.JobService
	buildService    *usecase.BuildService
	logger          *slog.Logger
	upgrader        websocket.Upgrader

	reqDuration *prometheus.HistogramVec
	reqCount    *prometheus.CounterVec
	errCount    *prometheus.CounterVec
}

func NewAssistantHandler(
	generateService *usecase.GenerateService,
	jobService *usecase.JobService,
	buildService *usecase.BuildService,
	logger *slog.Logger,
) *AssistantHandler {

	reqDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	reqCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path"},
	)

	errCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP request errors.",
		},
		[]string{"method", "path", "status"},
	)

	prometheus.MustRegister(reqDuration, reqCount, errCount)

	return &AssistantHandler{
		generateService: generateService,
		jobService:      jobService,
		buildService:    buildService,
		logger:          logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		reqDuration: reqDuration,
		reqCount:    reqCount,
		errCount:    errCount,
	}
}

func (h *AssistantHandler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
		method := r.Method

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		duration := time.Since(start).Seconds()
		statusStr := strconv.Itoa(rw.status)

		h.reqCount.WithLabelValues(method, path).Inc()
		h.reqDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		if rw.status >= 400 {
			h.errCount.WithLabelValues(method, path, statusStr).Inc()
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *AssistantHandler) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/generate/{kind}", h.withMetrics(h.handleGenerate)).Methods(http.MethodPost)
	api.HandleFunc("/dockerfile/fix", h.withMetrics(h.handleFixDockerfile)).Methods(http.MethodPost)

	api.HandleFunc("/jobs", h.withMetrics(h.handleListJobs)).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}", h.withMetrics(h.handleGetJob)).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}", h.withMetrics(h.handleDeleteJob)).Methods(http.MethodDelete)
	api.HandleFunc("/jobs/{id}/artifacts", h.withMetrics(h.handleGetArtifacts)).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}/build", h.withMetrics(h.handleBuild)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/build/ws", h.handleBuildWS).Methods(http.MethodGet)

	api.HandleFunc("/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// statusFor maps the error taxonomy to HTTP statuses: bad input 400,
// missing job 404, transient model failure 503, auth failure upstream 502,
// everything else 500.
func statusFor(err error) int {
	switch {
	case entity.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrJobNotFound):
		return http.StatusNotFound
	case entity.IsTransient(err):
		return http.StatusServiceUnavailable
	case entity.IsFatal(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

type generateResponse struct {
	Job      *entity.Job      `json:"job"`
	Artifact *entity.Artifact `json:"artifact,omitempty"`
}

// decodeParams reads the request body as a JSON object of scalar
// parameters. Booleans and numbers are accepted and stringified, so
// clients may send `"build": true` as well as `"build": "true"`.
func decodeParams(body io.Reader) (map[string]string, error) {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, errors.New("bad request body: expected a JSON object of parameters")
	}

	params := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			params[k] = val
		case bool:
			params[k] = strconv.FormatBool(val)
		case float64:
			params[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
			// absent and null are the same thing
		default:
			return nil, fmt.Errorf("parameter %q must be a string, number or boolean", k)
		}
	}
	return params, nil
}

// POST /api/v1/generate/{kind}
func (h *AssistantHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	kind, err := entity.ParseTargetKind(mux.Vars(r)["kind"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	params, err := decodeParams(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var (
		job      *entity.Job
		artifact *entity.Artifact
	)
	switch kind {
	case entity.TargetDockerfile:
		job, artifact, err = h.generateService.GenerateDockerfile(r.Context(), params)
	case entity.TargetBuildSpec:
		job, artifact, err = h.generateService.GenerateBuildSpec(r.Context(), params)
	default:
		job, artifact, err = h.generateService.GenerateInfra(r.Context(), kind, params)
	}
	if err != nil {
		h.logger.Error("generation failed", "kind", kind, "err", err)
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, generateResponse{Job: job, Artifact: artifact})
}

type fixRequest struct {
	JobID          string `json:"job_id"`
	DockerfilePath string `json:"dockerfile_path"`
	BuildError     string `json:"build_error"`
}

// POST /api/v1/dockerfile/fix
func (h *AssistantHandler) handleFixDockerfile(w http.ResponseWriter, r *http.Request) {
	var req fixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("bad request body"))
		return
	}

	artifact, err := h.generateService.FixDockerfile(r.Context(), req.JobID, req.DockerfilePath, req.BuildError)
	if err != nil {
		h.logger.Error("dockerfile fix failed", "job_id", req.JobID, "err", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

// GET /api/v1/jobs
func (h *AssistantHandler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.List(r.Context())
	if err != nil {
		h.logger.Error("list jobs failed", "err", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// GET /api/v1/jobs/{id}
func (h *AssistantHandler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := h.jobService.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, usecase.ErrJobNotFound) {
			h.logger.Error("get job failed", "id", id, "err", err)
		}
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// DELETE /api/v1/jobs/{id}
func (h *AssistantHandler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.jobService.Delete(r.Context(), id); err != nil {
		if !errors.Is(err, usecase.ErrJobNotFound) {
			h.logger.Error("delete job failed", "id", id, "err", err)
		}
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/jobs/{id}/artifacts
func (h *AssistantHandler) handleGetArtifacts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	artifacts, err := h.jobService.GetArtifacts(r.Context(), id)
	if err != nil {
		if !errors.Is(err, usecase.ErrJobNotFound) {
			h.logger.Error("get artifacts failed", "job_id", id, "err", err)
		}
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, artifacts)
}

type buildRequest struct {
	ImageTag string `json:"image_tag"`
}

// POST /api/v1/jobs/{id}/build
func (h *AssistantHandler) handleBuild(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req buildRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("bad request body"))
			return
		}
	}

	outcome, err := h.buildService.Run(r.Context(), id, req.ImageTag, nil)
	if err != nil {
		if !errors.Is(err, usecase.ErrJobNotFound) {
			h.logger.Error("build failed to run", "job_id", id, "err", err)
		}
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// wsLogWriter forwards each chunk of build output as a websocket text frame.
type wsLogWriter struct {
	conn *websocket.Conn
}

func (w *wsLogWriter) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// GET /api/v1/jobs/{id}/build/ws
//
// Streams the combined build output as text frames; the final frame is a
// JSON object carrying the build outcome.
func (h *AssistantHandler) handleBuildWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			h.logger.Warn("websocket close failed", "err", err)
		}
	}()

	imageTag := r.URL.Query().Get("image_tag")
	outcome, err := h.buildService.Run(r.Context(), id, imageTag, &wsLogWriter{conn: conn})
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}
	_ = conn.WriteJSON(outcome)
}

// GET /api/v1/health
func (h *AssistantHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok": true,
		"ts": time.Now().UTC(),
	})
}
