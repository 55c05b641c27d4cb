package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bnema/staking-cli/internal/application"
	"github.com/bnema/staking-cli/internal/domain"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	DefaultWriteRate  = 5.0
	maxBodyBytes      = 4 << 10
	defaultWriteBurst = 2
)

// Controller is the part of application.Controller served over HTTP.
type Controller interface {
	View() application.View
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Resync(ctx context.Context) error
	SubmitStake(ctx context.Context, amount string) error
	SubmitUnstake(ctx context.Context, amount string) error
}

type Options struct {
	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer
	// WriteRate limits POST requests per second across all clients.
	WriteRate  float64
	WriteBurst int
	// Lifetime bounds actions started over HTTP. Writes outlive the request
	// so a client hang-up does not abandon a submitted transaction.
	Lifetime context.Context
	Logger   *slog.Logger
}

type handler struct {
	ctrl     Controller
	lifetime context.Context
	logger   *slog.Logger
}

type amountRequest struct {
	Amount string `json:"amount"`
}

// NewHandler returns the chi router for the local read/act surface.
func NewHandler(ctrl Controller, opts Options) http.Handler {
	h := &handler{ctrl: ctrl, lifetime: opts.Lifetime, logger: opts.Logger}
	if h.lifetime == nil {
		h.lifetime = context.Background()
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	writeRate := opts.WriteRate
	if writeRate <= 0 {
		writeRate = DefaultWriteRate
	}
	burst := opts.WriteBurst
	if burst <= 0 {
		burst = defaultWriteBurst
	}
	limiter := rate.NewLimiter(rate.Limit(writeRate), burst)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))
	r.Use(h.logRequests)

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/session", h.getSession)

		r.Group(func(r chi.Router) {
			r.Use(throttle(limiter))
			r.Post("/connect", h.action(h.ctrl.Connect))
			r.Post("/disconnect", h.action(h.ctrl.Disconnect))
			r.Post("/resync", h.action(h.ctrl.Resync))
			r.Post("/stake", h.amountAction(h.ctrl.SubmitStake))
			r.Post("/unstake", h.amountAction(h.ctrl.SubmitUnstake))
		})
	})

	return r
}

func (h *handler) getSession(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, NewSessionResponse(h.ctrl.View()))
}

func (h *handler) action(run func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := run(h.lifetime); err != nil {
			h.logger.Info("action failed", "path", r.URL.Path, "kind", domain.KindOf(err), "error", err)
			writeActionError(w, err, h.ctrl.View())
			return
		}

		JSON(w, http.StatusOK, NewSessionResponse(h.ctrl.View()))
	}
}

func (h *handler) amountAction(submit func(ctx context.Context, amount string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		h.action(func(ctx context.Context) error {
			return submit(ctx, strings.TrimSpace(req.Amount))
		})(w, r)
	}
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}

func throttle(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				Error(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
