package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/database"
	"github.com/osse101/SpaceCases_Go/internal/handler"
	"github.com/osse101/SpaceCases_Go/internal/inventory"
	"github.com/osse101/SpaceCases_Go/internal/ledger"
	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/metrics"
	"github.com/osse101/SpaceCases_Go/internal/naming"
	"github.com/osse101/SpaceCases_Go/internal/settlement"
	"github.com/osse101/SpaceCases_Go/internal/upgrade"
)

// Config holds the transport settings of the API server
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	// AllowedOrigins enables CORS for browser clients; empty disables it
	AllowedOrigins []string
	MaxBodyBytes   int64
	Detector       DetectorConfig
}

// Services are the domain services exposed over HTTP
type Services struct {
	DB         database.Pool
	Catalog    catalog.Provider
	Resolver   naming.Resolver
	Ledger     ledger.Service
	Inventory  inventory.Service
	Settlement settlement.Service
	Upgrade    upgrade.Service
	// KeyPrice is added to the listed cost of containers that need a key
	KeyPrice int64
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(cfg Config, svc Services) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetectorWithConfig(cfg.Detector)

	r.Use(requestIDMiddleware)
	if len(cfg.AllowedOrigins) > 0 {
		// Preflight requests carry no API key, so this sits ahead of auth
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", HeaderAuthorization, "Content-Type", HeaderRequestID, HeaderAPIKey},
			ExposedHeaders: []string{HeaderRequestID},
			MaxAge:         DefaultCORSMaxAge,
		}))
	}
	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.DB, svc.Catalog))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterAccount(svc.Ledger))
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", handler.HandleCloseAccount(svc.Ledger))
				r.Get("/balance", handler.HandleGetBalance(svc.Ledger))
				r.Post("/claim", handler.HandleClaim(svc.Ledger))
				r.Get("/inventory", handler.HandleGetInventory(svc.Inventory))
				r.Get("/items/{itemID}", handler.HandleGetItem(svc.Inventory))
				r.Post("/items/{itemID}/sell", handler.HandleSellItem(svc.Inventory))
			})
		})

		r.Post("/transfers", handler.HandleTransfer(svc.Ledger))

		r.Post("/containers/open", handler.HandleOpenContainer(svc.Settlement))

		r.Route("/settlements/{sessionID}", func(r chi.Router) {
			r.Get("/", handler.HandleGetSettlement(svc.Settlement))
			r.Post("/keep", handler.HandleKeepSettlement(svc.Settlement))
			r.Post("/sell", handler.HandleSellSettlement(svc.Settlement))
		})

		r.Route("/upgrades", func(r chi.Router) {
			r.Post("/quote", handler.HandleUpgradeQuote(svc.Upgrade))
			r.Post("/execute", handler.HandleUpgradeExecute(svc.Upgrade))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/containers", handler.HandleListContainers(svc.Catalog, svc.KeyPrice))
			if svc.Resolver != nil {
				r.Get("/suggest", handler.HandleSuggest(svc.Resolver))
			}
		})
	})

	return &Server{
		router: r,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ReadTimeout:       DefaultReadTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
		},
	}
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// requestIDMiddleware tags the context with a request id, reusing one sent
// by an upstream proxy
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), requestID)))
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		log := logger.FromContext(r.Context())

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
