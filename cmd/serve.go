package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kalgen-innolab/dnacare/internal/assessment"
	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/locale"
	"github.com/kalgen-innolab/dnacare/internal/monitoring"
	"github.com/kalgen-innolab/dnacare/internal/questionnaire"
	"github.com/kalgen-innolab/dnacare/internal/store"
)

const maxBodyBytes = 1 << 20

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assessment HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		env, err := initEnv(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newRouter(env, cfg.Server),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		if cfg.Monitoring.Enabled {
			go newChecker(env, cfg.Monitoring).Run(ctx)
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newChecker builds the persistence health checker for env.
func newChecker(env *appEnv, mc config.MonitoringConfig) *monitoring.Checker {
	var sinks monitoring.SinkReporter
	if env.Dispatcher != nil {
		sinks = env.Dispatcher
	}
	var st monitoring.StatsQuerier
	if env.Store != nil {
		st = env.Store
	}
	return monitoring.NewChecker(monitoring.NewCollector(st, sinks), monitoring.NewAlerter(mc), mc)
}

type apiServer struct {
	env *appEnv
}

// newRouter wires the API routes and middleware.
func newRouter(env *appEnv, sc config.ServerConfig) http.Handler {
	s := &apiServer{env: env}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept-Language"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))
	if sc.RateLimit > 0 {
		burst := sc.RateBurst
		if burst < 1 {
			burst = 1
		}
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(sc.RateLimit), burst)))
	}

	r.Get("/health", s.health)
	r.Get("/readyz", s.ready)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/assessments", s.createAssessment)
		r.Get("/assessments/{id}", s.getAssessment)
		r.Get("/scoring", s.scoring)
		r.Get("/stats", s.stats)
	})
	return r
}

// rateLimit rejects requests beyond the process-wide limit.
func rateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestCatalog picks the language from ?lang, then Accept-Language.
func requestCatalog(r *http.Request) locale.Catalog {
	return locale.Lookup(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

func (s *apiServer) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) ready(w http.ResponseWriter, r *http.Request) {
	if s.env.Store == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "disabled"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.env.Store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"db":     "unhealthy",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "ok"})
}

func (s *apiServer) createAssessment(w http.ResponseWriter, r *http.Request) {
	cat := requestCatalog(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
		return
	}
	answers, err := questionnaire.Decode(body, "json")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	save := true
	if v := r.URL.Query().Get("save"); v != "" {
		if save, err = strconv.ParseBool(v); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "save must be a boolean"})
			return
		}
	}

	var res *assessment.Result
	if save {
		res, err = s.env.Service.Submit(r.Context(), answers, cat.Lang())
	} else {
		res, err = s.env.Service.Evaluate(answers, cat.Lang())
	}

	if fields, ok := assessment.InvalidFields(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  cat.MandatoryFields(fields),
			"fields": fields,
		})
		return
	}
	var pe *assessment.PersistError
	if errors.As(err, &pe) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": cat.Message(locale.MsgSaveError),
			"id":    pe.ID,
		})
		return
	}
	if err != nil {
		zap.L().Error("assessment failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": cat.Message(locale.MsgInternalError)})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *apiServer) getAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.env.Store.GetSubmission(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "submission not found"})
		return
	}
	if err != nil {
		zap.L().Error("get submission failed", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": requestCatalog(r).Message(locale.MsgInternalError)})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *apiServer) scoring(w http.ResponseWriter, _ *http.Request) {
	sc := s.env.Service.Config()
	writeJSON(w, http.StatusOK, map[string]any{
		"variant": sc.Variant,
		"hash":    s.env.Service.Hash(),
		"config":  sc,
	})
}

func (s *apiServer) stats(w http.ResponseWriter, r *http.Request) {
	f := store.Filter{Variant: r.URL.Query().Get("variant")}
	if v := r.URL.Query().Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "since must be RFC 3339"})
			return
		}
		f.Since = since
	}
	st, err := s.env.Store.Stats(r.Context(), f)
	if err != nil {
		zap.L().Error("stats failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": requestCatalog(r).Message(locale.MsgInternalError)})
		return
	}
	writeJSON(w, http.StatusOK, st)
}
