package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veritide/compliance-cli/internal/model"
	"github.com/veritide/compliance-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start webhook server for investigation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/webhook/investigate", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Customer string `json:"customer"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if body.Customer == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer is required"})
				return
			}

			// Investigations drive a browser and an LLM call; run them
			// off the request path.
			go func() {
				runner, cleanup, err := newRunner(st)
				if err != nil {
					zap.L().Error("webhook investigation setup failed",
						zap.String("customer", body.Customer),
						zap.Error(err),
					)
					return
				}
				defer cleanup()

				rep, err := runner.Run(ctx, body.Customer)
				if err != nil {
					zap.L().Error("webhook investigation failed",
						zap.String("customer", body.Customer),
						zap.Error(err),
					)
					return
				}
				zap.L().Info("webhook investigation complete",
					zap.String("customer", body.Customer),
					zap.String("risk_level", rep.RiskLevel),
				)
			}()

			writeJSON(w, http.StatusAccepted, map[string]string{
				"status":   "accepted",
				"customer": body.Customer,
			})
		})

		r.Get("/investigations", func(w http.ResponseWriter, req *http.Request) {
			filter := store.Filter{
				Status:       model.RunStatus(req.URL.Query().Get("status")),
				CustomerName: req.URL.Query().Get("customer"),
				Limit:        queryInt(req, "limit", 50),
				Offset:       queryInt(req, "offset", 0),
			}
			runs, err := st.ListInvestigations(req.Context(), filter)
			if err != nil {
				zap.L().Error("list investigations failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
				return
			}
			writeJSON(w, http.StatusOK, runs)
		})

		r.Get("/investigations/{id}/report", func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "id")
			rep, doc, err := st.GetReport(req.Context(), id)
			if err != nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"report":   rep,
				"document": doc,
			})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryInt(req *http.Request, key string, def int) int {
	raw := req.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
