package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/folkcanvas/folk/backend-go/internal/auth"
	"github.com/folkcanvas/folk/backend-go/internal/config"
	"github.com/folkcanvas/folk/backend-go/internal/relay"
	"github.com/folkcanvas/folk/backend-go/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.RelayKeyHash)
	authHandler := auth.NewHandler(authService)

	hub := relay.NewHub()
	go hub.Run()

	r := mux.NewRouter()

	// Token endpoint (public, exchanges the relay key for a token)
	r.HandleFunc("/auth/token", authHandler.Token).Methods("POST")

	// Authenticated identity check
	r.Handle("/auth/me", authService.AuthMiddleware(http.HandlerFunc(whoAmI))).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// WebSocket relay endpoint
	r.HandleFunc("/ws/frame/{frameId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, cfg)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"clientId":%q}`, auth.ClientIDFromContext(r.Context()))
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *relay.Hub, authSvc *auth.Service, cfg *config.Config) {
	vars := mux.Vars(r)
	frameID := vars["frameId"]

	role := r.URL.Query().Get("role")
	if role != relay.RoleParent && role != relay.RoleChild {
		http.Error(w, "role must be parent or child", http.StatusBadRequest)
		return
	}

	var clientID string

	// The playground frame allows anonymous access
	const playgroundFrameID = "frame_playground"
	if frameID == playgroundFrameID {
		clientID = "anon-" + uuid.New().String()[:8]
	} else {
		if err := typeid.Validate(frameID, typeid.PrefixFrame); err != nil {
			http.Error(w, "invalid frame id", http.StatusBadRequest)
			return
		}
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		var err error
		clientID, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(cfg.AllowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := relay.NewClient(hub, conn, frameID, role, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func originPatterns(allowed string) []string {
	var patterns []string
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		origin = strings.TrimPrefix(origin, "http://")
		origin = strings.TrimPrefix(origin, "https://")
		if origin != "" {
			patterns = append(patterns, origin)
		}
	}
	return patterns
}
