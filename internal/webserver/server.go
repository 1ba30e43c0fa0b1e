// Package webserver exposes the terminal's local HTTP API and the
// WebSocket channel the counter UI listens on. It binds to a local
// port; the backend is only ever reached through the gateway.
package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ayitek/borlette-pos/internal/appstate"
	"github.com/ayitek/borlette-pos/internal/draws"
	"github.com/ayitek/borlette-pos/internal/gateway"
	"github.com/ayitek/borlette-pos/internal/output"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"go.uber.org/zap"
)

var (
	httpServer *http.Server

	state  *appstate.State
	client *gateway.Client
	engine *draws.Engine
)

// Configure wires the shared components in before StartWebServer.
func Configure(s *appstate.State, c *gateway.Client, e *draws.Engine) {
	state = s
	client = c
	engine = e
}

// corsMiddleware adds CORS headers to HTTP handlers.
func corsMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler(w, r)
	}
}

func StartWebServer(port int) error {
	mux := http.NewServeMux()

	// Session endpoints
	mux.HandleFunc("/local/session/login", corsMiddleware(handleLogin))
	mux.HandleFunc("/local/session/logout", corsMiddleware(handleLogout))
	mux.HandleFunc("/local/session", corsMiddleware(handleSession))

	// Draw selection endpoints
	mux.HandleFunc("/local/draws", corsMiddleware(handleDraws))
	mux.HandleFunc("/local/draws/select", corsMiddleware(handleSelectDraw))
	mux.HandleFunc("/local/draws/toggle", corsMiddleware(handleToggleDraw))
	mux.HandleFunc("/local/draws/continue", corsMiddleware(handleContinue))

	// Cart endpoints
	mux.HandleFunc("/local/cart", corsMiddleware(handleCart))
	mux.HandleFunc("/local/cart/clear", corsMiddleware(handleCartClear))
	mux.HandleFunc("/local/cart/submit", corsMiddleware(handleCartSubmit))

	// Ticket history endpoints
	mux.HandleFunc("/local/tickets", corsMiddleware(handleTickets))
	mux.HandleFunc("/local/tickets/delete", corsMiddleware(handleDeleteTicket))
	mux.HandleFunc("/local/tickets/print", corsMiddleware(handleReprintTicket))

	// Report endpoints
	mux.HandleFunc("/local/reports", corsMiddleware(handleReport))
	mux.HandleFunc("/local/reports/printable", corsMiddleware(handlePrintableReport))

	// Winner endpoints
	mux.HandleFunc("/local/winners", corsMiddleware(handleWinners))
	mux.HandleFunc("/local/winners/results", corsMiddleware(handleWinnerResults))
	mux.HandleFunc("/local/winners/check", corsMiddleware(handleCheckWinners))
	mux.HandleFunc("/local/winners/paid", corsMiddleware(handleMarkWinnerPaid))

	// WebSocket endpoint
	RegisterWebSocketRoute(mux)

	// Status endpoint
	mux.HandleFunc("/status", handleStatus)

	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting web server", zap.String("address", addr))

	httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start in a goroutine and wait briefly to catch immediate binding
	// errors.
	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("Failed to start web server", zap.Error(err))
			return fmt.Errorf("failed to start web server on port %d: %w", port, err)
		}
	case <-time.After(100 * time.Millisecond):
	}

	return nil
}

// Shutdown gracefully shuts down the web server.
func Shutdown() {
	if httpServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown web server gracefully", zap.Error(err))
	} else {
		logger.Info("Web server shutdown complete")
	}
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(map[string]any{
		"logged_in":        state.Session() != nil,
		"print_queue_size": output.QueueSize(),
		"timestamp":        time.Now().Format(time.RFC3339),
	})
}

// writeJSON sends a success payload.
func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps a failure onto the local API's error envelope. A
// backend APIError keeps its status and message; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": err.Error(),
	})
}
