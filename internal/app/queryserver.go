package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// healthHandler reports process liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// moduleView is the JSON shape of one registered module.
type moduleView struct {
	Name      string   `json:"name"`
	DependsOn []string `json:"depends_on,omitempty"`
	Source    string   `json:"source"`
	Resolved  bool     `json:"resolved"`
}

func (a *App) modulesHandler(w http.ResponseWriter, r *http.Request) {
	views := make([]moduleView, 0)
	for _, entry := range a.snapshot.Modules() {
		views = append(views, moduleView{
			Name:      entry.Descriptor.Name,
			DependsOn: entry.Descriptor.DependsOn,
			Source:    entry.Descriptor.Source,
			Resolved:  entry.Resolved,
		})
	}
	a.writeJSON(w, views)
}

func (a *App) orderHandler(w http.ResponseWriter, r *http.Request) {
	type orderView struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
		Reason   string `json:"reason"`
	}
	views := make([]orderView, 0)
	for _, entry := range a.snapshot.ImportOrder() {
		views = append(views, orderView{Name: entry.Name, Position: entry.Position, Reason: entry.Reason})
	}
	a.writeJSON(w, views)
}

func (a *App) errorsHandler(w http.ResponseWriter, r *http.Request) {
	messages := a.snapshot.ValidationErrors()
	if messages == nil {
		messages = []string{}
	}
	a.writeJSON(w, messages)
}

func (a *App) cyclesHandler(w http.ResponseWriter, r *http.Request) {
	views := make([][]string, 0)
	for _, cycle := range a.snapshot.Cycles() {
		views = append(views, cycle.Path)
	}
	a.writeJSON(w, views)
}

func (a *App) writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		a.logger.Error("Failed to encode query response.", "error", err)
	}
}

// startQueryServer runs the HTTP query surface over the frozen snapshot.
// It is only started after the snapshot is published, so every handler reads
// fully built state. The server keeps serving until closeQueryServer is
// called; Run blocks for its lifetime.
func (a *App) startQueryServer(port int) {
	a.logger.Debug("Configuring query server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/modules", a.modulesHandler)
	mux.HandleFunc("/order", a.orderHandler)
	mux.HandleFunc("/errors", a.errorsHandler)
	mux.HandleFunc("/cycles", a.cyclesHandler)

	addr := fmt.Sprintf(":%d", port)

	// Create the server instance and store it on the app struct so it can
	// be shut down gracefully.
	a.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		a.logger.Info("🩺 Query server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown; only
		// other errors are real failures.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Query server failed unexpectedly", "error", err)
		}
	}()
}

// closeQueryServer gracefully shuts down the query server, if it was running.
func (a *App) closeQueryServer() error {
	a.logger.Debug("Closing query server...")

	if a.httpServer == nil {
		a.logger.Debug("Query server was not running.")
		return nil
	}

	// Create a context with a timeout for the shutdown process.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down query server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Query server shutdown failed", "error", err)
		return err
	}

	a.logger.Debug("Query server shut down gracefully.")
	return nil
}
