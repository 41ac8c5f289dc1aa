package webserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"ecashclient/notifications"
	"ecashclient/storage"
)

type WebServer struct {
	storage  *storage.Storage
	notifier *notifications.NotificationHandler
	httpSvr  *http.Server
}

type WebServerArgs struct {
	Storage         *storage.Storage
	Notifier        *notifications.NotificationHandler
	BindAddr        string
	BindPort        int
	ShutdownChannel <-chan interface{}
	WG              *sync.WaitGroup
}

// Start builds the router, launches the HTTP server in the background, and
// wires graceful shutdown to the shared channel. WG is decremented once the
// server has shut down.
func Start(args WebServerArgs) (*WebServer, error) {

	ws := &WebServer{
		storage:  args.Storage,
		notifier: args.Notifier,
	}

	router := mux.NewRouter()
	router.HandleFunc("/", ws.statusPage).Methods(http.MethodGet)
	router.HandleFunc("/api/health", ws.health).Methods(http.MethodGet)

	router.HandleFunc("/api/puzzles", ws.listPuzzles).Methods(http.MethodGet)
	router.HandleFunc("/api/puzzles", ws.importPuzzle).Methods(http.MethodPost, http.MethodOptions)

	router.HandleFunc("/api/guess", ws.tryGuess).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/commit", ws.createCommitment).Methods(http.MethodPost, http.MethodOptions)

	router.HandleFunc("/api/commitments", ws.listCommitments).Methods(http.MethodGet)
	router.HandleFunc("/api/commitments/{id:[0-9]+}/reveal", ws.recordReveal).Methods(http.MethodPost, http.MethodOptions)

	router.HandleFunc("/api/settings/address", ws.getAddress).Methods(http.MethodGet)
	router.HandleFunc("/api/settings/address", ws.setAddress).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/settings/notifiers/{kind}", ws.configureNotifier).Methods(http.MethodPost, http.MethodOptions)

	// Local UI talks cross-origin during development
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
	)

	httpAddr := fmt.Sprintf("%s:%d", args.BindAddr, args.BindPort)
	ws.httpSvr = &http.Server{
		Handler:      handlers.CombinedLoggingHandler(log.StandardLogger().Writer(), cors(router)),
		Addr:         httpAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.WithField("Addr", httpAddr).Info("eCash client API listening")

	// Launch webserver in background
	go func() {
		if err := ws.httpSvr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Httpserver: ListenAndServe()")
		}
		log.Info("Httpserver: Shutdown")
	}()

	// Wait for shutdown signal on channel
	go func() {
		<-args.ShutdownChannel

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := ws.httpSvr.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Httpserver: Shutdown()")
		}
		args.WG.Done()
	}()

	return ws, nil
}

const statusHTML = `<!DOCTYPE html>
<html>
<head><title>eCash Client</title></head>
<body>
<h3>eCash puzzle client</h3>
<p>The JSON API lives under <code>/api</code>. See <code>/api/health</code>.</p>
</body>
</html>
`

func (ws *WebServer) statusPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, statusHTML)
}
