package observability

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewMetricsServer builds the optional metrics/health HTTP listener. The
// MCP transport itself is stdio; this sidecar listener exists so deployed
// instances can still be scraped and probed.
func NewMetricsServer(addr string) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", MetricsHandler()).Methods("GET")
	router.HandleFunc("/healthz", healthzHandler).Methods("GET")

	return &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
