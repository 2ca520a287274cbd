package handlers

import "net/http"

// Health answers the liveness probe: 200 as long as the process
// accepts connections, durable store or not.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
