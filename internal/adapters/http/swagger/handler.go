// Package swagger serves the OpenAPI description of the HTTP API.
package swagger

import (
	"net/http"
)

// HandleOpenAPI handles GET /openapi.yaml requests.
func HandleOpenAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(OpenAPI)
}
