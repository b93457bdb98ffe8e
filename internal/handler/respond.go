package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// messageResponse is the minimal envelope: mutations and failures.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// dataResponse carries a payload under the client's expected "data" key.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// writeJSON writes v with a 200 status. The envelope's success flag, not the
// HTTP status, is the contract with the client.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zctx.From(r.Context()).Error("Encode response", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

// fail logs the underlying error and collapses it into the generic
// `{success:false, message}` shape. Validation, not-found, upstream, and
// store failures all surface identically to the client.
func fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	if err != nil {
		zctx.From(r.Context()).Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, r, messageResponse{Success: false, Message: message})
}

// decode parses the request body into dst and reports whether it succeeded.
// A malformed body is answered with the generic failure envelope.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, r, "Error.", err)
		return false
	}
	return true
}
