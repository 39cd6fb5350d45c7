package response

import (
	"encoding/json"
	"net/http"
)

// FormErrors mirrors the inline errors of a page form: messages grouped by
// field name, in the order they were reported.
type FormErrors struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func RespondError(w http.ResponseWriter, status int, err error) {
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// RespondFormErrors answers 400 with the banner message and the per-field messages.
func RespondFormErrors(w http.ResponseWriter, message string, fields map[string][]string) {
	if fields == nil {
		fields = map[string][]string{}
	}
	RespondJSON(w, http.StatusBadRequest, FormErrors{Error: message, Fields: fields})
}
