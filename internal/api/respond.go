package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/output"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// requestFormat reads ?format=, defaulting to JSON.
func requestFormat(r *http.Request) (output.Format, error) {
	return output.ParseFormat(r.URL.Query().Get("format"))
}

func writeResult(w http.ResponseWriter, code int, res outline.Result, f output.Format) {
	data, err := output.Marshal(res, f)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(code)
	w.Write(data)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
