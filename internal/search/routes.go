package search

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts search endpoints under /api on the given router.
func RegisterRoutes(r chi.Router, idx *Index) {
	r.Get("/api/search", handleSearch(idx))
	r.Get("/api/tags", handleTags(idx))
}

func handleSearch(idx *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		query := Query{
			Text: q.Get("q"),
			Tag:  q.Get("tag"),
		}
		if v := q.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				query.Limit = n
			}
		}

		hits, err := idx.Search(r.Context(), query)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, hits)
	}
}

func handleTags(idx *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := idx.Tags(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
