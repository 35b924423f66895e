package server

import "net/http"

// noCache forces clients to revalidate frontend assets on every load, so
// edits to the frontend show up without a hard refresh during development.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}
