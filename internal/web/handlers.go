package web

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/migfix/internal/logging"
	"github.com/JonMunkholm/migfix/internal/migration"
	"github.com/JonMunkholm/migfix/internal/sample"
)

// RewriteResponse is the JSON body returned by POST /api/rewrite.
type RewriteResponse struct {
	SQL   string          `json:"sql"`
	Stats migration.Stats `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleRewrite rewrites the SQL script in the request body.
// The response is the script as text/plain unless the client asks for JSON.
func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize)
	defer body.Close()

	res, err := s.fixer.FixReader(body)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("script rewritten",
		"lines", res.Stats.Lines,
		"inserts", res.Stats.Inserts,
		"ids_removed", res.Stats.IDsRemoved,
		"ids_replaced", res.Stats.IDsReplaced,
		"mismatches", res.Stats.Mismatches,
	)

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(RewriteResponse{SQL: res.Content, Stats: res.Stats})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(res.Content))
}

// handleSample serves the static sample-data script as a download.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+sample.DefaultPath+`"`)
	w.Write([]byte(sample.Script()))
}
