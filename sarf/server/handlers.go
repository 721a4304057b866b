package server

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/sugawarayuuta/sonnet"

	"github.com/sarfdb/sarf"
)

// All endpoints answer 200 with a success flag in the body; the error
// taxonomy (duplicate, not found, invalid input) is data, not transport
// failure. Only malformed JSON gets a 400.

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	body, err := sonnet.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(body)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err == nil {
		err = sonnet.Unmarshal(body, v)
	}
	if err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// urlParam returns the named path parameter, unescaped. Arabic segments
// arrive percent-encoded.
func urlParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, sarf.ErrInvalidRoot):
		return "root must be exactly 3 Arabic letters (trilateral)"
	case errors.Is(err, sarf.ErrEmptyPattern):
		return "template is required"
	default:
		return err.Error()
	}
}

// ---------------------------------------------------------------------
// Stats and health
// ---------------------------------------------------------------------

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.lex.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   "healthy",
		"roots":    s.lex.RootCount(),
		"patterns": s.lex.TableStats().Count,
	})
}

// ---------------------------------------------------------------------
// Root index
// ---------------------------------------------------------------------

func (s *Server) handleAddRoot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Root string `json:"root"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.lex.InsertRoot(req.Root); err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err)})
		return
	}
	writeJSON(w, map[string]any{
		"success":     true,
		"message":     "root added",
		"total_roots": s.lex.RootCount(),
	})
}

func (s *Server) handleUploadRoots(w http.ResponseWriter, r *http.Request) {
	report, err := s.lex.ImportRoots(r.Body)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err)})
		return
	}
	errs := report.Errors
	if len(errs) > 10 {
		errs = errs[:10]
	}
	writeJSON(w, map[string]any{
		"success":       true,
		"added_count":   report.Added,
		"skipped_count": report.Skipped,
		"errors":        errs,
		"total_roots":   s.lex.RootCount(),
	})
}

func (s *Server) handleListRoots(w http.ResponseWriter, r *http.Request) {
	roots := s.lex.ListRoots()
	writeJSON(w, map[string]any{"roots": roots, "count": len(roots)})
}

func (s *Server) handleRootTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"success": true,
		"tree":    s.lex.TreeStructure(),
		"height":  s.lex.TreeHeight(),
		"count":   s.lex.RootCount(),
	})
}

func (s *Server) handleSearchRoot(w http.ResponseWriter, r *http.Request) {
	root := urlParam(r, "root")
	writeJSON(w, map[string]any{"root": root, "exists": s.lex.SearchRoot(root)})
}

func (s *Server) handleDeleteRoot(w http.ResponseWriter, r *http.Request) {
	root := urlParam(r, "root")
	if err := s.lex.DeleteRoot(root); err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err)})
		return
	}
	writeJSON(w, map[string]any{
		"success":     true,
		"message":     "root deleted",
		"total_roots": s.lex.RootCount(),
	})
}

func (s *Server) handleUpdateRoot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldRoot string `json:"old_root"`
		NewRoot string `json:"new_root"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.lex.UpdateRoot(req.OldRoot, req.NewRoot); err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err)})
		return
	}
	writeJSON(w, map[string]any{
		"success":     true,
		"message":     "root updated",
		"total_roots": s.lex.RootCount(),
	})
}

func (s *Server) handleRootWords(w http.ResponseWriter, r *http.Request) {
	root := urlParam(r, "root")
	words, err := s.lex.DerivedWords(root)
	if err != nil {
		writeJSON(w, map[string]any{
			"success":       false,
			"message":       failureMessage(err),
			"derived_words": map[string]any{},
		})
		return
	}
	writeJSON(w, map[string]any{
		"success":       true,
		"root":          root,
		"derived_words": words,
		"count":         len(words),
	})
}

// ---------------------------------------------------------------------
// Pattern index
// ---------------------------------------------------------------------

func (s *Server) handleAddPattern(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Template string `json:"template"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.lex.InsertPattern(req.Template); err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err)})
		return
	}
	writeJSON(w, map[string]any{
		"success":        true,
		"message":        "pattern added",
		"total_patterns": s.lex.TableStats().Count,
	})
}

func (s *Server) handleListPatterns(w http.ResponseWriter, r *http.Request) {
	patterns := s.lex.ListPatterns()
	writeJSON(w, map[string]any{"patterns": patterns, "count": len(patterns)})
}

func (s *Server) handlePatternTable(w http.ResponseWriter, r *http.Request) {
	stats := s.lex.TableStats()
	writeJSON(w, map[string]any{
		"success": true,
		"table": map[string]any{
			"size":              stats.Size,
			"count":             stats.Count,
			"load_factor":       stats.LoadFactor,
			"non_empty_buckets": stats.NonEmptyBuckets,
			"collisions":        stats.Collisions,
			"buckets":           s.lex.Buckets(),
		},
	})
}

func (s *Server) handleGetPattern(w http.ResponseWriter, r *http.Request) {
	template := urlParam(r, "template")
	writeJSON(w, map[string]any{"template": template, "exists": s.lex.LookupPattern(template)})
}

func (s *Server) handleDeletePattern(w http.ResponseWriter, r *http.Request) {
	template := urlParam(r, "template")
	if err := s.lex.DeletePattern(template); err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err)})
		return
	}
	writeJSON(w, map[string]any{
		"success":        true,
		"message":        "pattern deleted",
		"total_patterns": s.lex.TableStats().Count,
	})
}

func (s *Server) handleUpdatePattern(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldTemplate string `json:"old_template"`
		NewTemplate string `json:"new_template"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.lex.RenamePattern(req.OldTemplate, req.NewTemplate); err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err)})
		return
	}
	writeJSON(w, map[string]any{
		"success":        true,
		"message":        "pattern updated",
		"total_patterns": s.lex.TableStats().Count,
	})
}

// ---------------------------------------------------------------------
// Generator and validator
// ---------------------------------------------------------------------

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Root     string `json:"root"`
		Template string `json:"template"`
	}
	if !decode(w, r, &req) {
		return
	}
	word, err := s.lex.Generate(req.Root, req.Template)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err), "word": nil})
		return
	}
	writeJSON(w, map[string]any{
		"success":  true,
		"root":     req.Root,
		"template": req.Template,
		"word":     word,
	})
}

func (s *Server) handleGenerateMultiple(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Root      string   `json:"root"`
		Templates []string `json:"templates"`
	}
	if !decode(w, r, &req) {
		return
	}
	if len(req.Templates) == 0 {
		writeJSON(w, map[string]any{"success": false, "message": "at least one template is required"})
		return
	}
	derivations, skipped, err := s.lex.GenerateSubset(req.Root, req.Templates)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err), "derivatives": []any{}})
		return
	}
	if skipped == nil {
		skipped = []string{}
	}
	writeJSON(w, map[string]any{
		"success":     true,
		"root":        req.Root,
		"derivatives": derivations,
		"count":       len(derivations),
		"skipped":     skipped,
	})
}

func (s *Server) handleDerivatives(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Root string `json:"root"`
	}
	if !decode(w, r, &req) {
		return
	}
	derivations, err := s.lex.GenerateAll(req.Root)
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "message": failureMessage(err), "derivatives": []any{}})
		return
	}
	writeJSON(w, map[string]any{
		"success":     true,
		"root":        req.Root,
		"derivatives": derivations,
		"count":       len(derivations),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word string `json:"word"`
		Root string `json:"root"`
	}
	if !decode(w, r, &req) {
		return
	}
	template, valid, err := s.lex.ValidateWord(req.Word, req.Root)
	if err != nil {
		writeJSON(w, map[string]any{
			"success":       false,
			"is_valid":      false,
			"message":       failureMessage(err),
			"template_used": nil,
		})
		return
	}
	var used any
	if valid {
		used = string(template)
	}
	writeJSON(w, map[string]any{
		"success":       true,
		"word":          req.Word,
		"root":          req.Root,
		"is_valid":      valid,
		"template_used": used,
	})
}
