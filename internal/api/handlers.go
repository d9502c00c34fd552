package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/snakecodec/pkg/buildinfo"
	"github.com/matzehuels/snakecodec/pkg/codec"
	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/history"
	"github.com/matzehuels/snakecodec/pkg/journal"
	"github.com/matzehuels/snakecodec/pkg/script"
	"github.com/matzehuels/snakecodec/pkg/signature"
)

// TextRequest is the body shared by the transform routes. Omitted
// parameters fall back to the server defaults.
type TextRequest struct {
	Text     string `json:"text"`
	Shift    *int   `json:"shift,omitempty"`
	Layout   string `json:"layout,omitempty"`
	CodePage string `json:"code_page,omitempty"`
}

// PipelineRequest is the body of POST /v1/pipelines.
type PipelineRequest struct {
	TextRequest
	Steps   []string `json:"steps"`
	Reverse bool     `json:"reverse,omitempty"`
}

// DetectRequest is the body of POST /v1/detect.
type DetectRequest struct {
	Text string `json:"text"`
	Try  bool   `json:"try,omitempty"`
}

// SignRequest is the body of POST /v1/sign.
type SignRequest struct {
	Text string `json:"text"`
}

// VerifyRequest is the body of POST /v1/verify.
type VerifyRequest struct {
	Text      string `json:"text"`
	Signature string `json:"signature"`
}

// TransformInfo describes one registered transform.
type TransformInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
	Shift       bool     `json:"shift"`
	Layout      bool     `json:"layout"`
	CodePage    bool     `json:"code_page"`
}

func (s *Server) params(req TextRequest) (codec.Params, error) {
	p := s.cfg.Defaults
	if req.Shift != nil {
		p.Shift = *req.Shift
	}
	if req.Layout != "" {
		l, err := script.ParseLayout(req.Layout)
		if err != nil {
			return p, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout")
		}
		p.Layout = l
	}
	if req.CodePage != "" {
		p.CodePage = req.CodePage
	}
	return p, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "version": buildinfo.Get().Version})
}

func (s *Server) handleListTransforms(w http.ResponseWriter, _ *http.Request) {
	var out []TransformInfo
	for _, t := range codec.List() {
		n := t.Needs()
		out = append(out, TransformInfo{
			Name:        t.Name(),
			Aliases:     t.Aliases(),
			Description: t.Description(),
			Shift:       n.Has(codec.NeedsShift),
			Layout:      n.Has(codec.NeedsLayout),
			CodePage:    n.Has(codec.NeedsCodePage),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"transforms": out})
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	dir, err := codec.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid direction"))
		return
	}
	var req TextRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateText(req.Text, s.cfg.MaxTextLength); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.params(req)
	if err != nil {
		writeError(w, err)
		return
	}

	name := chi.URLParam(r, "name")
	out, err := codec.Run(r.Context(), name, dir, req.Text, p)
	if err != nil {
		writeError(w, err)
		return
	}
	t, _ := codec.Lookup(name)
	if err := s.cfg.Recorder.Transform(r.Context(), t.Name(), dir, req.Text); err != nil {
		s.logger.Warn("recording failed", "err", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": out, "transform": t.Name(), "direction": dir.String()})
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var req PipelineRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateText(req.Text, s.cfg.MaxTextLength); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.params(req.TextRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	steps, err := codec.ParseSteps(req.Steps)
	if err != nil {
		writeError(w, err)
		return
	}
	pl := codec.Pipeline{Steps: steps, Params: p}
	if req.Reverse {
		pl = pl.Reverse()
	}
	out, err := pl.Run(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": out, "steps": pl.Steps})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateText(req.Text, s.cfg.MaxTextLength); err != nil {
		writeError(w, err)
		return
	}
	if req.Try {
		candidates, err := codec.DecodeCandidates(r.Context(), req.Text, s.cfg.Defaults)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
		return
	}
	detections, err := codec.Detect(req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"detections": detections})
}

func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	var req SignRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateText(req.Text, s.cfg.MaxTextLength); err != nil {
		writeError(w, err)
		return
	}
	sig, err := signature.Sign(req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.cfg.Recorder.Sign(r.Context(), req.Text); err != nil {
		s.logger.Warn("recording failed", "err", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"signature": sig})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	valid := signature.Verify(req.Text, req.Signature)
	if err := s.cfg.Recorder.Verify(req.Text, valid); err != nil {
		s.logger.Warn("recording failed", "err", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

func (s *Server) store() history.Store {
	if s.cfg.Recorder == nil {
		return nil
	}
	return s.cfg.Recorder.History
}

// handleListHistory lists encrypt and decrypt entries, or every entry with
// ?all=true.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	st := s.store()
	if st == nil {
		writeJSON(w, http.StatusOK, map[string]any{"entries": []history.Entry{}})
		return
	}
	entries, err := st.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); !all {
		entries = history.Filter(entries, history.Transforms...)
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	st := s.store()
	if st == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "history is disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	e, err := st.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := st.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.cfg.Recorder.HistoryRemoved(e); err != nil {
		s.logger.Warn("recording failed", "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	st := s.store()
	if st == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	n, err := st.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := st.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	if err := s.cfg.Recorder.HistoryCleared(n); err != nil {
		s.logger.Warn("recording failed", "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleJournal returns the last ?n= journal lines, 50 by default.
func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	n := journal.DefaultRecent
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "n must be a non-negative integer"))
			return
		}
		n = parsed
	}
	lines := []string{}
	if s.cfg.Recorder != nil && s.cfg.Recorder.Journal != nil {
		got, err := s.cfg.Recorder.Journal.RecentLines(n)
		if err != nil {
			writeError(w, err)
			return
		}
		if got != nil {
			lines = got
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": lines})
}
