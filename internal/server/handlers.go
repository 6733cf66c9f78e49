package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/buildinfo"
	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/pipeline"
	"github.com/mcbanners/banners/pkg/render/sink"
)

// errorBody is the JSON body of every error response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// savedBody is returned after a banner is saved.
type savedBody struct {
	Mnemonic string `json:"mnemonic"`
	Type     string `json:"banner_type"`
	URL      string `json:"url"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	}, s.logger)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	t, err := parseType(chi.URLParam(r, "type"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format, err := sink.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.pipeline.Render(r.Context(), t, settingsFrom(r.URL.Query()), format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeImage(w, res)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	t, err := parseType(chi.URLParam(r, "type"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	b, err := s.pipeline.Save(r.Context(), t, r.Header.Get(OwnerHeader), settingsFrom(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, savedBody{
		Mnemonic: b.Mnemonic,
		Type:     string(b.Type),
		URL:      fmt.Sprintf("/saved/%s.%s", b.Mnemonic, sink.PNG.Extension()),
	}, s.logger)
}

func (s *Server) handleRecall(w http.ResponseWriter, r *http.Request) {
	format, err := sink.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.pipeline.Recall(r.Context(), chi.URLParam(r, "mnemonic"), format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeImage(w, res)
}

func (s *Server) writeImage(w http.ResponseWriter, res *pipeline.Result) {
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Image)))
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(s.maxAge.Seconds())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Image); err != nil {
		s.logger.Debug("write image", "error", err)
	}
}

// fail writes err using its caller-visible kind. Upstream outages and
// unsupported combinations read as plain not-found.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	kind := errors.Kind(err)

	msg := errors.UserMessage(err)
	switch {
	case kind == errors.ErrCodeInternal:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	case kind != errors.GetCode(err):
		msg = "banner entity not found"
	}
	writeError(w, status, string(kind), msg, s.logger)
}

// parseType accepts banner type names in any case, with '-' or '_'.
func parseType(s string) (backend.BannerType, error) {
	t, err := backend.ParseBannerType(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidType, err, "unknown banner type %q", s)
	}
	return t, nil
}

// settingsFrom keeps the first value of every query parameter.
func settingsFrom(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *log.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string, logger *log.Logger) {
	writeJSON(w, status, errorBody{Error: msg, Code: code}, logger)
}
