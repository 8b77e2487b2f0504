package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/gml/pkg/buildinfo"
	gmlerrors "github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/pipeline"
)

// contentTypes maps pipeline formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJPG:  "image/jpeg",
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Pos     *int   `json:"pos,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(buildinfo.Get())
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:   q.Get("format"),
		Detailed: q.Get("detailed") == "true",
		RankDir:  q.Get("rankdir"),
	}
	if opts.Format == "" {
		opts.Format = pipeline.FormatJSON
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				gmlerrors.New(gmlerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.maxBody))
			return
		}
		s.writeError(w, r, http.StatusBadRequest, gmlerrors.Wrap(gmlerrors.ErrCodeIO, err, "read request body"))
		return
	}

	res, err := s.runner.Render(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[res.Format])
	h.Set("X-Gml-Nodes", strconv.Itoa(res.Stats.NodeCount))
	h.Set("X-Gml-Anon", strconv.Itoa(res.Stats.AnonCount))
	h.Set("X-Gml-Edges", strconv.Itoa(res.Stats.EdgeCount))
	if res.CacheHit {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch gmlerrors.GetCode(err) {
	case gmlerrors.ErrCodeUnexpectedEOF,
		gmlerrors.ErrCodeSyntax,
		gmlerrors.ErrCodeAttributeName,
		gmlerrors.ErrCodeAttributeValue,
		gmlerrors.ErrCodeStructural:
		return http.StatusUnprocessableEntity
	case gmlerrors.ErrCodeInvalidFormat, gmlerrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	body := errorBody{
		Code:    string(gmlerrors.GetCode(err)),
		Message: gmlerrors.UserMessage(err),
	}
	if body.Code == "" {
		body.Code = string(gmlerrors.ErrCodeInternal)
	}
	if pos, ok := gmlerrors.Position(err); ok {
		body.Pos = &pos
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestIDFromContext(r.Context()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
