package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tengjizhang/linkconv/internal/editor"
	"github.com/tengjizhang/linkconv/internal/emit"
	"github.com/tengjizhang/linkconv/internal/export"
	"github.com/tengjizhang/linkconv/internal/metrics"
	"github.com/tengjizhang/linkconv/internal/model"
	"github.com/tengjizhang/linkconv/internal/store"
)

type ConvertRequest struct {
	Markup string `json:"markup"`
}

type ConvertResponse struct {
	Empty   bool                   `json:"empty"`
	Formats map[emit.Format]string `json:"formats"`
	Links   []model.Link           `json:"links"`
}

type FormatInfo struct {
	Name      emit.Format `json:"name"`
	Extension string      `json:"extension"`
	MIMEType  string      `json:"mime_type"`
}

// SectionRequest creates or replaces a section. Markdown, when set, is
// rendered and takes precedence over Markup.
type SectionRequest struct {
	Markup   string `json:"markup"`
	Markdown string `json:"markdown"`
}

type SectionResponse struct {
	model.Section
	Characters int `json:"characters"`
	Links      int `json:"links"`
}

type InsertLinkRequest struct {
	URL   string `json:"url"`
	Start *int   `json:"start"`
	End   *int   `json:"end"`
	Text  string `json:"text"`
}

type PreviewResponse struct {
	Links   []model.LinkPreview `json:"links"`
	Message string              `json:"message,omitempty"`
}

// convert runs a conversion and records it.
func (s *Server) convert(src string) (emit.Result, bool) {
	start := time.Now()
	result, ok := s.converter.Convert(src)
	parser := s.converter.Transformer().Name()
	if !ok {
		s.recorder.ObserveConversion(parser, 0, metrics.ResultEmpty, 0)
		return result, false
	}
	s.recorder.ObserveConversion(parser, time.Since(start), metrics.ResultConverted, len(result.Links))
	return result, true
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, ok := s.convert(req.Markup)
	if !ok {
		respondJSON(w, http.StatusOK, map[string]bool{"empty": true})
		return
	}
	respondJSON(w, http.StatusOK, ConvertResponse{
		Formats: result.Outputs(),
		Links:   result.Links,
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	out := make([]FormatInfo, 0, len(emit.Formats))
	for _, f := range emit.Formats {
		out = append(out, FormatInfo{Name: f, Extension: f.Extension(), MIMEType: f.MIMEType()})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	sections, err := s.store.ListSections(r.Context(), store.SectionListOptions{Limit: limit})
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	t := s.converter.Transformer()
	out := make([]model.SectionSummary, 0, len(sections))
	for _, section := range sections {
		out = append(out, editor.Summarize(t, section))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": out,
		"total": len(out),
	})
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	m, ok := s.sectionMarkup(w, r)
	if !ok {
		return
	}
	section, err := s.store.CreateSection(r.Context(), m)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.sectionResponse(section))
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	section, err := s.store.GetSection(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sectionResponse(section))
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	m, ok := s.sectionMarkup(w, r)
	if !ok {
		return
	}
	section, err := s.store.UpdateSectionMarkup(r.Context(), id, m)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.sectionResponse(section))
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteSection(r.Context(), id); err != nil {
		s.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInsertLink(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	var req InsertLinkRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ec := editor.EditContext{SectionID: id}
	switch {
	case req.Start != nil && req.End != nil:
		ec.Start, ec.End = *req.Start, *req.End
	case req.Text != "":
		current, err := s.store.GetSection(r.Context(), id)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		start, end, err := editor.FindText(current.Markup, req.Text)
		if err != nil {
			s.recorder.IncLinkInsert(metrics.ResultRejected)
			s.respondStoreError(w, err)
			return
		}
		ec.Start, ec.End = start, end
	default:
		s.recorder.IncLinkInsert(metrics.ResultRejected)
		s.respondStoreError(w, editor.ErrNoSelection)
		return
	}

	section, err := editor.InsertLink(r.Context(), s.store, ec, req.URL)
	if err != nil {
		s.recorder.IncLinkInsert(metrics.ResultRejected)
		s.respondStoreError(w, err)
		return
	}
	s.recorder.IncLinkInsert(metrics.ResultSuccess)
	s.logger.Debug("Link inserted", "section_id", id, "start", ec.Start, "end", ec.End)
	respondJSON(w, http.StatusOK, s.sectionResponse(section))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	section, err := s.store.GetSection(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	resp := PreviewResponse{Links: editor.Preview(section.Markup)}
	if len(resp.Links) == 0 {
		resp.Message = editor.NoLinksMessage
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	format, err := emit.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	section, err := s.store.GetSection(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	result, ok := s.convert(section.Markup)
	if !ok {
		respondError(w, http.StatusNotFound, export.ErrNothingToDownload.Error())
		return
	}
	body := result.Output(format)
	if err := export.CheckContent(body); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.recorder.IncDownload(string(format))
	w.Header().Set("Content-Type", format.MIMEType())
	w.Header().Set("Content-Disposition", export.ContentDisposition(id, format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) sectionResponse(section model.Section) SectionResponse {
	sum := editor.Summarize(s.converter.Transformer(), section)
	return SectionResponse{Section: section, Characters: sum.Characters, Links: sum.Links}
}

func (s *Server) sectionMarkup(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req SectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	if strings.TrimSpace(req.Markdown) == "" {
		return req.Markup, true
	}
	m, err := editor.ImportMarkdown([]byte(req.Markdown))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return m, true
}

func sectionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
