// Package fakeapi runs an in-process stand-in for the vocabulary-leveling
// backend, routing the endpoints the client talks to and recording every
// request it receives.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/dewarrum/vocabulary-client/internal/constants"
	"github.com/gorilla/mux"
)

// Request is a recorded incoming request.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Query    url.Values
	Header   http.Header
}

// Upload is a video upload received by the default upload handler.
type Upload struct {
	VideoName            string
	VideoFileName        string
	VideoContentType     string
	Video                []byte
	SubtitlesFileName    string
	SubtitlesContentType string
	Subtitles            []byte
}

// UploadedVideoID is the video ID the default upload handler answers with.
const UploadedVideoID = "0b8f1a3e-5c2d-4e6f-8a9b-1c2d3e4f5a6b"

// Manifest is the body the default manifest handler serves.
const Manifest = `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" mediaPresentationDuration="PT4S" minBufferTime="PT2S" profiles="urn:mpeg:dash:profile:isoff-on-demand:2011">
  <Period id="0">
    <AdaptationSet id="0" contentType="video"><Representation id="0" bandwidth="800000"/></AdaptationSet>
    <AdaptationSet id="1" contentType="audio"><Representation id="1" bandwidth="128000"/></AdaptationSet>
  </Period>
</MPD>`

// Server is a fake backend.
type Server struct {
	URL string

	mu       sync.Mutex
	requests []Request
	uploads  []Upload
	profile  http.HandlerFunc
	search   http.HandlerFunc
	manifest http.HandlerFunc
	upload   http.HandlerFunc
}

// New starts a fake backend whose endpoints live under basePath ("" for the root).
// The server is closed when the test finishes.
//
// By default the profile endpoint answers 401, the search endpoint an empty
// array, the manifest endpoint Manifest and the upload endpoint records the
// upload and answers with UploadedVideoID.
func New(t testing.TB, basePath string) *Server {
	t.Helper()

	s := &Server{
		profile: JSON(http.StatusUnauthorized, `{"error":"unauthorized"}`),
		search:  JSON(http.StatusOK, `[]`),
	}
	s.manifest = s.serveManifest
	s.upload = s.recordUpload

	r := mux.NewRouter()
	router := r
	if basePath != "" {
		router = r.PathPrefix(basePath).Subrouter()
	}
	router.HandleFunc(constants.ProfilePath, func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		h := s.profile
		s.mu.Unlock()
		h(w, req)
	}).Methods(http.MethodGet)
	router.HandleFunc(constants.SubtitlesSearchPath, func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		h := s.search
		s.mu.Unlock()
		h(w, req)
	}).Methods(http.MethodGet)
	router.HandleFunc(constants.VideoManifestPath, func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		h := s.manifest
		s.mu.Unlock()
		h(w, req)
	}).Methods(http.MethodGet)
	router.HandleFunc(constants.VideoUploadPath, func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		h := s.upload
		s.mu.Unlock()
		h(w, req)
	}).Methods(http.MethodPost)

	srv := httptest.NewServer(s.record(r))
	t.Cleanup(srv.Close)
	s.URL = srv.URL + basePath

	return s
}

// HandleProfile replaces the handler of GET /auth/profile.
func (s *Server) HandleProfile(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = h
}

// HandleSearch replaces the handler of GET /api/subtitles/search.
func (s *Server) HandleSearch(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = h
}

// HandleManifest replaces the handler of GET /api/videos/manifest.mpd.
func (s *Server) HandleManifest(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifest = h
}

// HandleUpload replaces the handler of POST /api/admin/videos/upload.
func (s *Server) HandleUpload(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upload = h
}

// Uploads returns the uploads recorded by the default upload handler.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// Requests returns a copy of all requests received so far, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns how many requests the server has received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// JSON returns a handler that writes body with the given status as application/json.
func JSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Query:    r.URL.Query(),
			Header:   r.Header.Clone(),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) serveManifest(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("subtitleId") == "" {
		JSON(http.StatusBadRequest, `{"error":"subtitleId is required"}`)(w, r)
		return
	}
	w.Header().Set("Content-Type", constants.DashContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Manifest))
}

func (s *Server) recordUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		JSON(http.StatusBadRequest, fmt.Sprintf(`{"error":%q}`, err.Error()))(w, r)
		return
	}

	upload := Upload{VideoName: r.FormValue(constants.UploadFieldVideoName)}
	if upload.VideoName == "" {
		JSON(http.StatusBadRequest, `{"error":"name is required"}`)(w, r)
		return
	}

	var err error
	upload.VideoFileName, upload.VideoContentType, upload.Video, err = readFormFile(r, constants.UploadFieldVideo)
	if err == nil {
		upload.SubtitlesFileName, upload.SubtitlesContentType, upload.Subtitles, err = readFormFile(r, constants.UploadFieldSubtitles)
	}
	if err != nil {
		JSON(http.StatusBadRequest, fmt.Sprintf(`{"error":%q}`, err.Error()))(w, r)
		return
	}

	s.mu.Lock()
	s.uploads = append(s.uploads, upload)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"videoId": UploadedVideoID})
}

func readFormFile(r *http.Request, field string) (string, string, []byte, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return "", "", nil, fmt.Errorf("%s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", "", nil, fmt.Errorf("%s: %w", field, err)
	}
	return header.Filename, header.Header.Get("Content-Type"), data, nil
}
