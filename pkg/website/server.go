// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestIDHeader = "X-Request-Id"

type ServerOpts struct {
	ListenAddr      string
	RedirectToHTTPS bool

	// TemplateFunc renders bulk input (see "render --bulk-in")
	TemplateFunc func([]byte) ([]byte, error)
	RenderFunc   func(RenderRequest) (string, error)
	ErrorFunc    func(error) ([]byte, error)

	// Registry receives server metrics; a new registry is used when nil.
	Registry *prometheus.Registry
}

type RenderRequest struct {
	Template string          `json:"template"`
	Values   json.RawMessage `json:"values,omitempty"`
}

type RenderResponse struct {
	Output *string `json:"output,omitempty"`
	Errors string  `json:"errors,omitempty"`
}

type Server struct {
	opts    ServerOpts
	metrics *Metrics
}

func NewServer(opts ServerOpts) *Server {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	return &Server{opts, NewMetrics(opts.Registry)}
}

func (s *Server) Metrics() *Metrics { return s.metrics }

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.redirectToHTTPS(s.noCacheHandler(s.mainHandler)))
	mux.HandleFunc("/js/", s.redirectToHTTPS(s.noCacheHandler(s.assetHandler)))
	mux.HandleFunc("/examples", s.redirectToHTTPS(s.noCacheHandler(s.corsHandler(s.exampleSetsHandler))))
	mux.HandleFunc("/examples/", s.redirectToHTTPS(s.noCacheHandler(s.corsHandler(s.examplesHandler))))
	// no need for caching as it's a POST
	mux.HandleFunc("/template", s.redirectToHTTPS(s.corsHandler(s.requestIDHandler(s.templateHandler))))
	mux.HandleFunc("/render", s.redirectToHTTPS(s.corsHandler(s.requestIDHandler(s.renderHandler))))
	mux.HandleFunc("/health", s.healthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) Run() error {
	server := &http.Server{
		Addr:              s.opts.ListenAddr,
		Handler:           s.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Printf("Listening on http://%s\n", server.Addr)
	return server.ListenAndServe()
}

func (s *Server) mainHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.write(w, []byte(Files["templates/index.html"].Content))
}

func (s *Server) assetHandler(w http.ResponseWriter, r *http.Request) {
	file, found := Files[strings.TrimPrefix(r.URL.Path, "/")]
	if !found {
		http.NotFound(w, r)
		return
	}
	if strings.HasSuffix(r.URL.Path, ".css") {
		w.Header().Set("Content-Type", "text/css")
	}
	if strings.HasSuffix(r.URL.Path, ".js") {
		w.Header().Set("Content-Type", "application/javascript")
	}
	s.write(w, []byte(file.Content))
}

func (s *Server) exampleSetsHandler(w http.ResponseWriter, r *http.Request) {
	slimExampleSets := []exampleSet{}

	for _, eg := range exampleSets {
		examples := []Example{}
		for _, example := range eg.Examples {
			examples = append(examples, Example{
				ID:          example.ID,
				DisplayName: example.DisplayName,
			})
		}

		slimExampleSets = append(slimExampleSets, exampleSet{
			ID:          eg.ID,
			DisplayName: eg.DisplayName,
			Description: eg.Description,
			Examples:    examples,
		})
	}

	listBytes, err := json.Marshal(slimExampleSets)
	if err != nil {
		s.logError(w, err)
		return
	}

	s.write(w, listBytes)
}

func (s *Server) examplesHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/examples/")

	for _, eg := range exampleSets {
		for _, example := range eg.Examples {
			if example.ID == id {
				exampleBytes, err := json.Marshal(example)
				if err != nil {
					s.logError(w, err)
					return
				}

				s.write(w, exampleBytes)
				return
			}
		}
	}

	s.logError(w, fmt.Errorf("Did not find example: %v", id))
}

func (s *Server) templateHandler(w http.ResponseWriter, r *http.Request) {
	t1 := time.Now()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.metrics.observe(handlerTemplate, outcomeError, t1)
		s.logError(w, err)
		return
	}

	resp, err := s.opts.TemplateFunc(data)
	if err != nil {
		s.metrics.observe(handlerTemplate, outcomeError, t1)
		s.logError(w, err)
		return
	}

	s.metrics.observe(handlerTemplate, outcomeOK, t1)
	s.write(w, resp)
}

func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	t1 := time.Now()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "expected POST request", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var req RenderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&req)
	if err != nil {
		s.metrics.observe(handlerRender, outcomeError, t1)
		s.renderError(w, http.StatusBadRequest, fmt.Errorf("Unmarshaling render request: %s", err))
		return
	}

	output, err := s.opts.RenderFunc(req)
	if err != nil {
		s.metrics.observe(handlerRender, outcomeError, t1)
		s.renderError(w, http.StatusUnprocessableEntity, err)
		return
	}

	respBytes, err := json.Marshal(RenderResponse{Output: &output})
	if err != nil {
		s.metrics.observe(handlerRender, outcomeError, t1)
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.metrics.observe(handlerRender, outcomeOK, t1)
	s.write(w, respBytes)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, []byte("ok"))
}

func (s *Server) renderError(w http.ResponseWriter, status int, err error) {
	log.Printf("[%s] %s", w.Header().Get(requestIDHeader), err.Error())

	respBytes, marshalErr := json.Marshal(RenderResponse{Errors: err.Error()})
	if marshalErr != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	s.write(w, respBytes)
}

func (s *Server) logError(w http.ResponseWriter, err error) {
	if reqID := w.Header().Get(requestIDHeader); len(reqID) > 0 {
		log.Printf("[%s] %s", reqID, err.Error())
	} else {
		log.Print(err.Error())
	}

	resp, err := s.opts.ErrorFunc(err)
	if err != nil {
		fmt.Fprintf(w, "generation error: %s", err.Error())
		return
	}

	s.write(w, resp)
}

func (s *Server) write(w http.ResponseWriter, data []byte) {
	w.Write(data) // not fmt.Fprintf!
}

// requestIDHandler tags responses (and logged errors) with the caller's
// request id, or a new one.
func (s *Server) requestIDHandler(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, reqID)
		wrappedFunc(w, r)
	}
}

func (s *Server) redirectToHTTPS(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	if !s.opts.RedirectToHTTPS {
		return wrappedFunc
	}
	return func(w http.ResponseWriter, r *http.Request) {
		checkHTTPS := true
		clientIP, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil {
			if clientIP == "127.0.0.1" {
				checkHTTPS = false
			}
		}

		if checkHTTPS && r.Header.Get(http.CanonicalHeaderKey("x-forwarded-proto")) != "https" {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				host := r.Host
				if len(host) == 0 {
					s.logError(w, fmt.Errorf("expected non-empty Host header"))
					return
				}

				http.Redirect(w, r, "https://"+host+r.URL.RequestURI(), http.StatusMovedPermanently)
				return
			}

			// Fail if it's not a GET or HEAD since req may have carried body insecurely
			s.logError(w, fmt.Errorf("expected HTTPs connection"))
			return
		}

		wrappedFunc(w, r)
	}
}

var (
	noCacheHeaders = map[string]string{
		"Expires":         time.Unix(0, 0).Format(time.RFC1123),
		"Cache-Control":   "no-cache, private, max-age=0",
		"Pragma":          "no-cache",
		"X-Accel-Expires": "0",
	}
)

func (s *Server) noCacheHandler(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range noCacheHeaders {
			w.Header().Set(k, v)
		}
		wrappedFunc(w, r)
	}
}

func (s *Server) corsHandler(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		wrappedFunc(w, r)
	}
}
