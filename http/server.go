// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package http

import (
	"crypto/tls"
	"encoding/json"
	"io"
	"io/ioutil"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pilosa/launchdash"
	"github.com/pilosa/launchdash/chart"
	"github.com/pkg/errors"
)

// Server serves the dashboard for a single Dataset. Every request computes
// its views from scratch, so requests never share state beyond the
// read-only Dataset.
type Server struct {
	addr      string
	listener  net.Listener
	server    *http.Server
	data      *launchdash.Dataset
	step      int
	metrics   *Metrics
	log       launchdash.Logger
	accessLog io.Writer
	tls       *tls.Config
}

// ServerOption is a functional option type for Server.
type ServerOption func(s *Server)

// WithAddr is an option for the Server which causes it to bind to the given
// address.
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithListener is an option for Server which causes it to use the given
// listener. It will infer the address from the listener.
func WithListener(l net.Listener) ServerOption {
	return func(s *Server) {
		s.listener = l
		s.addr = l.Addr().String()
	}
}

// WithStep sets the payload slider step in kg.
func WithStep(step int) ServerOption {
	return func(s *Server) {
		s.step = step
	}
}

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the logger for server errors.
func WithLogger(l launchdash.Logger) ServerOption {
	return func(s *Server) {
		s.log = l
	}
}

// WithAccessLog writes an Apache Common Log line for every request to w.
func WithAccessLog(w io.Writer) ServerOption {
	return func(s *Server) {
		s.accessLog = w
	}
}

// WithTLS serves HTTPS using conf. A nil conf serves plain HTTP.
func WithTLS(conf *tls.Config) ServerOption {
	return func(s *Server) {
		s.tls = conf
	}
}

// NewServer creates a Server for d. It doesn't listen until Serve is called.
func NewServer(d *launchdash.Dataset, opts ...ServerOption) *Server {
	s := &Server{
		addr:      ":8050",
		data:      d,
		step:      launchdash.DefaultSliderStep,
		log:       launchdash.NopLogger{},
		accessLog: ioutil.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.server = &http.Server{
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
	}
	return s
}

// Handler returns the dashboard's routes wrapped in access logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	route := func(path string, h http.HandlerFunc) {
		router.Handle(path, s.metrics.WrapHandler(path, h)).Methods("GET")
	}
	route("/", s.handleIndex)
	route("/health", s.handleHealth)
	route("/api/sites", s.handleSites)
	route("/api/slider", s.handleSlider)
	route("/api/outcomes", s.handleOutcomes)
	route("/api/correlation", s.handleCorrelation)
	route("/api/view", s.handleView)
	route("/charts/pie.svg", s.handlePie)
	route("/charts/scatter.svg", s.handleScatter)
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}
	return handlers.LoggingHandler(s.accessLog, router)
}

// Serve listens (unless a listener was given) and serves until Close.
func (s *Server) Serve() error {
	if s.listener == nil {
		ln, err := net.Listen("tcp", s.addr)
		if err != nil {
			return errors.Wrapf(err, "listening on %s", s.addr)
		}
		s.listener = ln
	}
	ln := s.listener
	if tl, ok := ln.(*net.TCPListener); ok {
		ln = tcpKeepAliveListener{tl}
	}
	if s.tls != nil {
		ln = tls.NewListener(ln, s.tls)
	}
	err := s.server.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return errors.Wrap(err, "serving")
}

// Addr gets the address that the Server is listening on.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Close stops the server immediately.
func (s *Server) Close() error {
	return s.server.Close()
}

// State reads the dashboard state from a query string. A missing site means
// all sites and a missing bound means the dataset's bound.
func State(d *launchdash.Dataset, q url.Values) (launchdash.State, error) {
	s := launchdash.DefaultState(d)
	if site := q.Get("site"); site != "" {
		s.Site = site
	}
	var err error
	if s.Payload.Low, err = bound(q, "low", s.Payload.Low); err != nil {
		return s, err
	}
	if s.Payload.High, err = bound(q, "high", s.Payload.High); err != nil {
		return s, err
	}
	return s, nil
}

func bound(q url.Values, key string, def float64) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("%s must be a finite number, got %s", key, v)
	}
	return f, nil
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) (launchdash.State, bool) {
	st, err := State(s.data, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return st, false
	}
	return st, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("writing json response: %v", err)
	}
}

func (s *Server) writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(svg); err != nil {
		s.log.Printf("writing svg response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{"status": "ok", "records": s.data.Len()})
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, launchdash.SiteOptions(s.data))
}

func (s *Server) handleSlider(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, launchdash.NewSlider(s.data, s.step))
}

// OutcomesResponse is the body of /api/outcomes.
type OutcomesResponse struct {
	Title    string                      `json:"title"`
	Outcomes launchdash.OutcomeBreakdown `json:"outcomes"`
}

func (s *Server) handleOutcomes(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, OutcomesResponse{
		Title:    launchdash.PieTitle(st.Site),
		Outcomes: launchdash.ComputeOutcomeBreakdown(s.data, st.Site),
	})
}

// CorrelationResponse is the body of /api/correlation.
type CorrelationResponse struct {
	Title      string                        `json:"title"`
	Points     []launchdash.CorrelationPoint `json:"points"`
	Categories []string                      `json:"categories"`
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(w, r)
	if !ok {
		return
	}
	points := launchdash.ProjectCorrelation(s.data, st.Site, st.Payload)
	s.writeJSON(w, CorrelationResponse{
		Title:      launchdash.ScatterTitle(st.Site),
		Points:     points,
		Categories: launchdash.CorrelationCategories(points),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, launchdash.Compute(s.data, st))
}

func (s *Server) handlePie(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(w, r)
	if !ok {
		return
	}
	s.writeSVG(w, chart.Pie(launchdash.PieTitle(st.Site), launchdash.ComputeOutcomeBreakdown(s.data, st.Site)))
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(w, r)
	if !ok {
		return
	}
	s.writeSVG(w, chart.Scatter(launchdash.ScatterTitle(st.Site), launchdash.ProjectCorrelation(s.data, st.Site, st.Payload)))
}

// tcpKeepAliveListener is copied from net/http

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (c net.Conn, err error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return
	}
	tc.SetKeepAlive(true)
	tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}
