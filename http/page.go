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
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pilosa/launchdash"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>SpaceX Launch Records Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { text-align: center; color: #503d36; font-size: 40px; }
form { margin: 1em 0; }
img { display: block; margin: 1em auto; max-width: 100%; }
</style>
</head>
<body>
<h1>SpaceX Launch Records Dashboard</h1>
<form method="get" action="/">
<label>Launch site
<select name="site" onchange="this.form.submit()">
{{- range .Sites}}
<option value="{{.Value}}"{{if eq .Value $.State.Site}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
</label>
<img src="{{.PieURL}}" alt="{{.PieTitle}}">
<p>Payload range (Kg):
<input type="number" name="low" min="{{.Slider.Min}}" max="{{.Slider.Max}}" step="{{.Slider.Step}}" value="{{.Low}}">
to
<input type="number" name="high" min="{{.Slider.Min}}" max="{{.Slider.Max}}" step="{{.Slider.Step}}" value="{{.High}}">
<button type="submit">Update</button>
</p>
</form>
<img src="{{.ScatterURL}}" alt="{{.ScatterTitle}}">
</body>
</html>
`))

type page struct {
	Sites        []launchdash.SiteOption
	Slider       launchdash.Slider
	State        launchdash.State
	Low, High    string
	PieURL       template.URL
	ScatterURL   template.URL
	PieTitle     string
	ScatterTitle string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(w, r)
	if !ok {
		return
	}
	low := strconv.FormatFloat(st.Payload.Low, 'f', -1, 64)
	high := strconv.FormatFloat(st.Payload.High, 'f', -1, 64)
	q := url.Values{}
	q.Set("site", st.Site)
	q.Set("low", low)
	q.Set("high", high)

	buf := &bytes.Buffer{}
	err := pageTemplate.Execute(buf, page{
		Sites:        launchdash.SiteOptions(s.data),
		Slider:       launchdash.NewSlider(s.data, s.step),
		State:        st,
		Low:          low,
		High:         high,
		PieURL:       template.URL("/charts/pie.svg?" + q.Encode()),
		ScatterURL:   template.URL("/charts/scatter.svg?" + q.Encode()),
		PieTitle:     launchdash.PieTitle(st.Site),
		ScatterTitle: launchdash.ScatterTitle(st.Site),
	})
	if err != nil {
		s.log.Printf("rendering page: %v", err)
		http.Error(w, "rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Printf("writing page: %v", err)
	}
}
