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

// Package chart renders the dashboard's pie and scatter charts as SVG.
package chart

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/pilosa/launchdash"
)

const (
	width  = 720
	height = 420
)

// Palette is the sequence of fill colors given to slices and categories.
var Palette = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
	"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
}

func color(i int) string {
	return Palette[i%len(Palette)]
}

// render draws a titled chart document around draw.
func render(title string, draw func(canvas *svg.SVG)) []byte {
	buf := &bytes.Buffer{}
	canvas := svg.New(buf)
	canvas.Start(width, height, `font-family="sans-serif"`)
	canvas.Title(title)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")
	canvas.Text(width/2, 28, title, "text-anchor:middle;font-size:18px")
	draw(canvas)
	canvas.End()
	return buf.Bytes()
}

func noData(canvas *svg.SVG) {
	canvas.Text(width/2, height/2, "No data", "text-anchor:middle;font-size:16px;fill:#888888")
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Pie renders b as a pie chart with a legend of label, count and share. An
// empty breakdown renders the title over an empty plot.
func Pie(title string, b launchdash.OutcomeBreakdown) []byte {
	return render(title, func(canvas *svg.SVG) { pie(canvas, b) })
}

func pie(canvas *svg.SVG, b launchdash.OutcomeBreakdown) {
	total := b.Total()
	if total == 0 {
		noData(canvas)
		return
	}

	const cx, cy, r = 230, 230, 160
	angle := -math.Pi / 2
	for i, c := range b {
		share := float64(c.Count) / float64(total)
		if c.Count == total {
			canvas.Circle(cx, cy, r, "fill:"+color(i)+";stroke:#ffffff")
		} else if c.Count > 0 {
			end := angle + share*2*math.Pi
			large := 0
			if share > 0.5 {
				large = 1
			}
			d := fmt.Sprintf("M %d %d L %s %s A %d %d 0 %d 1 %s %s Z",
				cx, cy,
				f(cx+r*math.Cos(angle)), f(cy+r*math.Sin(angle)),
				r, r, large,
				f(cx+r*math.Cos(end)), f(cy+r*math.Sin(end)))
			canvas.Path(d, "fill:"+color(i)+";stroke:#ffffff")
			angle = end
		}
		y := 90 + i*24
		canvas.Rect(440, y-12, 14, 14, "fill:"+color(i))
		canvas.Text(462, y, fmt.Sprintf("%s: %d (%.1f%%)", c.Label, c.Count, share*100), "font-size:13px")
	}
}

// Scatter renders points as payload mass against class, one color per booster
// version category with a legend. The x axis spans the points' payloads.
func Scatter(title string, points []launchdash.CorrelationPoint) []byte {
	return render(title, func(canvas *svg.SVG) { scatter(canvas, points) })
}

func scatter(canvas *svg.SVG, points []launchdash.CorrelationPoint) {
	const left, right, top, bottom = 80, 560, 60, 360
	lo, hi := 0.0, 1.0
	for i, p := range points {
		if i == 0 || p.PayloadMassKg < lo {
			lo = p.PayloadMassKg
		}
		if i == 0 || p.PayloadMassKg > hi {
			hi = p.PayloadMassKg
		}
	}
	if hi <= lo {
		lo, hi = lo-1, lo+1
	}
	x := func(v float64) int {
		return left + int(math.Round((v-lo)/(hi-lo)*float64(right-left)))
	}
	y := func(class launchdash.Outcome) int {
		// classes sit a fifth of the way in from each edge
		return bottom - (bottom-top)/5 - int(class)*(bottom-top)*3/5
	}

	axis := "stroke:#444444;stroke-width:1"
	canvas.Line(left, bottom, right, bottom, axis)
	canvas.Line(left, top, left, bottom, axis)
	for i := 0; i <= 4; i++ {
		v := lo + (hi-lo)*float64(i)/4
		canvas.Line(x(v), bottom, x(v), bottom+5, axis)
		canvas.Text(x(v), bottom+20, strconv.Itoa(int(math.Round(v))), "text-anchor:middle;font-size:12px")
	}
	for _, class := range []launchdash.Outcome{launchdash.Failed, launchdash.Success} {
		canvas.Line(left-5, y(class), left, y(class), axis)
		canvas.Text(left-10, y(class)+4, strconv.Itoa(int(class)), "text-anchor:end;font-size:12px")
	}
	canvas.Text((left+right)/2, bottom+45, "Payload Mass (kg)", "text-anchor:middle;font-size:14px")
	canvas.Text(30, (top+bottom)/2, "class", "text-anchor:middle;font-size:14px")

	if len(points) == 0 {
		noData(canvas)
		return
	}

	categories := launchdash.CorrelationCategories(points)
	idx := make(map[string]int, len(categories))
	for i, c := range categories {
		idx[c] = i
		ly := top + i*24
		canvas.Circle(right+30, ly-4, 6, "fill:"+color(i))
		canvas.Text(right+44, ly, c, "font-size:13px")
	}
	for _, p := range points {
		canvas.Circle(x(p.PayloadMassKg), y(p.Class), 5, "fill-opacity:0.8;fill:"+color(idx[p.BoosterVersionCategory]))
	}
}
