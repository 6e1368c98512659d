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

// Package launchdash is an interactive dashboard over a fixed table of launch
// records. A user picks a launch site (or all of them) and a payload mass
// range, and the dashboard recomputes two views: an outcome breakdown drawn as
// a pie chart, and a payload/outcome correlation drawn as a scatter plot.
//
// The package is organized like a small pipeline.
//
// 1. Source
//
//    A launchdash.Source hands out raw records one at a time: rows of a CSV
//    file on disk, over HTTP or in S3, JSON objects, messages on a Kafka
//    topic, or a snapshot saved earlier in boltdb or leveldb. A Source doesn't interpret
//    what it returns.
//
// 2. Loader
//
//    The Loader runs each raw record through a RecordParser, which knows which
//    columns hold the site, payload, outcome class and booster category, and
//    builds a Dataset. Any bad record aborts the load.
//
// 3. Dataset
//
//    The Dataset is immutable once built. It caches the payload bounds and the
//    launch sites so that it can be shared by every request without locking.
//
// 4. Views
//
//    FilterByRange and FilterBySite select rows. ComputeOutcomeBreakdown
//    builds the pie view from the whole dataset, ignoring the payload range,
//    while ProjectCorrelation builds the scatter view and always applies it.
//    Compute builds both for one State.
//
// The http and chart sub-packages serve and draw the views.
package launchdash
