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

package fake

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pilosa/launchdash"
	"github.com/pkg/errors"
)

// WriteCSV writes records to w in the launch records CSV format, headed by
// launchdash.DefaultColumns.
func WriteCSV(w io.Writer, records []launchdash.Record) error {
	cols := launchdash.DefaultColumns()
	cw := csv.NewWriter(w)
	err := cw.Write([]string{
		cols.FlightNumber,
		cols.LaunchSite,
		cols.Class,
		cols.PayloadMassKg,
		cols.BoosterVersion,
		cols.BoosterVersionCategory,
	})
	if err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, rec := range records {
		err := cw.Write([]string{
			strconv.Itoa(rec.FlightNumber),
			rec.LaunchSite,
			strconv.Itoa(int(rec.Class)),
			strconv.FormatFloat(rec.PayloadMassKg, 'f', 1, 64),
			rec.BoosterVersion,
			rec.BoosterVersionCategory,
		})
		if err != nil {
			return errors.Wrapf(err, "writing flight %d", rec.FlightNumber)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
