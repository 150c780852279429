// Copyright (c) 2016-2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package metrics

import (
	"io"
	"time"

	"github.com/uber-go/tally"
)

// newDisabledScope keeps the cluster tag so code paths that read scope tags
// behave the same with metrics off, but drops every report.
func newDisabledScope(_ Config, cluster string) (tally.Scope, io.Closer, error) {
	s, c := newRootScope(nopReporter{}, cluster)
	return s, c, nil
}

// nopReporter discards all metrics and advertises that it does so.
type nopReporter struct{}

func (nopReporter) ReportCounter(string, map[string]string, int64)       {}
func (nopReporter) ReportGauge(string, map[string]string, float64)       {}
func (nopReporter) ReportTimer(string, map[string]string, time.Duration) {}

func (nopReporter) ReportHistogramValueSamples(
	string, map[string]string, tally.Buckets, float64, float64, int64) {
}

func (nopReporter) ReportHistogramDurationSamples(
	string, map[string]string, tally.Buckets, time.Duration, time.Duration, int64) {
}

func (r nopReporter) Capabilities() tally.Capabilities { return r }
func (nopReporter) Reporting() bool                    { return false }
func (nopReporter) Tagging() bool                      { return false }
func (nopReporter) Flush()                             {}
