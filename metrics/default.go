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

	"github.com/uber/kraken-bencode/utils/log"

	"github.com/uber-go/tally"
)

// newDefaultScope reports every metric to the debug log on flush.
func newDefaultScope(_ Config, cluster string) (tally.Scope, io.Closer, error) {
	s, c := newRootScope(defaultReporter{}, cluster)
	return s, c, nil
}

type defaultReporter struct{}

func (r defaultReporter) ReportCounter(name string, _ map[string]string, value int64) {
	log.Debugw("count", "name", name, "value", value)
}

func (r defaultReporter) ReportGauge(name string, _ map[string]string, value float64) {
	log.Debugw("gauge", "name", name, "value", value)
}

func (r defaultReporter) ReportTimer(name string, _ map[string]string, interval time.Duration) {
	log.Debugw("timer", "name", name, "interval", interval)
}

func (r defaultReporter) ReportHistogramValueSamples(
	name string,
	_ map[string]string,
	_ tally.Buckets,
	bucketLowerBound,
	bucketUpperBound float64,
	samples int64,
) {
	log.Debugw("histogram", "name", name,
		"lower", bucketLowerBound, "upper", bucketUpperBound, "samples", samples)
}

func (r defaultReporter) ReportHistogramDurationSamples(
	name string,
	_ map[string]string,
	_ tally.Buckets,
	bucketLowerBound,
	bucketUpperBound time.Duration,
	samples int64,
) {
	log.Debugw("histogram", "name", name,
		"lower", bucketLowerBound, "upper", bucketUpperBound, "samples", samples)
}

func (r defaultReporter) Capabilities() tally.Capabilities { return r }
func (r defaultReporter) Reporting() bool                  { return true }
func (r defaultReporter) Tagging() bool                    { return false }
func (r defaultReporter) Flush()                           {}
