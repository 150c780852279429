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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/uber/kraken-bencode/utils/log"

	"github.com/uber-go/tally"
)

func init() {
	register("statsd", newStatsdScope)
	register("disabled", newDisabledScope)
	register("default", newDefaultScope)
}

var _scopeFactories = make(map[string]scopeFactory)

type scopeFactory func(config Config, cluster string) (tally.Scope, io.Closer, error)

func register(name string, f scopeFactory) {
	if _, ok := _scopeFactories[name]; ok {
		log.Fatalf("Metrics reporter factory %q is already registered", name)
	}
	_scopeFactories[name] = f
}

// New creates a new metrics Scope from config. If no backend is configured, metrics
// are disabled.
func New(config Config, cluster string) (tally.Scope, io.Closer, error) {
	if config.Backend == "" {
		config.Backend = "disabled"
	}
	f, ok := _scopeFactories[config.Backend]
	if !ok || f == nil {
		return nil, nil, fmt.Errorf("metrics backend %q not registered", config.Backend)
	}
	return f(config, cluster)
}

const reportInterval = time.Second

func scopeOptions(r tally.StatsReporter, cluster string) tally.ScopeOptions {
	tags := map[string]string{}
	if cluster != "" {
		tags["cluster"] = cluster
	}
	return tally.ScopeOptions{
		Tags:     tags,
		Reporter: r,
	}
}

// newRootScope builds the root scope every backend shares, tagged with the
// cluster when one is given.
func newRootScope(r tally.StatsReporter, cluster string) (tally.Scope, io.Closer) {
	return tally.NewRootScope(scopeOptions(r, cluster), reportInterval)
}

// EmitVersion emits version as a tagged counter. Empty versions are skipped.
func EmitVersion(stats tally.Scope, version string) {
	if version == "" {
		log.Debug("Skipping version emitting: no version set")
		return
	}
	hostname, err := os.Hostname()
	if err != nil {
		log.Warnf("Skipping version emitting: hostname: %s", err)
		return
	}
	stats.Tagged(map[string]string{
		"host":    hostname,
		"version": version,
	}).Counter("version").Inc(1)
}
