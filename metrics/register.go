// Copyright 2025 The Walletsync Authors
// This file is part of Walletsync.
//
// Walletsync is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Walletsync is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Walletsync. If not, see <http://www.gnu.org/licenses/>.

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultRegistry is the registry all package-level constructors register
// on. It can be served by wiring it into a promhttp handler.
var DefaultRegistry = prometheus.NewRegistry()

// NewCounter registers and returns new counter with the given name.
//
// name must be a valid Prometheus-compatible metric name.
//
// The returned counter is safe to use from concurrent goroutines.
func NewCounter(name string) Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name})
	if err := DefaultRegistry.Register(c); err != nil {
		panic(fmt.Errorf("could not create new counter: %w", err))
	}

	return &counter{c}
}

// NewGauge registers and returns gauge with the given name.
//
// name must be a valid Prometheus-compatible metric name.
//
// The returned gauge is safe to use from concurrent goroutines.
func NewGauge(name string) Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name})
	if err := DefaultRegistry.Register(g); err != nil {
		panic(fmt.Errorf("could not create new gauge: %w", err))
	}

	return &gauge{g}
}
