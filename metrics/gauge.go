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
	dto "github.com/prometheus/client_model/go"
)

type Gauge interface {
	prometheus.Gauge
	ValueGetter
	SetInt(v int)
	SetUint64(v uint64)
}

type gauge struct {
	prometheus.Gauge
}

// GetValue returns native float64 value stored by this gauge
func (g *gauge) GetValue() float64 {
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		panic(fmt.Errorf("calling GetValue with invalid metric: %w", err))
	}

	return m.GetGauge().GetValue()
}

// GetValueUint64 returns native float64 value stored by this gauge cast to
// an uint64 value for convenience
func (g *gauge) GetValueUint64() uint64 {
	return uint64(g.GetValue())
}

// SetInt sets the gauge to an int value.
func (g *gauge) SetInt(v int) {
	g.Set(float64(v))
}

// SetUint64 sets the gauge to an uint64 value.
func (g *gauge) SetUint64(v uint64) {
	g.Set(float64(v))
}
