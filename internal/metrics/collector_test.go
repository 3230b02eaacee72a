// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c *Collector, name string) float64 {
	t.Helper()

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestNewCollector_Independent(t *testing.T) {
	first := NewCollector()
	second := NewCollector()

	first.ItemsCreated.Inc()

	assert.Equal(t, float64(1), counterValue(t, first, "moya_items_created_total"))
	assert.Equal(t, float64(0), counterValue(t, second, "moya_items_created_total"))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.HTTPRequests.WithLabelValues("GET", "/api/items", "200").Inc()
	c.StreamSubscribers.WithLabelValues("items").Set(2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `moya_http_requests_total{method="GET",route="/api/items",status="200"} 1`)
	assert.Contains(t, body, `moya_stream_subscribers{topic="items"} 2`)
}
