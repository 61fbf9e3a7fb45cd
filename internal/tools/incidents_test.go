package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
)

func TestCreateIncidentReturnsNormalizedResult(t *testing.T) {
	registry, requests := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/now/table/incident", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Printer on fire", body["short_description"])
		assert.Equal(t, "1", body["urgency"], "numeric argument is normalized to a choice string")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":{"sys_id":"abc123","number":"INC0010001","short_description":"Printer on fire","state":"1","priority":"2","sys_created_on":"2026-01-01 00:00:00"}}`))
	})

	result, err := registry.Dispatch(context.Background(), "create_incident", map[string]interface{}{
		"short_description": "Printer on fire",
		"urgency":           float64(1),
	})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	payload, ok := result.Content[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abc123", payload["sys_id"])
	assert.Equal(t, "INC0010001", payload["number"])
	assert.Equal(t, "Incident created", payload["message"])
	// Raw API fields do not leak through the stable result shape.
	assert.NotContains(t, payload, "sys_created_on")

	assert.EqualValues(t, 1, atomic.LoadInt64(requests))
}

func TestUpdateIncidentByNumberResolvesSysID(t *testing.T) {
	registry, requests := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			assert.Equal(t, "number=INC0010001", r.URL.Query().Get("sysparm_query"))
			w.Write([]byte(`{"result":[{"sys_id":"abc123"}]}`))
		case r.Method == http.MethodPatch:
			assert.Equal(t, "/api/now/table/incident/abc123", r.URL.Path)
			w.Write([]byte(`{"result":{"sys_id":"abc123","number":"INC0010001","state":"2"}}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})

	result, err := registry.Dispatch(context.Background(), "update_incident", map[string]interface{}{
		"incident_id": "INC0010001",
		"state":       "2",
	})
	require.NoError(t, err)

	payload := result.Content[0].(map[string]interface{})
	assert.Equal(t, "2", payload["state"])
	assert.EqualValues(t, 2, atomic.LoadInt64(requests), "number lookup plus patch")
}

func TestUpdateIncidentBySysIDSkipsLookup(t *testing.T) {
	registry, requests := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"sys_id":"abc123","state":"2"}}`))
	})

	_, err := registry.Dispatch(context.Background(), "update_incident", map[string]interface{}{
		"incident_id": "abc123",
		"state":       "2",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(requests))
}

func TestUpdateIncidentUnknownNumber(t *testing.T) {
	registry, _ := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":[]}`))
	})

	_, err := registry.Dispatch(context.Background(), "update_incident", map[string]interface{}{
		"incident_id": "INC9999999",
		"state":       "2",
	})
	require.Error(t, err)

	var upstream *api.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
}

func TestUpdateIncidentWithoutFields(t *testing.T) {
	// Both id forms must fail before any request: the INC-number form
	// would otherwise spend a lookup on an update that cannot proceed.
	for _, incidentID := range []string{"abc123", "INC0010001"} {
		t.Run(incidentID, func(t *testing.T) {
			registry, requests := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"result":[{"sys_id":"abc123"}]}`))
			})

			_, err := registry.Dispatch(context.Background(), "update_incident", map[string]interface{}{
				"incident_id": incidentID,
			})
			require.Error(t, err)

			var validationErr *api.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "fields", validationErr.Parameter)
			assert.EqualValues(t, 0, atomic.LoadInt64(requests), "empty update must fail before any request")
		})
	}
}

func TestAddIncidentCommentAsWorkNote(t *testing.T) {
	registry, _ := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "internal note", body["work_notes"])
		assert.NotContains(t, body, "comments")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"sys_id":"abc123","number":"INC0010001"}}`))
	})

	_, err := registry.Dispatch(context.Background(), "add_incident_comment", map[string]interface{}{
		"incident_id":  "abc123",
		"comment":      "internal note",
		"is_work_note": true,
	})
	require.NoError(t, err)
}

func TestResolveIncidentSetsResolutionFields(t *testing.T) {
	registry, _ := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "6", body["state"])
		assert.Equal(t, "Solved (Permanently)", body["close_code"])
		assert.Equal(t, "rebooted the printer", body["close_notes"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"sys_id":"abc123","number":"INC0010001","state":"6"}}`))
	})

	result, err := registry.Dispatch(context.Background(), "resolve_incident", map[string]interface{}{
		"incident_id":      "abc123",
		"resolution_code":  "Solved (Permanently)",
		"resolution_notes": "rebooted the printer",
	})
	require.NoError(t, err)

	payload := result.Content[0].(map[string]interface{})
	assert.Equal(t, "Incident resolved", payload["message"])
}

func TestListIncidentsBuildsQuery(t *testing.T) {
	registry, _ := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Contains(t, query.Get("sysparm_query"), "state=2")
		assert.Equal(t, "5", query.Get("sysparm_limit"))
		assert.Equal(t, "10", query.Get("sysparm_offset"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":[{"sys_id":"a","number":"INC1"},{"sys_id":"b","number":"INC2"}]}`))
	})

	result, err := registry.Dispatch(context.Background(), "list_incidents", map[string]interface{}{
		"state":  "2",
		"limit":  float64(5),
		"offset": float64(10),
	})
	require.NoError(t, err)

	payload := result.Content[0].(map[string]interface{})
	assert.Equal(t, 2, payload["count"])
}
