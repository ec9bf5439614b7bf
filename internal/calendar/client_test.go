package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() Event {
	return Event{
		Summary:     "🎯 Beber água",
		Description: "Hábito: 2 litros\n\nCriado pelo Hábitus",
		Start:       EventTime{DateTime: "2025-06-15T09:00:00Z", TimeZone: "UTC"},
		End:         EventTime{DateTime: "2025-06-15T09:30:00Z", TimeZone: "UTC"},
		Recurrence:  []string{"RRULE:FREQ=DAILY"},
	}
}

func TestCreateEvent(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody Event

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "evt_123"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	id, err := client.CreateEvent(context.Background(), "token-abc", sampleEvent())

	require.NoError(t, err)
	assert.Equal(t, "evt_123", id)
	assert.Equal(t, "POST /calendars/primary/events", gotPath)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "🎯 Beber água", gotBody.Summary)
	assert.Equal(t, []string{"RRULE:FREQ=DAILY"}, gotBody.Recurrence)
}

func TestCreateEventNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	id, err := client.CreateEvent(context.Background(), "expired", sampleEvent())

	assert.Error(t, err)
	assert.Empty(t, id)
	assert.Contains(t, err.Error(), "401")
}

func TestCreateEventMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.CreateEvent(context.Background(), "token", sampleEvent())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no event id")
}

func TestUpdateEvent(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.Write([]byte(`{"id": "evt_123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	err := client.UpdateEvent(context.Background(), "token", "evt_123", sampleEvent())

	require.NoError(t, err)
	assert.Equal(t, "PUT /calendars/primary/events/evt_123", gotPath)
}

func TestDeleteEvent(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	err := client.DeleteEvent(context.Background(), "token", "evt_123")

	require.NoError(t, err)
	assert.Equal(t, "DELETE /calendars/primary/events/evt_123", gotPath)
}

func TestDeleteEventNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	err := client.DeleteEvent(context.Background(), "token", "gone")

	assert.Error(t, err)
}
