// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package series_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serista/serista/internal/core/series"
	"github.com/serista/serista/internal/platform/apperr"
	"github.com/serista/serista/internal/platform/bus"
	"github.com/serista/serista/internal/platform/tokenstore"
	"github.com/serista/serista/internal/platform/transport"
	"github.com/serista/serista/pkg/pointer"
)

func newClient(t *testing.T, handler http.Handler) (*series.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	mediator := transport.New(transport.Config{
		BaseURL: server.URL,
		Store:   tokenstore.NewMemory(),
		Bus:     bus.New(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return series.NewClient(mediator), server
}

/*
TestList_UnwrapsBackendShapes exercises the defensive response unwrapping:
bare arrays and the conventional wrapper keys decode, and every unknown
shape degrades to an empty list instead of an error.
*/
func TestList_UnwrapsBackendShapes(t *testing.T) {
	two := `[{"id":"1","title":"Dark"},{"id":"2","title":"Breaking Bad"}]`

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare_array", two, 2},
		{"wrapped_data", `{"data":` + two + `}`, 2},
		{"wrapped_series", `{"series":` + two + `}`, 2},
		{"wrapped_result", `{"result":` + two + `}`, 2},
		{"empty_object", `{}`, 0},
		{"null", `null`, 0},
		{"scalar", `42`, 0},
		{"wrapper_not_array", `{"series":"nope"}`, 0},
		{"unknown_key", `{"items":` + two + `}`, 0},
		{"empty_body", ``, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))

			list, err := client.List(context.Background(), series.Filter{})
			require.NoError(t, err)
			require.NotNil(t, list, "list must never be nil")
			assert.Len(t, list, tt.want)
		})
	}
}

// The "data" key takes priority over "series" when both are present.
func TestList_WrapperKeyPriority(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"series":[{"id":"s"}],"data":[{"id":"d1"},{"id":"d2"}]}`))
	}))

	list, err := client.List(context.Background(), series.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d1", list[0].ID)
}

func TestList_SendsFilterQuery(t *testing.T) {
	var gotQuery string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.List(context.Background(), series.Filter{
		Title:     "dark",
		Status:    series.StatusWatching,
		MinRating: pointer.To(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "minRating=7&status=watching&title=dark", gotQuery)
}

func TestCreate_RejectsInvalidRecordBeforeNetwork(t *testing.T) {
	calls := 0
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	_, err := client.Create(context.Background(), series.Series{
		Title:         "",
		Rating:        12,
		TotalSeasons:  0,
		TotalEpisodes: 0,
		Status:        "paused",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Zero(t, calls)
}

func TestCreate_DecodesStoredCopy(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/series", func(w http.ResponseWriter, r *http.Request) {
		var in series.Series
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Empty(t, in.ID, "create payload must not carry an ID")

		in.ID = "abc123"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	})
	client, _ := newClient(t, router)

	stored, err := client.Create(context.Background(), series.Series{
		Title:         "Dark",
		Rating:        9,
		TotalSeasons:  3,
		TotalEpisodes: 26,
		Status:        series.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", stored.ID)
	assert.Equal(t, "Dark", stored.Title)
}

func TestGet_UsesItemPath(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/series/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(series.Series{ID: chi.URLParam(r, "id"), Title: "Dark"})
	})
	client, _ := newClient(t, router)

	got, err := client.Get(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)
}

func TestUpdate_SendsOnlySetFields(t *testing.T) {
	var gotBody map[string]json.RawMessage
	router := chi.NewRouter()
	router.Patch("/api/series/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(series.Series{ID: chi.URLParam(r, "id")})
	})
	client, _ := newClient(t, router)

	_, err := client.Update(context.Background(), "abc123", series.Patch{
		WatchedEpisodes: pointer.To(12),
		Status:          pointer.To(series.StatusWatching),
	})
	require.NoError(t, err)

	assert.Len(t, gotBody, 2)
	assert.Contains(t, gotBody, "watchedEpisodes")
	assert.Contains(t, gotBody, "status")
}

func TestUpdate_ValidatesSetFields(t *testing.T) {
	calls := 0
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	_, err := client.Update(context.Background(), "abc123", series.Patch{
		Rating: pointer.To(11),
	})
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestDelete_NoContent(t *testing.T) {
	router := chi.NewRouter()
	router.Delete("/api/series/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	client, _ := newClient(t, router)

	assert.NoError(t, client.Delete(context.Background(), "abc123"))
}

func TestOperations_RequireID(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))

	_, err := client.Get(context.Background(), "")
	assert.Error(t, err)
	_, err = client.Replace(context.Background(), "", series.Series{})
	assert.Error(t, err)
	_, err = client.Update(context.Background(), "", series.Patch{})
	assert.Error(t, err)
	assert.Error(t, client.Delete(context.Background(), ""))
}

func TestErrors_PassThroughUntouched(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"série não encontrada"}`))
	}))

	_, err := client.Get(context.Background(), "missing")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	assert.Equal(t, "série não encontrada", ae.Message)
}
