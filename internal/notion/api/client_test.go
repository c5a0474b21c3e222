package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/notion-presence/internal/notion/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("secret_test", WithBaseURL(server.URL+"/"))
}

func TestListPageIDsPaginates(t *testing.T) {
	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer secret_test", r.Header.Get("Authorization"))
		assert.Equal(t, notionVersion, r.Header.Get("Notion-Version"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, types.SearchPageSize, req.PageSize)
		require.NotNil(t, req.Filter)
		assert.Equal(t, "object", req.Filter.Property)
		assert.Equal(t, "page", req.Filter.Value)

		switch calls.Add(1) {
		case 1:
			assert.Empty(t, req.StartCursor)
			fmt.Fprint(w, `{"results":[{"object":"page","id":"p1"},{"object":"database","id":"d1"}],"has_more":true,"next_cursor":"c2"}`)
		case 2:
			assert.Equal(t, "c2", req.StartCursor)
			fmt.Fprint(w, `{"results":[{"object":"page","id":"p2"}],"has_more":false,"next_cursor":null}`)
		default:
			t.Errorf("unexpected request %d", calls.Load())
		}
	})

	ids, err := client.ListPageIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListPageIDsFailureDiscardsPartialResults(t *testing.T) {
	var calls atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			fmt.Fprint(w, `{"results":[{"object":"page","id":"p1"}],"has_more":true,"next_cursor":"c2"}`)
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"object":"error","status":429,"code":"rate_limited","message":"slow down"}`)
	})

	ids, err := client.ListPageIDs(context.Background())
	assert.Nil(t, ids)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "rate_limited", apiErr.Code)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestListPageIDsDecodeFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [`)
	})

	_, err := client.ListPageIDs(context.Background())
	assert.ErrorContains(t, err, "failed to unmarshal response")
}

func TestResolvePage(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantTitle  string
		wantParent string
	}{
		{
			name:       "page parent",
			body:       `{"object":"page","id":"p2","parent":{"type":"page_id","page_id":"p1"},"properties":{"title":{"type":"title","title":[{"plain_text":"Meeting "},{"plain_text":"Notes"}]}}}`,
			wantTitle:  "Meeting Notes",
			wantParent: "p1",
		},
		{
			name:       "database parent",
			body:       `{"object":"page","id":"p3","parent":{"type":"database_id","database_id":"db1"},"properties":{"Status":{"type":"select"},"Name":{"type":"title","title":[{"plain_text":"Task"}]}}}`,
			wantTitle:  "Task",
			wantParent: "db1",
		},
		{
			name:      "workspace root",
			body:      `{"object":"page","id":"p4","parent":{"type":"workspace","workspace":true},"properties":{"title":{"type":"title","title":[{"plain_text":"Home"}]}}}`,
			wantTitle: "Home",
		},
		{
			name:      "empty title",
			body:      `{"object":"page","id":"p5","parent":{"type":"workspace","workspace":true},"properties":{"title":{"type":"title","title":[]}}}`,
			wantTitle: types.UntitledTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				fmt.Fprint(w, tt.body)
			})

			ref, err := client.ResolvePage(context.Background(), "any")
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, ref.Title)
			assert.Equal(t, tt.wantParent, ref.ParentID)
		})
	}
}

func TestResolvePageNormalizesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pages/0123456789abcdef0123456789abcdef", r.URL.Path)
		fmt.Fprint(w, `{"object":"page","id":"0123456789abcdef0123456789abcdef","parent":{"type":"workspace","workspace":true},"properties":{}}`)
	})

	ref, err := client.ResolvePage(context.Background(), "01234567-89ab-cdef-0123-456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, types.UntitledTitle, ref.Title)
}

func TestResolvePageNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find page"}`)
	})

	ref, err := client.ResolvePage(context.Background(), "missing")
	assert.Nil(t, ref)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "object_not_found", apiErr.Code)
}

func TestResolvePageNonJSONError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream down")
	})

	_, err := client.ResolvePage(context.Background(), "p1")
	assert.ErrorContains(t, err, "status 502")
}

func TestResolvePageHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ResolvePage(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)
}
