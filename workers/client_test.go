package workers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"limit":  r.URL.Query().Get("limit"),
			"offset": r.URL.Query().Get("offset"),
		}
		json.NewEncoder(w).Encode(Page{
			Wallet: "abc",
			Total:  3,
			Active: 2,
			Workers: []Worker{
				{Name: "rig1", LastSeen: 1700000000},
				{Name: "rig2", LastSeen: 1700000100},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	page, err := c.Page(context.Background(), "abc", 2, 0)
	require.NoError(t, err)

	assert.Equal(t, "/api/wallet/abc/workers", gotPath)
	assert.Equal(t, map[string]string{"limit": "2", "offset": "0"}, gotQuery)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Active)
	require.Len(t, page.Workers, 2)
	assert.Equal(t, "rig1", page.Workers[0].Name)
	assert.Equal(t, int64(1700000100), page.Workers[1].LastSeen)
}

func TestPageClampsPagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  string
		wantOffset string
	}{
		{name: "zero limit uses default", limit: 0, offset: 0, wantLimit: "50", wantOffset: "0"},
		{name: "oversized limit is capped", limit: 999, offset: 10, wantLimit: "200", wantOffset: "10"},
		{name: "negative offset becomes zero", limit: 5, offset: -3, wantLimit: "5", wantOffset: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantLimit, r.URL.Query().Get("limit"))
				assert.Equal(t, tt.wantOffset, r.URL.Query().Get("offset"))
				json.NewEncoder(w).Encode(Page{})
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Page(context.Background(), "w", tt.limit, tt.offset)
			require.NoError(t, err)
		})
	}
}

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wallet/abc", r.URL.Path)
		json.NewEncoder(w).Encode(Stats{Wallet: "abc", Hashrate: 1.5e9, Balance: 0.42, Workers: 7})
	}))
	defer srv.Close()

	stats, err := NewClient(srv.URL).Stats(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 1.5e9, stats.Hashrate)
	assert.Equal(t, 7, stats.Workers)
}

func TestServerErrorIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Page(context.Background(), "w", 1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL).Page(ctx, "w", 1, 0)
	require.Error(t, err)
}
