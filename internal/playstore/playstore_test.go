package playstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *int) {
	t.Helper()

	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/store/search", func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`<html><body>
<a href="/store/apps/details?id=com.supercell.clashroyale"><span>Clash Royale</span></a>
<a href="/store/apps/details?id=com.supercell.clashroyale">duplicate</a>
<a href="/store/apps/details?id=com.other.game"><span>Other</span></a>
</body></html>`))
	})
	mux.HandleFunc("/store/apps/details", func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(detailsPage))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(Options{RateLimit: 1})
	c.baseURL = srv.URL
	return c, &hits
}

func TestSearchDeduplicatesAppIDs(t *testing.T) {
	c, _ := newTestClient(t)

	results, err := c.Search(context.Background(), "clash")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "com.supercell.clashroyale", results[0].AppID)
	assert.Equal(t, "Clash Royale", results[0].Title)
}

func TestLookupCachesByLowercasedName(t *testing.T) {
	c, hits := newTestClient(t)

	info, err := c.Lookup(context.Background(), "Clash Royale")
	require.NoError(t, err)
	assert.Equal(t, "Clash Royale", info.Title)
	assert.True(t, strings.Contains(info.URL, "com.supercell.clashroyale"))
	first := *hits

	again, err := c.Lookup(context.Background(), "CLASH ROYALE")
	require.NoError(t, err)
	assert.Equal(t, info, again)
	assert.Equal(t, first, *hits, "cached lookup must not hit the store")
}

func TestLookupEmptyName(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Lookup(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNotFound)
}
