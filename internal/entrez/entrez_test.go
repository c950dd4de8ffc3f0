package entrez

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchXML = `<?xml version="1.0"?>
<eSearchResult>
  <Count>1</Count>
  <IdList>
    <Id>186972394</Id>
  </IdList>
</eSearchResult>`

func testClient(url string) *Client {
	c := NewClient("test@example.org")
	c.URL = url
	c.Backoff = time.Millisecond
	return c
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test@example.org", r.URL.Query().Get("email"))
		assert.Equal(t, "nuccore", r.URL.Query().Get("db"))

		switch {
		case strings.HasSuffix(r.URL.Path, "/esearch.fcgi"):
			assert.Equal(t, "EU490707", r.URL.Query().Get("term"))
			fmt.Fprint(w, searchXML)
		case strings.HasSuffix(r.URL.Path, "/efetch.fcgi"):
			assert.Equal(t, "186972394", r.URL.Query().Get("id"))
			fmt.Fprint(w, ">EU490707.1 test record\nACGTACGT\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var got []Result
	err := testClient(srv.URL).Fetch(context.Background(), []string{"EU490707"}, func(r Result) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "186972394", got[0].ID)
	assert.Equal(t, "EU490707", got[0].Term)
	assert.True(t, strings.HasPrefix(string(got[0].Data), ">EU490707.1"))
}

// transient server errors are retried until the request succeeds
func TestFetchRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, searchXML)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	ids, err := c.search(context.Background(), "EU490707")
	require.NoError(t, err)
	assert.Equal(t, []string{"186972394"}, ids)
	assert.Equal(t, int32(3), calls.Load())
}

// a term resolving to no ids is skipped, not fatal
func TestFetchNoIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><eSearchResult><Count>0</Count><IdList></IdList></eSearchResult>`)
	}))
	defer srv.Close()

	emitted := 0
	err := testClient(srv.URL).Fetch(context.Background(), []string{"NOPE-1"}, func(Result) error {
		emitted++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, emitted)
}

func TestFetchGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.Retries = 2
	_, err := c.search(context.Background(), "EU490707")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}
