package guardian

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	body    string
	gotURL  string
	gotCtx  context.Context
	invoked int
}

func (s *stubFetcher) Fetch(ctx context.Context, rawURL string) string {
	s.invoked++
	s.gotURL = rawURL
	s.gotCtx = ctx
	return s.body
}

func TestPipelineRun(t *testing.T) {
	f := &stubFetcher{body: sampleResponse}
	p := NewPipeline("https://api.test/search", f, nullLogger())

	res := p.Run(context.Background(), Query{Keyword: "Climate Change!", OrderBy: OrderRelevance, APIKey: "k"})
	require.True(t, res.Present())
	assert.Equal(t, 3, res.Len())
	assert.Equal(t, 1, f.invoked)
	assert.Equal(t, "https://api.test/search?q=climatechange&show-fields=byline&order-by=relevance&api-key=k", f.gotURL)
}

func TestPipelineNoData(t *testing.T) {
	p := NewPipeline("", &stubFetcher{}, nullLogger())
	res := p.Run(context.Background(), Query{Keyword: "x", OrderBy: OrderNewest})
	assert.False(t, res.Present())
	assert.True(t, res.Empty())
}

func TestPipelineBadEndpoint(t *testing.T) {
	f := &stubFetcher{body: sampleResponse}
	p := NewPipeline("http://[::1", f, nullLogger())
	res := p.Run(context.Background(), Query{Keyword: "x"})
	assert.False(t, res.Present())
	assert.Equal(t, 0, f.invoked)
}

func TestPipelineRequestIDInLogs(t *testing.T) {
	log, hook := test.NewNullLogger()
	f := &stubFetcher{body: `{"response":{"results":[]}}`}
	p := NewPipeline("", f, log)

	p.Run(context.Background(), Query{Keyword: "x", OrderBy: OrderNewest})

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	id, ok := entries[0].Data["request_id"].(string)
	require.True(t, ok)
	assert.Len(t, id, 36)
	for _, e := range entries {
		assert.Equal(t, id, e.Data["request_id"], e.Message)
	}
	assert.NotNil(t, f.gotCtx)
}

func TestPipelineFailuresLookAlike(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFound.Close()

	serverErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer serverErr.Close()

	release := make(chan struct{})
	stalled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer stalled.Close()
	defer close(release)

	client := NewClient(nullLogger(), WithHTTPClient(newHTTPClient(time.Second, 100*time.Millisecond)))
	q := Query{Keyword: "x", OrderBy: OrderNewest, APIKey: "k"}

	for _, endpoint := range []string{notFound.URL, serverErr.URL, stalled.URL} {
		res := NewPipeline(endpoint, client, nullLogger()).Run(context.Background(), q)
		assert.Equal(t, NoData(), res, "endpoint %s", endpoint)
	}
}

func TestPipelineAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, url.Values{
			"q":           {"brexit"},
			"show-fields": {"byline"},
			"order-by":    {"oldest"},
			"api-key":     {"test"},
		}, r.URL.Query())
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	p := NewPipeline(srv.URL+"/search", NewClient(nullLogger()), nullLogger())
	res := p.Run(context.Background(), Query{Keyword: "BREXIT", OrderBy: OrderOldest, APIKey: "test"})

	got := res.Articles()
	require.Len(t, got, 3)
	assert.Equal(t, "First story", got[0].Title)
	assert.Equal(t, "Jane Doe", got[0].Author)
}
