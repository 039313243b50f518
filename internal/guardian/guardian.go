// Package guardian queries the Guardian content search API and turns the
// response into display-ready articles.
//
// A search runs in three sequential stages: BuildURL, Client.Fetch and
// Parse. None of them return errors. Every failure collapses to a Result
// that is either NoData or empty, and the cause goes to the logger.
package guardian

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/matheuskafuri/headlines/internal/logging"
)

// Fetcher returns the body of a successful GET, or "" on any failure.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) string
}

// Pipeline runs one search at a time. It holds no state between runs.
type Pipeline struct {
	endpoint string
	fetcher  Fetcher
	log      logrus.FieldLogger
}

func NewPipeline(endpoint string, fetcher Fetcher, log logrus.FieldLogger) *Pipeline {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if fetcher == nil {
		fetcher = NewClient(log)
	}
	return &Pipeline{endpoint: endpoint, fetcher: fetcher, log: log}
}

// Run blocks until the search finishes or the fetch times out.
func (p *Pipeline) Run(ctx context.Context, q Query) Result {
	log := p.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"keyword":    SanitizeKeyword(q.Keyword),
		"order_by":   string(q.OrderBy),
	})
	start := time.Now()
	log.Info("search started")

	rawURL, err := BuildURL(p.endpoint, q)
	if err != nil {
		log.WithError(err).Warn("building request url")
		return NoData()
	}

	body := p.fetcher.Fetch(logging.Into(ctx, log), rawURL)
	res := Parse(body, log)

	log.WithFields(logrus.Fields{
		"present":  res.Present(),
		"articles": res.Len(),
		"elapsed":  time.Since(start).String(),
	}).Info("search finished")
	return res
}
