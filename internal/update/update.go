// Package update asks the release feed whether a newer headlines build exists.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const ReleasesURL = "https://api.github.com/repos/matheuskafuri/headlines/releases/latest"

const checkTimeout = 5 * time.Second

// Result holds the outcome of a version check.
type Result struct {
	LatestVersion string
}

type ghRelease struct {
	TagName string `json:"tag_name"`
}

// Checker queries a GitHub-style latest release endpoint.
type Checker struct {
	URL  string
	HTTP *http.Client
	Log  logrus.FieldLogger
}

// Check returns nil when current is up to date or the check fails. Failures
// are logged at debug.
func (c *Checker) Check(ctx context.Context, current string) *Result {
	url := c.URL
	if url == "" {
		url = ReleasesURL
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	log := c.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("url", url)

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.WithError(err).Debug("building release request")
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := hc.Do(req)
	if err != nil {
		log.WithError(err).Debug("release check failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Debug("release check status")
		return nil
	}

	var release ghRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		log.WithError(err).Debug("decoding release")
		return nil
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest == "" || latest == strings.TrimPrefix(current, "v") {
		return nil
	}
	return &Result{LatestVersion: latest}
}
