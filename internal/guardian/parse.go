package guardian

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// SourceDateLayout is the format of webPublicationDate.
	SourceDateLayout = "2006-01-02T15:04:05Z"
	// DisplayDateLayout puts the day on the first line and the time on the second.
	DisplayDateLayout = "02.01.2006\n15:04"
)

const (
	keyResponse = "response"
	keyResults  = "results"
	keyTitle    = "webTitle"
	keySection  = "sectionName"
	keyDate     = "webPublicationDate"
	keyURL      = "webUrl"
	keyFields   = "fields"
	keyByline   = "byline"
)

type object = map[string]json.RawMessage

// Parse turns a search response body into a Result. An empty body is
// NoData; a body with the wrong shape is an empty, present Result.
func Parse(body string, log logrus.FieldLogger) Result {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if body == "" {
		return NoData()
	}

	results, err := resultsArray(body)
	if err != nil {
		log.WithError(err).Warn("malformed search response")
		return Found(nil)
	}

	articles := make([]Article, 0, len(results))
	for i, raw := range results {
		var item object
		if err := json.Unmarshal(raw, &item); err != nil || item == nil {
			log.WithField("index", i).Warn("malformed search result")
			return Found(nil)
		}
		articles = append(articles, articleFrom(item, log.WithField("index", i)))
	}
	return Found(articles)
}

func resultsArray(body string) ([]json.RawMessage, error) {
	var root object
	if err := json.Unmarshal([]byte(body), &root); err != nil {
		return nil, err
	}
	var response object
	if err := json.Unmarshal(root[keyResponse], &response); err != nil {
		return nil, &shapeError{key: keyResponse, err: err}
	}
	if response == nil {
		return nil, &shapeError{key: keyResponse}
	}
	var results []json.RawMessage
	if err := json.Unmarshal(response[keyResults], &results); err != nil {
		return nil, &shapeError{key: keyResults, err: err}
	}
	if results == nil {
		return nil, &shapeError{key: keyResults}
	}
	return results, nil
}

type shapeError struct {
	key string
	err error
}

func (e *shapeError) Error() string {
	if e.err == nil {
		return "missing " + e.key
	}
	return "unexpected " + e.key + ": " + e.err.Error()
}

func (e *shapeError) Unwrap() error { return e.err }

func articleFrom(item object, log logrus.FieldLogger) Article {
	a := Article{
		Title:   stringField(item, keyTitle),
		Section: stringField(item, keySection),
		URL:     stringField(item, keyURL),
	}

	if src := stringField(item, keyDate); src != "" {
		date, err := FormatDate(src)
		if err != nil {
			log.WithError(err).Debug("unparseable publication date")
		}
		a.Date = date
	}

	var fields object
	if err := json.Unmarshal(item[keyFields], &fields); err != nil || fields == nil {
		log.Debug("no fields available")
		return a
	}
	a.Author = stringField(fields, keyByline)
	return a
}

// stringField yields "" for a missing key or a non-string value.
func stringField(obj object, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// FormatDate converts a webPublicationDate into the display form. On
// failure it returns "" together with the parse error.
func FormatDate(src string) (string, error) {
	t, err := time.Parse(SourceDateLayout, src)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayDateLayout), nil
}
