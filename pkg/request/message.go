package request

import (
	"net/url"
	"slices"
	"strings"
	"time"
)

// Message is a finalized request ready for a transport: query parameters
// are merged into the URL and the Credentialed flag selects the transport
// variant. Building a Message is pure, dispatching it is the Sender's job.
type Message struct {
	Method       string
	URL          string
	Headers      []Pair // most recently added first
	Body         Body
	Timeout      time.Duration
	Credentialed bool
}

// Message finalizes the spec. A spec without query parameters keeps its URL
// untouched, otherwise the percent-encoded pairs are appended with "?" or
// "&" depending on whether the URL already carries a query string.
func (s Spec) Message() Message {
	return Message{
		Method:       s.method,
		URL:          mergeQuery(s.url, s.queryParams),
		Headers:      slices.Clone(s.headers),
		Body:         s.body,
		Timeout:      s.timeout,
		Credentialed: s.credentialed,
	}
}

func mergeQuery(rawURL string, params []Pair) string {
	if len(params) == 0 {
		return rawURL
	}
	var b strings.Builder
	b.WriteString(rawURL)
	if strings.Contains(rawURL, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
