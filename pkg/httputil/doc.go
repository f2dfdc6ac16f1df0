// Package httputil fetches remote tree files.
//
// [Client.Fetch] downloads a document over HTTP(S), retrying transient
// failures with exponential backoff:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Other failures (404, 403, ...) are returned at once. Every request is
// reported to the HTTP observability hooks.
//
//	client := httputil.NewClient(httputil.WithTimeout(10 * time.Second))
//	data, err := client.Fetch(ctx, "https://example.com/tree.nw")
package httputil
