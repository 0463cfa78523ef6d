package http

import "net/http"

// authTransport attaches the service's API key to every outbound request
// using the api-key header scheme Qdrant expects. An empty key leaves the
// request untouched, which is the unauthenticated local setup.
type authTransport struct {
	apiKey    string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.apiKey != "" {
		reqCopy.Header.Set("api-key", t.apiKey)
	}

	return t.transport.RoundTrip(reqCopy)
}

func WithAPIKey(apiKey string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			apiKey:    apiKey,
			transport: rt,
		}
	})
}
