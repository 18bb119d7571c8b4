package testhelpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Expectation is one canned response. It matches a single request whose
// method, scheme, host and path are equal and whose query contains every
// expected key with the expected values.
type Expectation struct {
	Method string
	URL    *url.URL

	StatusCode int
	RespBody   []byte
	Headers    http.Header
	Err        error

	matched        bool
	mismatchReason string
}

// MockTransport is an http.RoundTripper answering from registered
// expectations, in registration order.
type MockTransport struct {
	expectations []*Expectation
	requests     []*http.Request
	mutex        sync.Mutex
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Client returns an http.Client routed through the mock.
func (t *MockTransport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// Expect registers a new expectation for requests to baseURL.
func (t *MockTransport) Expect(baseURL string) *Expectation {
	u, err := url.Parse(baseURL)
	if err != nil {
		panic(fmt.Sprintf("httpmock: invalid base URL provided: %v", err))
	}

	if u.Scheme == "" || u.Host == "" {
		panic(fmt.Sprintf("httpmock: base URL must include scheme and host (e.g., http://%s)", baseURL))
	}

	exp := &Expectation{
		Method:  http.MethodGet,
		URL:     u,
		Headers: make(http.Header),
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.expectations = append(t.expectations, exp)
	return exp
}

// Get overrides the path and query of the base URL.
func (e *Expectation) Get(path string) *Expectation {
	e.Method = http.MethodGet

	u, err := url.Parse(path)
	if err != nil {
		panic(fmt.Sprintf("httpmock: invalid path provided: %v", err))
	}

	e.URL.Path = u.Path
	e.URL.RawQuery = u.RawQuery
	return e
}

// Query adds an expected query parameter.
func (e *Expectation) Query(key, value string) *Expectation {
	q := e.URL.Query()
	q.Add(key, value)
	e.URL.RawQuery = q.Encode()
	return e
}

func (e *Expectation) Reply(statusCode int) *Expectation {
	e.StatusCode = statusCode
	return e
}

func (e *Expectation) BodyString(body string) *Expectation {
	e.RespBody = []byte(body)
	return e
}

func (e *Expectation) Body(body []byte) *Expectation {
	e.RespBody = body
	return e
}

func (e *Expectation) JSON(v interface{}) *Expectation {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("httpmock: failed to marshal JSON: %v", err))
	}
	e.RespBody = data
	e.Headers.Set("Content-Type", "application/json")
	return e
}

func (e *Expectation) Header(key, value string) *Expectation {
	e.Headers.Set(key, value)
	return e
}

// Fail makes the matching request fail at the transport level.
func (e *Expectation) Fail(err error) *Expectation {
	e.Err = err
	return e
}

// IsDone reports whether every expectation has been matched.
func (t *MockTransport) IsDone() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for _, exp := range t.expectations {
		if !exp.matched {
			return false
		}
	}
	return true
}

// Requests returns the requests seen so far, matched or not.
func (t *MockTransport) Requests() []*http.Request {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]*http.Request(nil), t.requests...)
}

func (t *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.requests = append(t.requests, req)

	for _, exp := range t.expectations {
		if !exp.matched && exp.matches(req) {
			exp.matched = true
			if exp.Err != nil {
				return nil, exp.Err
			}
			return exp.buildResponse(req), nil
		}
	}

	var reasons []string
	for _, exp := range t.expectations {
		if exp.mismatchReason != "" {
			reasons = append(reasons, exp.mismatchReason)
		}
	}

	extra := ""
	if len(reasons) > 0 {
		extra = " (" + strings.Join(reasons, "; ") + ")"
	}

	return nil, fmt.Errorf("httpmock: no match found for request %s %s%s", req.Method, req.URL, extra)
}

func (e *Expectation) matches(req *http.Request) bool {
	e.mismatchReason = ""

	if e.Method != req.Method {
		e.mismatchReason = fmt.Sprintf("method mismatch: expected %s got %s", e.Method, req.Method)
		return false
	}

	if e.URL.Scheme != req.URL.Scheme || e.URL.Host != req.URL.Host {
		e.mismatchReason = fmt.Sprintf("host mismatch: expected %s://%s got %s://%s", e.URL.Scheme, e.URL.Host, req.URL.Scheme, req.URL.Host)
		return false
	}

	if e.URL.Path != req.URL.Path {
		e.mismatchReason = fmt.Sprintf("path mismatch: expected %s got %s", e.URL.Path, req.URL.Path)
		return false
	}

	actualQuery := req.URL.Query()
	for key, values := range e.URL.Query() {
		actualValues, ok := actualQuery[key]
		if !ok {
			e.mismatchReason = fmt.Sprintf("missing query key %s", key)
			return false
		}

		if len(actualValues) != len(values) {
			e.mismatchReason = fmt.Sprintf("query value count mismatch for %s: expected %v got %v", key, values, actualValues)
			return false
		}

		for i, value := range values {
			if actualValues[i] != value {
				e.mismatchReason = fmt.Sprintf("query mismatch for %s: expected %s got %s", key, value, actualValues[i])
				return false
			}
		}
	}

	return true
}

func (e *Expectation) buildResponse(req *http.Request) *http.Response {
	statusCode := e.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	return &http.Response{
		StatusCode:    statusCode,
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Body:          io.NopCloser(bytes.NewReader(e.RespBody)),
		Header:        e.Headers,
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		ContentLength: int64(len(e.RespBody)),
	}
}
