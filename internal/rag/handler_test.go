package rag

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(p *Processor) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(p).Attach(r, "/api/chat/stream")
	return httptest.NewServer(r)
}

func postStream(t *testing.T, srv *httptest.Server, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/chat/stream", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return resp, sb.String()
}

func TestHandlerStreamsEventFrames(t *testing.T) {
	p := NewProcessor(
		&fakeCompleter{resp: &CompletionResponse{Answer: strptr("Three years."), TextCitations: []string{"r1"}}},
		NewSearchStrategy(&fakeRetriever{results: singleRef("r1")}), nil)
	srv := newTestServer(p)
	defer srv.Close()

	resp, body := postStream(t, srv, `{"query": "What is the statute of limitations?", "chatThread": [], "config": {}, "request_id": "req-42"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	frames := strings.Split(strings.TrimSuffix(body, "\n\n"), "\n\n")
	require.Len(t, frames, 5)

	assert.True(t, strings.HasPrefix(frames[0], "event:info\ndata: {"))
	assert.True(t, strings.HasPrefix(frames[1], "event:processing_step\ndata: {"))
	assert.True(t, strings.HasPrefix(frames[2], "event:answer\ndata: {"))
	assert.True(t, strings.HasPrefix(frames[3], "event:citation\ndata: {"))
	assert.Equal(t, "event:end\ndata: {}", frames[4])

	assert.Contains(t, frames[2], `"request_id":"req-42"`)
	assert.Contains(t, frames[2], `"answerPartial":{"answer":"Three years."}`)
	assert.Contains(t, frames[3], `"textCitations":["r1"]`)
}

func TestHandlerReportsFailureInBand(t *testing.T) {
	p := NewProcessor(
		&fakeCompleter{},
		NewSearchStrategy(&fakeRetriever{err: assert.AnError}), nil)
	srv := newTestServer(p)
	defer srv.Close()

	resp, body := postStream(t, srv, `{"query": "q"}`)

	// Mid-pipeline failure is never an HTTP error.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "event:error\n")
	assert.True(t, strings.HasSuffix(body, "event:end\ndata: {}\n\n"))
}

func TestHandlerDefaultsRequestID(t *testing.T) {
	p := NewProcessor(
		&fakeCompleter{resp: &CompletionResponse{Answer: strptr("ok")}},
		NewSearchStrategy(&fakeRetriever{results: singleRef("r1")}), nil)
	srv := newTestServer(p)
	defer srv.Close()

	_, body := postStream(t, srv, `{"query": "q"}`)

	assert.Contains(t, body, `"request_id":"`)
	assert.NotContains(t, body, `"request_id":""`)
}

func TestHandlerRejectsMalformedBody(t *testing.T) {
	p := NewProcessor(&fakeCompleter{}, NewSearchStrategy(&fakeRetriever{}), nil)
	srv := newTestServer(p)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/chat/stream", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
