package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolServerDoc = `
info:
  title: citation checker
paths:
  /check/{id}:
    get:
      operationId: check_citation
      summary: Verify a citation against the reporter database.
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
        - name: strict
          in: query
          schema:
            type: boolean
  /draft:
    post:
      operationId: draft_paragraph
      summary: Draft a complaint paragraph.
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [topic]
              properties:
                topic:
                  type: string
                  description: what the paragraph covers
  /health:
    get:
      summary: no operationId, should be skipped
`

func newToolServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(toolServerDoc))
	})
	mux.HandleFunc("/check/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"path": "` + r.URL.Path + `", "strict": "` + r.URL.Query().Get("strict") + `"}`))
	})
	mux.HandleFunc("/draft", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"status": "drafted"}`))
	})
	return httptest.NewServer(mux)
}

func toolByName(t *testing.T, tools []tool.BaseTool, name string) tool.InvokableTool {
	t.Helper()
	for _, bt := range tools {
		info, err := bt.Info(context.Background())
		require.NoError(t, err)
		if info.Name == name {
			it, ok := bt.(tool.InvokableTool)
			require.True(t, ok)
			return it
		}
	}
	t.Fatalf("tool %s not found", name)
	return nil
}

func TestDiscoverOpenAPITools(t *testing.T) {
	srv := newToolServer(t)
	defer srv.Close()

	tools, err := DiscoverOpenAPITools(context.Background(), srv.URL)
	require.NoError(t, err)
	// The operation without an operationId is skipped.
	assert.Len(t, tools, 2)

	check := toolByName(t, tools, "check_citation")
	info, err := check.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Verify a citation against the reporter database.", info.Desc)
}

func TestRemoteToolMapsPathAndQueryParams(t *testing.T) {
	srv := newToolServer(t)
	defer srv.Close()

	tools, err := DiscoverOpenAPITools(context.Background(), srv.URL)
	require.NoError(t, err)

	check := toolByName(t, tools, "check_citation")
	out, err := check.InvokableRun(context.Background(), `{"id": "347-us-483", "strict": true}`)
	require.NoError(t, err)
	assert.Contains(t, out, "/check/347-us-483")
	assert.Contains(t, out, `"strict": "true"`)
}

func TestRemoteToolSendsJSONBody(t *testing.T) {
	srv := newToolServer(t)
	defer srv.Close()

	tools, err := DiscoverOpenAPITools(context.Background(), srv.URL)
	require.NoError(t, err)

	draft := toolByName(t, tools, "draft_paragraph")
	out, err := draft.InvokableRun(context.Background(), `{"topic": "breach"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "drafted")
}
