package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/indic-infographic-mcp/internal/infographic"
	"github.com/ironsheep/indic-infographic-mcp/internal/languages"
	"github.com/ironsheep/indic-infographic-mcp/internal/ocr"
	"github.com/ironsheep/indic-infographic-mcp/internal/typeset"
)

type stubTranslator struct {
	calls  int
	answer string
}

func (s *stubTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	s.calls++
	if s.answer != "" {
		return s.answer, nil
	}
	return text, nil
}

type stubEngine struct {
	text string
}

func (e stubEngine) Recognize(context.Context, []byte, string) (*ocr.Recognition, error) {
	return &ocr.Recognition{Text: e.text}, nil
}

// newTestServer installs Go Regular as the font for each named language.
func newTestServer(t *testing.T, tr *stubTranslator, opts Options, names ...string) *Server {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p, err := languages.Lookup(n)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, p.FontFile), goregular.TTF, 0o644); err != nil {
			t.Fatalf("failed to write test font: %v", err)
		}
	}
	r := infographic.NewRenderer(typeset.NewFontSet(dir), infographic.DefaultTheme())
	if tr == nil {
		tr = &stubTranslator{}
	}
	return New(infographic.NewGenerator(tr, r, infographic.DefaultCanvas), opts)
}

func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()
	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatal(err)
	}
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	}
	resp := s.handleRequest(context.Background(), req)
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResult decodes the JSON text content of a successful call into v and
// returns the content items.
func toolResult(t *testing.T, resp *MCPResponse, v interface{}) []map[string]interface{} {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatal("Result should contain content items")
	}
	if content[0]["type"] != "text" {
		t.Fatalf("first content item type: got %v", content[0]["type"])
	}
	if v != nil {
		if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
			t.Fatalf("failed to decode tool result: %v", err)
		}
	}
	return content
}
