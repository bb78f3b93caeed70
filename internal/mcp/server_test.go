package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/salmonumbrella/tabtex/internal/latex"
)

func callTool(t *testing.T, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolName
	req.Params.Arguments = args

	res, err := HandleConvert(latex.DefaultOptions())(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	text, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestHandleConvert_Defaults(t *testing.T) {
	res := callTool(t, map[string]any{
		"csv": "name,score\nAlice,91.256\nBob,88.0\n",
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	out := resultText(t, res)
	for _, want := range []string{`\begin{tabular}{l|c}`, `Alice & 91.26 \\`, `\caption{My Table}`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHandleConvert_Arguments(t *testing.T) {
	res := callTool(t, map[string]any{
		"csv":       "a;b\n1.2345;x_y\n",
		"delimiter": ";",
		"round":     float64(1),
		"columns":   []any{"b", "a"},
		"caption":   "Custom",
		"escape":    true,
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	out := resultText(t, res)
	for _, want := range []string{`x\_y & 1.2 \\`, `\caption{Custom}`, `\textbf{b} & \textbf{a} \\`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHandleConvert_NoRound(t *testing.T) {
	res := callTool(t, map[string]any{
		"csv":      "v\n1.23456\n",
		"no_round": true,
	})
	if out := resultText(t, res); !strings.Contains(out, `1.23456 \\`) {
		t.Errorf("expected unrounded value:\n%s", out)
	}
}

func TestHandleConvert_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing csv", map[string]any{}, "csv"},
		{"malformed row", map[string]any{"csv": "a,b\n1\n"}, "malformed row"},
		{"unknown column", map[string]any{"csv": "a\n1\n", "columns": []any{"z"}}, `column "z" not found`},
		{"bad align", map[string]any{"csv": "a\n1\n", "align": "lc"}, "alignment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, tt.args)
			if !res.IsError {
				t.Fatal("expected tool error")
			}
			if got := resultText(t, res); !strings.Contains(got, tt.want) {
				t.Errorf("error %q does not mention %q", got, tt.want)
			}
		})
	}
}

func TestServe_ListsTool(t *testing.T) {
	var in bytes.Buffer
	in.WriteString(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}` + "\n")
	in.WriteString(`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n")
	in.WriteString(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	if err := Serve(ctx, "test", latex.DefaultOptions(), &in, &out); err != nil {
		t.Fatalf("Serve() error: %v", err)
	}

	found := false
	dec := json.NewDecoder(&out)
	for dec.More() {
		var msg struct {
			ID     int `json:"id"`
			Result struct {
				Tools []struct {
					Name string `json:"name"`
				} `json:"tools"`
			} `json:"result"`
		}
		if err := dec.Decode(&msg); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		for _, tool := range msg.Result.Tools {
			if tool.Name == ToolName {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("tools/list did not include %s; output:\n%s", ToolName, out.String())
	}
}
