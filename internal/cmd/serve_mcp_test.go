package cmd

import (
	"strings"
	"testing"
)

func TestServeMCP_UsesConfigDefaults(t *testing.T) {
	cfgPath := isolateConfig(t)
	writeConfig(t, cfgPath, "caption: From config\n")

	var in strings.Builder
	in.WriteString(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}` + "\n")
	in.WriteString(`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n")
	in.WriteString(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n")

	res := runCLI(t, in.String(), "serve-mcp")
	if res.err != nil {
		t.Fatalf("serve-mcp: %v", res.err)
	}
	for _, want := range []string{`"csv_to_latex"`, `"From config"`, `"version":"1.2.3"`} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %s:\n%s", want, res.stdout)
		}
	}
}

func TestServeMCP_RejectsArgs(t *testing.T) {
	isolateConfig(t)
	res := runCLI(t, "", "serve-mcp", "extra")
	if res.err == nil {
		t.Fatal("expected error for positional argument")
	}
}
