package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInspect_Text(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, "scores.csv", scoresCSV)

	res := runCLI(t, "", "inspect", path)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	want := path + ": 2 rows, 2 columns\n\n" +
		"COLUMN  KIND    NULLS\n" +
		"name    string  0\n" +
		"score   float   0\n"
	if diff := cmp.Diff(want, res.stdout); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInspect_JSON(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, "mixed.csv", "id,score,note\n1,2.5,\n2,,x\n3,4,y\n")

	res := runCLI(t, "", "inspect", path, "-o", "json", "--rows", "2")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}

	var got inspectReport
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, res.stdout)
	}
	want := inspectReport{
		Source: path,
		Rows:   3,
		Columns: []inspectColumn{
			{Name: "id", Kind: "int"},
			{Name: "score", Kind: "float", Nulls: 1},
			{Name: "note", Kind: "string", Nulls: 1},
		},
		Data: []map[string]interface{}{
			{"id": 1.0, "score": 2.5, "note": nil},
			{"id": 2.0, "score": nil, "note": "x"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestInspect_AllRows(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, "scores.csv", scoresCSV)

	res := runCLI(t, "", "inspect", path, "--rows", "-1", "-q", ".data | length")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if res.stdout != "2\n" {
		t.Errorf("output = %q, want 2", res.stdout)
	}
}

func TestInspect_Filters(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, "scores.csv", scoresCSV)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"query", []string{"-q", `.columns[] | select(.kind == "float") | .name`}, "score\n"},
		{"jq alias", []string{"--jq", ".rows"}, "2\n"},
		{"jsonpath", []string{"--jsonpath", "$.columns[*].kind"}, "string\nfloat\n"},
		{"jsonpath shorthand", []string{"--jsonpath", "data[0].name"}, "Alice\n"},
		{"table of rows", []string{"-o", "table", "-q", ".data"}, "name   score\nAlice  91.256\nBob    88\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"inspect", path}, tt.args...)
			res := runCLI(t, "", args...)
			if res.err != nil {
				t.Fatalf("unexpected error: %v\nstderr: %s", res.err, res.stderr)
			}
			if res.stdout != tt.want {
				t.Errorf("output = %q, want %q", res.stdout, tt.want)
			}
		})
	}
}

func TestInspect_ConfigOutputAndJSONErrors(t *testing.T) {
	cfgPath := isolateConfig(t)
	writeConfig(t, cfgPath, "output: json\n")

	path := writeFile(t, "scores.csv", scoresCSV)
	res := runCLI(t, "", "inspect", path)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !json.Valid([]byte(res.stdout)) {
		t.Errorf("config output format not applied:\n%s", res.stdout)
	}

	res = runCLI(t, "", "inspect", path+".missing")
	if ExitCode(res.err) != ExitSourceRead {
		t.Fatalf("ExitCode() = %d, want %d", ExitCode(res.err), ExitSourceRead)
	}
	var envelope struct {
		Error struct {
			Type     string `json:"type"`
			Category string `json:"category"`
			ExitCode int    `json:"exit_code"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(res.stderr), &envelope); err != nil {
		t.Fatalf("stderr is not a JSON error envelope: %v\n%s", err, res.stderr)
	}
	if envelope.Error.Type != "source_read" || envelope.Error.Category != "source" || envelope.Error.ExitCode != ExitSourceRead {
		t.Errorf("unexpected envelope: %+v", envelope.Error)
	}
}

func TestInspect_InvalidOutput(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, "scores.csv", scoresCSV)
	res := runCLI(t, "", "inspect", path, "-o", "xml")
	if ExitCode(res.err) != ExitUser {
		t.Fatalf("ExitCode() = %d, want %d (err %v)", ExitCode(res.err), ExitUser, res.err)
	}
	if !strings.Contains(res.stderr, "invalid --output") {
		t.Errorf("stderr = %q", res.stderr)
	}
}
