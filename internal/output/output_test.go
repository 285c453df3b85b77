package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-relay/internal/model"
)

func sampleTree() TreeResult {
	return TreeResult{
		Window:   "Mini ERP system",
		WindowID: "42",
		TS:       1707500000,
		Elements: []model.Element{
			{ID: "e1", ControlType: "Edit", Name: "Customer", Bounds: [4]int{10, 20, 100, 30}},
		},
	}
}

func TestFprint_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, FormatYAML, false, sampleTree()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded TreeResult
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Window != "Mini ERP system" || len(decoded.Elements) != 1 {
		t.Errorf("round trip lost data: %+v", decoded)
	}
	if !strings.Contains(out, "bounds: [10, 20, 100, 30]") {
		t.Errorf("bounds should be a flow sequence, got:\n%s", out)
	}
}

func TestFprint_JSONCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, FormatJSON, false, sampleTree()); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("compact JSON should be one line, got %d newlines", n)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m["windowId"] != "42" {
		t.Errorf("windowId: got %v", m["windowId"])
	}
}

func TestFprint_JSONPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, FormatJSON, true, map[string]string{"a": "<b>"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\n  \"a\"") {
		t.Errorf("expected indented JSON, got %q", out)
	}
	if !strings.Contains(out, "<b>") {
		t.Errorf("HTML should not be escaped, got %q", out)
	}
}

func TestPrint_UsesGlobals(t *testing.T) {
	var buf bytes.Buffer
	oldW, oldF := Writer, OutputFormat
	Writer, OutputFormat = &buf, FormatJSON
	defer func() { Writer, OutputFormat = oldW, oldF }()

	if err := Print(map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != `{"n":1}` {
		t.Errorf("got %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestFlatResult_OmitEmptyWindow(t *testing.T) {
	data, err := yaml.Marshal(FlatResult{WindowID: "1", Elements: []model.FlatElement{}})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["window"]; ok {
		t.Error("empty window should be omitted")
	}
}
