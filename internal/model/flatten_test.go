package model

import "testing"

func TestFlattenElements_Basic(t *testing.T) {
	elements := []Element{
		{ID: "1", ControlType: "Button", Name: "OK"},
		{ID: "2", ControlType: "Text", Name: "Hello"},
	}
	result := FlattenElements(elements)
	if len(result) != 2 {
		t.Fatalf("expected 2 flat elements, got %d", len(result))
	}
	if result[0].Path != "btn" {
		t.Errorf("expected path 'btn', got %q", result[0].Path)
	}
	if result[1].Path != "txt" {
		t.Errorf("expected path 'txt', got %q", result[1].Path)
	}
}

func TestFlattenElements_NestedPath(t *testing.T) {
	result := FlattenElements(buildErpTree())
	if len(result) != 6 {
		t.Fatalf("expected 6 flat elements, got %d", len(result))
	}
	want := []string{
		"window",
		"window > group",
		"window > group > input",
		"window > group > input",
		"window > btn",
		"window > btn",
	}
	for i, p := range want {
		if result[i].Path != p {
			t.Errorf("element %d: expected path %q, got %q", i, p, result[i].Path)
		}
	}
}

func TestFlattenElements_Capabilities(t *testing.T) {
	result := FlattenElements(buildErpTree())
	byID := make(map[string]FlatElement)
	for _, f := range result {
		byID[f.ID] = f
	}
	if !byID["e1"].Settable || byID["e1"].Invokable {
		t.Errorf("e1: got %+v, want settable only", byID["e1"])
	}
	if !byID["b2"].Invokable {
		t.Errorf("b2 should be invokable")
	}
	if !byID["e1"].Focused {
		t.Errorf("e1 should be focused")
	}
}

func TestFlattenElements_Empty(t *testing.T) {
	if result := FlattenElements(nil); len(result) != 0 {
		t.Errorf("expected empty result, got %d", len(result))
	}
}
