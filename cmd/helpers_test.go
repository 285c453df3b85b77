package cmd

import (
	"context"
	"testing"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform/fake"
)

func erpTree() []model.Element {
	return []model.Element{{
		ID: "w1", ControlType: "Window", Name: "Mini ERP system",
		Children: []model.Element{
			{ID: "p1", ControlType: "Pane", Children: []model.Element{
				{ID: "e1", ControlType: "Edit", AutomationID: "txtCustomer", SupportsSetValue: true},
				{ID: "e2", ControlType: "Edit", AutomationID: "txtArticle", SupportsSetValue: true},
			}},
			{ID: "b1", ControlType: "Button", Name: "Add Item", SupportsInvoke: true},
		},
	}}
}

func erpFake() *fake.Fake {
	f := fake.New()
	root := erpTree()[0]
	f.Overview = &model.Overview{Windows: []model.Window{
		{ID: "1", Title: "Inbox"},
		{ID: "2", Title: "Mini ERP system", Minimized: true},
	}}
	f.Details["2"] = &model.WindowDetails{Window: model.Window{ID: "2", Title: "Mini ERP system"}, Root: &root}
	return f
}

func TestResolveWindow_ByTitle(t *testing.T) {
	f := erpFake()
	d, err := resolveWindow(context.Background(), f.Provider(), "erp", "")
	if err != nil {
		t.Fatal(err)
	}
	if d.ID != "2" {
		t.Errorf("got window %q, want 2", d.ID)
	}
}

func TestResolveWindow_ByID(t *testing.T) {
	f := erpFake()
	if _, err := resolveWindow(context.Background(), f.Provider(), "", "2"); err != nil {
		t.Fatal(err)
	}
	if f.Called("overview") != 0 {
		t.Error("lookup by id should not read the overview")
	}
}

func TestResolveWindow_NoMatch(t *testing.T) {
	f := erpFake()
	if _, err := resolveWindow(context.Background(), f.Provider(), "calculator", ""); err == nil {
		t.Error("expected error for unmatched title")
	}
	if _, err := resolveWindow(context.Background(), f.Provider(), "", ""); err == nil {
		t.Error("expected error when nothing is focused")
	}
}

func TestResolveWindow_Focused(t *testing.T) {
	f := erpFake()
	f.Overview.FocusInfo = &model.FocusInfo{FocusedElementParentWindow: &model.WindowDetails{Window: model.Window{ID: "2"}}}
	d, err := resolveWindow(context.Background(), f.Provider(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if d.Root == nil {
		t.Error("focused window without tree should be fetched by id")
	}
}

func TestParseRoles(t *testing.T) {
	got := parseRoles(" btn, ,input ")
	if len(got) != 2 || got[0] != "btn" || got[1] != "input" {
		t.Errorf("parseRoles = %v", got)
	}
	if parseRoles("") != nil {
		t.Error("empty string should give nil")
	}
}

func TestFilterWindows(t *testing.T) {
	windows := erpFake().Overview.Windows
	if got := filterWindows(windows, "ERP", false); len(got) != 1 {
		t.Errorf("title filter: got %d", len(got))
	}
	if got := filterWindows(windows, "", true); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("visible-only filter: got %+v", got)
	}
	if got := filterWindows(nil, "x", false); got == nil {
		t.Error("result should be non-nil for clean YAML output")
	}
}
