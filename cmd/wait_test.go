package cmd

import (
	"context"
	"testing"
)

func TestWaitCondition_Window(t *testing.T) {
	f := erpFake()
	ok, err := waitCondition(f.Provider(), waitSpec{window: "mini erp"})(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected window match, got %v, %v", ok, err)
	}
	if f.Called("window-details") != 0 {
		t.Error("window-only wait should not read the tree")
	}
}

func TestWaitCondition_Element(t *testing.T) {
	f := erpFake()
	cond := waitCondition(f.Provider(), waitSpec{window: "ERP", forText: "txtcustomer", forRole: "input"})
	if ok, _ := cond(context.Background()); !ok {
		t.Error("expected element match")
	}
	cond = waitCondition(f.Provider(), waitSpec{window: "ERP", forID: "missing"})
	if ok, _ := cond(context.Background()); ok {
		t.Error("missing id should not match")
	}
}

func TestWaitCondition_Gone(t *testing.T) {
	f := erpFake()
	cond := waitCondition(f.Provider(), waitSpec{window: "Calculator", gone: true})
	if ok, _ := cond(context.Background()); !ok {
		t.Error("absent window should satisfy --gone")
	}
}

func TestDescribeCondition(t *testing.T) {
	got := describeCondition(waitSpec{window: "ERP", forRole: "btn", forID: "b1", gone: true})
	want := `window="ERP" role=btn id=b1 (gone)`
	if got != want {
		t.Errorf("describeCondition = %q, want %q", got, want)
	}
}
