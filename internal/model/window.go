package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Window represents a top-level application window.
type Window struct {
	ID             string `yaml:"id"                        json:"id"`
	Title          string `yaml:"title"                     json:"title"`
	ProcessName    string `yaml:"process_name,omitempty"    json:"processName,omitempty"`
	PID            int    `yaml:"pid,omitempty"             json:"processId,omitempty"`
	ExecutablePath string `yaml:"executable_path,omitempty" json:"executablePath,omitempty"`
	Bounds         [4]int `yaml:"bounds,flow"               json:"boundingRectangle"`
	Foreground     bool   `yaml:"foreground,omitempty"      json:"isForeground,omitempty"`
	Minimized      bool   `yaml:"minimized,omitempty"       json:"isMinimized,omitempty"`
}

// WindowDetails is a window together with its full automation tree.
type WindowDetails struct {
	Window `yaml:",inline"`
	Root   *Element `yaml:"elements,omitempty" json:"userInterfaceElements,omitempty"`
}

// Elements returns the tree as a slice so it can be fed to the tree helpers.
func (d *WindowDetails) Elements() []Element {
	if d == nil || d.Root == nil {
		return nil
	}
	return []Element{*d.Root}
}

// JSON serializes the window details into the compact form embedded in
// model prompts.
func (d *WindowDetails) JSON() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("json encode window details: %w", err)
	}
	return string(b), nil
}

// FocusInfo describes the element that currently has OS input focus.
type FocusInfo struct {
	FocusedElement             *Element       `yaml:"focused_element,omitempty"               json:"focusedElement,omitempty"`
	FocusedElementParentWindow *WindowDetails `yaml:"focused_element_parent_window,omitempty" json:"focusedElementParentWindow,omitempty"`
}

// Overview is the system snapshot returned by the automation server: every
// open window plus focus information.
type Overview struct {
	Windows   []Window   `yaml:"windows"              json:"windows"`
	FocusInfo *FocusInfo `yaml:"focus_info,omitempty" json:"focusInfo,omitempty"`
}

// FocusedWindow returns the parent window of the focused element, or nil.
func (o *Overview) FocusedWindow() *WindowDetails {
	if o == nil || o.FocusInfo == nil {
		return nil
	}
	return o.FocusInfo.FocusedElementParentWindow
}

// FindWindowByTitle returns the first window whose title contains title
// (case-insensitive), or nil.
func (o *Overview) FindWindowByTitle(title string) *Window {
	if o == nil {
		return nil
	}
	needle := strings.ToLower(title)
	for i := range o.Windows {
		if o.Windows[i].Title != "" && strings.Contains(strings.ToLower(o.Windows[i].Title), needle) {
			return &o.Windows[i]
		}
	}
	return nil
}
