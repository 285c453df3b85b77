package model

// Element represents a UI element in a window's automation tree as reported
// by the automation server. IDs are opaque strings assigned by the server and
// are only meaningful for the lifetime of that server session.
type Element struct {
	ID               string    `yaml:"id"                         json:"id"`
	Name             string    `yaml:"name,omitempty"             json:"name,omitempty"`
	ControlType      string    `yaml:"control_type,omitempty"     json:"controlType,omitempty"`
	Value            string    `yaml:"value,omitempty"            json:"currentValue,omitempty"`
	AutomationID     string    `yaml:"automation_id,omitempty"    json:"automationId,omitempty"`
	ClassName        string    `yaml:"class_name,omitempty"       json:"className,omitempty"`
	Bounds           [4]int    `yaml:"bounds,flow"                json:"boundingRectangle"` // x, y, width, height in screen pixels
	Focused          bool      `yaml:"focused,omitempty"          json:"isFocused,omitempty"`
	Enabled          *bool     `yaml:"enabled,omitempty"          json:"isEnabled,omitempty"` // nil or true = enabled
	SupportsSetValue bool      `yaml:"supports_set_value,omitempty" json:"supportsSetValue,omitempty"`
	SupportsInvoke   bool      `yaml:"supports_invoke,omitempty"  json:"supportsInvoke,omitempty"`
	Children         []Element `yaml:"children,omitempty"         json:"children,omitempty"`
}

// Role returns the compact role code for the element's control type.
func (e Element) Role() string {
	return MapRole(e.ControlType)
}

// FindByID searches the tree rooted at elements for the element with the
// given ID. Returns nil if it is not present.
func FindByID(elements []Element, id string) *Element {
	for i := range elements {
		if elements[i].ID == id {
			return &elements[i]
		}
		if found := FindByID(elements[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FindFocused returns the first element in the tree that has keyboard focus.
func FindFocused(elements []Element) *Element {
	for i := range elements {
		if elements[i].Focused {
			return &elements[i]
		}
		if found := FindFocused(elements[i].Children); found != nil {
			return found
		}
	}
	return nil
}

// CountElements returns the number of elements in the tree, including roots.
func CountElements(elements []Element) int {
	n := 0
	for _, el := range elements {
		n += 1 + CountElements(el.Children)
	}
	return n
}
