package model

// RoleMap maps UI Automation control types to compact role codes.
var RoleMap = map[string]string{
	"Button":      "btn",
	"SplitButton": "btn",
	"Text":        "txt",
	"Hyperlink":   "lnk",
	"Image":       "img",
	"Edit":        "input",
	"Document":    "web",
	"CheckBox":    "chk",
	"RadioButton": "radio",
	"ComboBox":    "combo",
	"Menu":        "menu",
	"MenuBar":     "menu",
	"MenuItem":    "menuitem",
	"Tab":         "tab",
	"TabItem":     "tab",
	"List":        "list",
	"Table":       "list",
	"DataGrid":    "list",
	"Tree":        "list",
	"ListItem":    "row",
	"DataItem":    "row",
	"TreeItem":    "row",
	"Group":       "group",
	"Pane":        "group",
	"ScrollBar":   "scroll",
	"ToolBar":     "toolbar",
	"Window":      "window",
}

// MetaRoles maps meta-role names to the concrete roles they expand to.
// "interactive" covers the roles that accept a set-value or invoke call.
var MetaRoles = map[string][]string{
	"interactive": {"input", "btn", "combo", "chk", "radio", "menuitem"},
}

// ExpandRoles expands any meta-roles in the given list to their concrete roles.
// Non-meta roles are passed through unchanged. Duplicates are removed.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var expanded []string
	for _, r := range roles {
		if concrete, ok := MetaRoles[r]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if !seen[r] {
			seen[r] = true
			expanded = append(expanded, r)
		}
	}
	return expanded
}

// MapRole converts a raw control type to a compact code.
func MapRole(controlType string) string {
	if short, ok := RoleMap[controlType]; ok {
		return short
	}
	return "other"
}
