package model

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	ID        string `yaml:"id"               json:"id"`
	Role      string `yaml:"r"                json:"r"`
	Name      string `yaml:"name,omitempty"   json:"name,omitempty"`
	Value     string `yaml:"value,omitempty"  json:"value,omitempty"`
	Settable  bool   `yaml:"set,omitempty"    json:"set,omitempty"`
	Invokable bool   `yaml:"invoke,omitempty" json:"invoke,omitempty"`
	Focused   bool   `yaml:"f,omitempty"      json:"f,omitempty"`
	Path      string `yaml:"p,omitempty"      json:"p,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list.
// Each element gets a path string showing its location in the tree
// using compact role names joined with " > ".
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, "", &result)
	}
	return result
}

func flattenRecursive(el Element, parentPath string, result *[]FlatElement) {
	role := el.Role()
	currentPath := role
	if parentPath != "" {
		currentPath = parentPath + " > " + role
	}

	*result = append(*result, FlatElement{
		ID:        el.ID,
		Role:      role,
		Name:      el.Name,
		Value:     el.Value,
		Settable:  el.SupportsSetValue,
		Invokable: el.SupportsInvoke,
		Focused:   el.Focused,
		Path:      currentPath,
	})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, result)
	}
}
