package model

import "strings"

// FilterByRoles returns only elements whose compact role is in roles.
// Elements that don't match but have matching descendants are replaced by
// those descendants.
func FilterByRoles(elements []Element, roles []string) []Element {
	if len(roles) == 0 {
		return elements
	}

	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}
	return filterRoles(elements, roleSet)
}

func filterRoles(elements []Element, roleSet map[string]bool) []Element {
	var result []Element
	for _, el := range elements {
		filteredChildren := filterRoles(el.Children, roleSet)

		if roleSet[el.Role()] {
			filtered := el
			filtered.Children = filteredChildren
			result = append(result, filtered)
		} else if len(filteredChildren) > 0 {
			result = append(result, filteredChildren...)
		}
	}
	return result
}

// FilterByText filters elements to only those whose name, value, or
// automation ID contains the given text (case-insensitive). Parent elements
// are kept if any descendant matches.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []Element
	for _, el := range elements {
		matched := textMatchesElement(el, textLower)
		childMatches := FilterByText(el.Children, text)

		if matched || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}

func textMatchesElement(el Element, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Name), textLower) ||
		strings.Contains(strings.ToLower(el.Value), textLower) ||
		strings.Contains(strings.ToLower(el.AutomationID), textLower)
}

// isEmptyGroup returns true if the element is a structural container
// (group/other) with no name, value, or automation ID.
func isEmptyGroup(el Element) bool {
	role := el.Role()
	return (role == "group" || role == "other") &&
		el.Name == "" && el.Value == "" && el.AutomationID == "" &&
		!el.SupportsSetValue && !el.SupportsInvoke
}

// PruneEmptyGroups removes anonymous group/other nodes from a tree and
// promotes their children to the parent. Windows of line-of-business apps
// are full of unnamed panes; dropping them shrinks the prompt considerably.
func PruneEmptyGroups(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		prunedChildren := PruneEmptyGroups(el.Children)

		if isEmptyGroup(el) {
			result = append(result, prunedChildren...)
		} else {
			pruned := el
			pruned.Children = prunedChildren
			result = append(result, pruned)
		}
	}
	return result
}
