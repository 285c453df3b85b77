package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read a window's automation tree",
	Long: `Read the UI automation tree of a window. Without --window or --window-id
the window holding focus is read.

Element IDs in the output are the IDs set-value and action take.`,
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	addWindowFlags(readCmd)
	readCmd.Flags().String("roles", "", "Comma-separated roles to include (e.g. \"input,btn\" or \"interactive\")")
	readCmd.Flags().String("text", "", "Only elements whose name, value or automation ID contains this text")
	readCmd.Flags().Bool("prune", false, "Drop anonymous structural groups")
	readCmd.Flags().Bool("flat", false, "Flatten the tree into a list with path breadcrumbs")
}

func runRead(cmd *cobra.Command, args []string) error {
	title, id := getWindowFlags(cmd)
	roles, _ := cmd.Flags().GetString("roles")
	text, _ := cmd.Flags().GetString("text")
	prune, _ := cmd.Flags().GetBool("prune")
	flat, _ := cmd.Flags().GetBool("flat")

	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		details, err := resolveWindow(ctx, p, title, id)
		if err != nil {
			return err
		}
		elements := shapeTree(details.Elements(), parseRoles(roles), text, prune)
		ts := time.Now().Unix()
		if flat {
			flatElements := model.FlattenElements(elements)
			if flatElements == nil {
				flatElements = []model.FlatElement{}
			}
			return output.Print(output.FlatResult{Window: details.Title, WindowID: details.ID, TS: ts, Elements: flatElements})
		}
		if elements == nil {
			elements = []model.Element{}
		}
		return output.Print(treeResult(details, elements, ts))
	})
}

func treeResult(details *model.WindowDetails, elements []model.Element, ts int64) output.TreeResult {
	res := output.TreeResult{
		Window:   details.Title,
		WindowID: details.ID,
		TS:       ts,
		Count:    model.CountElements(elements),
		Elements: elements,
	}
	if el := model.FindFocused(details.Elements()); el != nil {
		res.Focused = el.ID
	}
	return res
}

// shapeTree applies the read filters in a fixed order: prune, text, roles.
func shapeTree(elements []model.Element, roles []string, text string, prune bool) []model.Element {
	if prune {
		elements = model.PruneEmptyGroups(elements)
	}
	if text != "" {
		elements = model.FilterByText(elements, text)
	}
	if len(roles) > 0 {
		elements = model.FilterByRoles(elements, model.ExpandRoles(roles))
	}
	return elements
}
