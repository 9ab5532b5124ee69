package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a procurement spend classifier. You MUST respond with ONLY a valid JSON object. " +
	"Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. " +
	"Start your response directly with { and end with }."

// buildPrompt creates the classification prompt for one purchase order.
func buildPrompt(description, supplier string, taxonomy *Taxonomy) string {
	var sb strings.Builder

	sb.WriteString("Classify the following purchase order into a three-level procurement taxonomy:\n")
	sb.WriteString("L1 is the spend domain, L2 the category within it, L3 the sub-group.\n\n")

	fmt.Fprintf(&sb, "PO description: %s\n", strings.TrimSpace(description))
	if s := strings.TrimSpace(supplier); s != "" {
		fmt.Fprintf(&sb, "Supplier: %s\n", s)
	} else {
		sb.WriteString("Supplier: not provided\n")
	}

	if paths := taxonomy.Paths(); len(paths) > 0 {
		sb.WriteString("\nChoose from these taxonomy paths (L1 > L2 > L3):\n")
		for _, p := range paths {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
	}

	sb.WriteString("\nRespond with a JSON object with exactly the keys \"L1\", \"L2\" and \"L3\", for example:\n")
	sb.WriteString(`{"L1": "Information Technology", "L2": "Cloud Services", "L3": "Hosting"}`)
	sb.WriteString("\nOmit a key when that level cannot be determined.")

	return sb.String()
}
