package estimate

import (
	"fmt"
	"strings"

	"github.com/aeaevo/loopjet-bridge/internal/domain/loopjet"
)

// BuildPreview renders a generation result into the human-readable text
// shown to the user before they open the created quotation.
func BuildPreview(result *loopjet.GenerationResult) string {
	var sb strings.Builder

	reasoning := result.Reasoning
	if reasoning == "" {
		reasoning = "N/A"
	}
	fmt.Fprintf(&sb, "AI Reasoning:\n%s\n\n", reasoning)
	fmt.Fprintf(&sb, "Generated %d estimate items:\n", len(result.Items))

	for i, item := range result.Items {
		fmt.Fprintf(&sb, "%d. %s - Qty: %s x %s = %s\n",
			i+1, item.Name, item.Quantity.String(), item.UnitPrice.String(), item.LineTotal().String())
		if item.Description != "" {
			fmt.Fprintf(&sb, "   Description: %s\n", item.Description)
		}
	}
	return sb.String()
}
