package crm

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/aeaevo/loopjet-bridge/internal/domain/shared/valueobject"
)

// Bounds on how much history flows into a generated context. They keep
// the prompt within what the model handles well; older entries add noise
// rather than signal.
const (
	MaxContextActivities = 20
	MaxContextMessages   = 20
	MaxContextNotes      = 10

	messageExcerptLimit = 500
	noteExcerptLimit    = 300
)

// ContextCustomer is the customer identity rendered into the context
type ContextCustomer struct {
	Name  string
	Email string
	Phone string
}

// DealContext bundles everything the context builder renders
type DealContext struct {
	Lead       *Lead
	Customer   *ContextCustomer
	Activities []Activity
	// Conversation holds comment and email messages, newest first
	Conversation []Message
	// Notes holds notification messages, newest first
	Notes []Message
}

// BuildDealContext renders the deal into the plain-text form sent as
// user input to estimate generation. HTML message bodies are stripped
// to text and long entries truncated; empty sections are omitted.
func BuildDealContext(dc DealContext) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Deal: %s", dc.Lead.Name))
	if dc.Customer != nil {
		parts = append(parts, fmt.Sprintf("Customer: %s", dc.Customer.Name))
		if dc.Customer.Email != "" {
			parts = append(parts, fmt.Sprintf("Email: %s", dc.Customer.Email))
		}
		if dc.Customer.Phone != "" {
			parts = append(parts, fmt.Sprintf("Phone: %s", dc.Customer.Phone))
		}
	}

	if !dc.Lead.ExpectedRevenue.IsZero() {
		currency := dc.Lead.Currency
		if currency == "" {
			currency = valueobject.DefaultCurrency
		}
		parts = append(parts, fmt.Sprintf("Expected Revenue: %s %s", dc.Lead.ExpectedRevenue.String(), currency))
	}
	if !dc.Lead.Probability.IsZero() {
		parts = append(parts, fmt.Sprintf("Probability: %s%%", dc.Lead.Probability.String()))
	}
	if dc.Lead.StageName != "" {
		parts = append(parts, fmt.Sprintf("Stage: %s", dc.Lead.StageName))
	}

	if dc.Lead.Description != "" {
		parts = append(parts, fmt.Sprintf("\nDescription:\n%s", dc.Lead.Description))
	}

	if activities := capped(dc.Activities, MaxContextActivities); len(activities) > 0 {
		parts = append(parts, "\nActivities:")
		for _, a := range activities {
			line := fmt.Sprintf("- [%s] %s", a.Kind, a.Summary)
			if a.Note != "" {
				line += ": " + a.Note
			}
			parts = append(parts, line)
		}
	}

	if conv := capped(dc.Conversation, MaxContextMessages); len(conv) > 0 {
		var lines []string
		for _, m := range conv {
			body := truncate(StripHTML(m.Body), messageExcerptLimit)
			if body == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s", m.SentAt.Format("2006-01-02 15:04"), body))
		}
		if len(lines) > 0 {
			parts = append(parts, "\nConversation History:")
			parts = append(parts, lines...)
		}
	}

	if notes := capped(dc.Notes, MaxContextNotes); len(notes) > 0 {
		var lines []string
		for _, m := range notes {
			body := truncate(StripHTML(m.Body), noteExcerptLimit)
			if body == "" {
				continue
			}
			lines = append(lines, "- "+body)
		}
		if len(lines) > 0 {
			parts = append(parts, "\nInternal Notes:")
			parts = append(parts, lines...)
		}
	}

	if len(dc.Lead.Tags) > 0 {
		names := make([]string, 0, len(dc.Lead.Tags))
		for _, tag := range dc.Lead.Tags {
			names = append(names, tag.Name)
		}
		parts = append(parts, fmt.Sprintf("\nTags: %s", strings.Join(names, ", ")))
	}

	return strings.Join(parts, "\n")
}

// StripHTML reduces an HTML fragment to its text content with whitespace
// collapsed. Plain text passes through unchanged apart from collapsing.
func StripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	var sb strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			sb.WriteString(tokenizer.Token().Data)
			sb.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func capped[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
