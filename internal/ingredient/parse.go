package ingredient

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// <amount> <unit>? <item> (<notes>)? with the unit restricted to a bare
	// word so "2 cups flour" and "3 eggs" both match.
	leadingAmountPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-zA-Z]+)?\s+(.+?)(?:\s*\(([^)]+)\))?$`)
	trailingNotesPattern = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)$`)
)

// Line is the structured decomposition of a free-text ingredient line, e.g.
// "2 cups flour (sifted)" becomes amount 2, unit "cups", item "flour",
// notes "sifted".
type Line struct {
	Item   string
	Amount *Quantity
	Unit   string
	Notes  string
}

// Parse decomposes rawText into amount, unit, item and notes. Parsing never
// fails: when the leading-amount pattern does not match, the line degrades
// to a trailing-parenthetical check, and finally to the whole line as the
// item. Historical lines that defeat the patterns still display verbatim.
func Parse(rawText string) Line {
	text := strings.TrimSpace(rawText)

	if match := leadingAmountPattern.FindStringSubmatch(text); match != nil {
		if amount, err := strconv.ParseFloat(match[1], 64); err == nil {
			quantity := NewQuantity(amount)
			return Line{
				Amount: &quantity,
				Unit:   match[2],
				Item:   match[3],
				Notes:  match[4],
			}
		}
	}

	if match := trailingNotesPattern.FindStringSubmatch(text); match != nil {
		return Line{Item: match[1], Notes: match[2]}
	}

	return Line{Item: text}
}

// Build is the inverse of Parse: it renders the structured fields back into
// a single display line, omitting absent parts. Notes are wrapped in
// parentheses. Lines that round-trip through Parse and Build keep the same
// structured amount, unit and item.
func Build(line Line) string {
	var builder strings.Builder

	if line.Amount != nil {
		builder.WriteString(line.Amount.Format())
	}
	appendField(&builder, line.Unit)
	appendField(&builder, line.Item)
	if notes := strings.TrimSpace(line.Notes); notes != "" {
		appendField(&builder, "("+notes+")")
	}

	return strings.TrimSpace(builder.String())
}

func appendField(builder *strings.Builder, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if builder.Len() > 0 {
		builder.WriteByte(' ')
	}
	builder.WriteString(value)
}
