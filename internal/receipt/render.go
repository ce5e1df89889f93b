package receipt

import (
	"fmt"
	"strings"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/domain"
)

// Thermal 58mm layout: 32 monospace columns, title column on the
// left, quantity and amount right-aligned. Layout constants only;
// they never influence the numbers.
const (
	paperWidth  = 32
	titleWidth  = 18
	qtyWidth    = 4
	amountWidth = 10
)

// RenderText lays the document out as plain text. Long titles wrap
// across additional rows below their line; wrapping moves subsequent
// rows down but never changes any amount.
func RenderText(doc domain.ReceiptDocument) string {
	var b strings.Builder
	rule := strings.Repeat("-", paperWidth)

	b.WriteString(center(doc.Header.MerchantName, paperWidth) + "\n")
	b.WriteString(fmt.Sprintf("Fecha: %s\n", doc.Header.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Cliente: %s\n", doc.Header.CustomerName))
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("%-*s%*s%*s\n", titleWidth, "Producto", qtyWidth, "Cant", amountWidth, "Total"))
	b.WriteString(rule + "\n")

	for _, line := range doc.Lines {
		rows := wrap(line.Title, titleWidth)
		b.WriteString(fmt.Sprintf("%-*s%*d%*s\n",
			titleWidth, rows[0],
			qtyWidth, line.Quantity,
			amountWidth, "$"+line.LineTotal.StringFixed(2)))
		for _, row := range rows[1:] {
			b.WriteString(row + "\n")
		}
	}

	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("%-*s%*s\n",
		titleWidth, "TOTAL:",
		qtyWidth+amountWidth, "$"+doc.Total.StringFixed(2)))
	b.WriteString("\n")
	b.WriteString(center(doc.Footer, paperWidth) + "\n")

	return b.String()
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// wrap splits s into rows of at most width characters, breaking on
// spaces where possible. It always returns at least one row.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var rows []string
	current := ""
	for _, word := range words {
		for len(word) > width {
			if current != "" {
				rows = append(rows, current)
				current = ""
			}
			rows = append(rows, word[:width])
			word = word[width:]
		}
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			rows = append(rows, current)
			current = word
		}
	}
	if current != "" {
		rows = append(rows, current)
	}
	return rows
}
