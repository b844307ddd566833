package view

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
)

type TextFormat string

const (
	FormatCards TextFormat = "cards"
	FormatTable TextFormat = "table"
	FormatJSON  TextFormat = "json"
)

func ParseTextFormat(s string) (TextFormat, error) {
	switch TextFormat(s) {
	case FormatCards, FormatTable, FormatJSON:
		return TextFormat(s), nil
	case "":
		return FormatCards, nil
	default:
		return "", fmt.Errorf("unknown format %q (available: cards, table, json)", s)
	}
}

// TextView renders the panel to a terminal. Records go to out; status
// lines (loading, count, errors) go to status so JSON output stays clean.
type TextView struct {
	out    io.Writer
	status io.Writer
	format TextFormat
}

func NewTextView(out, status io.Writer, format TextFormat) *TextView {
	return &TextView{out: out, status: status, format: format}
}

func (v *TextView) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(v.status, BusyLabel)
	}
}

func (v *TextView) ClearRecords() {}

func (v *TextView) HideError() {}

func (v *TextView) ShowRecords(records []users.UserRecord) {
	switch v.format {
	case FormatJSON:
		enc := json.NewEncoder(v.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			v.writeFailed(err)
		}
	case FormatTable:
		w := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tUSERNAME\tEMAIL\tCITY\tCOMPANY")
		fmt.Fprintln(w, "--\t----\t--------\t-----\t----\t-------")
		for _, r := range records {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Name, r.Username, r.Email, r.Address.City, r.Company.Name)
		}
		if err := w.Flush(); err != nil {
			v.writeFailed(err)
		}
	default:
		for i, r := range records {
			if i > 0 {
				fmt.Fprintln(v.out)
			}
			c := RenderCard(r)
			fmt.Fprintf(v.out, "[%s] %s (@%s)\n", c.Avatar, c.Name, c.Username)
			fmt.Fprintf(v.out, "  📧 %s\n", c.Email)
			fmt.Fprintf(v.out, "  📍 %s\n", c.AddressLine1)
			fmt.Fprintf(v.out, "     %s\n", c.AddressLine2)
			fmt.Fprintf(v.out, "  📞 %s\n", c.Phone)
			fmt.Fprintf(v.out, "  🌐 %s\n", c.Website)
			fmt.Fprintf(v.out, "  Company: %s\n", c.Company)
		}
	}
}

func (v *TextView) writeFailed(err error) {
	fmt.Fprintf(v.status, "Error: write output: %v\n", err)
}

func (v *TextView) ShowCount(n int) {
	fmt.Fprintln(v.status, countLabel(n))
}

func (v *TextView) ShowError(msg string) {
	fmt.Fprintf(v.status, "Error: %s\n", msg)
}
