package export

import (
	"strings"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
)

type Column struct {
	Header string
	// Width in characters.
	Width float64
}

// Table is a sheet-shaped export: a fixed set of columns and one row per record.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

const dateLayout = "2006-01-02"

func Registrations(regs []*model.Registration) *Table {
	t := &Table{
		Name: "Registrations",
		Columns: []Column{
			{Header: "Name", Width: 20},
			{Header: "Email", Width: 30},
			{Header: "Phone", Width: 15},
			{Header: "College", Width: 25},
			{Header: "Events", Width: 40},
			{Header: "Status", Width: 15},
			{Header: "Date", Width: 20},
			{Header: "Screenshot URL", Width: 40},
		},
		Rows: make([][]any, 0, len(regs)),
	}

	for _, r := range regs {
		names := make([]string, 0, len(r.Events))
		for _, e := range r.Events {
			names = append(names, e.EventName)
		}
		date := ""
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Format(dateLayout)
		}
		t.Rows = append(t.Rows, []any{
			r.UserName,
			r.UserEmail,
			r.UserPhone,
			r.UserCollege,
			strings.Join(names, ", "),
			string(r.PaymentStatus),
			date,
			r.PaymentScreenshot,
		})
	}

	return t
}

func TeamMembers(members []*model.TeamMemberRecord) *Table {
	t := &Table{
		Name: "Team Members",
		Columns: []Column{
			{Header: "Name", Width: 20},
			{Header: "Email", Width: 30},
			{Header: "Phone Number", Width: 15},
			{Header: "Screenshot URL", Width: 40},
		},
		Rows: make([][]any, 0, len(members)),
	}

	for _, m := range members {
		t.Rows = append(t.Rows, []any{m.Name, m.Email, m.PhoneNumber, m.ScreenshotURL})
	}

	return t
}

func (t *Table) Headers() []any {
	out := make([]any, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, c.Header)
	}
	return out
}

// FileName is the download name for an export created on the given day.
func FileName(t *Table, day time.Time) string {
	return "TECHXAURA_" + strings.ReplaceAll(t.Name, " ", "") + "_" + day.Format(dateLayout) + ".xlsx"
}
