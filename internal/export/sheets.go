package export

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Publisher pushes an export table to a shared spreadsheet.
type Publisher interface {
	Publish(ctx context.Context, t *Table) error
}

// pixels per character width, roughly what spreadsheet apps use for the default font
const pixelsPerChar = 7

type sheetsPublisher struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func NewSheetsPublisher(ctx context.Context, spreadsheetID, credentialsFile string) (Publisher, error) {
	opts := []option.ClientOption{option.WithScopes(sheetsv4.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create sheets service")
	}
	return &sheetsPublisher{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// Publish replaces the contents of the tab named after the table, creating the tab
// when it does not exist yet.
func (p *sheetsPublisher) Publish(ctx context.Context, t *Table) error {
	sheetID, err := p.ensureTab(ctx, t.Name)
	if err != nil {
		return err
	}

	if _, err = p.srv.Spreadsheets.Values.Clear(p.spreadsheetID, a1Range(t.Name, "A:Z"), &sheetsv4.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return errors.Wrapf(err, "clear tab %s", t.Name)
	}

	values := make([][]interface{}, 0, len(t.Rows)+1)
	values = append(values, t.Headers())
	for _, row := range t.Rows {
		values = append(values, row)
	}

	if _, err = p.srv.Spreadsheets.Values.Update(p.spreadsheetID, a1Range(t.Name, "A1"), &sheetsv4.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return errors.Wrapf(err, "write tab %s", t.Name)
	}

	if _, err = p.srv.Spreadsheets.BatchUpdate(p.spreadsheetID, &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: formatRequests(sheetID, t),
	}).Context(ctx).Do(); err != nil {
		return errors.Wrapf(err, "format tab %s", t.Name)
	}

	return nil
}

func (p *sheetsPublisher) ensureTab(ctx context.Context, title string) (int64, error) {
	ss, err := p.srv.Spreadsheets.Get(p.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, errors.Wrap(err, "get spreadsheet")
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return s.Properties.SheetId, nil
		}
	}

	resp, err := p.srv.Spreadsheets.BatchUpdate(p.spreadsheetID, &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{Properties: &sheetsv4.SheetProperties{Title: title}},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, errors.Wrapf(err, "add tab %s", title)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, errors.Errorf("add tab %s: empty reply", title)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// a1Range quotes the tab title so names with spaces or apostrophes resolve.
func a1Range(tab, cells string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'!" + cells
}

func formatRequests(sheetID int64, t *Table) []*sheetsv4.Request {
	requests := []*sheetsv4.Request{{
		RepeatCell: &sheetsv4.RepeatCellRequest{
			Range: &sheetsv4.GridRange{
				SheetId:         sheetID,
				StartRowIndex:   0,
				EndRowIndex:     1,
				ForceSendFields: []string{"SheetId", "StartRowIndex"},
			},
			Cell: &sheetsv4.CellData{
				UserEnteredFormat: &sheetsv4.CellFormat{TextFormat: &sheetsv4.TextFormat{Bold: true}},
			},
			Fields: "userEnteredFormat.textFormat.bold",
		},
	}}

	for i, c := range t.Columns {
		requests = append(requests, &sheetsv4.Request{
			UpdateDimensionProperties: &sheetsv4.UpdateDimensionPropertiesRequest{
				Range: &sheetsv4.DimensionRange{
					SheetId:         sheetID,
					Dimension:       "COLUMNS",
					StartIndex:      int64(i),
					EndIndex:        int64(i + 1),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
				Properties: &sheetsv4.DimensionProperties{PixelSize: int64(c.Width * pixelsPerChar)},
				Fields:     "pixelSize",
			},
		})
	}

	return requests
}
