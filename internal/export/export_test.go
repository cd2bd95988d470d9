package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRegistrations() []*model.Registration {
	return []*model.Registration{
		{
			ID:          "r1",
			UserName:    "Alice",
			UserEmail:   "alice@example.com",
			UserPhone:   "9999999999",
			UserCollege: "PSG Tech",
			Events: []model.RegisteredEvent{
				{EventID: "mindsparkx", EventName: "MindSparkX"},
				{EventID: "fixtheglitch", EventName: "Fix The Glitch"},
			},
			PaymentStatus:     model.PaymentStatusVerified,
			PaymentScreenshot: "https://storage/proof.png",
			CreatedAt:         time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestRegistrations(t *testing.T) {
	table := Registrations(sampleRegistrations())

	assert.Equal(t, []any{"Name", "Email", "Phone", "College", "Events", "Status", "Date", "Screenshot URL"}, table.Headers())
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []any{
		"Alice", "alice@example.com", "9999999999", "PSG Tech",
		"MindSparkX, Fix The Glitch", "verified", "2026-02-14", "https://storage/proof.png",
	}, table.Rows[0])
}

func TestTeamMembers(t *testing.T) {
	table := TeamMembers([]*model.TeamMemberRecord{
		{Name: "Bob", Email: "bob@example.com", PhoneNumber: "123", ScreenshotURL: "https://storage/p.png"},
	})

	assert.Equal(t, []any{"Name", "Email", "Phone Number", "Screenshot URL"}, table.Headers())
	assert.Equal(t, []any{"Bob", "bob@example.com", "123", "https://storage/p.png"}, table.Rows[0])
}

func TestXLSX(t *testing.T) {
	table := Registrations(sampleRegistrations())

	data, err := XLSX(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Registrations")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Screenshot URL", rows[0][7])
	assert.Equal(t, "MindSparkX, Fix The Glitch", rows[1][4])

	styleID, err := f.GetCellStyle("Registrations", "H1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	width, err := f.GetColWidth("Registrations", "E")
	require.NoError(t, err)
	assert.Equal(t, 40.0, width)
}

func TestXLSX_Empty(t *testing.T) {
	data, err := XLSX(TeamMembers(nil))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Team Members")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Name", "Email", "Phone Number", "Screenshot URL"}, rows[0])
}

func TestFileName(t *testing.T) {
	day := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "TECHXAURA_Registrations_2026-02-14.xlsx", FileName(Registrations(nil), day))
	assert.Equal(t, "TECHXAURA_TeamMembers_2026-02-14.xlsx", FileName(TeamMembers(nil), day))
}

func TestFormatRequests(t *testing.T) {
	table := TeamMembers(nil)
	requests := formatRequests(0, table)

	require.Len(t, requests, 1+len(table.Columns))
	require.NotNil(t, requests[0].RepeatCell)
	assert.True(t, requests[0].RepeatCell.Cell.UserEnteredFormat.TextFormat.Bold)
	assert.Contains(t, requests[0].RepeatCell.Range.ForceSendFields, "SheetId")

	assert.Equal(t, int64(140), requests[1].UpdateDimensionProperties.Properties.PixelSize)
	assert.Equal(t, int64(280), requests[4].UpdateDimensionProperties.Properties.PixelSize)
	assert.Equal(t, int64(3), requests[4].UpdateDimensionProperties.Range.StartIndex)
}

func TestA1Range(t *testing.T) {
	assert.Equal(t, "'Team Members'!A:Z", a1Range("Team Members", "A:Z"))
	assert.Equal(t, "'Registrations'!A1", a1Range("Registrations", "A1"))
	assert.Equal(t, "'O''Brien''s'!A1", a1Range("O'Brien's", "A1"))
}
