package businessflow

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/models"
	"github.com/xuri/excelize/v2"
)

func TestExportCallsCSVFormat(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls: []models.Call{{
			Sid:         "CA123",
			To:          `+1 "office" line`,
			From:        "+15550002222",
			Status:      "completed",
			Duration:    95,
			Direction:   "outbound",
			DateCreated: "2026-08-20T10:00:00Z",
			StartTime:   "2026-08-20T10:00:01Z",
			EndTime:     "2026-08-20T10:01:36Z",
			Price:       "0.013",
			Rating:      4,
		}},
	}
	flow := NewExportFlow(repo, newFakeCampaignRepo(), 100, 2, 1000)

	file, err := flow.ExportCallsCSV(context.Background(), &dto.ExportCallsRequest{CampaignID: "camp-1"})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasPrefix(file.FileName, "calls_camp-1_"))
	assert.True(t, strings.HasSuffix(file.FileName, ".csv"))

	lines := strings.Split(string(file.Data), "\r\n")
	require.Len(t, lines, 3, "header, one row, trailing CRLF")
	assert.Equal(t, `"Sid","To","From","Status","Duration","Direction","DateCreated","StartTime","EndTime","Price","Rating","Summary","Categories","ExtractedData"`, lines[0])

	// Every cell is quote-wrapped; embedded quotes pass through untouched.
	// Calls without artifacts still carry the artifact columns, empty.
	assert.Equal(t, `"CA123","+1 "office" line","+15550002222","completed","95","outbound","2026-08-20T10:00:00Z","2026-08-20T10:00:01Z","2026-08-20T10:01:36Z","0.013","4","","",""`, lines[1])
	assert.Empty(t, lines[2])
}

func TestExportCallsCSVEnrichesWithArtifacts(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls: []models.Call{{Sid: "CA1", Status: "completed", Rating: 5}},
	}
	repo.artifacts["CA1"] = &models.CallArtifacts{
		Summary:       "Customer renewed.",
		Category:      `{"outcome": "renewed", "sentiment": "positive"}`,
		ExtractedData: `{"renewal_date": "2026-09-15"}`,
	}
	flow := NewExportFlow(repo, newFakeCampaignRepo(), 100, 2, 1000)

	file, err := flow.ExportCallsCSV(context.Background(), &dto.ExportCallsRequest{CampaignID: "camp-1"})
	require.NoError(t, err)

	lines := strings.Split(string(file.Data), "\r\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], `,"Customer renewed.","outcome=renewed; sentiment=positive","renewal_date=2026-09-15"`), "row: %s", lines[1])
}

func TestExportCallsCSVBlankRating(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls: []models.Call{{Sid: "CA1", Status: "failed"}},
	}
	flow := NewExportFlow(repo, newFakeCampaignRepo(), 100, 2, 1000)

	file, err := flow.ExportCallsCSV(context.Background(), &dto.ExportCallsRequest{CampaignID: "camp-1"})
	require.NoError(t, err)

	lines := strings.Split(string(file.Data), "\r\n")
	cells := strings.Split(lines[1], ",")
	require.Len(t, cells, 14)
	assert.Equal(t, `""`, cells[10], "unrated calls export an empty rating cell")
}

func TestExportCallsCSVNothingToExport(t *testing.T) {
	flow := NewExportFlow(newFakeCallRepo(), newFakeCampaignRepo(), 100, 2, 1000)

	_, err := flow.ExportCallsCSV(context.Background(), &dto.ExportCallsRequest{CampaignID: "camp-1"})
	assert.True(t, IsNothingToExport(err))
}

func TestCollectCallsWalksCursorToExhaustion(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls:      []models.Call{{Sid: "page1", DateCreated: "2026-08-01T09:00:00Z"}},
		NextCursor: "c2",
		HasMore:    true,
	}
	repo.pages["c2"] = &models.CallPage{
		Calls:      []models.Call{{Sid: "page2", DateCreated: "2026-08-02T09:00:00Z"}},
		NextCursor: "c3",
		HasMore:    true,
	}
	repo.pages["c3"] = &models.CallPage{
		Calls: []models.Call{{Sid: "page3", DateCreated: "2026-08-03T09:00:00Z"}},
	}
	flow := NewExportFlow(repo, newFakeCampaignRepo(), 100, 2, 1000)

	file, err := flow.ExportCallsCSV(context.Background(), &dto.ExportCallsRequest{CampaignID: "camp-1"})
	require.NoError(t, err)

	assert.Equal(t, 3, repo.listCalls)
	lines := strings.Split(string(file.Data), "\r\n")
	require.Len(t, lines, 5)
	// Sorted newest first across page boundaries.
	assert.Contains(t, lines[1], `"page3"`)
	assert.Contains(t, lines[3], `"page1"`)
}

func TestCollectCallsBoundedByMaxReportCalls(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls:      []models.Call{{Sid: "a"}, {Sid: "b"}},
		NextCursor: "c2",
		HasMore:    true,
	}
	repo.pages["c2"] = &models.CallPage{
		Calls: []models.Call{{Sid: "c"}, {Sid: "d"}},
	}
	flow := NewExportFlow(repo, newFakeCampaignRepo(), 100, 2, 3)

	_, err := flow.ExportCallsCSV(context.Background(), &dto.ExportCallsRequest{CampaignID: "camp-1"})
	assert.True(t, IsReportTooLarge(err))
}

func TestDetailedReportUnionsArtifactKeys(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls: []models.Call{
			{Sid: "sid-1", DateCreated: "2026-08-02T09:00:00Z"},
			{Sid: "sid-2", DateCreated: "2026-08-01T09:00:00Z"},
		},
	}
	repo.artifacts["sid-1"] = &models.CallArtifacts{
		Summary:       "Renewed.",
		Category:      `{"outcome": "renewed"}`,
		ExtractedData: `{"renewal_date": "2026-09-15"}`,
	}
	repo.artifacts["sid-2"] = &models.CallArtifacts{
		Summary:       "No answer.",
		Category:      `{"outcome": "no_answer", "sentiment": "neutral"}`,
		ExtractedData: `{"callback": "yes"}`,
	}
	flow := NewExportFlow(repo, newFakeCampaignRepo(), 100, 2, 1000)

	file, err := flow.DetailedReport(context.Background(), &dto.DetailedReportRequest{CampaignID: "camp-1"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.FileName, ".xlsx"))
	// The report always spans the whole campaign; no status narrowing upstream.
	assert.Empty(t, repo.lastQuery.Status)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	// Fixed call columns, then Summary, then the sorted key union with
	// category keys prefixed.
	assert.Equal(t, "Sid", header[0])
	assert.Contains(t, header, "Summary")
	assert.Contains(t, header, "category:outcome")
	assert.Contains(t, header, "category:sentiment")
	assert.Contains(t, header, "renewal_date")
	assert.Contains(t, header, "callback")

	// Calls sort newest first, so sid-1 is the first data row.
	assert.Equal(t, "sid-1", rows[1][0])
	summaryCol := indexOf(header, "Summary")
	assert.Equal(t, "Renewed.", rows[1][summaryCol])
	outcomeCol := indexOf(header, "category:outcome")
	assert.Equal(t, "renewed", rows[1][outcomeCol])
	assert.Equal(t, "no_answer", rows[2][outcomeCol])
}

func TestDetailedReportToleratesMissingArtifacts(t *testing.T) {
	repo := newFakeCallRepo()
	repo.pages[""] = &models.CallPage{
		Calls: []models.Call{{Sid: "sid-1", DateCreated: "2026-08-01T09:00:00Z"}},
	}
	flow := NewExportFlow(repo, newFakeCampaignRepo(), 100, 2, 1000)

	file, err := flow.DetailedReport(context.Background(), &dto.DetailedReportRequest{CampaignID: "camp-1"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "sid-1", rows[1][0])
}

func TestContactTemplateColumns(t *testing.T) {
	campaign := &models.Campaign{
		CampaignID: "camp-1",
		Name:       "Winback",
		LLM: models.LLMConfig{
			PromptJSON: models.PromptJSON{
				PromptVariables: map[string]string{"plan": "gold", "agent": "Dana"},
			},
		},
	}
	flow := NewExportFlow(newFakeCallRepo(), newFakeCampaignRepo(campaign), 100, 2, 1000)

	file, err := flow.ContactTemplate(context.Background(), "camp-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"phone_number", "agent", "plan"}, rows[0])
}

func TestContactTemplateUnknownCampaign(t *testing.T) {
	flow := NewExportFlow(newFakeCallRepo(), newFakeCampaignRepo(), 100, 2, 1000)

	_, err := flow.ContactTemplate(context.Background(), "missing")
	assert.True(t, IsCampaignNotFound(err))
}

func indexOf(row []string, want string) int {
	for i, v := range row {
		if v == want {
			return i
		}
	}
	return -1
}
