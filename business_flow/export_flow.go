package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
	"github.com/voxlane/console/utils"
	"github.com/xuri/excelize/v2"
)

// ExportFlow generates operator downloads: the call-history CSV, the detailed
// XLSX report joining calls with their artifacts, and the contact upload
// template derived from a campaign's prompt variables.
type ExportFlow interface {
	ExportCallsCSV(ctx context.Context, req *dto.ExportCallsRequest) (*dto.ExportFile, error)
	DetailedReport(ctx context.Context, req *dto.DetailedReportRequest) (*dto.ExportFile, error)
	ContactTemplate(ctx context.Context, campaignID string) (*dto.ExportFile, error)
}

// ExportFlowImpl implements ExportFlow.
type ExportFlowImpl struct {
	calls           platform.CallRepository
	campaigns       platform.CampaignRepository
	pageSize        int
	artifactWorkers int
	maxReportCalls  int
}

// NewExportFlow creates a new export flow.
func NewExportFlow(calls platform.CallRepository, campaigns platform.CampaignRepository, pageSize, artifactWorkers, maxReportCalls int) ExportFlow {
	if pageSize <= 0 {
		pageSize = 100
	}
	if artifactWorkers <= 0 {
		artifactWorkers = 8
	}
	if maxReportCalls <= 0 {
		maxReportCalls = 10000
	}
	return &ExportFlowImpl{
		calls:           calls,
		campaigns:       campaigns,
		pageSize:        pageSize,
		artifactWorkers: artifactWorkers,
		maxReportCalls:  maxReportCalls,
	}
}

var callExportHeader = []string{"Sid", "To", "From", "Status", "Duration", "Direction", "DateCreated", "StartTime", "EndTime", "Price", "Rating"}

// ExportCallsCSV walks the filtered listing to exhaustion, enriches every row
// with that call's artifacts, and renders it as CSV. The format matches what
// downstream tooling already ingests: every cell is wrapped in double quotes,
// and embedded quotes pass through untouched.
func (s *ExportFlowImpl) ExportCallsCSV(ctx context.Context, req *dto.ExportCallsRequest) (*dto.ExportFile, error) {
	calls, err := s.collectCalls(ctx, &dto.CallListRequest{
		CampaignID:  req.CampaignID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Search:      req.Search,
		Status:      req.Status,
		DurationMin: req.DurationMin,
		DurationMax: req.DurationMax,
	})
	if err != nil {
		return nil, err
	}
	if len(calls) == 0 {
		return nil, NewBusinessError("NOTHING_TO_EXPORT", "no calls match the current filters", ErrNothingToExport)
	}

	artifactData := s.fetchArtifacts(ctx, calls)

	var buf bytes.Buffer
	header := append(append([]string{}, callExportHeader...), "Summary", "Categories", "ExtractedData")
	writeQuotedRow(&buf, header)
	for _, c := range calls {
		data := artifactData[c.Sid]
		row := append(callExportRow(c), data.summary, joinKVCell(data.categories), joinKVCell(data.extracted))
		writeQuotedRow(&buf, row)
	}

	return &dto.ExportFile{
		FileName:    fmt.Sprintf("calls_%s_%s.csv", req.CampaignID, utils.ExportStamp(utils.UTCNow())),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

// DetailedReport joins every matching call with its post-call artifacts into
// one XLSX sheet. Artifact keys vary per call, so the columns are the union
// of every key seen; transcripts are deliberately left out of the grid.
func (s *ExportFlowImpl) DetailedReport(ctx context.Context, req *dto.DetailedReportRequest) (*dto.ExportFile, error) {
	calls, err := s.collectCalls(ctx, &dto.CallListRequest{
		CampaignID: req.CampaignID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		return nil, err
	}
	if len(calls) == 0 {
		return nil, NewBusinessError("NOTHING_TO_EXPORT", "no calls match the current filters", ErrNothingToExport)
	}

	artifactData := s.fetchArtifacts(ctx, calls)

	// Union of artifact keys across all calls, sorted for a stable layout.
	keySet := make(map[string]struct{})
	for _, data := range artifactData {
		for k := range data.categories {
			keySet["category:"+k] = struct{}{}
		}
		for k := range data.extracted {
			keySet[k] = struct{}{}
		}
	}
	extraKeys := make([]string, 0, len(keySet))
	for k := range keySet {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := append(append([]string{}, callExportHeader...), "Summary")
	header = append(header, extraKeys...)
	if err := setStringRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for i, c := range calls {
		row := callExportRow(c)
		data := artifactData[c.Sid]
		row = append(row, data.summary)
		for _, key := range extraKeys {
			if v, ok := strings.CutPrefix(key, "category:"); ok {
				row = append(row, data.categories[v])
			} else {
				row = append(row, data.extracted[key])
			}
		}
		if err := setStringRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return &dto.ExportFile{
		FileName:    fmt.Sprintf("report_%s_%s.xlsx", req.CampaignID, utils.ExportStamp(utils.UTCNow())),
		ContentType: "application/octet-stream",
		Data:        buf.Bytes(),
	}, nil
}

// ContactTemplate builds the upload template for a campaign: a phone number
// column followed by one column per prompt variable.
func (s *ExportFlowImpl) ContactTemplate(ctx context.Context, campaignID string) (*dto.ExportFile, error) {
	campaign, err := s.campaigns.ByID(ctx, campaignID)
	if err != nil {
		return nil, mapPlatformError(err, ErrCampaignNotFound)
	}

	header := []string{"phone_number"}
	vars := make([]string, 0, len(campaign.LLM.PromptJSON.PromptVariables))
	for k := range campaign.LLM.PromptJSON.PromptVariables {
		vars = append(vars, k)
	}
	sort.Strings(vars)
	header = append(header, vars...)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := setStringRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return &dto.ExportFile{
		FileName:    fmt.Sprintf("contacts_template_%s.xlsx", campaignID),
		ContentType: "application/octet-stream",
		Data:        buf.Bytes(),
	}, nil
}

// collectCalls walks the cursor to exhaustion, bounded by maxReportCalls.
func (s *ExportFlowImpl) collectCalls(ctx context.Context, filters *dto.CallListRequest) ([]models.Call, error) {
	filters.PageSize = s.pageSize
	query, err := buildCallQuery(filters, s.pageSize)
	if err != nil {
		return nil, err
	}

	var calls []models.Call
	for {
		page, err := s.calls.List(ctx, *query)
		if err != nil {
			return nil, mapPlatformError(err, ErrCampaignNotFound)
		}
		calls = append(calls, page.Calls...)
		if len(calls) > s.maxReportCalls {
			return nil, NewBusinessErrorf("REPORT_TOO_LARGE", "report exceeds the maximum of %d calls", ErrReportTooLarge, s.maxReportCalls)
		}
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		query.Cursor = page.NextCursor
	}

	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].SortTimestamp() > calls[j].SortTimestamp()
	})
	return calls, nil
}

type artifactRow struct {
	summary    string
	categories map[string]string
	extracted  map[string]string
}

// fetchArtifacts pulls artifact bundles concurrently with a bounded worker
// pool. Individual failures degrade to blank cells rather than failing the
// whole report.
func (s *ExportFlowImpl) fetchArtifacts(ctx context.Context, calls []models.Call) map[string]artifactRow {
	results := make(map[string]artifactRow, len(calls))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.artifactWorkers)

	for _, c := range calls {
		wg.Add(1)
		sem <- struct{}{}
		go func(sid string) {
			defer wg.Done()
			defer func() { <-sem }()

			artifacts, err := s.calls.Artifacts(ctx, sid)
			if err != nil || artifacts.Empty() {
				return
			}
			row := artifactRow{
				summary:    artifacts.Summary,
				categories: parseEmbeddedJSON(artifacts.Category),
				extracted:  parseEmbeddedJSON(artifacts.ExtractedData),
			}
			mu.Lock()
			results[sid] = row
			mu.Unlock()
		}(c.Sid)
	}
	wg.Wait()
	return results
}

func callExportRow(c models.Call) []string {
	rating := ""
	if c.Rating > 0 {
		rating = strconv.Itoa(c.Rating)
	}
	return []string{
		c.Sid, c.To, c.From, c.Status, strconv.Itoa(c.Duration),
		c.Direction, c.DateCreated, c.StartTime, c.EndTime, c.Price, rating,
	}
}

// joinKVCell renders a parsed artifact map as one CSV cell, sorted by key so
// the cell is stable across exports.
func joinKVCell(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+m[k])
	}
	return strings.Join(pairs, "; ")
}

// writeQuotedRow emits one CSV line with every cell double-quote wrapped.
// Embedded quotes are passed through as-is to stay byte-compatible with the
// files the ingestion side already accepts.
func writeQuotedRow(buf *bytes.Buffer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(cell)
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

func setStringRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
