package dto

// ExportCallsRequest exports the current call-history result set as CSV. The
// filters mirror CallListRequest; the export walks every page itself.
type ExportCallsRequest struct {
	CampaignID  string `json:"campaign_id" validate:"required"`
	StartDate   string `json:"start_date" validate:"omitempty"`
	EndDate     string `json:"end_date" validate:"omitempty"`
	Search      string `json:"search" validate:"omitempty,max=255"`
	Status      string `json:"status" validate:"omitempty,max=64"`
	DurationMin *int   `json:"duration_min" validate:"omitempty,min=0"`
	DurationMax *int   `json:"duration_max" validate:"omitempty,min=0"`
}

// DetailedReportRequest builds the XLSX report joining calls with their
// post-call artifacts. The report always covers the whole campaign within the
// date window; it takes no narrowing filters.
type DetailedReportRequest struct {
	CampaignID string `json:"campaign_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"omitempty"`
	EndDate    string `json:"end_date" validate:"omitempty"`
}

// ExportFile is a generated download.
type ExportFile struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}
