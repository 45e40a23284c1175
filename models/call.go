package models

import (
	"time"
)

// Call is a single call record as the telephony provider reports it. Calls are
// immutable from the console's perspective except for the operator rating.
// Timestamp fields stay strings because providers are not consistent about
// their format; SortTimestamp parses them leniently.
type Call struct {
	Sid          string `json:"Sid"`
	To           string `json:"To"`
	From         string `json:"From"`
	Status       string `json:"Status"`
	Duration     int    `json:"Duration"`
	Price        string `json:"Price,omitempty"`
	Direction    string `json:"Direction,omitempty"`
	DateCreated  string `json:"DateCreated,omitempty"`
	DateUpdated  string `json:"DateUpdated,omitempty"`
	StartTime    string `json:"StartTime,omitempty"`
	EndTime      string `json:"EndTime,omitempty"`
	CallerName   string `json:"CallerName,omitempty"`
	RecordingURL string `json:"RecordingUrl,omitempty"`
	Rating       int    `json:"rating,omitempty"`
}

// callTimeLayouts are tried in order when parsing provider timestamps.
var callTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseCallTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range callTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortTimestamp derives the ordering key for a call. The fallback chain is
// DateCreated, then StartTime, then EndTime, then the zero epoch, so malformed
// records still land in a stable position at the end of a descending sort.
func (c Call) SortTimestamp() int64 {
	for _, s := range []string{c.DateCreated, c.StartTime, c.EndTime} {
		if t, ok := parseCallTime(s); ok {
			return t.UnixMilli()
		}
	}
	return 0
}

// CallPage is one page of a cursor-paginated call listing
type CallPage struct {
	Calls      []Call `json:"calls"`
	NextCursor string `json:"next_cursor"`
	HasMore    bool   `json:"has_more"`
}

// TranscriptMessage is one turn of a call transcription
type TranscriptMessage struct {
	Role      string `json:"role"` // assistant | user
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Transcription is the ordered conversation transcript of a call
type Transcription struct {
	Messages []TranscriptMessage `json:"messages"`
}

// CallArtifacts are the per-call insight artifacts generated after a call
// completes. Category and ExtractedData arrive as JSON-encoded strings (the
// category occasionally wrapped in markdown code fencing) and are parsed
// defensively downstream.
type CallArtifacts struct {
	Summary       string        `json:"summary"`
	Category      string        `json:"category"`
	ExtractedData string        `json:"extracted-data"`
	Transcription Transcription `json:"transcription"`
}

// Empty reports whether no artifact has been generated for the call yet
func (a CallArtifacts) Empty() bool {
	return a.Summary == "" && a.Category == "" && a.ExtractedData == "" && len(a.Transcription.Messages) == 0
}
