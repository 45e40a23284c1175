package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortTimestampFallbackChain(t *testing.T) {
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		call Call
		want int64
	}{
		{
			name: "date created wins",
			call: Call{
				DateCreated: "2026-08-20T10:00:00Z",
				StartTime:   "2026-08-21T10:00:00Z",
			},
			want: created.UnixMilli(),
		},
		{
			name: "start time when created missing",
			call: Call{StartTime: "2026-08-20T10:00:00Z"},
			want: created.UnixMilli(),
		},
		{
			name: "end time as last resort",
			call: Call{EndTime: "2026-08-20T10:00:00Z"},
			want: created.UnixMilli(),
		},
		{
			name: "malformed created falls through",
			call: Call{
				DateCreated: "yesterday-ish",
				StartTime:   "2026-08-20T10:00:00Z",
			},
			want: created.UnixMilli(),
		},
		{
			name: "all missing",
			call: Call{},
			want: 0,
		},
		{
			name: "all malformed",
			call: Call{DateCreated: "??", StartTime: "??", EndTime: "??"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.call.SortTimestamp())
		})
	}
}

func TestSortTimestampLenientLayouts(t *testing.T) {
	// Providers emit a handful of formats; all of them must parse.
	for _, stamp := range []string{
		"2026-08-20T10:00:00Z",
		"2026-08-20T10:00:00.123Z",
		"Thu, 20 Aug 2026 10:00:00 +0000",
		"2026-08-20 10:00:00",
		"2026-08-20T10:00:00",
	} {
		c := Call{DateCreated: stamp}
		assert.NotZero(t, c.SortTimestamp(), "layout %q must parse", stamp)
	}
}

func TestCallArtifactsEmpty(t *testing.T) {
	assert.True(t, CallArtifacts{}.Empty())
	assert.False(t, CallArtifacts{Summary: "s"}.Empty())
	assert.False(t, CallArtifacts{Category: "{}"}.Empty())
	assert.False(t, CallArtifacts{ExtractedData: "{}"}.Empty())
	assert.False(t, CallArtifacts{
		Transcription: Transcription{Messages: []TranscriptMessage{{Role: "user", Content: "hi"}}},
	}.Empty())
}
