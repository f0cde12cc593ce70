package model

import "time"

// StageMetrics represents metrics for a single pipeline stage
type StageMetrics struct {
	StageName        string        `json:"stage_name"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	Duration         time.Duration `json:"duration"`
	RecordsProcessed int64         `json:"records_processed"`
	BytesProcessed   int64         `json:"bytes_processed,omitempty"`
}

// RunSummary represents the outcome of one pipeline run
type RunSummary struct {
	SourceURL      string         `json:"source_url"`
	TotalRecords   int64          `json:"total_records"`
	ProcessingTime time.Duration  `json:"processing_time"`
	Stages         []StageMetrics `json:"stages"`
}

// Stage returns the metrics of the named stage, if it ran
func (s RunSummary) Stage(name string) (StageMetrics, bool) {
	for _, st := range s.Stages {
		if st.StageName == name {
			return st, true
		}
	}
	return StageMetrics{}, false
}
