package pipeline

import (
	"log/slog"
	"time"

	"kosis-cpi/internal/model"
)

// Stage names recorded in the run summary
const (
	StageIngestion      = "ingestion"
	StageTransformation = "transformation"
	StageExport         = "export"
)

// PipelineTracker collects per-stage metrics for one run
type PipelineTracker struct {
	logger *slog.Logger
	start  time.Time
	stages []model.StageMetrics
}

// NewPipelineTracker starts the run clock
func NewPipelineTracker(logger *slog.Logger) *PipelineTracker {
	return &PipelineTracker{logger: logger, start: time.Now()}
}

// StartStage marks the beginning of a stage. Call the returned func when it ends.
func (pt *PipelineTracker) StartStage(stage string) func(records, bytes int64) {
	startTime := time.Now()
	pt.logger.Debug("stage started", "stage", stage)

	return func(records, bytes int64) {
		endTime := time.Now()
		m := model.StageMetrics{
			StageName:        stage,
			StartTime:        startTime,
			EndTime:          endTime,
			Duration:         endTime.Sub(startTime),
			RecordsProcessed: records,
			BytesProcessed:   bytes,
		}
		pt.stages = append(pt.stages, m)
		pt.logger.Debug("stage completed",
			"stage", stage,
			"records", records,
			"duration_ms", m.Duration.Milliseconds(),
		)
	}
}

// Summary returns the metrics gathered so far
func (pt *PipelineTracker) Summary(sourceURL string, totalRecords int64) model.RunSummary {
	return model.RunSummary{
		SourceURL:      sourceURL,
		TotalRecords:   totalRecords,
		ProcessingTime: time.Since(pt.start),
		Stages:         append([]model.StageMetrics(nil), pt.stages...),
	}
}
