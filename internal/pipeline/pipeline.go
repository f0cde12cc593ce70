package pipeline

import (
	"context"
	"io"
	"log/slog"

	"kosis-cpi/internal/model"
	"kosis-cpi/pkg/kosisapi"
)

// Job describes one retrieval: what to ask for and how to print it
type Job struct {
	Params kosisapi.Params
	// Columns kept by the projection; empty means model.CPIColumns
	Columns []string
	Render  RenderOptions
	// SourceURL is recorded in the summary and logs; it should not carry the API key
	SourceURL string
}

// ------------------- Pipeline Runner -------------------

// Run fetches, decodes, projects and renders in that order.
// Nothing is written to w unless every earlier stage succeeded.
func Run(ctx context.Context, logger *slog.Logger, f Fetcher, job Job, w io.Writer) (model.RunSummary, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	columns := job.Columns
	if len(columns) == 0 {
		columns = model.CPIColumns
	}

	tracker := NewPipelineTracker(logger)
	logger.Info("🚀 Starting pipeline", "source", job.SourceURL, "table", job.Params.TblID)

	// --- INGESTION STAGE ---
	done := tracker.StartStage(StageIngestion)
	records, size, err := Ingest(ctx, logger, f, job.Params)
	if err != nil {
		logger.Debug("❌ Ingestion failed", "error", err)
		return tracker.Summary(job.SourceURL, 0), err
	}
	done(int64(len(records)), int64(size))

	// --- TRANSFORMATION STAGE ---
	done = tracker.StartStage(StageTransformation)
	table, err := Project(records, columns)
	if err != nil {
		logger.Debug("❌ Projection failed", "error", err)
		return tracker.Summary(job.SourceURL, int64(len(records))), err
	}
	done(int64(table.Len()), 0)
	logger.Info("🔄 Projection done", "rows", table.Len(), "columns", len(table.Columns))

	// --- EXPORT STAGE ---
	done = tracker.StartStage(StageExport)
	if err := Render(w, table, job.Render); err != nil {
		logger.Debug("❌ Export failed", "error", err)
		return tracker.Summary(job.SourceURL, int64(len(records))), err
	}
	done(int64(table.Len()), 0)

	summary := tracker.Summary(job.SourceURL, int64(len(records)))
	logger.Info("🏁 Pipeline completed", "rows", table.Len(), "duration", summary.ProcessingTime)
	return summary, nil
}
