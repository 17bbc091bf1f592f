package httpapi

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/jobs"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/report"

	"go.uber.org/zap"
)

// ReportService is the job controller surface the handler needs.
type ReportService interface {
	Submit(ctx context.Context) (string, error)
	Poll(ctx context.Context, reportID string) (jobs.PollResult, error)
}

// ArtifactOpener reads back a saved report by location.
type ArtifactOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// ReportHandler serves the report trigger/poll endpoints.
type ReportHandler struct {
	service   ReportService
	artifacts ArtifactOpener
	logger    *zap.Logger
}

func NewReportHandler(service ReportService, artifacts ArtifactOpener, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service:   service,
		artifacts: artifacts,
		logger:    logger,
	}
}

// POST /trigger_report
func (h *ReportHandler) TriggerReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := h.service.Submit(r.Context())
	if err != nil {
		h.logger.Error("Failed to submit report job", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to trigger report"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"report_id": reportID})
}

// GET /get_report?report_id=...&format=csv|xlsx
//
// Running and Failed answer with a status object; Complete streams the
// artifact, as CSV by default or converted to Excel when format=xlsx.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := r.URL.Query().Get("report_id")
	if reportID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "report_id is required"})
		return
	}

	result, err := h.service.Poll(r.Context(), reportID)
	if err != nil {
		if jobs.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Report not found"})
			return
		}
		h.logger.Error("Failed to poll report job",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get report"})
		return
	}

	if result.Status != domain.JobComplete {
		writeJSON(w, http.StatusOK, map[string]string{"status": string(result.Status)})
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		h.serveExcel(w, reportID, result.FilePath)
		return
	}
	h.serveCSV(w, reportID, result.FilePath)
}

func (h *ReportHandler) serveCSV(w http.ResponseWriter, reportID, path string) {
	f, err := h.artifacts.Open(path)
	if err != nil {
		h.logger.Error("Report artifact missing",
			zap.String("report_id", reportID),
			zap.String("file_path", path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Report file not found"})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "store_report_"+reportID+".csv"))
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn("Failed to stream report",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
	}
}

func (h *ReportHandler) serveExcel(w http.ResponseWriter, reportID, path string) {
	f, err := h.artifacts.Open(path)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Report file not found"})
		return
	}
	defer f.Close()

	rows, err := readArtifactCSV(f)
	if err != nil {
		h.logger.Error("Failed to read report artifact",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read report"})
		return
	}

	data, err := report.BuildExcel(rows)
	if err != nil {
		h.logger.Error("Failed to build Excel report",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build report"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "store_report_"+reportID+".xlsx"))
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to stream report",
			zap.String("report_id", reportID),
			zap.Error(err),
		)
	}
}

// readArtifactCSV parses a saved artifact back into metrics records for
// re-rendering. The artifact layout is fixed: header row, then one row per
// store in report.Columns order.
func readArtifactCSV(r io.Reader) ([]domain.StoreMetrics, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse report csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]domain.StoreMetrics, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(report.Columns) {
			return nil, fmt.Errorf("unexpected report row width %d", len(rec))
		}
		var m domain.StoreMetrics
		m.StoreID = rec[0]
		values := []*float64{
			&m.UptimeLastHour,
			&m.UptimeLastDay,
			&m.UptimeLastWeek,
			&m.DowntimeLastHour,
			&m.DowntimeLastDay,
			&m.DowntimeLastWeek,
		}
		for i, dst := range values {
			if _, err := fmt.Sscanf(rec[i+1], "%f", dst); err != nil {
				return nil, fmt.Errorf("failed to parse report value %q: %w", rec[i+1], err)
			}
		}
		rows = append(rows, m)
	}

	return rows, nil
}
