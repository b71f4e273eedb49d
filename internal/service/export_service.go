package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edusuite/exam-seating-api/internal/dto"
	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
	"github.com/edusuite/exam-seating-api/pkg/export"
	"github.com/edusuite/exam-seating-api/pkg/jobs"
	"github.com/edusuite/exam-seating-api/pkg/storage"
)

type exportPlanLoader interface {
	GetByID(ctx context.Context, id string) (*models.SeatingPlan, error)
}

type exportFileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type chartRenderer interface {
	Render(doc export.ChartDocument) ([]byte, error)
}

type stickerRenderer interface {
	Render(title string, stickers []export.Sticker) ([]byte, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type exportMetrics interface {
	IncExportJob(format, status string)
}

// ExportJobStatus tracks an export job through its lifecycle.
type ExportJobStatus string

const (
	ExportStatusPending    ExportJobStatus = "PENDING"
	ExportStatusProcessing ExportJobStatus = "PROCESSING"
	ExportStatusDone       ExportJobStatus = "DONE"
	ExportStatusFailed     ExportJobStatus = "FAILED"
)

// ExportJob is the tracked state of one rendering job.
type ExportJob struct {
	ID        string
	PlanID    string
	Format    dto.ExportFormat
	Status    ExportJobStatus
	RelPath   string
	Token     string
	URL       string
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExportServiceConfig tunes rendering and download behaviour.
type ExportServiceConfig struct {
	APIPrefix  string
	ResultTTL  time.Duration
	Workers    int
	MaxRetries int
}

// ExportService renders committed plans into charts, sticker sheets and CSV
// files. Rendering runs on a background worker queue; downloads go through
// signed tokens.
type ExportService struct {
	plans    exportPlanLoader
	storage  exportFileStorage
	signer   *storage.SignedURLSigner
	chart    chartRenderer
	stickers stickerRenderer
	csv      csvRenderer
	metrics  exportMetrics
	logger   *zap.Logger
	cfg      ExportServiceConfig

	queue *jobs.Queue

	mu       sync.RWMutex
	registry map[string]*ExportJob
}

// NewExportService constructs the service and its worker queue. Call Start
// before enqueueing jobs.
func NewExportService(plans exportPlanLoader, fileStorage exportFileStorage, signer *storage.SignedURLSigner, metrics exportMetrics, logger *zap.Logger, cfg ExportServiceConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}

	s := &ExportService{
		plans:    plans,
		storage:  fileStorage,
		signer:   signer,
		chart:    export.NewChartExporter(),
		stickers: export.NewStickerExporter(),
		csv:      export.NewCSVExporter(),
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
		registry: make(map[string]*ExportJob),
	}
	s.queue = jobs.NewQueue("seating-exports", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the rendering workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the rendering workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// CreateJob verifies the plan exists and enqueues a rendering job.
func (s *ExportService) CreateJob(ctx context.Context, planID string, format dto.ExportFormat) (*ExportJob, error) {
	if _, err := s.loadPlan(ctx, planID); err != nil {
		return nil, err
	}

	job := &ExportJob{
		ID:        uuid.NewString(),
		PlanID:    planID,
		Format:    format,
		Status:    ExportStatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.registry[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(format), Payload: job.ID}); err != nil {
		s.setFailed(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}
	return s.snapshot(job.ID), nil
}

// Job returns the current state of one export job.
func (s *ExportService) Job(jobID string) (*ExportJob, error) {
	job := s.snapshot(jobID)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return job, nil
}

// ResolveToken validates a download token and opens the referenced file.
func (s *ExportService) ResolveToken(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "invalid or expired download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}
	return file, relPath, nil
}

// Cleanup removes rendered files older than the result TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.ResultTTL)
}

func (s *ExportService) process(ctx context.Context, queued jobs.Job) error {
	jobID, _ := queued.Payload.(string)
	job := s.snapshot(jobID)
	if job == nil {
		return fmt.Errorf("export job %s missing from registry", jobID)
	}
	s.setStatus(jobID, ExportStatusProcessing, "")

	plan, err := s.loadPlan(ctx, job.PlanID)
	if err != nil {
		s.setFailed(jobID, err)
		return err
	}

	payload, ext, err := s.render(plan, job.Format)
	if err != nil {
		s.setFailed(jobID, err)
		return err
	}

	filename := s.buildFilename(plan, job.Format, ext)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		s.setFailed(jobID, err)
		return err
	}

	token, _, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		s.setFailed(jobID, err)
		return err
	}
	url := fmt.Sprintf("%s/seating/exports/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token)

	s.mu.Lock()
	if tracked, ok := s.registry[jobID]; ok {
		tracked.Status = ExportStatusDone
		tracked.RelPath = relPath
		tracked.Token = token
		tracked.URL = url
		tracked.Error = ""
		tracked.UpdatedAt = time.Now().UTC()
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.IncExportJob(string(job.Format), "done")
	}
	s.logger.Sugar().Infow("export rendered", "job_id", jobID, "plan_id", job.PlanID, "format", job.Format, "file", relPath)
	return nil
}

func (s *ExportService) render(plan *models.SeatingPlan, format dto.ExportFormat) ([]byte, string, error) {
	switch format {
	case dto.ExportChart:
		payload, err := s.chart.Render(buildChartDocument(plan))
		return payload, "pdf", err
	case dto.ExportStickers:
		title, stickers := buildStickers(plan)
		payload, err := s.stickers.Render(title, stickers)
		return payload, "pdf", err
	case dto.ExportCSV:
		payload, err := s.csv.Render(buildSeatDataset(plan))
		return payload, "csv", err
	default:
		return nil, "", fmt.Errorf("unsupported export format %s", format)
	}
}

func (s *ExportService) loadPlan(ctx context.Context, planID string) (*models.SeatingPlan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seating plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seating plan")
	}
	return plan, nil
}

func (s *ExportService) buildFilename(plan *models.SeatingPlan, format dto.ExportFormat, ext string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("seating_%s_%s_%s.%s", format, sanitizeFilename(plan.ExamName), timestamp, ext)
}

func (s *ExportService) snapshot(jobID string) *ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.registry[jobID]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}

func (s *ExportService) setStatus(jobID string, status ExportJobStatus, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.registry[jobID]; ok {
		job.Status = status
		job.Error = message
		job.UpdatedAt = time.Now().UTC()
	}
}

func (s *ExportService) setFailed(jobID string, err error) {
	s.setStatus(jobID, ExportStatusFailed, err.Error())
	if s.metrics != nil {
		if job := s.snapshot(jobID); job != nil {
			s.metrics.IncExportJob(string(job.Format), "failed")
		}
	}
}

func buildChartDocument(plan *models.SeatingPlan) export.ChartDocument {
	doc := export.ChartDocument{
		Title:    plan.ExamName,
		Subtitle: chartSubtitle(plan),
	}
	for _, room := range plan.Rooms {
		chartRoom := export.ChartRoom{Title: roomHeading(room)}
		switch room.Kind {
		case models.RoomKindBenches:
			for _, bench := range room.Benches {
				chartRoom.Cells = append(chartRoom.Cells,
					export.SeatCell{Label: fmt.Sprintf("Bench %d L", bench.BenchNo), Occupant: seatRefText(bench.LeftSeat)},
					export.SeatCell{Label: fmt.Sprintf("Bench %d R", bench.BenchNo), Occupant: seatRefText(bench.RightSeat)},
				)
			}
		default:
			for _, seat := range room.Seats {
				chartRoom.Cells = append(chartRoom.Cells, export.SeatCell{
					Label:    fmt.Sprintf("Seat %d", seat.SeatNo),
					Occupant: seat.RollNo,
				})
			}
		}
		doc.Rooms = append(doc.Rooms, chartRoom)
	}
	return doc
}

func buildStickers(plan *models.SeatingPlan) (string, []export.Sticker) {
	stickers := make([]export.Sticker, 0, plan.TotalStudents)
	for _, room := range plan.Rooms {
		for _, seat := range room.Seats {
			stickers = append(stickers, export.Sticker{Lines: []string{
				fmt.Sprintf("Roll %s", seat.RollNo),
				seat.StudentName,
				fmt.Sprintf("%s / Seat %d", room.RoomName, seat.SeatNo),
			}})
		}
		for _, bench := range room.Benches {
			if bench.LeftSeat != nil {
				stickers = append(stickers, export.Sticker{Lines: []string{
					fmt.Sprintf("Roll %s", bench.LeftSeat.RollNo),
					bench.LeftSeat.StudentName,
					fmt.Sprintf("%s / Bench %d L", room.RoomName, bench.BenchNo),
				}})
			}
			if bench.RightSeat != nil {
				stickers = append(stickers, export.Sticker{Lines: []string{
					fmt.Sprintf("Roll %s", bench.RightSeat.RollNo),
					bench.RightSeat.StudentName,
					fmt.Sprintf("%s / Bench %d R", room.RoomName, bench.BenchNo),
				}})
			}
		}
	}
	return plan.ExamName, stickers
}

func buildSeatDataset(plan *models.SeatingPlan) export.Dataset {
	headers := []string{"Room", "Position", "Side", "Roll No", "Student", "Class"}
	rows := make([]map[string]string, 0, plan.TotalStudents)
	for _, room := range plan.Rooms {
		for _, seat := range room.Seats {
			rows = append(rows, map[string]string{
				"Room":     room.RoomName,
				"Position": fmt.Sprintf("Seat %d", seat.SeatNo),
				"Side":     "",
				"Roll No":  seat.RollNo,
				"Student":  seat.StudentName,
				"Class":    "",
			})
		}
		for _, bench := range room.Benches {
			if bench.LeftSeat != nil {
				rows = append(rows, benchCSVRow(room, bench.BenchNo, "LEFT", bench.LeftSeat))
			}
			if bench.RightSeat != nil {
				rows = append(rows, benchCSVRow(room, bench.BenchNo, "RIGHT", bench.RightSeat))
			}
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func benchCSVRow(room models.RoomPlan, benchNo int, side string, ref *models.SeatRef) map[string]string {
	return map[string]string{
		"Room":     room.RoomName,
		"Position": fmt.Sprintf("Bench %d", benchNo),
		"Side":     side,
		"Roll No":  ref.RollNo,
		"Student":  ref.StudentName,
		"Class":    ref.ClassName,
	}
}

func chartSubtitle(plan *models.SeatingPlan) string {
	parts := []string{fmt.Sprintf("Total students: %d", plan.TotalStudents)}
	if plan.ExamDate != nil && *plan.ExamDate != "" {
		parts = append(parts, *plan.ExamDate)
	}
	return strings.Join(parts, " | ")
}

func roomHeading(room models.RoomPlan) string {
	heading := room.RoomName
	if room.InvigilatorName != "" {
		heading = fmt.Sprintf("%s (Invigilator: %s)", heading, room.InvigilatorName)
	}
	for _, binding := range room.Invigilators {
		heading = fmt.Sprintf("%s [%s: %s / %s]", heading, binding.Side, binding.ClassName, binding.TeacherName)
	}
	return heading
}

func seatRefText(ref *models.SeatRef) string {
	if ref == nil {
		return "-"
	}
	return ref.RollNo
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
