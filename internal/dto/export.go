package dto

// ExportFormat selects the rendering of a saved plan.
type ExportFormat string

const (
	ExportChart    ExportFormat = "chart"
	ExportStickers ExportFormat = "stickers"
	ExportCSV      ExportFormat = "csv"
)

// CreateExportRequest enqueues an export job for a saved plan.
type CreateExportRequest struct {
	Format ExportFormat `json:"format" validate:"required,oneof=chart stickers csv"`
}

// ExportJobResponse reports the state of an export job. URL is a signed
// download link, set once the job finishes.
type ExportJobResponse struct {
	JobID  string `json:"jobId"`
	PlanID string `json:"planId"`
	Format string `json:"format"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// InvalidateRosterRequest drops cached roster entries, either one class or
// the whole institution.
type InvalidateRosterRequest struct {
	InstitutionID string `json:"institutionId" validate:"required"`
	ClassLabel    string `json:"classLabel"`
}
