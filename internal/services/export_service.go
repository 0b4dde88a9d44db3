package services

import (
	"io"

	"finboard/internal/export"
)

// exportService writes the current transactions view as a file.
type exportService struct {
	registry *Registry
}

// NewExportService creates a new ExportServicer.
func NewExportService(registry *Registry) ExportServicer {
	return &exportService{registry: registry}
}

// ExportView writes the records of the user's current view.
func (s *exportService) ExportView(userID string, format export.Format, w io.Writer) error {
	ws, err := s.registry.Workspace(userID)
	if err != nil {
		return err
	}
	return export.Write(w, format, ws.View().Records)
}
