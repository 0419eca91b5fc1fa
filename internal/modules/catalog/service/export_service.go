package service

import (
	"context"
	"fmt"
	"strings"

	"studydesk/internal/modules/catalog/domain"
	catalogout "studydesk/internal/modules/catalog/port/out"
	apperrors "studydesk/internal/platform/errors"
	"studydesk/internal/platform/logger"
	"studydesk/internal/platform/markdown"
	"studydesk/internal/platform/slug"
)

const summaryBlock = "ai-summary"

type ExportService struct {
	catalog   *CatalogService
	writer    catalogout.RemoteWriter
	inspector catalogout.DocumentInspector
	sink      catalogout.ExportSink
	launcher  catalogout.ExternalLauncher
	log       *logger.Logger
}

func NewExportService(
	catalog *CatalogService,
	writer catalogout.RemoteWriter,
	inspector catalogout.DocumentInspector,
	sink catalogout.ExportSink,
	launcher catalogout.ExternalLauncher,
	log *logger.Logger,
) *ExportService {
	return &ExportService{
		catalog:   catalog,
		writer:    writer,
		inspector: inspector,
		sink:      sink,
		launcher:  launcher,
		log:       logger.OrNop(log).With("module", "catalog", "component", "export"),
	}
}

// ExportNote writes one note to the export sink. The pdf format is rendered
// remotely; md is rendered locally from the cached note.
func (s *ExportService) ExportNote(ctx context.Context, id string, format domain.ExportFormat, open bool) (domain.ExportResult, error) {
	if err := domain.RequireID("note", id); err != nil {
		return domain.ExportResult{}, err
	}
	if err := format.Validate(); err != nil {
		return domain.ExportResult{}, err
	}

	var (
		data  []byte
		name  string
		pages int
		err   error
	)
	switch format {
	case domain.ExportPDF:
		data, name, pages, err = s.exportPDF(ctx, id)
	case domain.ExportMarkdown:
		data, name, err = s.exportMarkdown(ctx, id)
	}
	if err != nil {
		return domain.ExportResult{}, err
	}

	path, err := s.sink.Write(ctx, name, data)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("write export: %w", err)
	}
	s.log.Info("note exported", "note", id, "format", string(format), "path", path)
	if open && s.launcher != nil {
		if err := s.launcher.Open(ctx, path); err != nil {
			return domain.ExportResult{}, err
		}
	}
	return domain.ExportResult{NoteID: id, Format: format, Path: path, Bytes: len(data), Pages: pages}, nil
}

func (s *ExportService) exportPDF(ctx context.Context, id string) ([]byte, string, int, error) {
	data, name, err := s.writer.ExportNote(ctx, id)
	if err != nil {
		return nil, "", 0, fmt.Errorf("export note: %w", err)
	}
	pages, err := s.inspector.PageCount(data)
	if err != nil {
		return nil, "", 0, fmt.Errorf("inspect exported pdf: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = "note-" + slug.Make(id, "export") + ".pdf"
	}
	return data, name, pages, nil
}

func (s *ExportService) exportMarkdown(ctx context.Context, id string) ([]byte, string, error) {
	snap := s.catalog.Snapshot()
	note, ok := snap.NoteByID(id)
	if !ok {
		var err error
		if snap, err = s.catalog.RefreshAll(ctx); err != nil {
			return nil, "", err
		}
		if note, ok = snap.NoteByID(id); !ok {
			return nil, "", fmt.Errorf("%w: note %s", apperrors.ErrNotFound, id)
		}
	}

	meta := map[string]any{
		"id":    note.ID,
		"title": note.Title,
	}
	if note.Subject != "" {
		meta["subject"] = note.Subject
	}
	if !note.CreatedAt.IsZero() {
		meta["created_at"] = note.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	body := "# " + note.Title + "\n\n" + strings.TrimSpace(note.Content) + "\n"
	if note.AISummary != "" {
		body = markdown.ReplaceBlock(body, summaryBlock, "## AI Summary\n\n"+note.AISummary)
	}
	rendered, err := markdown.Document{Meta: meta, Body: body}.Render()
	if err != nil {
		return nil, "", err
	}
	return []byte(rendered), slug.Make(note.Title, "note-"+id) + ".md", nil
}
