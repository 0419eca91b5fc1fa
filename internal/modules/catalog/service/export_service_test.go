package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studydesk/internal/modules/catalog/domain"
	apperrors "studydesk/internal/platform/errors"
)

type fakeInspector struct{ pages int }

func (f fakeInspector) PageCount([]byte) (int, error) { return f.pages, nil }

type memorySink struct{ files map[string][]byte }

func (m *memorySink) Write(_ context.Context, name string, data []byte) (string, error) {
	m.files[name] = data
	return "/exports/" + name, nil
}

type recordingLauncher struct{ opened []string }

func (l *recordingLauncher) Open(_ context.Context, target string) error {
	l.opened = append(l.opened, target)
	return nil
}

func TestExportPDFReportsPagesAndOpens(t *testing.T) {
	t.Parallel()
	remote := newFakeRemote()
	sink := &memorySink{files: map[string][]byte{}}
	launcher := &recordingLauncher{}
	svc := NewExportService(newService(remote), remote, fakeInspector{pages: 2}, sink, launcher, nil)

	res, err := svc.ExportNote(context.Background(), "n1", domain.ExportPDF, true)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Pages != 2 || res.Path != "/exports/note.pdf" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(launcher.opened) != 1 || launcher.opened[0] != res.Path {
		t.Fatalf("expected export to be opened, got %v", launcher.opened)
	}
}

func TestExportMarkdownRendersFrontmatterAndSummary(t *testing.T) {
	t.Parallel()
	remote := newFakeRemote()
	remote.notes = []domain.Note{{ID: "n1", Title: "Cell Biology", Content: "Cells divide.", Subject: "bio", AISummary: "Cells split in two."}}
	sink := &memorySink{files: map[string][]byte{}}
	svc := NewExportService(newService(remote), remote, fakeInspector{}, sink, nil, nil)

	res, err := svc.ExportNote(context.Background(), "n1", domain.ExportMarkdown, false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	text := string(sink.files["cell-biology.md"])
	if res.Format != domain.ExportMarkdown || text == "" {
		t.Fatalf("markdown export missing: %+v", res)
	}
	for _, want := range []string{"title: Cell Biology", "subject: bio", "# Cell Biology", "<!-- studydesk:ai-summary:start -->", "Cells split in two."} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in export:\n%s", want, text)
		}
	}
}

func TestExportRejectsUnknownFormatAndMissingNote(t *testing.T) {
	t.Parallel()
	remote := newFakeRemote()
	svc := NewExportService(newService(remote), remote, fakeInspector{}, &memorySink{files: map[string][]byte{}}, nil, nil)

	if _, err := svc.ExportNote(context.Background(), "n1", "docx", false); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if _, err := svc.ExportNote(context.Background(), "missing", domain.ExportMarkdown, false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
