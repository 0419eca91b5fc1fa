package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDirExportSinkCreatesDirAndStripsPath(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewDirExportSink(dir)

	path, err := sink.Write(context.Background(), "../../escape/cells.md", []byte("# Cells"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected file inside %s, got %s", dir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "# Cells" {
		t.Fatalf("unexpected content %q (%v)", b, err)
	}
}
