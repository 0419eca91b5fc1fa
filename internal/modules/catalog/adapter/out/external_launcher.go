package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	catalogout "studydesk/internal/modules/catalog/port/out"
)

type OSExternalLauncher struct{}

func NewOSExternalLauncher() catalogout.ExternalLauncher {
	return &OSExternalLauncher{}
}

// Open hands target to the desktop's default viewer without waiting for it.
func (l *OSExternalLauncher) Open(_ context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("opening exports is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}
