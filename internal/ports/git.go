package ports

import (
	"context"
)

// GitInfo holds git repository context information.
type GitInfo struct {
	Branch string
	Commit string
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect resolves the repository containing workingDir.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)
}
