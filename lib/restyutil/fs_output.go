package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput writes each exchange to "<id>.http" in a directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput creates `dir` if needed. Files from an earlier run are
// overwritten as ids repeat.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return FilesystemOutput{}, fmt.Errorf("create dump directory: %w", err)
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, exchange Exchange) {
	path := filepath.Join(o.directory, id+".http")
	err := os.WriteFile(path, []byte(exchange.String()), 0644)
	if err != nil {
		slog.Warn("failed to dump http exchange", "path", path, "err", err)
	}
}
