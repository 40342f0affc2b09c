// Package resultlog appends designs to the per-topology result log files.
//
// Each save opens the file in append mode, writes exactly one line and
// closes it again, so nothing is held open between saves.
package resultlog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/converter"
	"github.com/iwvelando/converter-design/pkg/output"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Store writes result lines below a directory.
type Store struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// NewStore returns a Store rooted at dir on fs. A nil fs means the OS
// filesystem.
func NewStore(fs afero.Fs, dir string, logger *zap.Logger) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		dir = constants.DefaultResultsDir
	}
	return &Store{fs: fs, dir: dir, logger: logger}
}

// FileName returns the log file name for a topology.
func FileName(t converter.Topology) (string, error) {
	switch t {
	case converter.Buck:
		return constants.BuckLogFile, nil
	case converter.Boost:
		return constants.BoostLogFile, nil
	case converter.BuckBoost:
		return constants.BuckBoostLogFile, nil
	case converter.Cuk:
		return constants.CukLogFile, nil
	}
	return "", fmt.Errorf("%w: %s", converter.ErrUnknownTopology, t)
}

// Path returns the full path of the log file for a topology.
func (s *Store) Path(t converter.Topology) (string, error) {
	name, err := FileName(t)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Append writes one line for res to its topology's log file and returns the
// file path.
func (s *Store) Append(res converter.Result) (string, error) {
	path, err := s.Path(res.Requirement.Topology)
	if err != nil {
		return "", err
	}

	if s.dir != "." {
		if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
			return path, fmt.Errorf("failed to create results directory %s: %w", s.dir, err)
		}
	}

	file, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return path, fmt.Errorf("failed to open result log %s: %w", path, err)
	}

	line := output.LogLine(res)
	if _, err := file.WriteString(line); err != nil {
		_ = file.Close()
		return path, fmt.Errorf("failed to write result log %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return path, fmt.Errorf("failed to close result log %s: %w", path, err)
	}

	s.logger.Info("appended design result",
		zap.String("op", "resultlog.Append"),
		zap.String("topology", res.Requirement.Topology.String()),
		zap.String("path", path),
	)
	return path, nil
}
