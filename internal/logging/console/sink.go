package console

import (
	"io"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink mirrors console output into a size-rotated log file.
type FileSink struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (s *FileSink) writer() io.WriteCloser {
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return nil
	}
	maxSize := s.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	return &lumberjack.Logger{
		Filename:   s.Path,
		MaxSize:    maxSize,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAgeDays,
		Compress:   s.Compress,
	}
}
