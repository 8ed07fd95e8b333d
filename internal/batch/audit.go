package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// AuditLog appends one CSV row per processed command line:
// (unix timestamp, original line, "success"|"failure").
type AuditLog struct {
	f *os.File
	w *csv.Writer
}

func OpenAuditLog(path string) (*AuditLog, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("batch: open audit log %s: %w", path, err)
	}
	return &AuditLog{f: f, w: csv.NewWriter(f)}, nil
}

// Append records one outcome. Flushed per row so earlier rows survive
// an aborted batch.
func (l *AuditLog) Append(line string, ok bool) error {
	status := "failure"
	if ok {
		status = "success"
	}
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	if err := l.w.Write([]string{ts, line, status}); err != nil {
		return fmt.Errorf("batch: write audit row: %w", err)
	}
	l.w.Flush()
	return l.w.Error()
}

func (l *AuditLog) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}
