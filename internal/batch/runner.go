package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dunearchive/internal/archive"
)

// Runner drives a batch of whitespace-tokenized commands against the
// engine, one line at a time:
//
//	create type <name> <num_fields> <pk_order> <field_name> <field_kind> ...
//	create record <type_name> <value> ...
//	search record <type_name> <primary_key>
//	delete record <type_name> <primary_key>
//
// Every processed line gets an audit row; malformed lines are failures
// and the batch continues. Successful searches append the space-joined
// values to the output file.
type Runner struct {
	eng   *archive.Engine
	out   *os.File
	audit *AuditLog
}

// NewRunner truncates the output file and opens the audit log for
// appending.
func NewRunner(eng *archive.Engine, outputPath, logPath string) (*Runner, error) {
	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("batch: create output file %s: %w", outputPath, err)
	}
	audit, err := OpenAuditLog(logPath)
	if err != nil {
		out.Close()
		return nil, err
	}
	return &Runner{eng: eng, out: out, audit: audit}, nil
}

func (r *Runner) Close() error {
	auditErr := r.audit.Close()
	if err := r.out.Close(); err != nil {
		return err
	}
	return auditErr
}

// Run processes every non-blank line of src to completion.
func (r *Runner) Run(src io.Reader) error {
	sc := bufio.NewScanner(src)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		ok := r.exec(line)
		if err := r.audit.Append(line, ok); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (r *Runner) exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return false
	}

	switch {
	case parts[0] == "create" && parts[1] == "type":
		if len(parts) < 5 {
			return false
		}
		numFields, err := strconv.Atoi(parts[3])
		if err != nil {
			return false
		}
		pkIndex, err := strconv.Atoi(parts[4])
		if err != nil {
			return false
		}
		return r.eng.CreateType(parts[2], numFields, pkIndex, parts[5:]) == nil

	case parts[0] == "create" && parts[1] == "record":
		if len(parts) < 3 {
			return false
		}
		return r.eng.CreateRecord(parts[2], parts[3:]) == nil

	case parts[0] == "search" && parts[1] == "record":
		if len(parts) != 4 {
			return false
		}
		values, err := r.eng.SearchRecord(parts[2], parts[3])
		if err != nil {
			return false
		}
		_, err = fmt.Fprintln(r.out, strings.Join(values, " "))
		return err == nil

	case parts[0] == "delete" && parts[1] == "record":
		if len(parts) != 4 {
			return false
		}
		return r.eng.DeleteRecord(parts[2], parts[3]) == nil

	default:
		return false
	}
}
