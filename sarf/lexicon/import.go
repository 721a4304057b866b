package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sarfdb/sarf"
)

// ImportReport summarizes a bulk root import.
type ImportReport struct {
	Added   int      `json:"added_count"`
	Skipped int      `json:"skipped_count"`
	Errors  []string `json:"errors"`
}

// ImportRoots reads roots from r, one per line, and inserts each valid
// one. Blank lines are ignored. Malformed and duplicate roots are
// skipped and reported, never fatal.
func (l *Lexicon) ImportRoots(r io.Reader) (*ImportReport, error) {
	report := &ImportReport{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := l.InsertRoot(line); err != nil {
			report.Skipped++
			switch {
			case errors.Is(err, sarf.ErrDuplicate):
				report.Errors = append(report.Errors, fmt.Sprintf("skipped %q: already exists", line))
			default:
				report.Errors = append(report.Errors, fmt.Sprintf("skipped %q: %v", line, err))
			}
			continue
		}
		report.Added++
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("failed to read roots: %w", err)
	}

	l.log.Info().
		Int("added", report.Added).
		Int("skipped", report.Skipped).
		Msg("root import finished")
	return report, nil
}
