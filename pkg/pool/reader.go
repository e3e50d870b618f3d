// Package pool reads the candidate ground truth peptide pool from a CSV of
// search-engine identifications and prepares it for stratification:
// modification handling, length bounds, I/L normalization and deduplication.
package pool

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ChrisMcGann/pepbench/pkg/core"
)

// Options controls how the peptide pool is filtered.
type Options struct {
	FilterPTMs bool // drop peptides carrying modifications instead of stripping them
	MinLength  int
	MaxLength  int
}

// Inline modification annotations as written by most search engines, e.g.
// "PEPT[+57.02]IDE" or "PEPM(ox)TIDE".
var ptmAnnotation = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)

// Read parses a peptide CSV, which must carry a "peptide" column, and returns
// the deduplicated I/L-normalized pool in first-seen order.
func Read(r io.Reader, opts Options) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	peptideCol := -1
	for i, name := range header {
		if strings.TrimSpace(name) == "peptide" {
			peptideCol = i
			break
		}
	}
	if peptideCol < 0 {
		return nil, fmt.Errorf("peptide pool is missing a 'peptide' column")
	}

	var peptides []string
	seen := map[string]bool{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line++
		if peptideCol >= len(row) {
			return nil, fmt.Errorf("line %d: missing peptide column", line)
		}

		raw := strings.TrimSpace(row[peptideCol])
		if raw == "" {
			continue
		}

		modified := ptmAnnotation.MatchString(raw)
		if modified && opts.FilterPTMs {
			continue
		}
		peptide := strings.ToUpper(ptmAnnotation.ReplaceAllString(raw, ""))

		if !validResidues(peptide) {
			return nil, fmt.Errorf("line %d: invalid peptide sequence '%s'", line, raw)
		}
		if len(peptide) < opts.MinLength || len(peptide) > opts.MaxLength {
			continue
		}

		normalized := core.NormalizeIL(peptide)
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		peptides = append(peptides, normalized)
	}

	return peptides, nil
}

// validResidues checks a stripped peptide against the canonical residue
// alphabet, allowing I since input peptides are not yet normalized.
func validResidues(peptide string) bool {
	if peptide == "" {
		return false
	}
	for i := 0; i < len(peptide); i++ {
		aa := peptide[i]
		if aa != 'I' && !strings.ContainsRune(core.AminoAcids, rune(aa)) {
			return false
		}
	}
	return true
}
