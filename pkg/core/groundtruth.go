package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// groundTruthHeader is the column order of the tabular ground truth export.
var groundTruthHeader = []string{
	"peptide", "stratum", "proteinIdx", "proteinIdxB", "position", "frag1", "frag2",
}

// WriteRecords writes embedding records as CSV. The table is consumed by the
// final validator and by downstream spectral generation and scoring stages.
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(groundTruthHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range records {
		rec := &records[i]
		row := []string{
			rec.Peptide,
			rec.Stratum.String(),
			strconv.Itoa(rec.ProteinIdx),
			strconv.Itoa(rec.ProteinIdxB),
			strconv.Itoa(rec.Position),
			rec.Frag1,
			rec.Frag2,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", rec.Peptide, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadRecords reads a ground truth CSV written by WriteRecords.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) != len(groundTruthHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(groundTruthHeader), len(header))
	}

	var records []Record
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

		stratum, err := ParseStratum(row[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		protIdx, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid proteinIdx '%s': %w", line, row[2], err)
		}
		protIdxB, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid proteinIdxB '%s': %w", line, row[3], err)
		}
		position, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid position '%s': %w", line, row[4], err)
		}

		records = append(records, Record{
			Peptide:     row[0],
			Stratum:     stratum,
			ProteinIdx:  protIdx,
			ProteinIdxB: protIdxB,
			Position:    position,
			Frag1:       row[5],
			Frag2:       row[6],
		})
	}

	return records, nil
}
