// Package sqlite provides SQLite export of the ground truth table so that
// downstream spectral generation and scoring stages can query embedding
// metadata and peptide masses directly.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/pepbench/pkg/core"
)

// Date format for HeaderTable (ISO 8601)
const headerDateFormat = "2006-01-02"

// Writer handles writing ground truth records to a SQLite database file.
type Writer struct {
	db         *sql.DB
	outputPath string
	recordStmt *sql.Stmt
	recordID   int
}

// NewWriter creates a new SQLite writer.
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		recordID:   1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema.
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS GroundTruthTable (
		RecordId INTEGER PRIMARY KEY,
		Peptide TEXT NOT NULL,
		Stratum TEXT NOT NULL,
		ProteinIdx INTEGER,
		ProteinIdxB INTEGER,
		Position INTEGER,
		Frag1 TEXT,
		Frag2 TEXT,
		NeutralMass DOUBLE,
		PrecursorMZ2 DOUBLE
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Identifier TEXT,
		Enzyme TEXT,
		DroppedPeptides INTEGER
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion.
func (w *Writer) prepareStatements() error {
	var err error

	w.recordStmt, err = w.db.Prepare(`
		INSERT INTO GroundTruthTable (
			RecordId, Peptide, Stratum, ProteinIdx, ProteinIdxB,
			Position, Frag1, Frag2, NeutralMass, PrecursorMZ2
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}

	return nil
}

// WriteRecord writes a single ground truth record to the database. The
// neutral mass and doubly charged precursor m/z are computed from the peptide
// sequence for downstream mass queries.
func (w *Writer) WriteRecord(rec *core.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	_, err := w.recordStmt.Exec(
		w.recordID,
		rec.Peptide,
		rec.Stratum.String(),
		rec.ProteinIdx,
		rec.ProteinIdxB,
		rec.Position,
		rec.Frag1,
		rec.Frag2,
		core.NeutralMass(rec.Peptide),
		core.PrecursorMZ(rec.Peptide, 2),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record %s: %w", rec.Peptide, err)
	}

	w.recordID++
	return nil
}

// Finalize writes the header table and closes the database.
func (w *Writer) Finalize(identifier string, enzyme core.Enzyme, dropped int) error {
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Identifier, Enzyme, DroppedPeptides)
		VALUES (?, ?, ?, ?, ?)
	`, 1, time.Now().Format(headerDateFormat), identifier, enzymeName(enzyme), dropped)
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}

	if w.recordStmt != nil {
		w.recordStmt.Close()
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

func enzymeName(enzyme core.Enzyme) string {
	if enzyme == core.Trypsin {
		return "trypsin"
	}
	return "none"
}
