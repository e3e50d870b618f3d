// Package proteome implements the proteome mutation engine: cleaning a
// reference proteome of accidental ground truth matches, embedding peptides
// according to their assigned strata, and independently validating the result.
package proteome

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bebop/poly/io/fasta"

	"github.com/ChrisMcGann/pepbench/pkg/core"
)

// fastaWidth is the line wrap column for the modified proteome export.
const fastaWidth = 80

// Proteome is an ordered list of protein sequences, mutated in place during
// cleaning and embedding. A protein's index is its stable identity.
type Proteome []string

// Load reads protein sequences from a FASTA file and I/L-normalizes them.
func Load(path string) (Proteome, error) {
	fastas, err := fasta.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read proteome %s: %w", path, err)
	}

	proteome := make(Proteome, 0, len(fastas))
	for _, record := range fastas {
		proteome = append(proteome, core.NormalizeIL(record.Sequence))
	}
	return proteome, nil
}

// WriteCleaned serializes the proteome with cleaned_protein headers, one
// sequence per line.
func (p Proteome) WriteCleaned(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for idx, protein := range p {
		fmt.Fprintf(bw, ">cleaned_protein_%d\n", idx)
		fmt.Fprintf(bw, "%s\n", protein)
	}
	return bw.Flush()
}

// WriteModified serializes the proteome with modified_protein headers,
// wrapped at 80 columns.
func (p Proteome) WriteModified(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for idx, protein := range p {
		fmt.Fprintf(bw, ">modified_protein_%d\n", idx)
		for start := 0; start < len(protein); start += fastaWidth {
			end := start + fastaWidth
			if end > len(protein) {
				end = len(protein)
			}
			fmt.Fprintf(bw, "%s\n", protein[start:end])
		}
	}
	return bw.Flush()
}

// SaveCleaned writes the cleaned proteome FASTA to a file.
func (p Proteome) SaveCleaned(path string) error {
	return p.save(path, p.WriteCleaned)
}

// SaveModified writes the modified proteome FASTA to a file.
func (p Proteome) SaveModified(path string) error {
	return p.save(path, p.WriteModified)
}

func (p Proteome) save(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
