package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/pepbench/pkg/core"
	"github.com/ChrisMcGann/pepbench/pkg/proteome"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-validate a previously generated benchmark dataset",
	Long: `Re-run the final validation against a modified proteome FASTA and a
ground truth CSV, reporting how many peptides are not embedded according to
their assigned stratum.

Examples:
  # Check an existing dataset
  pepbench validate --proteome modified_proteome.fasta --ground-truth ground_truth.csv

  # Write the filtered table alongside the check
  pepbench validate --proteome modified_proteome.fasta --ground-truth ground_truth.csv --out filtered.csv`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	enzyme, err := core.ParseEnzyme(enzymeValue)
	if err != nil {
		return err
	}

	prot, err := proteome.Load(proteomeFile)
	if err != nil {
		return err
	}

	gtFile, err := os.Open(groundTruthFile)
	if err != nil {
		return fmt.Errorf("failed to open ground truth file: %w", err)
	}
	records, err := core.ReadRecords(gtFile)
	gtFile.Close()
	if err != nil {
		return fmt.Errorf("failed to read ground truth file: %w", err)
	}

	valid, dropped := proteome.Validate(records, prot, enzyme, maxIntervening)

	fmt.Printf("Checked: %d records\n", len(records))
	fmt.Printf("Valid: %d records\n", len(valid))
	if dropped > 0 {
		fmt.Printf("Invalid: %d records\n", dropped)
	}

	if filteredOutFile != "" {
		if err := writeGroundTruthCSV(filteredOutFile, valid); err != nil {
			return err
		}
		fmt.Printf("Filtered table written to %s\n", filteredOutFile)
	}

	return nil
}
