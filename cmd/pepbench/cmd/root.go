// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Flags for makedb command
	configFile string

	// Flags for validate command
	proteomeFile    string
	groundTruthFile string
	filteredOutFile string
	enzymeValue     string
	maxIntervening  int
)

var rootCmd = &cobra.Command{
	Use:   "pepbench",
	Short: "pepbench - Benchmarking datasets for peptide identification",
	Long: `pepbench builds benchmarking datasets for mass spectrometry peptide
identification methods. It embeds known ground truth peptides into a reference
proteome as canonical, cisspliced, or transspliced sequences, verifies that
every peptide is present in exactly its assigned stratum, and exports the
ground truth table for downstream scoring.

Outputs per run:
- cleaned_proteome.fasta    proteome with accidental matches scrubbed
- modified_proteome.fasta   proteome with ground truth peptides embedded
- ground_truth.csv          embedding metadata per peptide
- ground_truth.db           SQLite export with peptide masses`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(makedbCmd)
	rootCmd.AddCommand(validateCmd)

	// Makedb command flags
	makedbCmd.Flags().StringVarP(&configFile, "config", "c", "", "Experiment config file (required)")
	makedbCmd.MarkFlagRequired("config")

	// Validate command flags
	validateCmd.Flags().StringVar(&proteomeFile, "proteome", "", "Modified proteome FASTA file (required)")
	validateCmd.Flags().StringVar(&groundTruthFile, "ground-truth", "", "Ground truth CSV file (required)")
	validateCmd.Flags().StringVar(&filteredOutFile, "out", "", "Write the filtered ground truth CSV to this path")
	validateCmd.Flags().StringVar(&enzymeValue, "enzyme", "none", "Digestion enzyme: none or trypsin")
	validateCmd.Flags().IntVar(&maxIntervening, "max-intervening", 25, "Maximum intervening sequence length for cis pairings")
	validateCmd.MarkFlagRequired("proteome")
	validateCmd.MarkFlagRequired("ground-truth")
}
