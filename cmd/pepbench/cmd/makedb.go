package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/pepbench/pkg/config"
	"github.com/ChrisMcGann/pepbench/pkg/core"
	"github.com/ChrisMcGann/pepbench/pkg/pool"
	"github.com/ChrisMcGann/pepbench/pkg/proteome"
	"github.com/ChrisMcGann/pepbench/pkg/strata"
	"github.com/ChrisMcGann/pepbench/pkg/writer/sqlite"
)

var makedbCmd = &cobra.Command{
	Use:   "makedb",
	Short: "Build a benchmarking dataset from a peptide pool and a proteome",
	Long: `Build a benchmarking dataset: assign ground truth peptides to strata,
scrub the reference proteome of accidental matches, embed the peptides
according to their assigned strata, and validate the result.

Examples:
  # Build a dataset from a config file
  pepbench makedb --config experiment.yaml`,
	RunE: runMakedb,
}

func runMakedb(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.EnsureOutputFolder(); err != nil {
		return err
	}

	// One seeded generator per run; every randomized operation draws from it
	// so the same seed reproduces the same proteome.
	rng := rand.New(rand.NewSource(cfg.RandomSeed))

	fmt.Printf("Building benchmark dataset '%s'...\n", cfg.Identifier)

	// Read the candidate peptide pool.
	poolFile, err := os.Open(cfg.PeptidePool)
	if err != nil {
		return fmt.Errorf("failed to open peptide pool: %w", err)
	}
	peptides, err := pool.Read(poolFile, pool.Options{
		FilterPTMs: *cfg.FilterPTMs,
		MinLength:  cfg.MinSequenceLength,
		MaxLength:  cfg.MaxSequenceLength,
	})
	poolFile.Close()
	if err != nil {
		return fmt.Errorf("failed to read peptide pool: %w", err)
	}
	fmt.Printf("\t%d peptides to embed in proteome.\n", len(peptides))

	// Stratify: group near-identical peptides, then cut at the configured
	// fractions.
	groups := strata.GroupPeptides(peptides, cfg.ClosenessCutOff)
	st := strata.Assign(rng, peptides, groups, cfg.CanonicalFraction, cfg.CissplicedFraction)
	fmt.Printf("\tAssigned strata: %d canonical, %d cisspliced, %d transspliced.\n",
		len(st.Canonical), len(st.CisSpliced), len(st.TransSpliced))

	// Load and clean the reference proteome.
	prot, err := proteome.Load(cfg.Proteome)
	if err != nil {
		return err
	}
	cleanResult := proteome.Clean(rng, prot, &st, cfg.MaxIntervening)
	if !cleanResult.Converged {
		fmt.Printf("\tWARNING: cleaning did not converge after %d passes.\n", cleanResult.Iterations)
	}

	cleanedPath := filepath.Join(cfg.OutputFolder, "cleaned_proteome.fasta")
	if err := prot.SaveCleaned(cleanedPath); err != nil {
		return err
	}

	// Embed the ground truth peptides and iterate repairs to a fixed point.
	embedder := proteome.NewEmbedder(rng, cfg.Enzyme, cfg.MaxIntervening)
	result := embedder.Embed(prot, &st)
	if !result.Converged {
		fmt.Printf("\tEmbedding capped after %d rounds with %d unresolved peptides.\n",
			result.Iterations, len(result.Residual))
	}

	modifiedPath := filepath.Join(cfg.OutputFolder, "modified_proteome.fasta")
	if err := prot.SaveModified(modifiedPath); err != nil {
		return err
	}

	// Final validation: only peptides passing this gate are ground truth.
	valid, dropped := proteome.Validate(result.Records, prot, cfg.Enzyme, cfg.MaxIntervening)

	csvPath := filepath.Join(cfg.OutputFolder, "ground_truth.csv")
	if err := writeGroundTruthCSV(csvPath, valid); err != nil {
		return err
	}

	dbPath := filepath.Join(cfg.OutputFolder, "ground_truth.db")
	if err := writeGroundTruthDB(dbPath, valid, cfg.Identifier, cfg.Enzyme, dropped); err != nil {
		return err
	}

	fmt.Printf("\nDataset complete!\n")
	fmt.Printf("Embedded: %d peptides\n", len(valid))
	if dropped > 0 {
		fmt.Printf("Dropped: %d peptides (failed final validation)\n", dropped)
	}
	fmt.Printf("Output: %s\n", cfg.OutputFolder)

	return nil
}

func writeGroundTruthCSV(path string, records []core.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := core.WriteRecords(file, records); err != nil {
		file.Close()
		return fmt.Errorf("failed to write ground truth CSV: %w", err)
	}
	return file.Close()
}

func writeGroundTruthDB(path string, records []core.Record, identifier string, enzyme core.Enzyme, dropped int) error {
	// Recreate the database on every run.
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove stale database: %w", err)
	}

	writer, err := sqlite.NewWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}
	for i := range records {
		if err := writer.WriteRecord(&records[i]); err != nil {
			return fmt.Errorf("failed to write record %s: %w", records[i].Peptide, err)
		}
	}
	if err := writer.Finalize(identifier, enzyme, dropped); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}
	return nil
}
