package cmd

import (
	"fmt"

	"github.com/sabores-de-africa/sabores/internal/catalog"
	"github.com/sabores-de-africa/sabores/internal/dataset"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with recipe catalog datasets",
	}

	cmd.AddCommand(newCatalogExportCmd())
	cmd.AddCommand(newCatalogInspectCmd())

	return cmd
}

func newCatalogExportCmd() *cobra.Command {
	var (
		catalogPath string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the recipe catalog to a dataset file",
		Long:  `Exports recipe summaries to a Parquet or JSONL file, chosen by extension.`,
		Example: `  # Export the built-in catalog
  sabores catalog export --out recipes.parquet

  # Export a custom catalog as JSONL
  sabores catalog export --catalog ./recipes.yaml --out recipes.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if catalogPath != "" {
				var err error
				cat, err = catalog.Load(catalogPath)
				if err != nil {
					return err
				}
			}

			if err := dataset.Write(outPath, cat.All()); err != nil {
				return err
			}
			fmt.Printf("Exported %d recipes to %s\n", cat.Len(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a custom catalog YAML file")
	cmd.Flags().StringVar(&outPath, "out", "", "Output path (.parquet or .jsonl) (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newCatalogInspectCmd() *cobra.Command {
	var (
		datasetPath string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print records from an exported catalog dataset",
		Example: `  # Show the first five records
  sabores catalog inspect --dataset recipes.parquet --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := dataset.Load(datasetPath)
			if err != nil {
				return err
			}

			shown := 0
			for _, r := range records {
				if limit > 0 && shown >= limit {
					break
				}
				premium := ""
				if r.Premium {
					premium = fmt.Sprintf(" [premium %.2f€]", r.Price)
				}
				fmt.Printf("%s  %s (%s) — %s%s\n", r.ID, r.Name, r.Origin, r.Category, premium)
				shown++
			}
			fmt.Printf("%d of %d records shown\n", shown, len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a .parquet or .jsonl dataset file (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum records to print (0 for all)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
