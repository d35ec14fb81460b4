// Package dataset reads and writes the recipe catalog as flat dataset files,
// for analytics and for seeding custom deployments.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/sabores-de-africa/sabores/internal/models"
)

// Write stores recipe summaries at path; the format is chosen by extension
// (.parquet or .jsonl).
func Write(path string, recipes []models.RecipeSummary) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return writeParquet(path, recipes)
	case ".jsonl", ".json":
		return writeJSONL(path, recipes)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// Load reads recipe summaries from a dataset file (Parquet or JSONL).
func Load(path string) ([]models.RecipeSummary, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return loadParquet(path)
	case ".jsonl", ".json":
		return loadJSONL(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func writeParquet(path string, recipes []models.RecipeSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[models.RecipeSummary](file)
	if _, err := writer.Write(recipes); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Debug("Wrote parquet dataset", "path", path, "rows", len(recipes))
	return nil
}

func writeJSONL(path string, recipes []models.RecipeSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, r := range recipes {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode recipe %q: %w", r.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush dataset file: %w", err)
	}

	slog.Debug("Wrote JSONL dataset", "path", path, "rows", len(recipes))
	return nil
}

func loadParquet(path string) ([]models.RecipeSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[models.RecipeSummary](pf)
	defer reader.Close()

	var records []models.RecipeSummary
	rows := make([]models.RecipeSummary, 64)
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Loaded parquet dataset", "path", path, "rows", len(records))
	return records, nil
}

func loadJSONL(path string) ([]models.RecipeSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []models.RecipeSummary
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record models.RecipeSummary
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Loaded JSONL dataset", "path", path, "rows", len(records))
	return records, nil
}
