package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GenerationRecord summarizes the ranking of one generation of the pool.
type GenerationRecord struct {
	Generation int
	Snapshot
	BestScore float64
	MeanScore float64
	StdScore  float64
	Duration  time.Duration
}

// GeneRecord is the genome of one pool member in one generation.
type GeneRecord struct {
	Generation int
	Position   int // Rank within the generation
	ID         string
	Score      float64
	Genes      map[string]any
}

type Writer struct {
	baseDir string
}

// NewWriter writes into baseDir, or into a timestamped directory below
// "runs" when baseDir is empty.
func NewWriter(baseDir string) (*Writer, error) {
	if baseDir == "" {
		timestamp := time.Now().UTC().Format("20060102T150405Z")
		baseDir = filepath.Join("runs", timestamp)
	}
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGenerationRecords(records []GenerationRecord) error {
	header := []string{"generation", "matches", "abandoned", "failed", "mean_turns",
		"best_score", "mean_score", "std_score", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Generation),
			strconv.Itoa(record.Completed),
			strconv.Itoa(record.Abandoned),
			strconv.Itoa(record.Failed),
			formatFloat(record.MeanTurns()),
			formatFloat(record.BestScore),
			formatFloat(record.MeanScore),
			formatFloat(record.StdScore),
			record.Duration.String(),
		}
	}
	return w.write("generations.csv", header, rows)
}

// WriteGeneRecords writes one row per record with a column per gene name.
func (w *Writer) WriteGeneRecords(names []string, records []GeneRecord) error {
	header := append([]string{"generation", "position", "id", "score"}, names...)
	rows := make([][]string, len(records))
	for i, record := range records {
		row := []string{
			strconv.Itoa(record.Generation),
			strconv.Itoa(record.Position),
			record.ID,
			formatFloat(record.Score),
		}
		for _, name := range names {
			row = append(row, fmt.Sprint(record.Genes[name]))
		}
		rows[i] = row
	}
	return w.write("genes.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
