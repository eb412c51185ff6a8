// Package datasets provides DataLoader implementations. JSONLLoader reads
// one example per line, grounded on the teacher's JSONL dataset readers.
package datasets

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sketchdev/promptsicle/domain/model"
)

// jsonlRow is the on-disk shape of one training example.
type jsonlRow struct {
	InputText string `json:"input_text"`
	Target    string `json:"target"`
}

// JSONLLoader reads a training set from a newline-delimited JSON file,
// one {"input_text": ..., "target": ...} object per line. It implements
// outbound.DataLoader.
type JSONLLoader struct {
	path string
}

// NewJSONLLoader returns a JSONLLoader reading from path.
func NewJSONLLoader(path string) *JSONLLoader {
	return &JSONLLoader{path: path}
}

// Load reads and parses every line of the file into a model.Example,
// failing fast (and wrapping) on the first malformed line.
func (l *JSONLLoader) Load(ctx context.Context) ([]model.Example, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("datasets: open %q: %w", l.path, err)
	}
	defer f.Close()

	return parseJSONL(ctx, f, l.path)
}

func parseJSONL(ctx context.Context, r io.Reader, sourceName string) ([]model.Example, error) {
	var examples []model.Example

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var row jsonlRow
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("datasets: %s:%d: invalid JSON: %w", sourceName, lineNo, err)
		}

		ex, err := model.NewExample(row.InputText, row.Target)
		if err != nil {
			return nil, fmt.Errorf("datasets: %s:%d: %w", sourceName, lineNo, err)
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("datasets: %s: scan: %w", sourceName, err)
	}

	return examples, nil
}
