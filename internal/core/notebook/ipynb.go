package notebook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IPynbDecoder decodes nbformat 4 JSON. Only cell_type and source are read;
// outputs and metadata are ignored.
type IPynbDecoder struct{}

type ipynbFile struct {
	Cells []ipynbCell `json:"cells"`
}

type ipynbCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

func (IPynbDecoder) Decode(data []byte) ([]*Cell, error) {
	var f ipynbFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse notebook json: %w", err)
	}

	cells := make([]*Cell, 0, len(f.Cells))
	for i, raw := range f.Cells {
		typ, err := ParseCellType(raw.CellType)
		if err != nil {
			return nil, fmt.Errorf("cells[%d]: %w", i, err)
		}

		text, err := decodeSource(raw.Source)
		if err != nil {
			return nil, fmt.Errorf("cells[%d].source: %w", i, err)
		}

		cell := &Cell{Type: typ}
		cell.SetText(text)
		cells = append(cells, cell)
	}

	return cells, nil
}

// decodeSource accepts both encodings nbformat allows: a single string or
// a list of strings that each keep their trailing newline.
func decodeSource(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSuffix(s, "\n"), nil
	}

	var parts []string
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", fmt.Errorf("expected string or list of strings")
	}
	return strings.TrimSuffix(strings.Join(parts, ""), "\n"), nil
}
