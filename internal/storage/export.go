package storage

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	Run       RunMetadata `json:"run"`
	Particles []Row       `json:"particles"`
}

func ExportJSON(path string, meta *RunMetadata, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Particles: rows})
}
