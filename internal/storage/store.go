package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/decaysim/internal/catalogue"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string         `json:"id"`
	Preset         string         `json:"preset"`
	Timestamp      time.Time      `json:"timestamp"`
	Seed           int64          `json:"seed"`
	MaxIterations  int            `json:"max_iterations"`
	Tolerance      float64        `json:"tolerance"`
	ToleranceBasis string         `json:"tolerance_basis"`
	Roots          int            `json:"roots"`
	Descendants    int            `json:"descendants"`
	Rejected       int            `json:"rejected"`
	Decays         int            `json:"decays"`
	Unconverged    int            `json:"unconverged"`
	Violations     int            `json:"violations"`
	RootMass       float64        `json:"root_invariant_mass"`
	DescendantMass float64        `json:"descendant_invariant_mass"`
	Channels       map[string]int `json:"channels"`
}

// Save writes metadata.json and particles.csv into a new run directory and
// returns the run ID. Catalogue-derived fields of meta are filled in.
func (s *Store) Save(meta RunMetadata, cat *catalogue.Catalogue) (string, error) {
	if meta.Preset == "" {
		meta.Preset = "custom"
	}
	runID := fmt.Sprintf("%s_%s", meta.Preset, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	sum := cat.Summary()
	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Roots = sum.Roots
	meta.Descendants = sum.Descendants
	meta.RootMass = sum.RootMass
	meta.DescendantMass = sum.DescendantMass

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeRows(filepath.Join(runDir, "particles.csv"), Flatten(cat)); err != nil {
		return "", err
	}
	return runID, nil
}

var csvHeader = []string{"index", "root", "parent", "depth", "type", "channel", "e", "px", "py", "pz", "mass", "charge", "notices"}

func writeRows(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Root),
			strconv.Itoa(r.Parent),
			strconv.Itoa(r.Depth),
			r.Type,
			r.Channel,
			formatFloat(r.E),
			formatFloat(r.Px),
			formatFloat(r.Py),
			formatFloat(r.Pz),
			formatFloat(r.Mass),
			r.Charge,
			strconv.Itoa(r.Notices),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadParticles(runID string) ([]Row, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "particles.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("storage: particles.csv line %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	var (
		row  Row
		errs []error
	)
	atoi := func(s string) int {
		v, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	atof := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	row.Index = atoi(rec[0])
	row.Root = atoi(rec[1])
	row.Parent = atoi(rec[2])
	row.Depth = atoi(rec[3])
	row.Type = rec[4]
	row.Channel = rec[5]
	row.E = atof(rec[6])
	row.Px = atof(rec[7])
	row.Py = atof(rec[8])
	row.Pz = atof(rec[9])
	row.Mass = atof(rec[10])
	row.Charge = rec[11]
	row.Notices = atoi(rec[12])
	if len(errs) > 0 {
		return Row{}, errs[0]
	}
	return row, nil
}
