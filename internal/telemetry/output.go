package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/wave-arena/internal/config"
)

// OutputManager writes run output into a directory: waves.csv with one
// row per wave and config.yaml with the configuration used.
type OutputManager struct {
	dir           string
	wavesFile     *os.File
	headerWritten bool
}

// NewOutputManager creates the output directory and opens waves.csv.
// It returns nil when dir is empty (output disabled); all methods accept a
// nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "waves.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating waves.csv: %w", err)
	}
	return &OutputManager{dir: dir, wavesFile: f}, nil
}

// WriteConfig saves cfg as config.yaml.
func (om *OutputManager) WriteConfig(cfg config.ArenaConfig) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWave appends a record to waves.csv. The first write includes the
// header row.
func (om *OutputManager) WriteWave(rec WaveRecord) error {
	if om == nil {
		return nil
	}
	records := []WaveRecord{rec}
	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.wavesFile); err != nil {
			return fmt.Errorf("writing waves: %w", err)
		}
		om.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.wavesFile); err != nil {
		return fmt.Errorf("writing waves: %w", err)
	}
	return nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes waves.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.wavesFile == nil {
		return nil
	}
	return om.wavesFile.Close()
}

// ReadWaves loads the records of a waves.csv written by OutputManager.
func ReadWaves(path string) ([]WaveRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening waves: %w", err)
	}
	defer f.Close()

	var recs []WaveRecord
	if err := gocsv.UnmarshalFile(f, &recs); err != nil {
		return nil, fmt.Errorf("reading waves: %w", err)
	}
	return recs, nil
}
