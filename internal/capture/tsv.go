package capture

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// tsvHeader is the first row of every save file. Column order matches the
// per-point rows written by Save.
var tsvHeader = []string{"point", "device", "posX", "posY", "posZ", "eulerX", "eulerY", "eulerZ"}

// Save writes all captured points to a tab-delimited file at path,
// overwriting any existing file. The output always contains the header
// row, even when no points have been captured.
//
// Coordinates and angles are written with three decimal places.
func (s *Store) Save(path string) error {
	points := s.Points()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating save file: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(tsvHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}

	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Sequence),
			strconv.Itoa(p.Device),
			formatCoord(p.Position.X),
			formatCoord(p.Position.Y),
			formatCoord(p.Position.Z),
			formatCoord(p.Orientation.Pitch),
			formatCoord(p.Orientation.Yaw),
			formatCoord(p.Orientation.Roll),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing point %d: %w", p.Sequence, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing save file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing save file: %w", err)
	}

	return nil
}

// formatCoord renders a coordinate or angle with three decimal places.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
