package hybridsim

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Save writes one line per emitted sample as t,y0,y1,...,y_{N_Y-1} (no
// header) to a timestamped Sim_YYYYMMDD_HHMMSS_mmm.csv file under dir.
func (r SimResult) Save(dir string) error {
	name := "Sim_" + strings.Replace(time.Now().Format("20060102_150405.000"), ".", "_", 1) + ".csv"
	return writeCSV(filepath.Join(dir, name), func(w *csv.Writer) error {
		for i, t := range r.T {
			row := make([]string, 0, len(r.Y[i])+1)
			row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
			for _, y := range r.Y[i] {
				row = append(row, strconv.FormatFloat(y, 'g', -1, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// OptResult is the outcome of an optimizer run: the best parameter vector
// found, the model parameter indices it corresponds to, and its objective
// value.
type OptResult struct {
	X     []float64
	Index []int
	F     float64
}

// Save writes one line per optimized parameter as p_index,value to
// Opt_YYYYMMDD_HHMMSS_mmm.csv under dir.
func (r OptResult) Save(dir string) error {
	name := "Opt_" + strings.Replace(time.Now().Format("20060102_150405.000"), ".", "_", 1) + ".csv"
	return writeCSV(filepath.Join(dir, name), func(w *csv.Writer) error {
		for i, idx := range r.Index {
			row := []string{
				strconv.Itoa(idx),
				strconv.FormatFloat(r.X[i], 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hybridsim: cannot create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.UseCRLF = false
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
