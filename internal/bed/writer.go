package bed

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Filename returns the conventional unmerged BED filename for a panel run,
// {panelID}_v{version}_{build}.bed.
func Filename(panelID, version, build string) string {
	return fmt.Sprintf("%s_v%s_%s.bed", panelID, version, build)
}

// MergedFilename returns the conventional merged BED filename,
// {panelID}_v{version}_{build}_merged.bed.
func MergedFilename(panelID, version, build string) string {
	return fmt.Sprintf("%s_v%s_%s_merged.bed", panelID, version, build)
}

// Writer serializes intervals to a BED file, one tab-separated interval per
// line with no header. The file is truncated on creation; a partial run
// never appends to stale output.
type Writer struct {
	f    *os.File
	w    *bufio.Writer
	path string
}

// NewWriter creates (or overwrites) the BED file at path.
func NewWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create bed file: %w", err)
	}

	return &Writer{f: f, w: bufio.NewWriter(f), path: path}, nil
}

// Path returns the output file path.
func (w *Writer) Path() string { return w.path }

// Write emits one interval line. Intervals with a Name get the 4-column
// annotated layout; nameless intervals get the bare 3-column layout.
func (w *Writer) Write(iv Interval) error {
	var err error
	if iv.Name != "" {
		_, err = fmt.Fprintf(w.w, "%s\t%d\t%d\t%s\n", iv.Chrom, iv.Start, iv.End, iv.Name)
	} else {
		_, err = fmt.Fprintf(w.w, "%s\t%d\t%d\n", iv.Chrom, iv.Start, iv.End)
	}
	if err != nil {
		return fmt.Errorf("write bed line: %w", err)
	}
	return nil
}

// WriteAll emits all intervals in order.
func (w *Writer) WriteAll(ivs []Interval) error {
	for _, iv := range ivs {
		if err := w.Write(iv); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered lines and closes the file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("flush bed file: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("close bed file: %w", err)
	}
	return nil
}
