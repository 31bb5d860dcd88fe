package stress

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/image/tiff"
)

// CSVName is the log file written inside the output directory.
const CSVName = "stress.csv"

var csvHeader = []string{"timestamp", "faces", "score", "level", "frame"}

// Recorder appends readings to a CSV log and optionally stores each
// annotated frame as a TIFF file next to it.
type Recorder struct {
	dir        string
	saveFrames bool

	file   *os.File
	w      *csv.Writer
	frames int
}

// NewRecorder opens (or creates) the CSV log in dir.
func NewRecorder(dir string, saveFrames bool) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, CSVName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	r := &Recorder{dir: dir, saveFrames: saveFrames, file: f, w: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := r.w.Write(csvHeader); err != nil {
			f.Close()
			return nil, err
		}
		r.w.Flush()
	}
	return r, nil
}

// Dir returns the output directory.
func (r *Recorder) Dir() string { return r.dir }

// Record writes one CSV row and, when enabled, the sample's frame.
func (r *Recorder) Record(s Sample, rd Reading) error {
	frameName := ""
	if r.saveFrames && s.Frame != nil {
		r.frames++
		frameName = fmt.Sprintf("frame_%06d.tiff", r.frames)
		if err := r.writeFrame(filepath.Join(r.dir, frameName), s); err != nil {
			return err
		}
	}

	row := []string{
		rd.Taken.Format(time.RFC3339Nano),
		strconv.Itoa(rd.Faces),
		strconv.FormatFloat(rd.Score, 'f', 4, 64),
		rd.Level.String(),
		frameName,
	}
	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	r.w.Flush()
	return r.w.Error()
}

func (r *Recorder) writeFrame(path string, s Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	if err := tiff.Encode(f, s.Frame, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return f.Close()
}

// Close flushes and closes the CSV log.
func (r *Recorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
