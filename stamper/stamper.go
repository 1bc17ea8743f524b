package stamper

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/go-units"

	"github.com/moffa90/go-fsbl/fsbl"
)

// Stamper turns raw FSBL binaries into boot-ROM loadable images on disk.
//
// Stamper holds no per-call state and is safe for concurrent use.
type Stamper struct {
	config Config
}

// Result describes a completed stamp operation.
type Result struct {
	// Header is the summary of the header that was written
	Header fsbl.Summary

	// HeaderSize, PayloadSize and TotalSize are byte counts of the output
	HeaderSize  int
	PayloadSize int
	TotalSize   int

	// OutputPath is empty for StampBytes
	OutputPath string

	ElapsedTime time.Duration
}

// Inspection is the outcome of checking an already stamped image.
type Inspection struct {
	Path   string       `json:"path" yaml:"path"`
	Size   int          `json:"size" yaml:"size"`
	Header fsbl.Summary `json:"header" yaml:"header"`

	// Valid is false when the payload length or checksum disagree with the header
	Valid   bool   `json:"valid" yaml:"valid"`
	Problem string `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// New creates a Stamper with the given options.
//
// Example:
//
//	s := stamper.New(
//	    stamper.WithFormat(fsbl.FormatMP2),
//	    stamper.WithLogger(myLogger),
//	)
func New(opts ...Option) *Stamper {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Stamper{config: cfg}
}

// Stamp reads the raw image at inputPath, builds its header and writes
// header followed by payload to outputPath.
//
// The output file is only created once the header has been built (and
// verified, if enabled). It is written to a temporary file in the same
// directory and renamed into place, so a failure never leaves a partial
// image at outputPath.
//
// Example:
//
//	res, err := s.Stamp("u-boot-spl.bin", "u-boot-spl.stm32")
//	if fsbl.IsAlreadyHeaded(err) {
//	    log.Fatal("input is already stamped")
//	}
func (s *Stamper) Stamp(inputPath, outputPath string) (*Result, error) {
	startTime := time.Now()

	s.reportProgress(Progress{Phase: PhaseReading})

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		s.logError("read input failed", "path", inputPath, "error", err)
		return nil, &IOError{Op: "read", Path: inputPath, Err: err}
	}

	s.logDebug("read input", "path", inputPath, "size", units.HumanSize(float64(len(raw))))

	image, res, err := s.build(raw, startTime)
	if err != nil {
		return nil, err
	}

	s.reportProgress(Progress{
		Phase:       PhaseWriting,
		Bytes:       len(image),
		ElapsedTime: time.Since(startTime),
	})

	if err := writeFileAtomic(outputPath, image, s.config.FileMode); err != nil {
		s.logError("write output failed", "path", outputPath, "error", err)
		return nil, err
	}

	res.OutputPath = outputPath
	res.ElapsedTime = time.Since(startTime)

	s.logInfo("stamped image",
		"format", s.config.Format.String(),
		"input", inputPath,
		"output", outputPath,
		"payload", units.HumanSize(float64(res.PayloadSize)),
		"checksum", fmt.Sprintf("0x%08X", res.Header.Checksum),
	)

	s.reportProgress(Progress{
		Phase:       PhaseComplete,
		Bytes:       res.TotalSize,
		ElapsedTime: res.ElapsedTime,
	})

	return res, nil
}

// StampBytes builds the header for raw and writes header followed by
// payload to w in a single Write call. Nothing is written on error.
func (s *Stamper) StampBytes(raw []byte, w io.Writer) (*Result, error) {
	startTime := time.Now()

	image, res, err := s.build(raw, startTime)
	if err != nil {
		return nil, err
	}

	s.reportProgress(Progress{
		Phase:       PhaseWriting,
		Bytes:       len(image),
		ElapsedTime: time.Since(startTime),
	})

	if _, err := w.Write(image); err != nil {
		return nil, &IOError{Op: "write", Err: err}
	}

	res.ElapsedTime = time.Since(startTime)

	s.reportProgress(Progress{
		Phase:       PhaseComplete,
		Bytes:       res.TotalSize,
		ElapsedTime: res.ElapsedTime,
	})

	return res, nil
}

// Inspect reads a stamped image and verifies its header against the payload.
//
// An error is returned when the file cannot be read or carries no parseable
// header. Length and checksum disagreements are reported through
// Inspection.Valid and Inspection.Problem instead.
func (s *Stamper) Inspect(path string) (*Inspection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	h, _, verr := fsbl.Verify(data)
	if h == nil {
		return nil, fmt.Errorf("inspect %s: %w", path, verr)
	}

	ins := &Inspection{
		Path:   path,
		Size:   len(data),
		Header: h.Summary(),
		Valid:  verr == nil,
	}
	if verr != nil {
		ins.Problem = verr.Error()
	}

	s.logDebug("inspected image",
		"path", path,
		"format", ins.Header.Format,
		"valid", ins.Valid,
	)

	return ins, nil
}

// build creates the complete output image for raw.
func (s *Stamper) build(raw []byte, startTime time.Time) ([]byte, *Result, error) {
	s.reportProgress(Progress{
		Phase:       PhaseBuilding,
		Bytes:       len(raw),
		ElapsedTime: time.Since(startTime),
	})

	header, payload, err := fsbl.Build(raw, s.config.Format)
	if err != nil {
		s.logError("build header failed", "format", s.config.Format.String(), "error", err)
		return nil, nil, err
	}

	image := make([]byte, 0, len(header)+len(payload))
	image = append(image, header...)
	image = append(image, payload...)

	var h fsbl.Header
	if s.config.VerifyAfterStamp {
		s.reportProgress(Progress{
			Phase:       PhaseVerifying,
			Bytes:       len(image),
			ElapsedTime: time.Since(startTime),
		})

		h, _, err = fsbl.Verify(image)
		if err != nil {
			return nil, nil, &VerificationError{Err: err}
		}
	} else {
		h, err = fsbl.ParseHeader(image)
		if err != nil {
			return nil, nil, fmt.Errorf("parse built header: %w", err)
		}
	}

	s.logDebug("built header",
		"format", s.config.Format.String(),
		"header_size", len(header),
		"payload_size", len(payload),
		"checksum", fmt.Sprintf("0x%08X", h.Summary().Checksum),
	)

	return image, &Result{
		Header:      h.Summary(),
		HeaderSize:  len(header),
		PayloadSize: len(payload),
		TotalSize:   len(image),
	}, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte, mode os.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Chmod(mode); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	return nil
}

// reportProgress calls the progress callback if configured.
func (s *Stamper) reportProgress(progress Progress) {
	if s.config.ProgressCallback != nil {
		s.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Stamper) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Stamper) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Stamper) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
