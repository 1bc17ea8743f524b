package stamper

import (
	"os"

	"github.com/moffa90/go-fsbl/fsbl"
)

// Config holds the stamper configuration.
type Config struct {
	// Format selects the header variant (default FormatMP1)
	Format fsbl.Format

	// ProgressCallback is called at each phase transition (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// FileMode is the permission mode of written output files
	FileMode os.FileMode

	// VerifyAfterStamp re-parses the stamped image and checks length and
	// checksum before anything is written
	VerifyAfterStamp bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Format:           fsbl.FormatMP1,
		FileMode:         0o644,
		VerifyAfterStamp: true,
	}
}

// Option is a functional option for configuring the Stamper.
type Option func(*Config)

// WithFormat selects the header variant.
//
// Example:
//
//	s := stamper.New(stamper.WithFormat(fsbl.FormatMP2))
func WithFormat(format fsbl.Format) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithProgressCallback sets a callback function to track stamping phases.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the stamper operations.
//
// Example:
//
//	s := stamper.New(stamper.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithFileMode sets the permission mode of written output files.
// A zero mode is ignored.
func WithFileMode(mode os.FileMode) Option {
	return func(c *Config) {
		if mode != 0 {
			c.FileMode = mode
		}
	}
}

// WithVerifyAfterStamp enables or disables verification of the stamped image.
// Default is true.
func WithVerifyAfterStamp(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterStamp = verify
	}
}
