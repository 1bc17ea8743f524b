package stamper

import "time"

// Phases reported through ProgressCallback, in order.
const (
	PhaseReading   = "reading"
	PhaseBuilding  = "building"
	PhaseVerifying = "verifying"
	PhaseWriting   = "writing"
	PhaseComplete  = "complete"
)

// Progress describes the step a Stamper is about to perform.
type Progress struct {
	// Phase is one of the Phase* constants
	Phase string

	// Bytes is the number of bytes handled by the phase, when known
	Bytes int

	// ElapsedTime is the time elapsed since the operation started
	ElapsedTime time.Duration
}

// ProgressCallback is called at each phase transition.
// Implementations should return quickly.
//
// Example:
//
//	s := stamper.New(
//	    stamper.WithProgressCallback(func(p stamper.Progress) {
//	        fmt.Printf("[%s] %d bytes\n", p.Phase, p.Bytes)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the Stamper.
// This allows integration with any logging framework.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
