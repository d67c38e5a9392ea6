package diag

// Severity communicates how serious a diagnostic is.
type Severity uint8

const (
	// Info is purely informational.
	Info Severity = iota
	// Warn does not change the module's compile status.
	Warn
	// Err marks the enclosing module (and, for parse errors, the file) as failed.
	Err
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warn:
		return "warning"
	case Err:
		return "error"
	default:
		return "unknown"
	}
}
