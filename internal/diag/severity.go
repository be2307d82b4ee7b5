package diag

// Severity ranks a diagnostic. Parse failures are errors; lines a batch
// skipped are reported as info when asked for.
type Severity uint8

const (
	SevInfo Severity = iota
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// SarifLevel maps s to a SARIF result level.
func (s Severity) SarifLevel() string {
	if s >= SevError {
		return "error"
	}
	return "note"
}
