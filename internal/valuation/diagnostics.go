package valuation

import "fmt"

// DiagnosticCode identifies a category of non-fatal data-quality finding.
type DiagnosticCode string

// Recognized diagnostic codes. All are recoverable: the replay always returns
// a best-effort result alongside its diagnostics and never panics on bad data.
const (
	// DiagMalformedDate marks a transaction whose date could not be parsed.
	// The transaction is excluded from the replay rather than coerced.
	DiagMalformedDate DiagnosticCode = "malformed-date"

	// DiagMissingRate marks an asset/currency pair with no available exchange
	// rate. The unconverted value is used as a conservative fallback.
	DiagMissingRate DiagnosticCode = "missing-exchange-rate"

	// DiagReplayTruncated marks a replay that hit the day-loop iteration cap.
	// The returned snapshots cover only the simulated portion.
	DiagReplayTruncated DiagnosticCode = "replay-truncated"
)

// Diagnostic describes one non-fatal finding from a valuation replay.
type Diagnostic struct {
	Code          DiagnosticCode
	TransactionID string
	AssetID       string
	Date          string
	Message       string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}
