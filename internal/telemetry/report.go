package telemetry

import "time"

// Sentinel values used when a report field cannot be derived.
const (
	NoStackTrace   = "No stack trace available"
	UnknownMessage = "Unknown error"
	DefaultKind    = "Error"
	StartupOrigin  = "STARTUP"
	StartupAgent   = "server"
)

// Report is the failure report posted to the collector endpoint.
// Every field has a fallback so a report is always constructable;
// it is serialized once per incident and discarded after the single
// dispatch attempt.
type Report struct {
	TenantID      string    `json:"tenantId,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	SourceFile    string    `json:"sourceFile,omitempty"`
	SourceLine    int       `json:"sourceLine,omitempty"`
	StackTrace    string    `json:"stackTrace"`
	Message       string    `json:"message"`
	ErrorKind     string    `json:"errorKind"`
	RequestPath   string    `json:"requestPath"`
	RequestMethod string    `json:"requestMethod"`
	UserAgent     string    `json:"userAgent,omitempty"`
}
