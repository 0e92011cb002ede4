package xform

import "fmt"

// Status is the outcome code of applying a single xform.
// The numeric values are stable and appear in logs and API responses.
type Status int

const (
	StatusOK             Status = 0
	StatusMissingConfig  Status = 1
	StatusInvalidConfig  Status = 2
	StatusMissingInput   Status = 3
	StatusInputNotSet    Status = 4
	StatusFileReadFailed Status = 5
	StatusFileSaveFailed Status = 6
	StatusNotInitialized Status = 7
	StatusNullInput      Status = 8
	StatusMismatchedSize Status = 9
	StatusAlreadyExists  Status = 10
)

var statusNames = map[Status]string{
	StatusOK:             "OK",
	StatusMissingConfig:  "MissingConfig",
	StatusInvalidConfig:  "InvalidConfig",
	StatusMissingInput:   "MissingInput",
	StatusInputNotSet:    "InputNotSet",
	StatusFileReadFailed: "FileReadFailed",
	StatusFileSaveFailed: "FileSaveFailed",
	StatusNotInitialized: "NotInitialized",
	StatusNullInput:      "NullInput",
	StatusMismatchedSize: "MismatchedSize",
	StatusAlreadyExists:  "AlreadyExists",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a status name written by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	for c, n := range statusNames {
		if n == string(b) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}

// ApplyError reports a failed apply. It is recorded by the graph against
// the xform and never aborts an evaluation pass.
type ApplyError struct {
	Xform   string `json:"xform"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

func (e *ApplyError) Error() string {
	if e.Xform == "" {
		return fmt.Sprintf("%s (%d): %s", e.Status, int(e.Status), e.Message)
	}
	return fmt.Sprintf("xform %s: %s (%d): %s", e.Xform, e.Status, int(e.Status), e.Message)
}

// Failf builds an ApplyError with a formatted message. The graph fills in
// the xform name.
func Failf(status Status, format string, args ...any) *ApplyError {
	return &ApplyError{Status: status, Message: fmt.Sprintf(format, args...)}
}
