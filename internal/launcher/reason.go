package launcher

import "fmt"

// FailureThreshold is the highest ShellExecute return value that signals
// failure. Anything above it is an instance handle, i.e. success.
const FailureThreshold = 32

// ReasonKind classifies a failed shell open.
type ReasonKind string

const (
	ReasonNone             ReasonKind = ""
	ReasonNoResources      ReasonKind = "no_resources"
	ReasonFileNotFound     ReasonKind = "file_not_found"
	ReasonPathNotFound     ReasonKind = "path_not_found"
	ReasonAccessDenied     ReasonKind = "access_denied"
	ReasonOutOfMemory      ReasonKind = "out_of_memory"
	ReasonBadFormat        ReasonKind = "bad_format"
	ReasonSharingViolation ReasonKind = "sharing_violation"
	ReasonAssocIncomplete  ReasonKind = "association_incomplete"
	ReasonDDETimeout       ReasonKind = "dde_timeout"
	ReasonDDEFailed        ReasonKind = "dde_failed"
	ReasonDDEBusy          ReasonKind = "dde_busy"
	ReasonDDENoResponse    ReasonKind = "dde_no_response"
	ReasonDDEAdviseTimeout ReasonKind = "dde_advise_timeout"
	ReasonUnknown          ReasonKind = "unknown"
)

var reasonByCode = map[int]ReasonKind{
	0:  ReasonNoResources,
	2:  ReasonFileNotFound,
	3:  ReasonPathNotFound,
	5:  ReasonAccessDenied,
	8:  ReasonOutOfMemory,
	11: ReasonBadFormat,
	26: ReasonSharingViolation,
	27: ReasonAssocIncomplete,
	28: ReasonDDETimeout,
	29: ReasonDDEFailed,
	30: ReasonDDEBusy,
	31: ReasonDDENoResponse,
	32: ReasonDDEAdviseTimeout,
}

var reasonMessages = map[ReasonKind]string{
	ReasonNoResources:      "the system is out of memory or resources",
	ReasonFileNotFound:     "file not found",
	ReasonPathNotFound:     "path not found",
	ReasonAccessDenied:     "access denied",
	ReasonOutOfMemory:      "out of memory",
	ReasonBadFormat:        "invalid executable format",
	ReasonSharingViolation: "sharing violation",
	ReasonAssocIncomplete:  "file association is incomplete or invalid",
	ReasonDDETimeout:       "DDE transaction timed out",
	ReasonDDEFailed:        "DDE transaction failed",
	ReasonDDEBusy:          "DDE is busy",
	ReasonDDENoResponse:    "DDE did not respond",
	ReasonDDEAdviseTimeout: "DDE advise request timed out",
	ReasonUnknown:          "unknown error",
}

// Failed reports whether a shell open return code signals failure.
func Failed(code int) bool {
	return code <= FailureThreshold
}

// ReasonFor maps a shell open return code to its reason. Success codes map
// to ReasonNone and unmapped failure codes to ReasonUnknown.
func ReasonFor(code int) ReasonKind {
	if !Failed(code) {
		return ReasonNone
	}
	if reason, ok := reasonByCode[code]; ok {
		return reason
	}
	return ReasonUnknown
}

// Message returns the human-readable description.
func (r ReasonKind) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	if r == ReasonNone {
		return "ok"
	}
	return reasonMessages[ReasonUnknown]
}

// Outcome is the result of opening one shortcut.
type Outcome struct {
	Path   string
	Code   int
	Reason ReasonKind
}

// NewOutcome builds the outcome for a shell open return code.
func NewOutcome(path string, code int) Outcome {
	return Outcome{Path: path, Code: code, Reason: ReasonFor(code)}
}

// OK reports success.
func (o Outcome) OK() bool {
	return !Failed(o.Code)
}

// Error describes a failed outcome.
func (o Outcome) Error() string {
	return fmt.Sprintf("launch shortcut failed: %s\nfile: %s\ncode: %d", o.Reason.Message(), o.Path, o.Code)
}

// Failures filters the failed outcomes.
func Failures(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}
