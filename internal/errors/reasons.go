package errors

import "fmt"

// MetaReason is the meta key under which a gameplay rejection reason is stored
const MetaReason = "reason"

// Reason names why a gameplay request was rejected. Rejections are local and
// recoverable; the simulation keeps running.
type Reason string

// Rejection reasons
const (
	ReasonNone             Reason = ""
	ReasonNoActor          Reason = "NoActor"
	ReasonUnknownSkill     Reason = "UnknownSkill"
	ReasonOnCooldown       Reason = "OnCooldown"
	ReasonInsufficientMana Reason = "InsufficientMana"
	ReasonMissingTarget    Reason = "MissingTarget"
	ReasonOutOfBounds      Reason = "OutOfBounds"
	ReasonCellOccupied     Reason = "CellOccupied"
	ReasonNoPreview        Reason = "NoPreview"
)

// Code returns the error code a rejection with this reason carries
func (r Reason) Code() Code {
	switch r {
	case ReasonUnknownSkill:
		return CodeNotFound
	case ReasonInsufficientMana:
		return CodeResourceExhausted
	case ReasonMissingTarget:
		return CodeInvalidArgument
	case ReasonOutOfBounds:
		return CodeOutOfRange
	case ReasonCellOccupied:
		return CodeAlreadyExists
	case ReasonNoActor, ReasonOnCooldown, ReasonNoPreview:
		return CodeFailedPrecondition
	default:
		return CodeInternal
	}
}

// Rejected creates an error for a gameplay rejection
func Rejected(reason Reason, message string) *Error {
	return New(reason.Code(), message).WithMeta(MetaReason, string(reason))
}

// Rejectedf creates a gameplay rejection with a formatted message
func Rejectedf(reason Reason, format string, args ...any) *Error {
	return Rejected(reason, fmt.Sprintf(format, args...))
}

// GetReason extracts the rejection reason from an error, or ReasonNone
func GetReason(err error) Reason {
	meta := GetMeta(err)
	if meta == nil {
		return ReasonNone
	}
	if r, ok := meta[MetaReason].(string); ok {
		return Reason(r)
	}
	return ReasonNone
}

// IsRejected reports whether err is a gameplay rejection for reason
func IsRejected(err error, reason Reason) bool {
	return reason != ReasonNone && GetReason(err) == reason
}
