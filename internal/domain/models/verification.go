package models

// VerificationKind tags a verification outcome
type VerificationKind string

const (
	Verified        VerificationKind = "verified"
	AlreadyVerified VerificationKind = "already_verified"
	Failed          VerificationKind = "failed"
)

// VerificationOutcome is the classified result of one explorer verification attempt
type VerificationOutcome struct {
	Kind   VerificationKind `json:"kind"`
	Reason string           `json:"reason,omitempty"` // set for Failed
}

// Succeeded reports whether the contract is verified on the explorer
func (o VerificationOutcome) Succeeded() bool {
	return o.Kind == Verified || o.Kind == AlreadyVerified
}

// VerificationRequest carries what the explorer needs to match source to bytecode
type VerificationRequest struct {
	Contract        string
	Address         string
	ConstructorArgs []any
}
