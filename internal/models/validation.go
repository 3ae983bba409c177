package models

// ValidationResult is the complete per-article output of the cross-source
// validator (spec.md §4.5 step 7): the trust verdict plus the evidence
// that produced it, and a snapshot of the source's reputation at the time
// of validation.
type ValidationResult struct {
	Article             Article
	Claims              []ExtractedClaim
	Corroboration       *CorroborationResult
	Trust               TrustScore
	ReputationSnapshot  Reputation
	Degraded            bool
	DegradedReason      string
}
