package metrics

// EvaluationObserver receives one call per qualification decision.
type EvaluationObserver interface {
	RecordEvaluation(campaignType string, outcome string)
	RecordLookupMiss()
}

const (
	OutcomeQualified   = "qualified"
	OutcomeRejected    = "rejected"
	OutcomeNeedsReview = "needs_review"
)
