package team

// Source identifies who is asking to change a team status.
type Source string

const (
	SourceAdmin           Source = "admin"
	SourceQualification   Source = "qualification"
	SourcePaymentApproval Source = "payment_approval"

	// SourcePaymentSubmission is the captain uploading a payment proof.
	SourcePaymentSubmission Source = "payment_submission"
)

// Precedence ranks sources; a higher rank may overwrite statuses owned by a lower one.
func (s Source) Precedence() int {
	switch s {
	case SourceAdmin:
		return 4
	case SourceQualification:
		return 3
	case SourcePaymentApproval:
		return 2
	case SourcePaymentSubmission:
		return 1
	default:
		return 0
	}
}

// owner is the lowest-ranked source that writes a status.
// Statuses nobody but the lifecycle itself writes are owned by nobody.
func owner(status Status) Source {
	switch status {
	case StatusEliminated:
		return SourceAdmin
	case StatusQualified:
		return SourceQualification
	case StatusRegistered:
		return SourcePaymentApproval
	default:
		return ""
	}
}

// allowedTargets lists the statuses each non-admin source may write.
var allowedTargets = map[Source]map[Status]struct{}{
	SourceQualification:     {StatusQualified: {}, StatusRegistered: {}},
	SourcePaymentApproval:   {StatusRegistered: {}},
	SourcePaymentSubmission: {StatusPendingPayment: {}},
}

// Transition is the single place that decides team status changes.
// It returns the resulting status and whether a write is needed.
//
// Rules:
//   - admin may set any valid status.
//   - a source never overwrites a status owned by a higher-precedence source.
//   - qualification promotes any team admin has not eliminated and reverts only teams it qualified.
//   - payment approval only moves unpaid teams (incomplete, pending_payment) to registered.
//   - payment submission only moves incomplete teams to pending_payment.
func Transition(current, target Status, source Source) (Status, bool) {
	if !target.Valid() || current == target {
		return current, false
	}
	if source == SourceAdmin {
		return target, true
	}
	if _, ok := allowedTargets[source][target]; !ok {
		return current, false
	}
	if holder := owner(current); holder != "" && holder.Precedence() > source.Precedence() {
		return current, false
	}

	switch source {
	case SourceQualification:
		if target == StatusRegistered && current != StatusQualified {
			return current, false
		}
	case SourcePaymentApproval:
		if current != StatusIncomplete && current != StatusPendingPayment {
			return current, false
		}
	case SourcePaymentSubmission:
		if current != StatusIncomplete {
			return current, false
		}
	}

	return target, true
}
