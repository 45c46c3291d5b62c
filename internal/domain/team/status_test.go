package team

import "testing"

func TestTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   Status
		target    Status
		source    Source
		want      Status
		wantWrite bool
	}{
		{"admin overrides anything", StatusQualified, StatusEliminated, SourceAdmin, StatusEliminated, true},
		{"admin can reopen eliminated", StatusEliminated, StatusRegistered, SourceAdmin, StatusRegistered, true},
		{"admin noop on same status", StatusRegistered, StatusRegistered, SourceAdmin, StatusRegistered, false},

		{"approval registers pending team", StatusPendingPayment, StatusRegistered, SourcePaymentApproval, StatusRegistered, true},
		{"approval registers incomplete team", StatusIncomplete, StatusRegistered, SourcePaymentApproval, StatusRegistered, true},
		{"approval is idempotent", StatusRegistered, StatusRegistered, SourcePaymentApproval, StatusRegistered, false},
		{"approval never demotes qualified", StatusQualified, StatusRegistered, SourcePaymentApproval, StatusQualified, false},
		{"approval never revives eliminated", StatusEliminated, StatusRegistered, SourcePaymentApproval, StatusEliminated, false},

		{"qualification promotes registered", StatusRegistered, StatusQualified, SourceQualification, StatusQualified, true},
		{"qualification keeps qualified", StatusQualified, StatusQualified, SourceQualification, StatusQualified, false},
		{"qualification reverts qualified", StatusQualified, StatusRegistered, SourceQualification, StatusRegistered, true},
		{"qualification promotes pending team", StatusPendingPayment, StatusQualified, SourceQualification, StatusQualified, true},
		{"qualification promotes incomplete team", StatusIncomplete, StatusQualified, SourceQualification, StatusQualified, true},
		{"qualification never reverts incomplete", StatusIncomplete, StatusRegistered, SourceQualification, StatusIncomplete, false},
		{"qualification never reverts pending", StatusPendingPayment, StatusRegistered, SourceQualification, StatusPendingPayment, false},
		{"qualification respects elimination", StatusEliminated, StatusQualified, SourceQualification, StatusEliminated, false},

		{"submission marks incomplete pending", StatusIncomplete, StatusPendingPayment, SourcePaymentSubmission, StatusPendingPayment, true},
		{"submission leaves registered", StatusRegistered, StatusPendingPayment, SourcePaymentSubmission, StatusRegistered, false},

		{"source cannot write foreign target", StatusRegistered, StatusEliminated, SourceQualification, StatusRegistered, false},
		{"invalid target ignored", StatusRegistered, Status("banned"), SourceAdmin, StatusRegistered, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, write := Transition(tc.current, tc.target, tc.source)
			if got != tc.want || write != tc.wantWrite {
				t.Fatalf("Transition(%s, %s, %s) = (%s, %t), want (%s, %t)",
					tc.current, tc.target, tc.source, got, write, tc.want, tc.wantWrite)
			}
		})
	}
}

func TestSourcePrecedence(t *testing.T) {
	order := []Source{SourceAdmin, SourceQualification, SourcePaymentApproval, SourcePaymentSubmission}
	for i := 1; i < len(order); i++ {
		if order[i-1].Precedence() <= order[i].Precedence() {
			t.Fatalf("expected %s to outrank %s", order[i-1], order[i])
		}
	}
}
