package payment

import "testing"

func TestStatusReviewable(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusApproved, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range tests {
		if got := tc.from.Reviewable(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %t, got %t", tc.from, tc.to, tc.want, got)
		}
	}
}
