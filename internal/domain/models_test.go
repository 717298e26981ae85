package domain

import "testing"

func TestExecutionStatus(t *testing.T) {
	cases := []struct {
		s        ExecutionStatus
		valid    bool
		terminal bool
	}{
		{StatusPending, true, false},
		{StatusSuccess, true, true},
		{StatusFailed, true, true},
		{"", false, false},
		{"running", false, false},
	}
	for _, tc := range cases {
		if got := tc.s.Valid(); got != tc.valid {
			t.Errorf("%q.Valid() = %v, want %v", tc.s, got, tc.valid)
		}
		if got := tc.s.Terminal(); got != tc.terminal {
			t.Errorf("%q.Terminal() = %v, want %v", tc.s, got, tc.terminal)
		}
	}
}
