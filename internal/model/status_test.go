package model

import "testing"

func TestPostStatus_CanTransition(t *testing.T) {
	cases := []struct {
		name string
		from PostStatus
		to   PostStatus
		want bool
	}{
		{"pending->published", PostStatusPending, PostStatusPublished, true},
		{"pending->rejected", PostStatusPending, PostStatusRejected, true},
		{"published->rejected", PostStatusPublished, PostStatusRejected, false},
		{"published->pending", PostStatusPublished, PostStatusPending, false},
		{"rejected->pending", PostStatusRejected, PostStatusPending, false},
		{"rejected->published", PostStatusRejected, PostStatusPublished, false},
		{"pending->pending", PostStatusPending, PostStatusPending, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.from.CanTransition(c.to); got != c.want {
				t.Errorf("CanTransition(%v -> %v) = %v, want %v", c.from, c.to, got, c.want)
			}
		})
	}
}

func TestPostStatus_Valid(t *testing.T) {
	for _, s := range []PostStatus{PostStatusPending, PostStatusPublished, PostStatusRejected} {
		if !s.Valid() {
			t.Errorf("status %v should be valid", s)
		}
	}
	if PostStatus(7).Valid() {
		t.Error("undefined status should be invalid")
	}
}

// 终态不允许任何出边
func TestPostStatus_TerminalStates(t *testing.T) {
	terminals := []PostStatus{PostStatusPublished, PostStatusRejected}
	all := []PostStatus{PostStatusPending, PostStatusPublished, PostStatusRejected}

	for _, from := range terminals {
		for _, to := range all {
			if from.CanTransition(to) {
				t.Errorf("terminal state %v must not transition to %v", from, to)
			}
		}
	}
}
