// Package ledger credits and debits member point balances.
//
// Every function returns a new member slice and leaves its input untouched;
// committing the result is the caller's job.
package ledger

import "github.com/dukerupert/familyquest/internal/model"

// Credit adds amount to the member's balance. Unknown ids and negative
// amounts leave the balances unchanged.
func Credit(members []model.Member, memberID string, amount int) []model.Member {
	if amount < 0 {
		return clone(members)
	}
	return apply(members, memberID, func(points int) int { return points + amount })
}

// Debit subtracts amount from the member's balance, clipping at zero.
func Debit(members []model.Member, memberID string, amount int) []model.Member {
	if amount < 0 {
		return clone(members)
	}
	return apply(members, memberID, func(points int) int { return max(0, points-amount) })
}

// Balance returns the member's points and whether the member exists.
func Balance(members []model.Member, memberID string) (int, bool) {
	m := model.FindMember(members, memberID)
	if m == nil {
		return 0, false
	}
	return m.Points, true
}

func apply(members []model.Member, memberID string, fn func(int) int) []model.Member {
	out := clone(members)
	for i := range out {
		if out[i].ID == memberID {
			out[i].Points = fn(out[i].Points)
			break
		}
	}
	return out
}

func clone(members []model.Member) []model.Member {
	return append([]model.Member(nil), members...)
}
