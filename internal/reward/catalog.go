// Package reward manages a family's reward catalog and redemptions.
package reward

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dukerupert/familyquest/internal/ident"
	"github.com/dukerupert/familyquest/internal/ledger"
	"github.com/dukerupert/familyquest/internal/model"
)

var (
	ErrRewardNotFound = errors.New("reward not found")
	ErrInvalidReward  = errors.New("invalid reward")
)

// Add appends a new reward with a fresh id.
func Add(rewards []model.Reward, title string, cost int, icon string) ([]model.Reward, model.Reward, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.Reward{}, fmt.Errorf("%w: title is required", ErrInvalidReward)
	}
	if cost < 0 {
		return nil, model.Reward{}, fmt.Errorf("%w: cost must be >= 0", ErrInvalidReward)
	}

	r := model.Reward{ID: ident.New(ident.PrefixReward), Title: title, Cost: cost, Icon: icon}
	out := make([]model.Reward, 0, len(rewards)+1)
	out = append(out, rewards...)
	out = append(out, r)
	return out, r, nil
}

// Remove filters out the reward with the given id.
func Remove(rewards []model.Reward, id string) ([]model.Reward, error) {
	out := make([]model.Reward, 0, len(rewards))
	for _, r := range rewards {
		if r.ID != id {
			out = append(out, r)
		}
	}
	if len(out) == len(rewards) {
		return nil, fmt.Errorf("%w: %q", ErrRewardNotFound, id)
	}
	return out, nil
}

// Find returns the reward with the given id, or nil.
func Find(rewards []model.Reward, id string) *model.Reward {
	for i := range rewards {
		if rewards[i].ID == id {
			return &rewards[i]
		}
	}
	return nil
}

// Redeem debits the reward's cost from the member. The balance clips at
// zero; whether the member can afford it is the caller's decision (see
// CanAfford). Unknown rewards or members leave the balances unchanged.
func Redeem(members []model.Member, rewards []model.Reward, memberID, rewardID string) []model.Member {
	r := Find(rewards, rewardID)
	if r == nil {
		return append([]model.Member(nil), members...)
	}
	return ledger.Debit(members, memberID, r.Cost)
}

// CanAfford reports whether the member's balance covers the reward.
func CanAfford(m model.Member, r model.Reward) bool {
	return m.Points >= r.Cost
}
