package store

import "github.com/dukerupert/familyquest/internal/model"

type loadStep struct {
	name  string
	apply func(model.Snapshot) model.Snapshot
}

// loadSteps run in this order on every loaded or restored snapshot. Each
// step must be idempotent.
var loadSteps = []loadStep{
	{name: "backfill_rewards", apply: backfillRewards},
	{name: "ensure_collections", apply: ensureCollections},
}

// Migrate normalizes a raw snapshot before the rest of the application
// sees it.
func Migrate(snap model.Snapshot) model.Snapshot {
	for _, step := range loadSteps {
		snap = step.apply(snap)
	}
	return snap
}

// backfillRewards installs the default catalog when a family has no
// rewards. Families saved before rewards existed have none.
func backfillRewards(snap model.Snapshot) model.Snapshot {
	if len(snap.Family.Rewards) == 0 {
		snap.Family.Rewards = model.DefaultRewards()
	}
	return snap
}

func ensureCollections(snap model.Snapshot) model.Snapshot {
	if snap.Family.Members == nil {
		snap.Family.Members = []model.Member{}
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	return snap
}
