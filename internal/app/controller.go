// Package app owns the family snapshot. Every mutation goes through the
// Controller, which computes the next snapshot, saves it and only then
// makes it visible to readers and listeners.
package app

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/familyquest/internal/model"
	"github.com/dukerupert/familyquest/internal/reward"
	"github.com/dukerupert/familyquest/internal/store"
	"github.com/dukerupert/familyquest/internal/task"
)

// Store persists whole snapshots.
type Store interface {
	Load() (*model.Snapshot, error)
	Save(model.Snapshot) error
}

// Event names the change a committed snapshot carries. Revision counts
// commits since the process started; listeners see revisions in order.
type Event struct {
	Entity   string
	Action   string
	ID       string
	Revision uint64
}

// Listener is called after each committed change with a copy of the new
// snapshot. Listeners run outside the controller's lock but one commit at
// a time, so they must not call mutating Controller methods.
type Listener func(Event, model.Snapshot)

// PlanItem selects one preset for one slot of a daily plan.
type PlanItem struct {
	Slot   model.TimeSlot `json:"slot"`
	Preset model.Preset   `json:"preset"`
}

type Controller struct {
	mu        sync.Mutex
	store     Store
	logger    *slog.Logger
	now       func() time.Time
	snap      *model.Snapshot
	activeID  string
	listeners []Listener
	revision  uint64

	// pubMu guards published; pubCond hands delivery to the next revision.
	pubMu     sync.Mutex
	pubCond   *sync.Cond
	published uint64
}

func New(s Store, logger *slog.Logger) *Controller {
	c := &Controller{store: s, logger: logger, now: time.Now}
	c.pubCond = sync.NewCond(&c.pubMu)
	return c
}

// Load reads the persisted snapshot. Having nothing stored is not an
// error; Ready reports false until Setup runs.
func (c *Controller) Load() error {
	snap, err := c.store.Load()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.activeID = ""
	if snap == nil {
		c.logger.Info("no stored family, waiting for setup")
		return nil
	}
	c.logger.Info("loaded family", "family_id", snap.Family.ID, "members", len(snap.Family.Members), "tasks", len(snap.Tasks))
	return nil
}

// Ready reports whether a family exists.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap != nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() (model.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return model.Snapshot{}, false
	}
	return c.snap.Clone(), true
}

// Subscribe registers l for every future committed change.
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Setup stores the family produced by the first-run flow.
func (c *Controller) Setup(f model.Family) error {
	if err := validateFamily(f); err != nil {
		c.logger.Warn("setup rejected", "error", err)
		return err
	}
	return c.replace(store.Migrate(model.Snapshot{Family: f.Clone()}), Event{Entity: "family", Action: "created", ID: f.ID}, false)
}

// Restore replaces the whole state with snap, e.g. from a backup.
func (c *Controller) Restore(snap model.Snapshot) error {
	snap = store.Migrate(snap)
	if err := validateFamily(snap.Family); err != nil {
		c.logger.Warn("restore rejected", "error", err)
		return err
	}
	return c.replace(snap, Event{Entity: "family", Action: "restored", ID: snap.Family.ID}, true)
}

func (c *Controller) replace(next model.Snapshot, ev Event, overwrite bool) error {
	c.mu.Lock()
	if c.snap != nil && !overwrite {
		c.mu.Unlock()
		return ErrFamilyExists
	}
	if err := c.store.Save(next); err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to persist snapshot", "action", ev.Action, "error", err)
		return fmt.Errorf("persist snapshot: %w", err)
	}
	c.snap = &next
	c.activeID = ""
	ev = c.nextRevision(ev)
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	c.publish(listeners, ev, next)
	return nil
}

// mutate runs fn on a copy of the current snapshot and commits the result.
// When fn fails, or the save fails, the current snapshot stays as it was.
func (c *Controller) mutate(action string, fn func(model.Snapshot) (model.Snapshot, Event, error)) error {
	c.mu.Lock()
	if c.snap == nil {
		c.mu.Unlock()
		return ErrNoFamily
	}

	next, ev, err := fn(c.snap.Clone())
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("action rejected", "action", action, "error", err)
		return err
	}

	if err := c.store.Save(next); err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to persist snapshot", "action", action, "error", err)
		return fmt.Errorf("persist snapshot: %w", err)
	}
	c.snap = &next
	ev = c.nextRevision(ev)
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	c.logger.Debug("committed", "action", action, "entity", ev.Entity, "id", ev.ID, "revision", ev.Revision)
	c.publish(listeners, ev, next)
	return nil
}

// nextRevision must be called with c.mu held, right after a commit.
func (c *Controller) nextRevision(ev Event) Event {
	c.revision++
	ev.Revision = c.revision
	return ev
}

// publish delivers ev once every earlier revision has been delivered, so
// listeners observe commits in the order they happened.
func (c *Controller) publish(listeners []Listener, ev Event, snap model.Snapshot) {
	c.pubMu.Lock()
	for c.published != ev.Revision-1 {
		c.pubCond.Wait()
	}
	c.pubMu.Unlock()

	for _, l := range listeners {
		l(ev, snap.Clone())
	}

	c.pubMu.Lock()
	c.published = ev.Revision
	c.pubCond.Broadcast()
	c.pubMu.Unlock()
}

// --- Session ---

// Login makes memberID the active viewer. The session is not persisted.
func (c *Controller) Login(memberID string) (model.Member, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return model.Member{}, ErrNoFamily
	}
	m := model.FindMember(c.snap.Family.Members, memberID)
	if m == nil {
		return model.Member{}, fmt.Errorf("%w: %q", ErrMemberNotFound, memberID)
	}
	c.activeID = m.ID
	return *m, nil
}

func (c *Controller) Logout() {
	c.mu.Lock()
	c.activeID = ""
	c.mu.Unlock()
}

// Active returns the logged-in member as of the latest snapshot.
func (c *Controller) Active() (model.Member, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil || c.activeID == "" {
		return model.Member{}, false
	}
	m := model.FindMember(c.snap.Family.Members, c.activeID)
	if m == nil {
		return model.Member{}, false
	}
	return *m, true
}

// activeParent must be called with c.mu held.
func (c *Controller) activeParent(members []model.Member) (model.Member, error) {
	if c.activeID == "" {
		return model.Member{}, ErrNoActiveMember
	}
	m := model.FindMember(members, c.activeID)
	if m == nil {
		return model.Member{}, ErrNoActiveMember
	}
	if !m.IsParent() {
		return model.Member{}, ErrNotParent
	}
	return *m, nil
}

// --- Members ---

// AddMember appends a member. An empty role means CHILD and an empty
// avatar picks one of the built-in avatars.
func (c *Controller) AddMember(name string, role model.Role, avatar string) (model.Member, error) {
	name = strings.TrimSpace(name)
	if role == "" {
		role = model.RoleChild
	}

	var added model.Member
	err := c.mutate("add_member", func(s model.Snapshot) (model.Snapshot, Event, error) {
		if name == "" {
			return s, Event{}, fmt.Errorf("%w: name is required", ErrInvalidMember)
		}
		if !role.Valid() {
			return s, Event{}, fmt.Errorf("%w: unknown role %q", ErrInvalidMember, role)
		}
		added = newMember(name, role, avatar)
		s.Family.Members = append(s.Family.Members, added)
		return s, Event{Entity: "member", Action: "created", ID: added.ID}, nil
	})
	return added, err
}

// --- Tasks ---

// AddTask creates one task on behalf of the active parent.
func (c *Controller) AddTask(d task.Draft) (model.Task, error) {
	var created model.Task
	err := c.mutate("add_task", func(s model.Snapshot) (model.Snapshot, Event, error) {
		parent, err := c.activeParent(s.Family.Members)
		if err != nil {
			return s, Event{}, err
		}
		tasks, t, err := task.Create(s.Family.Members, s.Tasks, parent.ID, d)
		if err != nil {
			return s, Event{}, err
		}
		s.Tasks = tasks
		created = t
		return s, Event{Entity: "task", Action: "created", ID: t.ID}, nil
	})
	return created, err
}

// AddTasks creates every draft in a single committed snapshot.
func (c *Controller) AddTasks(drafts []task.Draft) ([]model.Task, error) {
	var created []model.Task
	err := c.mutate("add_tasks", func(s model.Snapshot) (model.Snapshot, Event, error) {
		parent, err := c.activeParent(s.Family.Members)
		if err != nil {
			return s, Event{}, err
		}
		tasks, batch, err := task.CreateBatch(s.Family.Members, s.Tasks, parent.ID, drafts)
		if err != nil {
			return s, Event{}, err
		}
		s.Tasks = tasks
		created = batch
		return s, Event{Entity: "task", Action: "batch_created"}, nil
	})
	return created, err
}

// PublishDailyPlan turns preset selections into daily-plan tasks for one
// child, all worth DailyPlanPoints.
func (c *Controller) PublishDailyPlan(assigneeID string, items []PlanItem) ([]model.Task, error) {
	drafts := make([]task.Draft, 0, len(items))
	for _, it := range items {
		drafts = append(drafts, task.Draft{
			Title:        it.Preset.Title,
			Description:  it.Preset.Description,
			AssignedToID: assigneeID,
			PointsReward: model.DailyPlanPoints,
			CategoryIcon: it.Preset.Icon,
			TimeSlot:     it.Slot,
		})
	}
	return c.AddTasks(drafts)
}

// CompleteTask records a child's submission.
func (c *Controller) CompleteTask(id string, sub task.Submission) (model.Task, error) {
	var updated model.Task
	err := c.mutate("complete_task", func(s model.Snapshot) (model.Snapshot, Event, error) {
		tasks, err := task.Submit(s.Tasks, id, sub, c.now())
		if err != nil {
			return s, Event{}, err
		}
		s.Tasks = tasks
		updated = tasks[model.FindTask(tasks, id)]
		return s, Event{Entity: "task", Action: "submitted", ID: id}, nil
	})
	return updated, err
}

// VerifyTask records a parent's review and credits points on approval.
func (c *Controller) VerifyTask(id string, v task.Verdict) (model.Task, error) {
	var updated model.Task
	err := c.mutate("verify_task", func(s model.Snapshot) (model.Snapshot, Event, error) {
		tasks, members, err := task.Verify(s.Family.Members, s.Tasks, id, v, c.now())
		if err != nil {
			return s, Event{}, err
		}
		s.Tasks = tasks
		s.Family.Members = members
		updated = tasks[model.FindTask(tasks, id)]
		return s, Event{Entity: "task", Action: strings.ToLower(string(updated.Status)), ID: id}, nil
	})
	return updated, err
}

// DeleteTask removes the task. Points it earned are kept.
func (c *Controller) DeleteTask(id string) error {
	return c.mutate("delete_task", func(s model.Snapshot) (model.Snapshot, Event, error) {
		tasks, err := task.Delete(s.Tasks, id)
		if err != nil {
			return s, Event{}, err
		}
		s.Tasks = tasks
		return s, Event{Entity: "task", Action: "deleted", ID: id}, nil
	})
}

// ClearMemory drops the archived proof of a task.
func (c *Controller) ClearMemory(id string) error {
	return c.mutate("clear_memory", func(s model.Snapshot) (model.Snapshot, Event, error) {
		tasks, err := task.ClearMemory(s.Tasks, id)
		if err != nil {
			return s, Event{}, err
		}
		s.Tasks = tasks
		return s, Event{Entity: "task", Action: "memory_cleared", ID: id}, nil
	})
}

// --- Rewards ---

func (c *Controller) AddReward(title string, cost int, icon string) (model.Reward, error) {
	var added model.Reward
	err := c.mutate("add_reward", func(s model.Snapshot) (model.Snapshot, Event, error) {
		rewards, r, err := reward.Add(s.Family.Rewards, title, cost, icon)
		if err != nil {
			return s, Event{}, err
		}
		s.Family.Rewards = rewards
		added = r
		return s, Event{Entity: "reward", Action: "created", ID: r.ID}, nil
	})
	return added, err
}

func (c *Controller) DeleteReward(id string) error {
	return c.mutate("delete_reward", func(s model.Snapshot) (model.Snapshot, Event, error) {
		rewards, err := reward.Remove(s.Family.Rewards, id)
		if err != nil {
			return s, Event{}, err
		}
		s.Family.Rewards = rewards
		return s, Event{Entity: "reward", Action: "deleted", ID: id}, nil
	})
}

// RedeemReward debits the reward's cost from the member, clipping at zero.
// It does not check the balance; see RedeemIfAffordable.
func (c *Controller) RedeemReward(memberID, rewardID string) (model.Member, error) {
	return c.redeem(memberID, rewardID, false)
}

// RedeemIfAffordable redeems only when the member's committed balance
// covers the cost, and fails with ErrInsufficientPoints otherwise. The
// check and the debit happen in the same commit.
func (c *Controller) RedeemIfAffordable(memberID, rewardID string) (model.Member, error) {
	return c.redeem(memberID, rewardID, true)
}

func (c *Controller) redeem(memberID, rewardID string, checkBalance bool) (model.Member, error) {
	var updated model.Member
	err := c.mutate("redeem_reward", func(s model.Snapshot) (model.Snapshot, Event, error) {
		m := model.FindMember(s.Family.Members, memberID)
		if m == nil {
			return s, Event{}, fmt.Errorf("%w: %q", ErrMemberNotFound, memberID)
		}
		r := reward.Find(s.Family.Rewards, rewardID)
		if r == nil {
			return s, Event{}, fmt.Errorf("%w: %q", reward.ErrRewardNotFound, rewardID)
		}
		if checkBalance && !reward.CanAfford(*m, *r) {
			return s, Event{}, fmt.Errorf("%w: %d < %d", ErrInsufficientPoints, m.Points, r.Cost)
		}
		s.Family.Members = reward.Redeem(s.Family.Members, s.Family.Rewards, memberID, rewardID)
		updated = *model.FindMember(s.Family.Members, memberID)
		return s, Event{Entity: "reward", Action: "redeemed", ID: rewardID}, nil
	})
	return updated, err
}
