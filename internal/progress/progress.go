// Package progress derives the child-facing figures shown next to the
// task list: level, daily plan progress and the family leaderboard.
package progress

import (
	"math"
	"sort"

	"github.com/dukerupert/familyquest/internal/model"
	"github.com/dukerupert/familyquest/internal/task"
)

type Level struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
}

// Levels are ordered by Min ascending.
var Levels = []Level{
	{Name: "萌新冒险家", Min: 0},
	{Name: "闪亮探索者", Min: 50},
	{Name: "皇家守卫", Min: 150},
	{Name: "超级小英雄", Min: 300},
	{Name: "传奇队长", Min: 600},
}

type LevelStatus struct {
	Current Level   `json:"current"`
	Next    *Level  `json:"next,omitempty"`
	Percent float64 `json:"percent"`
}

// LevelFor returns the level reached with points and how far along the
// way to the next one the member is. At the top level Percent is 100.
func LevelFor(points int) LevelStatus {
	idx := 0
	for i, l := range Levels {
		if points >= l.Min {
			idx = i
		}
	}

	st := LevelStatus{Current: Levels[idx], Percent: 100}
	if idx+1 < len(Levels) {
		next := Levels[idx+1]
		st.Next = &next
		span := float64(next.Min - st.Current.Min)
		st.Percent = math.Min(100, math.Max(0, float64(points-st.Current.Min)/span*100))
	}
	return st
}

type Daily struct {
	Total     int                             `json:"total"`
	Done      int                             `json:"done"`
	Percent   int                             `json:"percent"`
	PendingBy map[model.TimeSlot][]model.Task `json:"pendingBySlot"`
}

// DailyFor summarizes the member's daily-plan tasks. A task counts as done
// once it has been submitted, whether or not a parent has reviewed it.
func DailyFor(tasks []model.Task, memberID string) Daily {
	d := Daily{PendingBy: make(map[model.TimeSlot][]model.Task, len(model.TimeSlots))}
	for _, slot := range model.TimeSlots {
		d.PendingBy[slot] = []model.Task{}
	}

	for _, t := range task.AssignedTo(tasks, memberID) {
		if !t.IsDaily() {
			continue
		}
		d.Total++
		switch t.Status {
		case model.StatusCompleted, model.StatusWaitingVerification:
			d.Done++
		case model.StatusPending:
			if _, ok := d.PendingBy[t.TimeSlot]; ok {
				d.PendingBy[t.TimeSlot] = append(d.PendingBy[t.TimeSlot], t)
			}
		}
	}

	if d.Total > 0 {
		d.Percent = int(math.Round(float64(d.Done) / float64(d.Total) * 100))
	}
	return d
}

// Leaderboard returns the children ordered by points, highest first.
// Ties keep family order.
func Leaderboard(members []model.Member) []model.Member {
	kids := model.Children(members)
	sort.SliceStable(kids, func(i, j int) bool {
		return kids[i].Points > kids[j].Points
	})
	return kids
}
