package model

// Family is replaced wholesale on every save. Code is assigned once at
// setup and never changes.
type Family struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Code    string   `json:"code"`
	Members []Member `json:"members"`
	Rewards []Reward `json:"rewards"`
}

// Clone returns a copy whose member and reward slices do not alias f's.
func (f Family) Clone() Family {
	c := f
	c.Members = append([]Member(nil), f.Members...)
	c.Rewards = append([]Reward(nil), f.Rewards...)
	return c
}

// Snapshot is the complete persisted state: one family plus every task.
type Snapshot struct {
	Family Family `json:"family"`
	Tasks  []Task `json:"tasks"`
}

// Clone returns a deep enough copy that mutating the result's slices
// never touches s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Family: s.Family.Clone(),
		Tasks:  append([]Task(nil), s.Tasks...),
	}
}
