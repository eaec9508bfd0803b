package model

type Role string

const (
	RoleParent Role = "PARENT"
	RoleChild  Role = "CHILD"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleParent || r == RoleChild
}

// Member is a person in the family. Points only carry meaning for children;
// parents keep a zero balance that is omitted from the snapshot.
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar"`
	Points int    `json:"points,omitempty"`
}

func (m Member) IsParent() bool { return m.Role == RoleParent }
func (m Member) IsChild() bool  { return m.Role == RoleChild }

// FindMember returns the member with the given id, or nil.
func FindMember(members []Member, id string) *Member {
	for i := range members {
		if members[i].ID == id {
			return &members[i]
		}
	}
	return nil
}

// Children returns the CHILD members in family order.
func Children(members []Member) []Member {
	var out []Member
	for _, m := range members {
		if m.IsChild() {
			out = append(out, m)
		}
	}
	return out
}
