package app

import (
	"fmt"
	"strings"

	"github.com/dukerupert/familyquest/internal/ident"
	"github.com/dukerupert/familyquest/internal/model"
)

// NewFamily builds the first-run family: one parent, one child and the
// default reward catalog.
func NewFamily(familyName, parentName, childName string) (model.Family, error) {
	familyName = strings.TrimSpace(familyName)
	parentName = strings.TrimSpace(parentName)
	childName = strings.TrimSpace(childName)
	if familyName == "" || parentName == "" || childName == "" {
		return model.Family{}, fmt.Errorf("%w: family, parent and child names are required", ErrInvalidFamily)
	}

	return model.Family{
		ID:   ident.New(ident.PrefixFamily),
		Name: familyName,
		Code: ident.FamilyCode(),
		Members: []model.Member{
			newMember(parentName, model.RoleParent, ""),
			newMember(childName, model.RoleChild, ""),
		},
		Rewards: model.DefaultRewards(),
	}, nil
}

func newMember(name string, role model.Role, avatar string) model.Member {
	if avatar == "" {
		avatar = ident.Avatar(role)
	}
	return model.Member{
		ID:     ident.New(ident.MemberPrefix(role)),
		Name:   name,
		Role:   role,
		Avatar: avatar,
	}
}

// validateFamily checks what a setup flow must hand over.
func validateFamily(f model.Family) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFamily)
	}
	if f.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidFamily)
	}

	seen := make(map[string]struct{}, len(f.Members))
	var parents, children int
	for _, m := range f.Members {
		if m.ID == "" || strings.TrimSpace(m.Name) == "" || !m.Role.Valid() {
			return fmt.Errorf("%w: member %q is incomplete", ErrInvalidFamily, m.ID)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate member id %q", ErrInvalidFamily, m.ID)
		}
		seen[m.ID] = struct{}{}
		if m.Points < 0 {
			return fmt.Errorf("%w: member %q has a negative balance", ErrInvalidFamily, m.ID)
		}
		if m.IsParent() {
			parents++
		} else {
			children++
		}
	}
	if parents == 0 || children == 0 {
		return fmt.Errorf("%w: need at least one parent and one child", ErrInvalidFamily)
	}
	return nil
}
