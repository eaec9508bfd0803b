// Package ident generates identifiers and the other random values the
// family record needs at creation time.
package ident

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/familyquest/internal/model"
)

const suffixLen = 9

// Entity id prefixes.
const (
	PrefixFamily = "fam_"
	PrefixParent = "p_"
	PrefixChild  = "c_"
	PrefixTask   = "t_"
	PrefixReward = "r_"
)

// New returns prefix + unix millis + "_" + a random suffix. Ids are unique
// within a process; they are not meant to be unguessable.
func New(prefix string) string {
	return newAt(prefix, time.Now())
}

func newAt(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + "_" + suffix
}

// MemberPrefix returns the id prefix used for members of the given role.
func MemberPrefix(role model.Role) string {
	if role == model.RoleParent {
		return PrefixParent
	}
	return PrefixChild
}

// FamilyCode returns a six digit join code in [100000, 999999].
func FamilyCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

// Avatar picks one of the built-in avatars for the role.
func Avatar(role model.Role) string {
	list := model.ChildAvatars
	if role == model.RoleParent {
		list = model.ParentAvatars
	}
	return list[rand.IntN(len(list))]
}
