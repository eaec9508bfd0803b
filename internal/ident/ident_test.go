package ident

import (
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/familyquest/internal/model"
)

func TestNewPrefixAndShape(t *testing.T) {
	now := time.UnixMilli(1767225600000)
	id := newAt(PrefixTask, now)

	if !strings.HasPrefix(id, "t_1767225600000_") {
		t.Errorf("id = %q, want prefix %q", id, "t_1767225600000_")
	}
	suffix := id[strings.LastIndex(id, "_")+1:]
	if len(suffix) != suffixLen {
		t.Errorf("suffix length = %d, want %d", len(suffix), suffixLen)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := New(PrefixTask)
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestMemberPrefix(t *testing.T) {
	if got := MemberPrefix(model.RoleParent); got != PrefixParent {
		t.Errorf("parent prefix = %q, want %q", got, PrefixParent)
	}
	if got := MemberPrefix(model.RoleChild); got != PrefixChild {
		t.Errorf("child prefix = %q, want %q", got, PrefixChild)
	}
}

func TestFamilyCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := FamilyCode()
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestAvatarFromRoleList(t *testing.T) {
	if a := Avatar(model.RoleParent); !slices.Contains(model.ParentAvatars, a) {
		t.Errorf("parent avatar %q not in parent list", a)
	}
	if a := Avatar(model.RoleChild); !slices.Contains(model.ChildAvatars, a) {
		t.Errorf("child avatar %q not in child list", a)
	}
}
