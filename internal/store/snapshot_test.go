package store

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dukerupert/familyquest/internal/database"
	"github.com/dukerupert/familyquest/internal/model"
)

func setupSnapshotTestDB(t *testing.T) *SnapshotStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSnapshotStore(db, "", slog.Default())
}

func testSnapshot() model.Snapshot {
	completed := time.Date(2026, 2, 5, 18, 0, 0, 0, time.UTC)
	return model.Snapshot{
		Family: model.Family{
			ID:   "fam_1",
			Name: "超人特工队",
			Code: "123456",
			Members: []model.Member{
				{ID: "p_1", Name: "家长", Role: model.RoleParent, Avatar: "a"},
				{ID: "c_1", Name: "乐乐", Role: model.RoleChild, Avatar: "b", Points: 30},
			},
			Rewards: []model.Reward{{ID: "r_x", Title: "Movie", Cost: 40, Icon: "🎬"}},
		},
		Tasks: []model.Task{
			{
				ID: "t_1", Title: "整理房间", AssignedToID: "c_1", CreatedBy: "p_1",
				Status: model.StatusWaitingVerification, PointsReward: 10,
				TimeSlot: model.SlotMorning, CompletedAt: &completed,
				ChildProofImage: "data:image/png;base64,AAAA", ChildProofMediaType: model.MediaImage,
				ChildFeedback: "做好了",
			},
		},
	}
}

func TestLoadEmpty(t *testing.T) {
	s := setupSnapshotTestDB(t)

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot on first run, got %+v", snap)
	}
}

func TestSaveLoad(t *testing.T) {
	s := setupSnapshotTestDB(t)
	want := testSnapshot()

	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}

	if got.Family.Code != "123456" {
		t.Errorf("code = %q, want %q", got.Family.Code, "123456")
	}
	if len(got.Family.Members) != 2 || got.Family.Members[1].Points != 30 {
		t.Errorf("members = %+v", got.Family.Members)
	}
	if len(got.Family.Rewards) != 1 || got.Family.Rewards[0].ID != "r_x" {
		t.Errorf("rewards = %+v, want the saved catalog", got.Family.Rewards)
	}
	if len(got.Tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(got.Tasks))
	}
	task := got.Tasks[0]
	if task.CompletedAt == nil || !task.CompletedAt.Equal(*want.Tasks[0].CompletedAt) {
		t.Errorf("completedAt = %v, want %v", task.CompletedAt, want.Tasks[0].CompletedAt)
	}
	if task.VerifiedAt != nil {
		t.Errorf("verifiedAt = %v, want nil", task.VerifiedAt)
	}
	if task.TimeSlot != model.SlotMorning || task.ChildFeedback != "做好了" {
		t.Errorf("task = %+v", task)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := setupSnapshotTestDB(t)
	first := testSnapshot()
	if err := s.Save(first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := testSnapshot()
	second.Tasks = nil
	second.Family.Name = "新名字"
	if err := s.Save(second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Family.Name != "新名字" {
		t.Errorf("name = %q, want %q", got.Family.Name, "新名字")
	}
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Errorf("tasks = %v, want empty non-nil slice", got.Tasks)
	}

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}

func TestLoadCorruptPayloadIsFirstRun(t *testing.T) {
	s := setupSnapshotTestDB(t)
	if _, err := s.db.Exec(`INSERT INTO snapshots (key, payload) VALUES (?, ?)`, DefaultKey, "{not json"); err != nil {
		t.Fatalf("seed corrupt payload: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot for corrupt payload, got %+v", snap)
	}
}

func TestLoadPayloadWithoutFamilyIsFirstRun(t *testing.T) {
	for _, payload := range []string{`null`, `{}`, `{"tasks":[]}`, `{"family":{"name":"x"},"tasks":[]}`} {
		s := setupSnapshotTestDB(t)
		if _, err := s.db.Exec(`INSERT INTO snapshots (key, payload) VALUES (?, ?)`, DefaultKey, payload); err != nil {
			t.Fatalf("seed %s: %v", payload, err)
		}

		snap, err := s.Load()
		if err != nil {
			t.Fatalf("load %s: %v", payload, err)
		}
		if snap != nil {
			t.Errorf("payload %s: expected nil snapshot, got %+v", payload, snap)
		}
	}
}

func TestLoadBackfillsRewards(t *testing.T) {
	s := setupSnapshotTestDB(t)
	legacy := `{"family":{"id":"fam_1","name":"x","code":"654321","members":[{"id":"c_1","name":"乐乐","role":"CHILD","avatar":"a","points":5}]},"tasks":[]}`
	if _, err := s.db.Exec(`INSERT INTO snapshots (key, payload) VALUES (?, ?)`, DefaultKey, legacy); err != nil {
		t.Fatalf("seed legacy payload: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Family.Rewards) != len(model.DefaultRewards()) {
		t.Errorf("rewards = %d, want %d defaults", len(snap.Family.Rewards), len(model.DefaultRewards()))
	}
	if snap.Family.Members[0].Points != 5 {
		t.Errorf("points = %d, want 5", snap.Family.Members[0].Points)
	}
}

func TestClear(t *testing.T) {
	s := setupSnapshotTestDB(t)
	if err := s.Save(testSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap != nil {
		t.Error("expected nil snapshot after clear")
	}
}

func TestSeparateKeys(t *testing.T) {
	s := setupSnapshotTestDB(t)
	other := NewSnapshotStore(s.db, "other_family", slog.Default())

	if err := s.Save(testSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	snap, err := other.Load()
	if err != nil {
		t.Fatalf("load other: %v", err)
	}
	if snap != nil {
		t.Error("expected other key to be empty")
	}
}
