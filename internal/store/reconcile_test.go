package store

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/quicksave/internal/db"
	"github.com/erazemk/quicksave/internal/model"
)

func TestPlanReconcile(t *testing.T) {
	current := []model.User{
		{ID: 1, Username: "keep", PasswordHash: hashFor(t, "same")},
		{ID: 2, Username: "rotate", PasswordHash: hashFor(t, "old")},
		{ID: 3, Username: "remove", PasswordHash: hashFor(t, "x")},
	}
	declared := map[string]string{
		"keep":   "same",
		"rotate": "new",
		"fresh":  "pw",
	}

	plan := PlanReconcile(current, declared)

	if len(plan.Create) != 1 || plan.Create["fresh"] != "pw" {
		t.Errorf("expected create set {fresh}, got %v", plan.Create)
	}
	if len(plan.Update) != 1 || plan.Update["rotate"] != "new" {
		t.Errorf("expected update set {rotate}, got %v", plan.Update)
	}
	if len(plan.Delete) != 1 || plan.Delete[0] != "remove" {
		t.Errorf("expected delete set {remove}, got %v", plan.Delete)
	}
}

func TestPlanReconcileEmptyWhenConverged(t *testing.T) {
	current := []model.User{
		{ID: 1, Username: "alice", PasswordHash: hashFor(t, "pw")},
	}
	plan := PlanReconcile(current, map[string]string{"alice": "pw"})
	if !plan.Empty() {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}

func TestReconcileConverges(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	declared := map[string]string{
		"alice": "pw-a",
		"bob":   "pw-b",
	}
	if err := Reconcile(ctx, database, declared); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	users, err := ListUsers(ctx, database)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		password, ok := declared[u.Username]
		if !ok {
			t.Errorf("unexpected user %q", u.Username)
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			t.Errorf("stored hash for %q does not verify declared password", u.Username)
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	declared := map[string]string{"alice": "pw"}
	if err := Reconcile(ctx, database, declared); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}

	first, _ := ListUsers(ctx, database)

	// Second run must not mutate anything: same hash, same id.
	if err := Reconcile(ctx, database, declared); err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}

	second, _ := ListUsers(ctx, database)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 user in both rounds, got %d then %d", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Errorf("user id changed across idempotent runs: %d -> %d", first[0].ID, second[0].ID)
	}
	if first[0].PasswordHash != second[0].PasswordHash {
		t.Error("password hash was rewritten on a no-op reconcile")
	}
}

func TestReconcileLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Create.
	if err := Reconcile(ctx, database, map[string]string{"alice": "pw1"}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	alice, _ := GetUserByUsername(ctx, database, "alice")
	if alice == nil {
		t.Fatal("expected alice to be created")
	}
	if _, err := VerifyCredentials(ctx, database, "alice", "pw1"); err != nil {
		t.Errorf("expected pw1 to verify: %v", err)
	}
	if _, err := VerifyCredentials(ctx, database, "alice", "wrong"); err == nil {
		t.Error("expected wrong password to fail")
	}

	// Update: same user id, new password.
	if err := Reconcile(ctx, database, map[string]string{"alice": "pw2"}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	updated, _ := GetUserByUsername(ctx, database, "alice")
	if updated.ID != alice.ID {
		t.Errorf("expected stable user id %d, got %d", alice.ID, updated.ID)
	}
	if _, err := VerifyCredentials(ctx, database, "alice", "pw2"); err != nil {
		t.Errorf("expected pw2 to verify: %v", err)
	}
	if _, err := VerifyCredentials(ctx, database, "alice", "pw1"); err == nil {
		t.Error("expected old password to fail after rotation")
	}

	// Delete.
	if err := Reconcile(ctx, database, map[string]string{}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	users, _ := ListUsers(ctx, database)
	if len(users) != 0 {
		t.Errorf("expected empty store, got %d users", len(users))
	}
}

func TestReconcileDeleteLeavesOrphans(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := Reconcile(ctx, database, map[string]string{"alice": "pw"}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	alice, _ := GetUserByUsername(ctx, database, "alice")

	if _, err := SaveItem(ctx, database, alice.ID, model.TypeNote, []byte("keep me")); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	if err := Reconcile(ctx, database, map[string]string{}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	count, _ := CountItemsForUser(ctx, database, alice.ID)
	if count != 1 {
		t.Errorf("expected alice's item to survive her deletion, got %d items", count)
	}
}
