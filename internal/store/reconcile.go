package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/quicksave/internal/model"
)

// ReconcilePlan describes the mutations needed to bring the persisted user
// set into agreement with the declared one, keyed by username.
type ReconcilePlan struct {
	Create map[string]string // username -> plaintext password
	Update map[string]string // username -> new plaintext password
	Delete []string          // usernames no longer declared
}

// Empty reports whether the plan contains no mutations.
func (p ReconcilePlan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// PlanReconcile computes the create/update/delete sets for bringing current
// into agreement with declared. It performs no I/O: an update is planned
// when the declared password no longer verifies against the stored hash, so
// re-planning against an already-reconciled set yields an empty plan.
func PlanReconcile(current []model.User, declared map[string]string) ReconcilePlan {
	plan := ReconcilePlan{
		Create: make(map[string]string),
		Update: make(map[string]string),
	}

	byName := make(map[string]model.User, len(current))
	for _, u := range current {
		byName[u.Username] = u
	}

	for username, password := range declared {
		existing, ok := byName[username]
		if !ok {
			plan.Create[username] = password
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) != nil {
			plan.Update[username] = password
		}
	}

	for _, u := range current {
		if _, ok := declared[u.Username]; !ok {
			plan.Delete = append(plan.Delete, u.Username)
		}
	}

	return plan
}

// Reconcile synchronizes the users table with the declared username ->
// password map: missing users are created, users whose declared password no
// longer matches get a fresh hash, and users absent from the declared set
// are deleted (their items stay behind as orphaned rows).
//
// Every mutation is its own autocommit statement, so an aborted run leaves
// the table in a valid intermediate state and re-running converges.
// Reconciling twice with the same input performs no second-round mutations.
func Reconcile(ctx context.Context, db *sql.DB, declared map[string]string) error {
	current, err := ListUsers(ctx, db)
	if err != nil {
		return fmt.Errorf("loading users for reconciliation: %w", err)
	}

	plan := PlanReconcile(current, declared)
	if plan.Empty() {
		return nil
	}

	byName := make(map[string]model.User, len(current))
	for _, u := range current {
		byName[u.Username] = u
	}

	for username, password := range plan.Create {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %q: %w", username, err)
		}
		if _, err := CreateUser(ctx, db, username, string(hash)); err != nil {
			return fmt.Errorf("reconciling user %q: %w", username, err)
		}
		slog.Info("user created", "user", username)
	}

	for username, password := range plan.Update {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %q: %w", username, err)
		}
		if err := UpdateUserPassword(ctx, db, byName[username].ID, string(hash)); err != nil {
			return fmt.Errorf("reconciling user %q: %w", username, err)
		}
		slog.Info("user password updated", "user", username)
	}

	for _, username := range plan.Delete {
		if err := DeleteUser(ctx, db, byName[username].ID); err != nil {
			return fmt.Errorf("reconciling user %q: %w", username, err)
		}
		slog.Info("user deleted", "user", username)
	}

	return nil
}
