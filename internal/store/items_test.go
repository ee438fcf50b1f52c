package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/erazemk/quicksave/internal/db"
	"github.com/erazemk/quicksave/internal/model"
)

func TestSaveNoteRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")

	item, err := SaveItem(ctx, database, user.ID, model.TypeNote, []byte("hello"))
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}
	if item.Type != model.TypeNote {
		t.Errorf("expected type 'note', got %q", item.Type)
	}
	if item.UserID != user.ID {
		t.Errorf("expected user_id %d, got %d", user.ID, item.UserID)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if !bytes.Equal(got.Content, []byte("hello")) {
		t.Errorf("content did not round-trip: got %q", got.Content)
	}
}

func TestSaveNoteUTF8RoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")
	text := "héllo wörld — ← 日本語 🙂"

	item, err := SaveItem(ctx, database, user.ID, model.TypeNote, []byte(text))
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if string(got.Content) != text {
		t.Errorf("UTF-8 content did not round-trip: got %q", got.Content)
	}
}

func TestSaveBlankNoteRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")

	for _, content := range []string{"", "   ", "\n\t  \n"} {
		_, err := SaveItem(ctx, database, user.ID, model.TypeNote, []byte(content))
		if !IsValidation(err) {
			t.Errorf("SaveItem(%q) = %v, want ValidationError", content, err)
		}
	}

	// Blank content is only rejected for notes; an empty document passes.
	if _, err := SaveItem(ctx, database, user.ID, model.TypeDocument, nil); err != nil {
		t.Errorf("SaveItem(empty document) = %v, want success", err)
	}
}

func TestSaveItemOverCeiling(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")

	_, err := SaveItem(ctx, database, user.ID, model.TypeDocument, make([]byte, MaxContentBytes+1))
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError for oversized content, got %v", err)
	}
	if !strings.Contains(err.Error(), "50MB") {
		t.Errorf("expected the limit in the message, got %q", err.Error())
	}
}

func TestSaveItemUnknownUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := SaveItem(ctx, database, 42, model.TypeNote, []byte("hello"))
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSaveItemIDsMonotonic(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")

	var lastID int64
	for i := 0; i < 5; i++ {
		item, err := SaveItem(ctx, database, user.ID, model.TypeNote, []byte("note"))
		if err != nil {
			t.Fatalf("SaveItem: %v", err)
		}
		if item.ID <= lastID {
			t.Errorf("expected id > %d, got %d", lastID, item.ID)
		}
		lastID = item.ID
	}
}

func TestItemsOrphanedAfterUserDelete(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "alice", "hash")
	item, err := SaveItem(ctx, database, user.ID, model.TypePhoto, []byte{0xff, 0xd8, 0xff})
	if err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	// Deleting the user must leave the item behind as an orphan.
	if err := DeleteUser(ctx, database, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	count, err := CountItemsForUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("CountItemsForUser: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 orphaned item, got %d", count)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got == nil {
		t.Fatal("expected orphaned item to still be readable")
	}
	if got.UserID != user.ID {
		t.Errorf("expected orphan to keep user_id %d, got %d", user.ID, got.UserID)
	}
}
