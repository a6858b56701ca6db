package farmprofilestore_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	farmprofilestore "github.com/dalemusser/coophub/internal/app/store/farmprofile"
	"github.com/dalemusser/coophub/internal/testutil"
)

const farm = "Green Valley Farm"

func TestUpdates_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := farmprofilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Date(2024, 9, 20, 8, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return day })
	if _, err := store.AddUpdate(ctx, farm, 180, "Good day"); err != nil {
		t.Fatalf("AddUpdate failed: %v", err)
	}
	day = day.Add(24 * time.Hour)
	if _, err := store.AddUpdate(ctx, farm, 195, ""); err != nil {
		t.Fatalf("AddUpdate failed: %v", err)
	}
	if _, err := store.AddUpdate(ctx, farm, 0, "none"); !errors.Is(err, farmprofilestore.ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount, got %v", err)
	}

	list, err := store.ListUpdates(ctx, farm)
	if err != nil {
		t.Fatalf("ListUpdates failed: %v", err)
	}
	if len(list) != 2 || list[0].Count != 195 || list[0].Date != "2024-09-21" {
		t.Errorf("ListUpdates: %+v", list)
	}
	other, _ := store.ListUpdates(ctx, "Sunny Acres")
	if len(other) != 0 {
		t.Errorf("other farm sees %d updates", len(other))
	}
}

func TestStories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := farmprofilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.AddStory(ctx, farm, "   "); !errors.Is(err, farmprofilestore.ErrEmptyStory) {
		t.Errorf("expected ErrEmptyStory, got %v", err)
	}
	if _, err := store.AddStory(ctx, farm, "<script>alert(1)</script>"); !errors.Is(err, farmprofilestore.ErrEmptyStory) {
		t.Errorf("script-only story: expected ErrEmptyStory, got %v", err)
	}
	st, err := store.AddStory(ctx, farm, "  New chicks <b>hatched</b> today!<script>x()</script> ")
	if err != nil {
		t.Fatalf("AddStory failed: %v", err)
	}
	if strings.Contains(st.Content, "<script") {
		t.Errorf("script not removed: %q", st.Content)
	}
	if !strings.HasPrefix(st.Content, "New chicks") {
		t.Errorf("content not trimmed: %q", st.Content)
	}

	list, err := store.ListStories(ctx, farm)
	if err != nil {
		t.Fatalf("ListStories failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListStories: got %d", len(list))
	}
}
