package schedulestore_test

import (
	"errors"
	"testing"

	schedulestore "github.com/dalemusser/coophub/internal/app/store/schedules"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/coophub/internal/testutil"
)

const farm = "Green Valley Farm"

func TestAddListToggle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schedulestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	evening, err := store.Add(ctx, farm, models.ScheduleFeed, "18:00", "2 lbs")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(ctx, farm, models.ScheduleFeed, "06:00", "2.5 lbs"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(ctx, farm, models.ScheduleWater, "07:00", "1 gal"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	tests := []struct {
		name          string
		kind, tm, amt string
		want          error
	}{
		{"bad kind", "grit", "06:00", "1", schedulestore.ErrInvalidKind},
		{"bad time", models.ScheduleFeed, "6am", "1", schedulestore.ErrInvalidTime},
		{"hour out of range", models.ScheduleFeed, "24:00", "1", schedulestore.ErrInvalidTime},
		{"no amount", models.ScheduleWater, "06:00", " ", schedulestore.ErrMissingAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Add(ctx, farm, tt.kind, tt.tm, tt.amt); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	feed, err := store.ListByFarm(ctx, farm, models.ScheduleFeed)
	if err != nil {
		t.Fatalf("ListByFarm failed: %v", err)
	}
	if len(feed) != 2 || feed[0].Time != "06:00" {
		t.Errorf("feed schedules: %+v", feed)
	}

	if err := store.Toggle(ctx, farm, evening.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if err := store.Toggle(ctx, "Sunny Acres", evening.ID); !errors.Is(err, schedulestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	feed, _ = store.ListByFarm(ctx, farm, models.ScheduleFeed)
	if feed[1].Enabled || !feed[0].Enabled {
		t.Errorf("toggle should only disable the evening feed: %+v", feed)
	}
}
