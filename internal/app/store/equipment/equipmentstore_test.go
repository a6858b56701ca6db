package equipmentstore_test

import (
	"errors"
	"testing"

	equipmentstore "github.com/dalemusser/coophub/internal/app/store/equipment"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/coophub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seed(t *testing.T, store *equipmentstore.Store) []models.Equipment {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := []models.Equipment{
		{Name: "Door Controller #001", Type: "Door Automation", Farm: "Green Valley Farm", Status: models.EquipmentOnline, Battery: 85},
		{Name: "Feed Dispenser #003", Type: "Feed System", Farm: "Sunny Acres", Status: models.EquipmentMaintenance, Battery: 45},
		{Name: "Water Monitor #002", Type: "Water System", Farm: "Green Valley Farm", Status: models.EquipmentOnline, Battery: 92},
	}
	out := make([]models.Equipment, 0, len(in))
	for _, e := range in {
		saved, err := store.Insert(ctx, e)
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		out = append(out, saved)
	}
	return out
}

func TestList_Filter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := equipmentstore.New(db)
	seed(t, store)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		filter string
		want   int
	}{
		{"all", 3},
		{"", 3},
		{"door", 1},
		{"FEED", 1},
		{"water", 1},
		{"laser", 0},
	}
	for _, tt := range tests {
		got, err := store.List(ctx, tt.filter)
		if err != nil {
			t.Fatalf("List(%q) failed: %v", tt.filter, err)
		}
		if len(got) != tt.want {
			t.Errorf("List(%q): got %d, want %d", tt.filter, len(got), tt.want)
		}
	}
}

func TestSetStatus_OnlyTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := equipmentstore.New(db)
	items := seed(t, store)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.SetStatus(ctx, items[0].ID, "offline"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, _ := store.Get(ctx, items[0].ID)
	if got.Status != models.EquipmentOffline {
		t.Errorf("target status: got %q", got.Status)
	}
	other, _ := store.Get(ctx, items[2].ID)
	if other.Status != models.EquipmentOnline {
		t.Errorf("other status changed: %q", other.Status)
	}

	if err := store.SetStatus(ctx, items[0].ID, "broken"); !errors.Is(err, equipmentstore.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := store.SetStatus(ctx, primitive.NewObjectID(), "online"); !errors.Is(err, equipmentstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[models.EquipmentOnline] != 1 || counts[models.EquipmentOffline] != 1 || counts[models.EquipmentMaintenance] != 1 {
		t.Errorf("counts: got %v", counts)
	}
}
