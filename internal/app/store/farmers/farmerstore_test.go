package farmerstore_test

import (
	"errors"
	"testing"

	farmerstore "github.com/dalemusser/coophub/internal/app/store/farmers"
	"github.com/dalemusser/coophub/internal/app/system/indexes"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/coophub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *farmerstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return farmerstore.New(db)
}

func TestCreate(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f, err := store.Create(ctx, models.Farmer{Name: "Mike Davis", Email: "Mike@Hillsidefarm.com", Farm: "Hillside Farm", Location: "Texas"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if f.Status != models.FarmerActive {
		t.Errorf("Status: got %q, want Active", f.Status)
	}
	if f.Equipment != models.UnassignedEquipment {
		t.Errorf("Equipment: got %q", f.Equipment)
	}
	if f.Email != "mike@hillsidefarm.com" {
		t.Errorf("Email: got %q", f.Email)
	}
}

func TestCreate_Validation(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		in   models.Farmer
		want error
	}{
		{"missing name", models.Farmer{Email: "a@x.com", Farm: "F"}, farmerstore.ErrMissingFields},
		{"missing email", models.Farmer{Name: "A", Farm: "F"}, farmerstore.ErrMissingFields},
		{"missing farm", models.Farmer{Name: "A", Email: "a@x.com", Farm: "  "}, farmerstore.ErrMissingFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := store.Create(ctx, models.Farmer{Name: "A", Email: "a@x.com", Farm: "F"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Farmer{Name: "B", Email: "a@x.com", Farm: "G"}); !errors.Is(err, farmerstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdateAssignDelete(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, models.Farmer{Name: "A", Email: "a@x.com", Farm: "Farm A"})
	b, _ := store.Create(ctx, models.Farmer{Name: "B", Email: "b@x.com", Farm: "Farm B"})

	a.Status = models.FarmerPending
	a.Location = "Ohio"
	if err := store.Update(ctx, a.ID, a); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	a.Status = "Retired"
	if err := store.Update(ctx, a.ID, a); !errors.Is(err, farmerstore.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	if err := store.AssignEquipment(ctx, a.ID, "Auto Feeder Pro"); err != nil {
		t.Fatalf("AssignEquipment failed: %v", err)
	}
	if err := store.AssignEquipment(ctx, a.ID, "Laser Fence"); !errors.Is(err, farmerstore.ErrInvalidEquipment) {
		t.Errorf("expected ErrInvalidEquipment, got %v", err)
	}

	got, _ := store.Get(ctx, a.ID)
	if got.Status != models.FarmerPending || got.Location != "Ohio" || got.Equipment != "Auto Feeder Pro" {
		t.Errorf("unexpected farmer: %+v", got)
	}
	gotB, _ := store.Get(ctx, b.ID)
	if gotB.Equipment != models.UnassignedEquipment {
		t.Errorf("untouched farmer changed: %+v", gotB)
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[models.FarmerActive] != 1 || counts[models.FarmerPending] != 1 || counts[models.FarmerInactive] != 0 {
		t.Errorf("counts: got %v", counts)
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, a.ID); !errors.Is(err, farmerstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Get(ctx, primitive.NewObjectID()); !errors.Is(err, farmerstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	list, _ := store.List(ctx)
	if len(list) != 1 || list[0].Name != "B" {
		t.Errorf("List: got %+v", list)
	}
}
