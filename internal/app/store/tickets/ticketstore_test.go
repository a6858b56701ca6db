package ticketstore_test

import (
	"errors"
	"testing"
	"time"

	ticketstore "github.com/dalemusser/coophub/internal/app/store/tickets"
	"github.com/dalemusser/coophub/internal/domain/models"
	"github.com/dalemusser/coophub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListAndReply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ticketstore.New(db)
	store.SetClock(func() time.Time { return time.Date(2024, 9, 22, 14, 30, 0, 0, time.UTC) })
	ctx, cancel := testutil.TestContext()
	defer cancel()

	open, err := store.Insert(ctx, models.Ticket{Customer: "John Smith", Subject: "Door not closing", Status: models.TicketOpen, Priority: models.PriorityHigh, Created: "2024-09-20"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := store.Insert(ctx, models.Ticket{Customer: "Sarah", Subject: "Billing", Status: models.TicketResolved, Created: "2024-09-18"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	tests := []struct {
		filter string
		want   int
	}{
		{"all", 2},
		{"open", 1},
		{"resolved", 1},
		{"in-progress", 0},
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

	if _, err := store.Reply(ctx, open.ID, "  <b></b> "); !errors.Is(err, ticketstore.ErrEmptyReply) {
		t.Errorf("expected ErrEmptyReply, got %v", err)
	}
	got, err := store.Reply(ctx, open.ID, "We are <script>x</script>on it")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if got.Status != models.TicketInProgress {
		t.Errorf("Status: got %q, want in-progress", got.Status)
	}
	loaded, _ := store.Get(ctx, open.ID)
	if len(loaded.Messages) != 1 {
		t.Fatalf("Messages: got %d", len(loaded.Messages))
	}
	m := loaded.Messages[0]
	if m.Sender != ticketstore.SupportSender || m.Timestamp != "2024-09-22 14:30" {
		t.Errorf("message: %+v", m)
	}
	if m.Message == "" || m.Message == "We are <script>x</script>on it" {
		t.Errorf("message not sanitized: %q", m.Message)
	}

	if err := store.SetStatus(ctx, open.ID, "resolved"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := store.SetStatus(ctx, open.ID, "closed"); !errors.Is(err, ticketstore.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := store.SetStatus(ctx, primitive.NewObjectID(), "open"); !errors.Is(err, ticketstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	counts, _ := store.CountByStatus(ctx)
	if counts[models.TicketResolved] != 2 {
		t.Errorf("resolved count: got %d", counts[models.TicketResolved])
	}
}
