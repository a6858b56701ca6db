package doorsim

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
	"github.com/dalemusser/coophub/internal/domain/models"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// seqRand returns the given values in order, repeating the last one.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i]
	if s.i < len(s.vals)-1 {
		s.i++
	}
	return v
}

func TestStep_Flip(t *testing.T) {
	cfg := Config{FlipChance: 0.5, MaxDrain: 1}

	tests := []struct {
		name   string
		status string
		draw   float64
		want   string
	}{
		{"closed flips open", models.DoorClosed, 0.1, models.DoorOpen},
		{"open flips closed", models.DoorOpen, 0.1, models.DoorClosed},
		{"no flip at threshold", models.DoorOpen, 0.5, models.DoorOpen},
		{"no flip above threshold", models.DoorClosed, 0.9, models.DoorClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := models.DoorState{Status: tt.status, Battery: 50}
			got := Step(d, &seqRand{vals: []float64{tt.draw, 0}}, cfg)
			if got.Status != tt.want {
				t.Errorf("status = %q, want %q", got.Status, tt.want)
			}
		})
	}
}

func TestStep_Drain(t *testing.T) {
	cfg := Config{FlipChance: 0, MaxDrain: 2}

	got := Step(models.DoorState{Status: models.DoorClosed, Battery: 50}, &seqRand{vals: []float64{0.9, 0.5}}, cfg)
	if got.Battery != 49 {
		t.Errorf("battery = %v, want 49", got.Battery)
	}

	got = Step(models.DoorState{Status: models.DoorClosed, Battery: 0.5}, &seqRand{vals: []float64{0.9, 1}}, cfg)
	if got.Battery != 0 {
		t.Errorf("battery = %v, want clamp to 0", got.Battery)
	}
}

func TestStep_LowBatteryAlert(t *testing.T) {
	cfg := Config{FlipChance: 0, MaxDrain: 0}
	noFlip := func() Rand { return &seqRand{vals: []float64{0.9, 0}} }

	got := Step(models.DoorState{Battery: 19, Alerts: []string{"Jammed"}}, noFlip(), cfg)
	if !got.HasAlert(models.LowBatteryAlert) || !got.HasAlert("Jammed") {
		t.Errorf("alerts = %v, want Jammed and low battery", got.Alerts)
	}

	again := Step(got, noFlip(), cfg)
	n := 0
	for _, a := range again.Alerts {
		if a == models.LowBatteryAlert {
			n++
		}
	}
	if n != 1 {
		t.Errorf("low battery alert count = %d, want 1", n)
	}

	recovered := Step(models.DoorState{Battery: 20, Alerts: []string{models.LowBatteryAlert, "Jammed"}}, noFlip(), cfg)
	if recovered.HasAlert(models.LowBatteryAlert) {
		t.Errorf("alerts = %v, low battery should be cleared at 20", recovered.Alerts)
	}
	if !recovered.HasAlert("Jammed") {
		t.Errorf("alerts = %v, unrelated alerts should be kept", recovered.Alerts)
	}
}

func TestStep_DoesNotMutateInput(t *testing.T) {
	in := models.DoorState{Battery: 10, Alerts: []string{"Jammed"}}
	_ = Step(in, &seqRand{vals: []float64{0.9, 0}}, Config{})
	if len(in.Alerts) != 1 {
		t.Errorf("input alerts changed: %v", in.Alerts)
	}
}

type memStore struct {
	mu      sync.Mutex
	doors   []models.DoorState
	listErr error
	saved   int
	skipped int
}

func (m *memStore) List(ctx context.Context) ([]models.DoorState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.DoorState(nil), m.doors...), nil
}

func (m *memStore) SaveTelemetry(ctx context.Context, prevStatus string, d models.DoorState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.doors {
		if m.doors[i].Farm != d.Farm {
			continue
		}
		if m.doors[i].Status != prevStatus {
			m.skipped++
			return doorstore.ErrStatusChanged
		}
		m.doors[i] = d
	}
	m.saved++
	return nil
}

// setStatus mimics a farmer action landing between List and SaveTelemetry.
func (m *memStore) setStatus(farm, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.doors {
		if m.doors[i].Farm == farm {
			m.doors[i].Status = status
		}
	}
}

// racingStore applies a farmer action after List returns.
type racingStore struct {
	*memStore
	farm, status string
}

func (r racingStore) List(ctx context.Context) ([]models.DoorState, error) {
	doors, err := r.memStore.List(ctx)
	r.memStore.setStatus(r.farm, r.status)
	return doors, err
}

func TestWorker_TickKeepsFarmerAction(t *testing.T) {
	mem := &memStore{doors: []models.DoorState{
		{Farm: "Green Valley Farm", Status: models.DoorClosed, Battery: 80},
		{Farm: "Sunny Acres", Status: models.DoorOpen, Battery: 64},
	}}
	store := racingStore{memStore: mem, farm: "Green Valley Farm", status: models.DoorOpen}
	// No flips: the simulated status equals what List returned.
	w := NewWorker(store, zap.NewNop(), time.Hour, Config{FlipChance: 0, MaxDrain: 1}, &seqRand{vals: []float64{0.5, 0.5}})

	w.Tick(context.Background())

	if got := mem.doors[0].Status; got != models.DoorOpen {
		t.Errorf("Green Valley Farm status = %q, want the farmer's open", got)
	}
	if mem.skipped != 1 || mem.saved != 1 {
		t.Errorf("skipped = %d saved = %d, want 1 and 1", mem.skipped, mem.saved)
	}
}

func TestWorker_Tick(t *testing.T) {
	store := &memStore{doors: []models.DoorState{
		{Farm: "Green Valley Farm", Status: models.DoorClosed, Battery: 20.5},
		{Farm: "Sunny Acres", Status: models.DoorOpen, Battery: 90},
	}}
	w := NewWorker(store, zap.NewNop(), time.Hour, Config{FlipChance: 1, MaxDrain: 1}, &seqRand{vals: []float64{0, 1}})

	w.Tick(context.Background())

	if store.saved != 2 {
		t.Fatalf("saved = %d, want 2", store.saved)
	}
	gv := store.doors[0]
	if gv.Status != models.DoorOpen {
		t.Errorf("status = %q, want open", gv.Status)
	}
	if gv.Battery != 19.5 || !gv.HasAlert(models.LowBatteryAlert) {
		t.Errorf("door = %+v, want battery 19.5 with low battery alert", gv)
	}
}

func TestWorker_TickListError(t *testing.T) {
	store := &memStore{listErr: errors.New("boom")}
	w := NewWorker(store, zap.NewNop(), time.Hour, DefaultConfig, nil)
	w.Tick(context.Background())
	if store.saved != 0 {
		t.Errorf("saved = %d, want 0", store.saved)
	}
}

func TestWorker_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &memStore{doors: []models.DoorState{{Farm: "Green Valley Farm", Status: models.DoorClosed, Battery: 80}}}
	w := NewWorker(store, zap.NewNop(), 5*time.Millisecond, DefaultConfig, nil)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		store.mu.Lock()
		n := store.saved
		store.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	w.Stop()
	w.Stop()

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.saved == 0 {
		t.Error("worker never ticked")
	}
}
