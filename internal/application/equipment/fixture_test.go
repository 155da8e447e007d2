package equipment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/application/equipment"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
	"github.com/stretchr/testify/require"
)

// 2024-06-01, el "hoy" de todos los escenarios.
var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []equipment.AssignmentEvent
}

func (n *recordingNotifier) AssignmentCreated(_ context.Context, ev equipment.AssignmentEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type fixture struct {
	store       *memStore
	notifier    *recordingNotifier
	instances   *equipment.InstanceUseCase
	assignments *equipment.AssignmentUseCase
	query       *equipment.QueryUseCase

	vendorID    string
	otherVendor string
	typeID      string
	clientID    string
}

func newFixture(t *testing.T, opts ...func(*equipment.Config)) *fixture {
	t.Helper()
	cfg := equipment.Config{
		HorizonDays:   30,
		Timeout:       time.Second,
		NumberRetries: 3,
		Now:           func() time.Time { return fixedNow },
	}
	for _, o := range opts {
		o(&cfg)
	}
	store := newMemStore()
	notifier := &recordingNotifier{}
	log := logger.Nop()

	f := &fixture{
		store:       store,
		notifier:    notifier,
		instances:   equipment.NewInstanceUseCase(store, store.instances(), store.types(), cfg, log),
		assignments: equipment.NewAssignmentUseCase(store, store.clients(), notifier, cfg, log),
		query:       equipment.NewQueryUseCase(store.instances(), store.assignments(), store.tickets(), cfg, log),
		vendorID:    uuid.NewString(),
		otherVendor: uuid.NewString(),
		typeID:      uuid.NewString(),
		clientID:    uuid.NewString(),
	}
	store.putType(entity.EquipmentType{
		ID: f.typeID, VendorID: f.vendorID, Name: "Extintor PQS 10 lb", Code: "PQS-10",
		Manufacturer: "Kidde", Model: "PRO-10", DefaultLifespanYears: 12,
	})
	store.putClient(entity.Client{
		ID: f.clientID, CreatedByVendorID: f.vendorID, Name: "Edificio Central", Status: entity.ClientStatusActive,
	})
	return f
}

func (f *fixture) addClient(vendorID, status string) string {
	id := uuid.NewString()
	f.store.putClient(entity.Client{ID: id, CreatedByVendorID: vendorID, Name: "Cliente " + status, Status: status})
	return id
}

func (f *fixture) createInstance(t *testing.T, serial string) *dto.InstanceResponse {
	t.Helper()
	out, err := f.instances.Create(context.Background(), f.vendorID, dto.CreateInstanceRequest{
		EquipmentTypeID:         f.typeID,
		SerialNumber:            serial,
		PurchaseDate:            "2024-01-15",
		MaintenanceIntervalDays: 180,
		Location:                "Piso 1",
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) assign(t *testing.T, instanceID string) *dto.AssignmentResponse {
	t.Helper()
	out, err := f.assignments.AssignSingle(context.Background(), f.vendorID, instanceID, dto.AssignInstanceRequest{
		ClientID: f.clientID,
	})
	require.NoError(t, err)
	return out
}

// requireStateInvariant verifica assigned_to != nil <=> status == assigned en todas las instancias.
func requireStateInvariant(t *testing.T, st *memState) {
	t.Helper()
	for id, inst := range st.instances {
		require.Equalf(t, inst.Status == entity.InstanceStatusAssigned, inst.AssignedTo != nil,
			"instancia %s: status=%s assigned_to=%v", id, inst.Status, inst.AssignedTo)
	}
}

func newQueryAt(f *fixture, now time.Time) *equipment.QueryUseCase {
	return equipment.NewQueryUseCase(f.store.instances(), f.store.assignments(), f.store.tickets(), equipment.Config{
		HorizonDays: 30,
		Now:         func() time.Time { return now },
	}, logger.Nop())
}
