package equipment_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/compliance"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/domain/repository"
)

var errDiskFull = errors.New("disk full")

// memState copia completa de las tablas; una transacción trabaja sobre un clon.
type memState struct {
	types       map[string]entity.EquipmentType
	clients     map[string]entity.Client
	instances   map[string]entity.EquipmentInstance
	assignments map[string]entity.EquipmentAssignment
	items       map[string]entity.AssignmentItem
	tickets     []entity.MaintenanceTicket
}

func newMemState() *memState {
	return &memState{
		types:       map[string]entity.EquipmentType{},
		clients:     map[string]entity.Client{},
		instances:   map[string]entity.EquipmentInstance{},
		assignments: map[string]entity.EquipmentAssignment{},
		items:       map[string]entity.AssignmentItem{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.types {
		c.types[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.instances {
		c.instances[k] = v
	}
	for k, v := range s.assignments {
		c.assignments[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	c.tickets = append(c.tickets, s.tickets...)
	return c
}

// memStore almacenamiento en memoria con transacciones serializadas (snapshot + commit/rollback).
type memStore struct {
	mu sync.Mutex
	st *memState

	// failItemOn hace fallar la n-ésima llamada a CreateItem (1-based, 0 = nunca).
	failItemOn int
	itemCalls  int
	// staleCounts cantidad de llamadas a CountByNumberPrefix que devuelven 0 (simula otro escritor).
	staleCounts int
	txCount     int
	rollbacks   int
}

func newMemStore() *memStore { return &memStore{st: newMemState()} }

// Run implementa equipment.TxRunner.
func (m *memStore) Run(ctx context.Context, fn func(repository.EquipmentInstanceRepository, repository.AssignmentRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCount++
	tx := m.st.clone()
	base := memRepo{store: m, tx: tx}
	if err := fn(memInstances{base}, memAssignments{base}); err != nil {
		m.rollbacks++
		return err
	}
	if err := ctx.Err(); err != nil {
		m.rollbacks++
		return err
	}
	m.st = tx
	return nil
}

// Repos "de pool", atados al estado confirmado.
func (m *memStore) instances() memInstances     { return memInstances{memRepo{store: m}} }
func (m *memStore) assignments() memAssignments { return memAssignments{memRepo{store: m}} }
func (m *memStore) types() memTypes             { return memTypes{memRepo{store: m}} }
func (m *memStore) clients() memClients         { return memClients{memRepo{store: m}} }
func (m *memStore) tickets() memTickets         { return memTickets{memRepo{store: m}} }

func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.clone()
}

func (m *memStore) putType(t entity.EquipmentType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.types[t.ID] = t
}

func (m *memStore) putClient(c entity.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.clients[c.ID] = c
}

func (m *memStore) putTicket(t entity.MaintenanceTicket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.tickets = append(m.st.tickets, t)
}

func (m *memStore) instance(id string) entity.EquipmentInstance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.instances[id]
}

// memRepo implementa los puertos de repositorio; tx == nil opera sobre el estado confirmado.
type memRepo struct {
	store *memStore
	tx    *memState
}

type (
	memInstances   struct{ memRepo }
	memAssignments struct{ memRepo }
	memTypes       struct{ memRepo }
	memClients     struct{ memRepo }
	memTickets     struct{ memRepo }
)

var (
	_ repository.EquipmentInstanceRepository      = memInstances{}
	_ repository.EquipmentInstanceQueryRepository = memInstances{}
	_ repository.AssignmentRepository             = memAssignments{}
	_ repository.EquipmentTypeRepository          = memTypes{}
	_ repository.ClientRepository                 = memClients{}
	_ repository.MaintenanceTicketRepository      = memTickets{}
)

func (r memRepo) do(fn func(st *memState) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.st)
}

// --- EquipmentInstanceRepository ---

func (r memInstances) Create(ctx context.Context, inst *entity.EquipmentInstance) error {
	return r.do(func(st *memState) error {
		for _, e := range st.instances {
			if e.DeletedAt == nil && e.SerialNumber == inst.SerialNumber {
				return domain.ErrDuplicateSerialNumber
			}
		}
		st.instances[inst.ID] = *inst
		return nil
	})
}

func (r memInstances) ExistsActiveSerial(ctx context.Context, serial string) (bool, error) {
	var found bool
	err := r.do(func(st *memState) error {
		for _, e := range st.instances {
			if e.DeletedAt == nil && e.SerialNumber == serial {
				found = true
			}
		}
		return nil
	})
	return found, err
}

func (r memInstances) GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentInstance, error) {
	var out *entity.EquipmentInstance
	err := r.do(func(st *memState) error {
		if e, ok := st.instances[id]; ok && e.VendorID == vendorID && e.DeletedAt == nil {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r memInstances) GetForUpdate(ctx context.Context, id, vendorID string) (*entity.EquipmentInstance, error) {
	return r.GetByID(ctx, id, vendorID)
}

func (r memInstances) UpdateFields(ctx context.Context, inst *entity.EquipmentInstance, expectedStatus string) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		e, ok := st.instances[inst.ID]
		if !ok || e.VendorID != inst.VendorID || e.DeletedAt != nil || e.Status != expectedStatus {
			return nil
		}
		e.Status = inst.Status
		e.NextMaintenanceDate = inst.NextMaintenanceDate
		e.Location = inst.Location
		e.Notes = inst.Notes
		e.ComplianceStatus = inst.ComplianceStatus
		e.UpdatedAt = inst.UpdatedAt
		st.instances[inst.ID] = e
		n = 1
		return nil
	})
	return n, err
}

func (r memInstances) SoftDeleteAvailable(ctx context.Context, id, vendorID string, at time.Time) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		e, ok := st.instances[id]
		if !ok || e.VendorID != vendorID || e.DeletedAt != nil || e.AssignedTo != nil ||
			e.Status != entity.InstanceStatusAvailable {
			return nil
		}
		e.DeletedAt = &at
		e.UpdatedAt = at
		st.instances[id] = e
		n = 1
		return nil
	})
	return n, err
}

func (r memInstances) MarkAssigned(ctx context.Context, id, vendorID, clientID string, at time.Time) (int64, error) {
	return r.MarkAssignedBulk(ctx, []string{id}, vendorID, clientID, at)
}

func (r memInstances) MarkAssignedBulk(ctx context.Context, ids []string, vendorID, clientID string, at time.Time) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		for _, id := range ids {
			e, ok := st.instances[id]
			if !ok || e.VendorID != vendorID || e.DeletedAt != nil || e.Status != entity.InstanceStatusAvailable {
				continue
			}
			client := clientID
			e.Status = entity.InstanceStatusAssigned
			e.AssignedTo = &client
			e.AssignedAt = &at
			e.UpdatedAt = at
			st.instances[id] = e
			n++
		}
		return nil
	})
	return n, err
}

func (r memInstances) MarkAvailable(ctx context.Context, id, vendorID string, at time.Time) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		e, ok := st.instances[id]
		if !ok || e.VendorID != vendorID || e.DeletedAt != nil || e.Status != entity.InstanceStatusAssigned {
			return nil
		}
		e.Status = entity.InstanceStatusAvailable
		e.AssignedTo = nil
		e.AssignedAt = nil
		e.UpdatedAt = at
		st.instances[id] = e
		n = 1
		return nil
	})
	return n, err
}

// --- AssignmentRepository ---

func (r memAssignments) Create(ctx context.Context, a *entity.EquipmentAssignment) error {
	return r.do(func(st *memState) error {
		for _, e := range st.assignments {
			if e.AssignmentNumber == a.AssignmentNumber {
				return domain.ErrDuplicateAssignmentNumber
			}
		}
		st.assignments[a.ID] = *a
		return nil
	})
}

func (r memAssignments) GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentAssignment, error) {
	var out *entity.EquipmentAssignment
	err := r.do(func(st *memState) error {
		if a, ok := st.assignments[id]; ok && a.VendorID == vendorID {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r memAssignments) CountByNumberPrefix(ctx context.Context, prefix string) (int, error) {
	var n int
	err := r.do(func(st *memState) error {
		if r.store.staleCounts > 0 {
			r.store.staleCounts--
			return nil
		}
		for _, a := range st.assignments {
			if strings.HasPrefix(a.AssignmentNumber, prefix) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r memAssignments) CreateItem(ctx context.Context, item *entity.AssignmentItem) error {
	return r.do(func(st *memState) error {
		r.store.itemCalls++
		if r.store.failItemOn > 0 && r.store.itemCalls == r.store.failItemOn {
			return errDiskFull
		}
		if _, ok := st.assignments[item.AssignmentID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.instances[item.EquipmentInstanceID]; !ok {
			return domain.ErrNotFound
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (r memAssignments) DeleteItemsByInstance(ctx context.Context, instanceID string) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		for id, it := range st.items {
			if it.EquipmentInstanceID == instanceID {
				delete(st.items, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r memAssignments) DeactivateOrphans(ctx context.Context, vendorID string, at time.Time) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		for id, a := range st.assignments {
			if a.VendorID != vendorID || a.Status != entity.AssignmentStatusActive {
				continue
			}
			orphan := true
			for _, it := range st.items {
				if it.AssignmentID == id {
					orphan = false
					break
				}
			}
			if orphan {
				a.Status = entity.AssignmentStatusInactive
				a.UpdatedAt = at
				st.assignments[id] = a
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r memAssignments) ListItems(ctx context.Context, assignmentID string) ([]*entity.AssignmentItem, error) {
	var out []*entity.AssignmentItem
	err := r.do(func(st *memState) error {
		for _, it := range st.items {
			if it.AssignmentID == assignmentID {
				it := it
				out = append(out, &it)
			}
		}
		return nil
	})
	return out, err
}

func (r memAssignments) ListHistoryByInstance(ctx context.Context, instanceID, vendorID string, limit int) ([]*entity.AssignmentHistoryEntry, error) {
	var out []*entity.AssignmentHistoryEntry
	err := r.do(func(st *memState) error {
		for _, it := range st.items {
			a, ok := st.assignments[it.AssignmentID]
			if it.EquipmentInstanceID != instanceID || !ok || a.VendorID != vendorID {
				continue
			}
			out = append(out, &entity.AssignmentHistoryEntry{
				AssignmentID:     a.ID,
				AssignmentNumber: a.AssignmentNumber,
				ClientID:         a.ClientID,
				ClientName:       st.clients[a.ClientID].Name,
				Status:           a.Status,
				UnitCost:         it.UnitCost,
				TotalCost:        it.TotalCost,
				AssignmentDate:   a.AssignmentDate,
				CreatedAt:        a.CreatedAt,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].AssignmentNumber > out[j].AssignmentNumber })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

// --- EquipmentInstanceQueryRepository ---

func (r memInstances) view(st *memState, e entity.EquipmentInstance) *entity.EquipmentInstanceView {
	t := st.types[e.EquipmentTypeID]
	v := &entity.EquipmentInstanceView{
		EquipmentInstance: e,
		TypeName:          t.Name,
		TypeCode:          t.Code,
		TypeManufacturer:  t.Manufacturer,
		TypeModel:         t.Model,
	}
	if e.AssignedTo != nil {
		if c, ok := st.clients[*e.AssignedTo]; ok {
			name := c.Name
			v.ClientName = &name
		}
	}
	return v
}

func (r memInstances) List(ctx context.Context, vendorID string, f repository.InstanceFilter) ([]*entity.EquipmentInstanceView, int, error) {
	var all []*entity.EquipmentInstanceView
	err := r.do(func(st *memState) error {
		classifier := compliance.NewClassifier(f.HorizonDays)
		for _, e := range st.instances {
			if e.VendorID != vendorID || e.DeletedAt != nil {
				continue
			}
			if f.Status != "" && e.Status != f.Status {
				continue
			}
			if f.EquipmentTypeID != "" && e.EquipmentTypeID != f.EquipmentTypeID {
				continue
			}
			v := r.view(st, e)
			if f.Search != "" {
				needle := strings.ToLower(f.Search)
				if !strings.Contains(strings.ToLower(e.SerialNumber), needle) &&
					!strings.Contains(strings.ToLower(v.TypeName), needle) &&
					!strings.Contains(strings.ToLower(v.TypeCode), needle) {
					continue
				}
			}
			if f.ComplianceStatus != "" {
				got := classifier.Classify(compliance.Dates{
					PurchaseDate: e.PurchaseDate, ExpiryDate: e.ExpiryDate, NextMaintenanceDate: e.NextMaintenanceDate,
				}, f.Today)
				if got != f.ComplianceStatus {
					continue
				}
			}
			all = append(all, v)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SerialNumber < all[j].SerialNumber })
	total := len(all)
	if f.Offset >= total {
		return []*entity.EquipmentInstanceView{}, total, nil
	}
	end := f.Offset + f.Limit
	if f.Limit <= 0 || end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r memInstances) GetView(ctx context.Context, id, vendorID string) (*entity.EquipmentInstanceView, error) {
	var out *entity.EquipmentInstanceView
	err := r.do(func(st *memState) error {
		if e, ok := st.instances[id]; ok && e.VendorID == vendorID && e.DeletedAt == nil {
			out = r.view(st, e)
		}
		return nil
	})
	return out, err
}

func (r memInstances) ListRelated(ctx context.Context, inst *entity.EquipmentInstance, limit int) ([]*entity.EquipmentInstanceView, error) {
	var out []*entity.EquipmentInstanceView
	err := r.do(func(st *memState) error {
		for _, e := range st.instances {
			if e.ID == inst.ID || e.VendorID != inst.VendorID || e.EquipmentTypeID != inst.EquipmentTypeID || e.DeletedAt != nil {
				continue
			}
			out = append(out, r.view(st, e))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SerialNumber < out[j].SerialNumber })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

// --- EquipmentTypeRepository ---

func (r memTypes) Create(ctx context.Context, t *entity.EquipmentType) error {
	return r.do(func(st *memState) error {
		for _, e := range st.types {
			if e.VendorID == t.VendorID && e.Code == t.Code && e.DeletedAt == nil {
				return domain.ErrDuplicate
			}
		}
		st.types[t.ID] = *t
		return nil
	})
}

func (r memTypes) GetByID(ctx context.Context, id, vendorID string) (*entity.EquipmentType, error) {
	var out *entity.EquipmentType
	err := r.do(func(st *memState) error {
		if t, ok := st.types[id]; ok && t.VendorID == vendorID && t.DeletedAt == nil {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r memTypes) ListByVendor(ctx context.Context, vendorID string, limit, offset int) ([]*entity.EquipmentType, int, error) {
	var out []*entity.EquipmentType
	err := r.do(func(st *memState) error {
		for _, t := range st.types {
			if t.VendorID == vendorID && t.DeletedAt == nil {
				t := t
				out = append(out, &t)
			}
		}
		return nil
	})
	return out, len(out), err
}

func (r memTypes) Update(ctx context.Context, t *entity.EquipmentType) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		if e, ok := st.types[t.ID]; ok && e.VendorID == t.VendorID && e.DeletedAt == nil {
			st.types[t.ID] = *t
			n = 1
		}
		return nil
	})
	return n, err
}

func (r memTypes) SoftDelete(ctx context.Context, id, vendorID string, at time.Time) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		if e, ok := st.types[id]; ok && e.VendorID == vendorID && e.DeletedAt == nil {
			e.DeletedAt = &at
			st.types[id] = e
			n = 1
		}
		return nil
	})
	return n, err
}

// --- ClientRepository ---

func (r memClients) Create(ctx context.Context, c *entity.Client) error {
	return r.do(func(st *memState) error {
		st.clients[c.ID] = *c
		return nil
	})
}

func (r memClients) GetByID(ctx context.Context, id, vendorID string) (*entity.Client, error) {
	var out *entity.Client
	err := r.do(func(st *memState) error {
		if c, ok := st.clients[id]; ok && c.CreatedByVendorID == vendorID {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r memClients) ListByVendor(ctx context.Context, vendorID, status string, limit, offset int) ([]*entity.Client, int, error) {
	var out []*entity.Client
	err := r.do(func(st *memState) error {
		for _, c := range st.clients {
			if c.CreatedByVendorID == vendorID && (status == "" || c.Status == status) {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, len(out), err
}

func (r memClients) UpdateStatus(ctx context.Context, id, vendorID, status string, at time.Time) (int64, error) {
	var n int64
	err := r.do(func(st *memState) error {
		if c, ok := st.clients[id]; ok && c.CreatedByVendorID == vendorID {
			c.Status = status
			c.UpdatedAt = at
			st.clients[id] = c
			n = 1
		}
		return nil
	})
	return n, err
}

// --- MaintenanceTicketRepository ---

func (r memTickets) ListByInstance(ctx context.Context, instanceID, vendorID string, limit int) ([]*entity.MaintenanceTicket, error) {
	var out []*entity.MaintenanceTicket
	err := r.do(func(st *memState) error {
		for _, t := range st.tickets {
			if t.EquipmentInstanceID == instanceID && t.VendorID == vendorID {
				t := t
				out = append(out, &t)
			}
		}
		return nil
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r memTickets) CountOpenByInstance(ctx context.Context, instanceID, vendorID string) (int, error) {
	var n int
	err := r.do(func(st *memState) error {
		for _, t := range st.tickets {
			if t.EquipmentInstanceID == instanceID && t.VendorID == vendorID &&
				(t.Status == entity.TicketStatusOpen || t.Status == entity.TicketStatusInProgress) {
				n++
			}
		}
		return nil
	})
	return n, err
}
