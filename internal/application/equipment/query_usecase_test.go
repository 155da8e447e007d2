package equipment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryList_FiltrosYPaginacion(t *testing.T) {
	f := newFixture(t)
	for _, s := range []string{"A-01", "A-02", "A-03", "B-01", "B-02"} {
		f.createInstance(t, s)
	}
	a1, err := f.query.List(context.Background(), f.vendorID, dto.InstanceListQuery{Search: "a-0"})
	require.NoError(t, err)
	assert.Equal(t, 3, a1.Page.Total)

	f.assign(t, a1.Items[0].ID)

	tests := []struct {
		name      string
		q         dto.InstanceListQuery
		total     int
		pageItems int
		pages     int
	}{
		{"sin filtros", dto.InstanceListQuery{}, 5, 5, 1},
		{"por estado", dto.InstanceListQuery{Status: entity.InstanceStatusAssigned}, 1, 1, 1},
		{"búsqueda", dto.InstanceListQuery{Search: "b-"}, 2, 2, 1},
		{"por tipo", dto.InstanceListQuery{EquipmentTypeID: f.typeID}, 5, 5, 1},
		{"otro tipo", dto.InstanceListQuery{EquipmentTypeID: uuid.NewString()}, 0, 0, 0},
		{"página 2 de 3", dto.InstanceListQuery{PageRequest: dto.PageRequest{Page: 2, Limit: 2}}, 5, 2, 3},
		{"última página", dto.InstanceListQuery{PageRequest: dto.PageRequest{Page: 3, Limit: 2}}, 5, 1, 3},
		{"cumplimiento", dto.InstanceListQuery{ComplianceStatus: entity.ComplianceCompliant}, 5, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.query.List(context.Background(), f.vendorID, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.total, out.Page.Total)
			assert.Len(t, out.Items, tt.pageItems)
			assert.Equal(t, tt.pages, out.Page.TotalPages)
		})
	}

	other, err := f.query.List(context.Background(), f.otherVendor, dto.InstanceListQuery{})
	require.NoError(t, err)
	assert.Zero(t, other.Page.Total)
}

func TestQueryList_RecalculaCumplimiento(t *testing.T) {
	f := newFixture(t)
	created := f.createInstance(t, "EXT-001") // próximo mantenimiento 2024-07-13
	assert.Equal(t, entity.ComplianceCompliant, created.ComplianceStatus)

	// Un mes después el mantenimiento cae dentro del horizonte.
	f.query = newQueryAt(f, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	out, err := f.query.List(context.Background(), f.vendorID, dto.InstanceListQuery{ComplianceStatus: entity.ComplianceDueSoon})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, entity.ComplianceDueSoon, out.Items[0].ComplianceStatus)
}

func TestQueryList_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.query.List(context.Background(), f.vendorID, dto.InstanceListQuery{Status: "perdido"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.query.List(context.Background(), f.vendorID, dto.InstanceListQuery{PageRequest: dto.PageRequest{Limit: 500}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryGetDetail(t *testing.T) {
	f := newFixture(t)
	s1 := f.createInstance(t, "S1")
	asg := f.assign(t, s1.ID)
	f.store.putTicket(entity.MaintenanceTicket{
		ID: uuid.NewString(), TicketNumber: "TKT-1", EquipmentInstanceID: s1.ID, VendorID: f.vendorID,
		Status: entity.TicketStatusOpen, Priority: "high", IssueDescription: "Manómetro en rojo", CreatedAt: fixedNow,
	})
	f.store.putTicket(entity.MaintenanceTicket{
		ID: uuid.NewString(), TicketNumber: "TKT-0", EquipmentInstanceID: s1.ID, VendorID: f.vendorID,
		Status: entity.TicketStatusCompleted, Priority: "low", CreatedAt: fixedNow.AddDate(0, -2, 0),
	})

	out, err := f.query.GetDetail(context.Background(), f.vendorID, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, "S1", out.SerialNumber)
	require.NotNil(t, out.EquipmentType)
	assert.Equal(t, "Extintor PQS 10 lb", out.EquipmentType.Name)
	require.NotNil(t, out.Client)
	assert.Equal(t, "Edificio Central", out.Client.Name)
	require.Len(t, out.Assignments, 1)
	assert.Equal(t, asg.AssignmentNumber, out.Assignments[0].AssignmentNumber)
	assert.Equal(t, "Edificio Central", out.Assignments[0].ClientName)
	assert.Len(t, out.Maintenance, 2)
	assert.Equal(t, 1, out.OpenTickets)

	_, err = f.query.GetDetail(context.Background(), f.otherVendor, s1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueryRelated(t *testing.T) {
	f := newFixture(t)
	s1 := f.createInstance(t, "S1")
	f.createInstance(t, "S2")
	f.createInstance(t, "S3")

	out, err := f.query.Related(context.Background(), f.vendorID, s1.ID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, r := range out {
		assert.NotEqual(t, s1.ID, r.ID)
		assert.Equal(t, f.typeID, r.EquipmentTypeID)
	}
}

func TestQueryHistorial(t *testing.T) {
	f := newFixture(t)
	s1 := f.createInstance(t, "S1")
	f.assign(t, s1.ID)

	history, err := f.query.AssignmentHistory(context.Background(), f.vendorID, s1.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	tickets, err := f.query.MaintenanceHistory(context.Background(), f.vendorID, s1.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	_, err = f.query.AssignmentHistory(context.Background(), f.otherVendor, s1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.query.MaintenanceHistory(context.Background(), f.vendorID, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
