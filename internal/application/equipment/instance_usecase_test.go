package equipment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/application/equipment"
	"github.com/jhoicas/FireSafety-api/internal/domain"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSerial(t *testing.T) {
	assert.Equal(t, "EXT-001", equipment.NormalizeSerial("  ext-001 "))
	assert.Equal(t, "", equipment.NormalizeSerial("   "))
}

func TestInstanceCreate_CalculaFechasEnServidor(t *testing.T) {
	f := newFixture(t)

	out := f.createInstance(t, " ext-001 ")

	assert.Equal(t, "EXT-001", out.SerialNumber)
	assert.Equal(t, entity.InstanceStatusAvailable, out.Status)
	assert.Equal(t, "2024-01-15", out.PurchaseDate)
	assert.Equal(t, "2036-01-15", out.ExpiryDate, "compra + 12 años de vida útil del tipo")
	require.NotNil(t, out.NextMaintenanceDate)
	assert.Equal(t, "2024-07-13", *out.NextMaintenanceDate, "compra + 180 días")
	assert.Equal(t, entity.ComplianceCompliant, out.ComplianceStatus)
	assert.Nil(t, out.AssignedTo)
	require.NotNil(t, out.EquipmentType)
	assert.Equal(t, "PQS-10", out.EquipmentType.Code)
}

func TestInstanceCreate_IntervaloPorDefecto(t *testing.T) {
	f := newFixture(t)
	out, err := f.instances.Create(context.Background(), f.vendorID, dto.CreateInstanceRequest{
		EquipmentTypeID: f.typeID,
		SerialNumber:    "EXT-100",
		PurchaseDate:    "2023-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultMaintenanceIntervalDays, out.MaintenanceIntervalDays)
	require.NotNil(t, out.NextMaintenanceDate)
	assert.Equal(t, "2024-05-31", *out.NextMaintenanceDate)
	assert.Equal(t, entity.ComplianceOverdue, out.ComplianceStatus)
}

func TestInstanceCreate_SerialDuplicado(t *testing.T) {
	f := newFixture(t)
	first := f.createInstance(t, "EXT-001")

	_, err := f.instances.Create(context.Background(), f.vendorID, dto.CreateInstanceRequest{
		EquipmentTypeID: f.typeID, SerialNumber: "ext-001", PurchaseDate: "2024-02-01",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSerialNumber)

	// Una vez eliminada lógicamente, el serial vuelve a estar libre.
	_, err = f.instances.Delete(context.Background(), f.vendorID, first.ID)
	require.NoError(t, err)
	again := f.createInstance(t, "EXT-001")
	assert.NotEqual(t, first.ID, again.ID)
}

func TestInstanceCreate_TipoDeOtroProveedor(t *testing.T) {
	f := newFixture(t)
	_, err := f.instances.Create(context.Background(), f.otherVendor, dto.CreateInstanceRequest{
		EquipmentTypeID: f.typeID, SerialNumber: "EXT-002", PurchaseDate: "2024-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInstanceCreate_Validacion(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name  string
		in    dto.CreateInstanceRequest
		field string
	}{
		{"sin serial", dto.CreateInstanceRequest{EquipmentTypeID: f.typeID, PurchaseDate: "2024-01-01"}, "serial_number"},
		{"serial en blanco", dto.CreateInstanceRequest{EquipmentTypeID: f.typeID, SerialNumber: "   ", PurchaseDate: "2024-01-01"}, "serial_number"},
		{"fecha inválida", dto.CreateInstanceRequest{EquipmentTypeID: f.typeID, SerialNumber: "X", PurchaseDate: "01/01/2024"}, "purchase_date"},
		{"tipo no uuid", dto.CreateInstanceRequest{EquipmentTypeID: "abc", SerialNumber: "X", PurchaseDate: "2024-01-01"}, "equipment_type_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.instances.Create(context.Background(), f.vendorID, tt.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Empty(t, f.store.snapshot().instances)
}

func TestInstanceUpdate_Parcial(t *testing.T) {
	f := newFixture(t)
	created := f.createInstance(t, "EXT-001")

	loc := "Sótano"
	out, err := f.instances.Update(context.Background(), f.vendorID, created.ID, dto.UpdateInstanceRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Sótano", out.Location)
	assert.Equal(t, created.Status, out.Status)
	assert.Equal(t, created.NextMaintenanceDate, out.NextMaintenanceDate)

	nm := "2024-05-15"
	out, err = f.instances.Update(context.Background(), f.vendorID, created.ID, dto.UpdateInstanceRequest{NextMaintenanceDate: &nm})
	require.NoError(t, err)
	assert.Equal(t, entity.ComplianceOverdue, out.ComplianceStatus)
	assert.Equal(t, "Sótano", out.Location)

	status := entity.InstanceStatusMaintenance
	out, err = f.instances.Update(context.Background(), f.vendorID, created.ID, dto.UpdateInstanceRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.InstanceStatusMaintenance, out.Status)
	assert.Equal(t, entity.InstanceStatusMaintenance, f.store.instance(created.ID).Status)
}

func TestInstanceUpdate_OtroProveedorEsNotFound(t *testing.T) {
	f := newFixture(t)
	created := f.createInstance(t, "EXT-001")
	loc := "x"

	_, err := f.instances.Update(context.Background(), f.otherVendor, created.ID, dto.UpdateInstanceRequest{Location: &loc})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.instances.Update(context.Background(), f.vendorID, uuid.NewString(), dto.UpdateInstanceRequest{Location: &loc})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Piso 1", f.store.instance(created.ID).Location)
}

func TestInstanceUpdate_NoAceptaAssigned(t *testing.T) {
	f := newFixture(t)
	created := f.createInstance(t, "EXT-001")
	status := entity.InstanceStatusAssigned

	_, err := f.instances.Update(context.Background(), f.vendorID, created.ID, dto.UpdateInstanceRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	requireStateInvariant(t, f.store.snapshot())
}

func TestInstanceUpdate_AsignadaNoCambiaEstado(t *testing.T) {
	f := newFixture(t)
	created := f.createInstance(t, "EXT-001")
	f.assign(t, created.ID)

	status := entity.InstanceStatusAvailable
	_, err := f.instances.Update(context.Background(), f.vendorID, created.ID, dto.UpdateInstanceRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrHasActiveAssignment)

	// Los campos descriptivos sí se pueden editar.
	notes := "revisado"
	out, err := f.instances.Update(context.Background(), f.vendorID, created.ID, dto.UpdateInstanceRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, entity.InstanceStatusAssigned, out.Status)
	requireStateInvariant(t, f.store.snapshot())
}

func TestInstanceDelete_ConAsignacionActiva(t *testing.T) {
	f := newFixture(t)
	created := f.createInstance(t, "EXT-001")
	f.assign(t, created.ID)
	before := f.store.instance(created.ID)

	_, err := f.instances.Delete(context.Background(), f.vendorID, created.ID)
	assert.ErrorIs(t, err, domain.ErrHasActiveAssignment)
	assert.Equal(t, before, f.store.instance(created.ID))
}

func TestInstanceDelete_SoloDesdeDisponible(t *testing.T) {
	for _, status := range []string{entity.InstanceStatusMaintenance, entity.InstanceStatusRetired} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)
			created := f.createInstance(t, "EXT-001")
			st := status
			_, err := f.instances.Update(context.Background(), f.vendorID, created.ID, dto.UpdateInstanceRequest{Status: &st})
			require.NoError(t, err)
			before := f.store.instance(created.ID)

			_, err = f.instances.Delete(context.Background(), f.vendorID, created.ID)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, before, f.store.instance(created.ID))
			assert.Nil(t, f.store.instance(created.ID).DeletedAt)

			available := entity.InstanceStatusAvailable
			_, err = f.instances.Update(context.Background(), f.vendorID, created.ID, dto.UpdateInstanceRequest{Status: &available})
			require.NoError(t, err)
			out, err := f.instances.Delete(context.Background(), f.vendorID, created.ID)
			require.NoError(t, err)
			assert.NotNil(t, out.DeletedAt)
		})
	}
}

func TestInstanceDelete(t *testing.T) {
	f := newFixture(t)
	created := f.createInstance(t, "EXT-001")

	_, err := f.instances.Delete(context.Background(), f.otherVendor, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := f.instances.Delete(context.Background(), f.vendorID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out.DeletedAt)

	_, err = f.instances.Delete(context.Background(), f.vendorID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.query.GetDetail(context.Background(), f.vendorID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInstanceDelete_IDInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.instances.Delete(context.Background(), f.vendorID, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.store.txCount, "la validación ocurre antes de abrir la transacción")
}
