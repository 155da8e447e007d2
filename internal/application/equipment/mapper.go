package equipment

import (
	"time"

	"github.com/jhoicas/FireSafety-api/internal/application/dto"
	"github.com/jhoicas/FireSafety-api/internal/domain/compliance"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
)

func formatDate(t time.Time) string { return t.Format(dto.DateLayout) }

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(dto.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, validationDate(field)
	}
	return t, nil
}

func parseDatePtr(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toInstanceResponse(e *entity.EquipmentInstance) *dto.InstanceResponse {
	if e == nil {
		return nil
	}
	return &dto.InstanceResponse{
		ID:                      e.ID,
		EquipmentTypeID:         e.EquipmentTypeID,
		VendorID:                e.VendorID,
		SerialNumber:            e.SerialNumber,
		Status:                  e.Status,
		ComplianceStatus:        e.ComplianceStatus,
		PurchaseDate:            formatDate(e.PurchaseDate),
		WarrantyExpiry:          formatDatePtr(e.WarrantyExpiry),
		ExpiryDate:              formatDate(e.ExpiryDate),
		NextMaintenanceDate:     formatDatePtr(e.NextMaintenanceDate),
		MaintenanceIntervalDays: e.MaintenanceIntervalDays,
		AssignedTo:              e.AssignedTo,
		AssignedAt:              e.AssignedAt,
		Location:                e.Location,
		Notes:                   e.Notes,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
		DeletedAt:               e.DeletedAt,
	}
}

func toInstanceViewResponse(v *entity.EquipmentInstanceView) *dto.InstanceResponse {
	if v == nil {
		return nil
	}
	out := toInstanceResponse(&v.EquipmentInstance)
	out.EquipmentType = &dto.EquipmentTypeSummary{
		ID:           v.EquipmentTypeID,
		Name:         v.TypeName,
		Code:         v.TypeCode,
		Manufacturer: v.TypeManufacturer,
		Model:        v.TypeModel,
	}
	if v.AssignedTo != nil {
		c := &dto.ClientSummary{ID: *v.AssignedTo}
		if v.ClientName != nil {
			c.Name = *v.ClientName
		}
		out.Client = c
	}
	return out
}

func toAssignmentResponse(a *entity.EquipmentAssignment, items []*entity.AssignmentItem) *dto.AssignmentResponse {
	out := &dto.AssignmentResponse{
		ID:               a.ID,
		AssignmentNumber: a.AssignmentNumber,
		VendorID:         a.VendorID,
		ClientID:         a.ClientID,
		Status:           a.Status,
		TotalCost:        a.TotalCost,
		AssignmentDate:   formatDate(a.AssignmentDate),
		Notes:            a.Notes,
		Items:            make([]dto.AssignmentItemResponse, 0, len(items)),
		CreatedAt:        a.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.AssignmentItemResponse{
			ID:                  it.ID,
			EquipmentInstanceID: it.EquipmentInstanceID,
			Quantity:            it.Quantity,
			UnitCost:            it.UnitCost,
			TotalCost:           it.TotalCost,
		})
	}
	return out
}

func toHistoryResponse(h *entity.AssignmentHistoryEntry) dto.AssignmentHistoryResponse {
	return dto.AssignmentHistoryResponse{
		AssignmentID:     h.AssignmentID,
		AssignmentNumber: h.AssignmentNumber,
		ClientID:         h.ClientID,
		ClientName:       h.ClientName,
		Status:           h.Status,
		UnitCost:         h.UnitCost,
		TotalCost:        h.TotalCost,
		AssignmentDate:   formatDate(h.AssignmentDate),
		CreatedAt:        h.CreatedAt,
	}
}

func toTicketResponse(t *entity.MaintenanceTicket) dto.MaintenanceTicketResponse {
	return dto.MaintenanceTicketResponse{
		ID:               t.ID,
		TicketNumber:     t.TicketNumber,
		Status:           t.Status,
		Priority:         t.Priority,
		IssueDescription: t.IssueDescription,
		ClientID:         t.ClientID,
		ScheduledDate:    formatDatePtr(t.ScheduledDate),
		CompletedDate:    formatDatePtr(t.CompletedDate),
		CreatedAt:        t.CreatedAt,
	}
}

func classifyInstance(c compliance.Classifier, inst *entity.EquipmentInstance, today time.Time) string {
	return c.Classify(compliance.Dates{
		PurchaseDate:        inst.PurchaseDate,
		ExpiryDate:          inst.ExpiryDate,
		NextMaintenanceDate: inst.NextMaintenanceDate,
	}, today)
}
