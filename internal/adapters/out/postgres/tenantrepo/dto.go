// Package tenantrepo provides data transfer objects and mapping functions for
// tenant persistence. The tenant row doubles as the per-tenant admission
// lock: creation handlers lock it before counting active orders.
package tenantrepo

import (
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/tenant"

	"github.com/google/uuid"
)

// TenantDTO represents the database structure for persisting tenants.
// The plan is stored in its wire spelling.
type TenantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255)"`
	OwnerID uuid.UUID `gorm:"type:uuid"`
	Plan    string    `gorm:"type:varchar(16)"`
}

// TableName specifies the database table name for tenant entities.
func (TenantDTO) TableName() string {
	return "tenants"
}

// fromDomain converts a tenant domain aggregate to its database representation.
func fromDomain(aggregate *tenant.Tenant) TenantDTO {
	return TenantDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		OwnerID: aggregate.OwnerID().Bytes(),
		Plan:    aggregate.Plan().String(),
	}
}

// toDomain converts a database DTO to a tenant domain aggregate.
func toDomain(dto TenantDTO) (*tenant.Tenant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	plan, err := tenant.PlanFromString(dto.Plan)
	if err != nil {
		return nil, err
	}

	return tenant.RestoreTenant(id, dto.Name, ownerID, plan)
}
