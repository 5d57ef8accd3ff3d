package tenant

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
)

var (
	// ErrTenantIsNotConstructed is returned when a Tenant instance was not
	// created through NewTenant or RestoreTenant.
	ErrTenantIsNotConstructed = errors.New("Tenant must be created via NewTenant constructor")
)

// Tenant is a restaurant account: the unit of data and connection isolation.
// The admission guard consults its plan; the fanout hub buckets connections
// by its id.
type Tenant struct {
	// id is the unique identifier for the tenant
	id kernel.UUID

	// name is the restaurant's display name
	name string

	// ownerID identifies the account owner
	ownerID kernel.UUID

	// plan is the current subscription tier
	plan Plan

	// isConstructed ensures the tenant was created via a factory function
	isConstructed bool
}

// NewTenant creates a validated Tenant on the given plan.
func NewTenant(id kernel.UUID, name string, ownerID kernel.UUID, plan Plan) (*Tenant, error) {
	t := &Tenant{
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setOwnerID(ownerID),
		t.setPlan(plan),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTenant reconstructs a Tenant from persistence.
func RestoreTenant(id kernel.UUID, name string, ownerID kernel.UUID, plan Plan) (*Tenant, error) {
	return NewTenant(id, name, ownerID, plan)
}

// Validate ensures the Tenant instance was properly constructed.
func (t *Tenant) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTenantIsNotConstructed
	}
	return nil
}

// IsEqual compares two tenants by their unique identifiers.
func (t *Tenant) IsEqual(other *Tenant) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the tenant's unique identifier.
func (t *Tenant) ID() kernel.UUID {
	return t.id
}

// Name returns the restaurant's display name.
func (t *Tenant) Name() string {
	return t.name
}

// OwnerID returns the account owner's identifier.
func (t *Tenant) OwnerID() kernel.UUID {
	return t.ownerID
}

// Plan returns the current subscription tier.
func (t *Tenant) Plan() Plan {
	return t.plan
}

// ChangePlan switches the tenant to a different subscription tier.
// Active orders above a lower tier's quota are not evicted; the new limit
// only applies to subsequent creations.
func (t *Tenant) ChangePlan(plan Plan) error {
	return t.setPlan(plan)
}

func (t *Tenant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tenant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	t.name = name
	return nil
}

func (t *Tenant) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	t.ownerID = ownerID
	return nil
}

func (t *Tenant) setPlan(plan Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	t.plan = plan
	return nil
}
