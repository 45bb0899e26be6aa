package tenant

import (
	"context"
	"time"

	"github.com/ardentinvoicing/ardent/internal/types"
)

// Tenant is a single business account and the unit of data isolation.
// Exactly one SME user owns each tenant.
type Tenant struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	BusinessName string    `json:"business_name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	AddressLine  string    `json:"address_line,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	OwnerUserID  string    `json:"owner_user_id"`
	Status       types.Status `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// New returns a tenant owned by the given SME user
func New(ctx context.Context, businessName, ownerUserID string) *Tenant {
	now := time.Now().UTC()
	return &Tenant{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		BusinessName: businessName,
		OwnerUserID:  ownerUserID,
		Status:       types.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
