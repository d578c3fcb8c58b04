package model

import (
	"time"

	"github.com/google/uuid"
)

// DesignService is a service enabled on a design, optionally assigned to a
// partner with a complexity level.
type DesignService struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DesignID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_design_service"`
	ServiceID       string     `gorm:"type:varchar(30);not null;uniqueIndex:idx_design_service"`
	VendorUserID    *uuid.UUID `gorm:"type:uuid"`
	ComplexityLevel *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DesignService) TableName() string { return "product_design_services" }
