package beetle

import (
	"time"

	"github.com/google/uuid"

	"beetlevault-backend/internal/domains/user"
)

// Lifecycle stages
const (
	StageEgg   = "egg"
	StageLarva = "larva"
	StageAdult = "adult"
)

// Larva instars
const (
	LarvaStageL1      = "L1"
	LarvaStageL2      = "L2"
	LarvaStageL3      = "L3"
	LarvaStageUnknown = "unknown"
)

// Genders (adults only)
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Taxonomic categories
const (
	CategoryRhinoceros = "rhinoceros"
	CategoryStag       = "stag"
)

// GrowthRecord is an embedded measurement taken while a specimen is a
// larva. Stored as a jsonb array on the beetle row.
type GrowthRecord struct {
	Stage       string    `json:"stage"`
	RecordedAt  time.Time `json:"recordedAt"`
	WeightGrams float64   `json:"weightGrams"`
}

type Beetle struct {
	ID            uuid.UUID      `json:"id"`
	OwnerID       uuid.UUID      `json:"ownerId"`
	Species       string         `json:"species"`
	Lineage       *string        `json:"lineage"`
	EmergedAt     *time.Time     `json:"emergedAt"`
	Notes         *string        `json:"notes"`
	ImageURL      *string        `json:"imageUrl"`
	Stage         string         `json:"stage"`
	LarvaStage    *string        `json:"larvaStage"`
	Gender        *string        `json:"gender"`
	Category      string         `json:"category"`
	IsPublished   bool           `json:"isPublished"`
	IsForSale     bool           `json:"isForSale"`
	Price         *int           `json:"price"`
	GrowthRecords []GrowthRecord `json:"growthRecords"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// WithOwner is a beetle plus its owner's public projection, the shape every
// read endpoint returns.
type WithOwner struct {
	Beetle
	Owner user.PublicUser `json:"owner"`
}

// DetailCacheKey is the cache key for the public single-beetle fetch.
func DetailCacheKey(id uuid.UUID) string {
	return "beetle:detail:" + id.String()
}
