package beetle

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Sort keys accepted by the public catalog.
const (
	SortCreatedAtDesc = "createdAt_desc"
	SortCreatedAtAsc  = "createdAt_asc"
	SortSpeciesAsc    = "species_asc"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var stages = []interface{}{StageEgg, StageLarva, StageAdult}
var larvaStages = []interface{}{LarvaStageL1, LarvaStageL2, LarvaStageL3, LarvaStageUnknown}
var genders = []interface{}{GenderMale, GenderFemale}
var categories = []interface{}{CategoryRhinoceros, CategoryStag}

// Input - POST /beetles request body. Field names mirror the JSON wire
// format.
type Input struct {
	Species       string         `json:"species"`
	Lineage       string         `json:"lineage,omitempty"`
	EmergedAt     string         `json:"emergedAt,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	ImageData     string         `json:"imageData,omitempty"`
	IsPublished   bool           `json:"isPublished"`
	IsForSale     bool           `json:"isForSale"`
	Price         *int           `json:"price,omitempty"`
	Stage         string         `json:"stage"`
	LarvaStage    string         `json:"larvaStage,omitempty"`
	Gender        string         `json:"gender,omitempty"`
	Category      string         `json:"category"`
	GrowthRecords []GrowthRecord `json:"growthRecords,omitempty"`
}

func (r Input) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Species,
			validation.Required.Error("species is required"),
		),
		validation.Field(&r.Lineage,
			validation.Length(0, 120).Error("lineage cannot exceed 120 characters"),
		),
		validation.Field(&r.EmergedAt,
			validation.By(dateStringRule),
		),
		validation.Field(&r.ImageURL,
			validation.By(func(interface{}) error {
				if r.ImageURL != "" && r.ImageData != "" {
					return fmt.Errorf("supply either imageUrl or imageData, not both")
				}
				return nil
			}),
		),
		validation.Field(&r.Price,
			validation.Min(0).Error("price cannot be negative"),
		),
		validation.Field(&r.Stage,
			validation.Required.Error("stage is required"),
			validation.In(stages...).Error("stage must be egg, larva or adult"),
			validation.By(func(interface{}) error {
				return stageDetailsRule(r.Stage, r.LarvaStage, r.Gender)
			}),
		),
		validation.Field(&r.LarvaStage,
			validation.In(larvaStages...).Error("larvaStage must be L1, L2, L3 or unknown"),
		),
		validation.Field(&r.Gender,
			validation.In(genders...).Error("gender must be male or female"),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.In(categories...).Error("category must be rhinoceros or stag"),
		),
		validation.Field(&r.GrowthRecords,
			validation.By(growthRecordsRule(r.GrowthRecords)),
		),
	)
}

// ToBeetle builds a new record owned by ownerID. Any client-supplied owner
// is ignored by construction. Call Validate first.
func (r Input) ToBeetle(ownerID uuid.UUID) (*Beetle, error) {
	emergedAt, err := parseOptionalDate(r.EmergedAt)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Beetle{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Species:       r.Species,
		Lineage:       optional(r.Lineage),
		EmergedAt:     emergedAt,
		Notes:         optional(r.Notes),
		ImageURL:      optional(r.ImageURL),
		Stage:         r.Stage,
		LarvaStage:    optional(r.LarvaStage),
		Gender:        optional(r.Gender),
		Category:      r.Category,
		IsPublished:   r.IsPublished,
		IsForSale:     r.IsForSale,
		Price:         r.Price,
		GrowthRecords: r.GrowthRecords,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdateRequest - PATCH /beetles/:id. Nil fields are left unchanged;
// empty strings clear optional fields.
type UpdateRequest struct {
	Species       *string         `json:"species"`
	Lineage       *string         `json:"lineage"`
	EmergedAt     *string         `json:"emergedAt"`
	Notes         *string         `json:"notes"`
	ImageURL      *string         `json:"imageUrl"`
	IsPublished   *bool           `json:"isPublished"`
	IsForSale     *bool           `json:"isForSale"`
	Price         *int            `json:"price"`
	Stage         *string         `json:"stage"`
	LarvaStage    *string         `json:"larvaStage"`
	Gender        *string         `json:"gender"`
	Category      *string         `json:"category"`
	GrowthRecords *[]GrowthRecord `json:"growthRecords"`
}

// ApplyTo merges the supplied fields onto b. The caller re-validates the
// merged record so cross-field rules hold after the merge.
func (r UpdateRequest) ApplyTo(b *Beetle) error {
	if r.Species != nil {
		b.Species = *r.Species
	}
	if r.Lineage != nil {
		b.Lineage = optional(*r.Lineage)
	}
	if r.EmergedAt != nil {
		emergedAt, err := parseOptionalDate(*r.EmergedAt)
		if err != nil {
			return validation.Errors{"emergedAt": err}
		}
		b.EmergedAt = emergedAt
	}
	if r.Notes != nil {
		b.Notes = optional(*r.Notes)
	}
	if r.ImageURL != nil {
		b.ImageURL = optional(*r.ImageURL)
	}
	if r.IsPublished != nil {
		b.IsPublished = *r.IsPublished
	}
	if r.IsForSale != nil {
		b.IsForSale = *r.IsForSale
	}
	if r.Price != nil {
		b.Price = r.Price
	}
	if r.Stage != nil {
		b.Stage = *r.Stage
	}
	if r.LarvaStage != nil {
		b.LarvaStage = optional(*r.LarvaStage)
	}
	if r.Gender != nil {
		b.Gender = optional(*r.Gender)
	}
	if r.Category != nil {
		b.Category = *r.Category
	}
	if r.GrowthRecords != nil {
		b.GrowthRecords = *r.GrowthRecords
	}
	b.UpdatedAt = time.Now()
	return nil
}

// Validate checks a merged record against the same schema as Input.
func (b Beetle) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Species,
			validation.Required.Error("species is required"),
		),
		validation.Field(&b.Lineage,
			validation.Length(0, 120).Error("lineage cannot exceed 120 characters"),
		),
		validation.Field(&b.Price,
			validation.Min(0).Error("price cannot be negative"),
		),
		validation.Field(&b.Stage,
			validation.Required.Error("stage is required"),
			validation.In(stages...).Error("stage must be egg, larva or adult"),
			validation.By(func(interface{}) error {
				return stageDetailsRule(b.Stage, deref(b.LarvaStage), deref(b.Gender))
			}),
		),
		validation.Field(&b.LarvaStage,
			validation.In(larvaStages...).Error("larvaStage must be L1, L2, L3 or unknown"),
		),
		validation.Field(&b.Gender,
			validation.In(genders...).Error("gender must be male or female"),
		),
		validation.Field(&b.Category,
			validation.Required.Error("category is required"),
			validation.In(categories...).Error("category must be rhinoceros or stag"),
		),
		validation.Field(&b.GrowthRecords,
			validation.By(growthRecordsRule(b.GrowthRecords)),
		),
	)
}

// stageDetailsRule is the cross-field rule: larvae need an instar, adults
// need a gender. Violations surface as a single error on the stage field.
func stageDetailsRule(stage, larvaStage, gender string) error {
	if stage == StageLarva && larvaStage == "" {
		return fmt.Errorf("larva requires larvaStage, adult requires gender")
	}
	if stage == StageAdult && gender == "" {
		return fmt.Errorf("larva requires larvaStage, adult requires gender")
	}
	return nil
}

func growthRecordsRule(records []GrowthRecord) validation.RuleFunc {
	return func(interface{}) error {
		for i, rec := range records {
			if rec.Stage == "" {
				return fmt.Errorf("growthRecords[%d]: stage is required", i)
			}
			if rec.RecordedAt.IsZero() {
				return fmt.Errorf("growthRecords[%d]: recordedAt is required", i)
			}
			if rec.WeightGrams < 0 {
				return fmt.Errorf("growthRecords[%d]: weight cannot be negative", i)
			}
		}
		return nil
	}
}

// PublicListQuery is the structured form of the public catalog parameters.
// Zero values mean "unconstrained"; mapping to SQL happens in the
// repository.
type PublicListQuery struct {
	Q           string
	Species     string
	ForSale     *bool
	Stage       string
	LarvaStage  string
	Gender      string
	Category    string
	EmergedFrom *time.Time
	EmergedTo   *time.Time
	Sort        string
	Page        int
	PageSize    int
}

func (q PublicListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ParsePublicListQuery validates and normalizes the raw query string.
// Unparseable values are errors, never silently defaulted.
func ParsePublicListQuery(values url.Values) (PublicListQuery, error) {
	q := PublicListQuery{
		Q:        values.Get("q"),
		Species:  values.Get("species"),
		Sort:     SortCreatedAtDesc,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	switch forSale := values.Get("forSale"); forSale {
	case "":
	case "true":
		q.ForSale = boolPtr(true)
	case "false":
		q.ForSale = boolPtr(false)
	default:
		return q, fmt.Errorf("forSale must be true or false")
	}

	var err error
	if q.Stage, err = enumParam(values, "stage", stages); err != nil {
		return q, err
	}
	if q.LarvaStage, err = enumParam(values, "larvaStage", larvaStages); err != nil {
		return q, err
	}
	if q.Gender, err = enumParam(values, "gender", genders); err != nil {
		return q, err
	}
	if q.Category, err = enumParam(values, "category", categories); err != nil {
		return q, err
	}

	if raw := values.Get("emergedFrom"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return q, fmt.Errorf("emergedFrom: %w", err)
		}
		q.EmergedFrom = &t
	}
	if raw := values.Get("emergedTo"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return q, fmt.Errorf("emergedTo: %w", err)
		}
		q.EmergedTo = &t
	}

	switch sort := values.Get("sort"); sort {
	case "", SortCreatedAtDesc:
	case SortCreatedAtAsc, SortSpeciesAsc:
		q.Sort = sort
	default:
		return q, fmt.Errorf("unknown sort %q", sort)
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, fmt.Errorf("page must be a positive integer")
		}
		q.Page = page
	}
	if raw := values.Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 || pageSize > MaxPageSize {
			return q, fmt.Errorf("pageSize must be between 1 and %d", MaxPageSize)
		}
		q.PageSize = pageSize
	}

	return q, nil
}

func enumParam(values url.Values, name string, allowed []interface{}) (string, error) {
	raw := values.Get(name)
	if raw == "" {
		return "", nil
	}
	for _, a := range allowed {
		if raw == a.(string) {
			return raw, nil
		}
	}
	return "", fmt.Errorf("invalid %s %q", name, raw)
}

// Date parsing accepts plain dates and full RFC3339 timestamps.

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func dateStringRule(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := parseDate(s)
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolPtr(b bool) *bool {
	return &b
}
