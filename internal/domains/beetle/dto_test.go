package beetle

import (
	"net/url"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Species:  "Dynastes hercules",
		Stage:    StageAdult,
		Gender:   GenderMale,
		Category: CategoryRhinoceros,
	}
}

func fieldError(t *testing.T, err error, field string) {
	t.Helper()
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, field)
}

func TestInputValidateAcceptsMinimalRecord(t *testing.T) {
	assert.NoError(t, validInput().Validate())
}

func TestInputValidateRequiresSpecies(t *testing.T) {
	in := validInput()
	in.Species = ""
	fieldError(t, in.Validate(), "species")
}

func TestInputValidateLineageLength(t *testing.T) {
	in := validInput()
	in.Lineage = strings.Repeat("x", 121)
	fieldError(t, in.Validate(), "lineage")

	in.Lineage = strings.Repeat("x", 120)
	assert.NoError(t, in.Validate())
}

func TestInputValidateLarvaNeedsInstar(t *testing.T) {
	in := validInput()
	in.Stage = StageLarva
	in.Gender = ""
	fieldError(t, in.Validate(), "stage")

	in.LarvaStage = LarvaStageL2
	assert.NoError(t, in.Validate())
}

func TestInputValidateAdultNeedsGender(t *testing.T) {
	in := validInput()
	in.Gender = ""
	fieldError(t, in.Validate(), "stage")
}

func TestInputValidateEggNeedsNeither(t *testing.T) {
	in := validInput()
	in.Stage = StageEgg
	in.Gender = ""
	assert.NoError(t, in.Validate())
}

func TestInputValidateRejectsUnknownEnums(t *testing.T) {
	in := validInput()
	in.Stage = "pupa"
	fieldError(t, in.Validate(), "stage")

	in = validInput()
	in.Category = "scarab"
	fieldError(t, in.Validate(), "category")

	in = validInput()
	in.Gender = "other"
	fieldError(t, in.Validate(), "gender")
}

func TestInputValidateNegativePrice(t *testing.T) {
	in := validInput()
	price := -5
	in.Price = &price
	fieldError(t, in.Validate(), "price")
}

func TestInputValidateImageSourceExclusive(t *testing.T) {
	in := validInput()
	in.ImageURL = "https://example.com/a.jpg"
	in.ImageData = "base64data"
	fieldError(t, in.Validate(), "imageUrl")
}

func TestInputValidateBadDate(t *testing.T) {
	in := validInput()
	in.EmergedAt = "last tuesday"
	fieldError(t, in.Validate(), "emergedAt")

	in.EmergedAt = "2025-06-15"
	assert.NoError(t, in.Validate())
}

func TestInputValidateGrowthRecords(t *testing.T) {
	in := validInput()
	in.GrowthRecords = []GrowthRecord{{Stage: "", RecordedAt: time.Now()}}
	fieldError(t, in.Validate(), "growthRecords")

	in.GrowthRecords = []GrowthRecord{{Stage: "L2", RecordedAt: time.Now(), WeightGrams: 42.5}}
	assert.NoError(t, in.Validate())
}

func TestToBeetleIgnoresClientOwner(t *testing.T) {
	owner := uuid.New()
	b, err := validInput().ToBeetle(owner)
	require.NoError(t, err)
	assert.Equal(t, owner, b.OwnerID)
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Nil(t, b.Lineage)
}

func TestApplyToClearsOptionalFields(t *testing.T) {
	lineage := "Kabukuwa line"
	b := Beetle{Species: "Dorcus titanus", Lineage: &lineage, Stage: StageEgg, Category: CategoryStag}

	empty := ""
	require.NoError(t, UpdateRequest{Lineage: &empty}.ApplyTo(&b))
	assert.Nil(t, b.Lineage)
}

func TestApplyToBadDateIsValidationError(t *testing.T) {
	b := Beetle{Species: "Dorcus titanus", Stage: StageEgg, Category: CategoryStag}
	bad := "not-a-date"
	err := UpdateRequest{EmergedAt: &bad}.ApplyTo(&b)
	fieldError(t, err, "emergedAt")
}

func TestParsePublicListQueryDefaults(t *testing.T) {
	q, err := ParsePublicListQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, SortCreatedAtDesc, q.Sort)
	assert.Nil(t, q.ForSale)
}

func TestParsePublicListQueryFull(t *testing.T) {
	values := url.Values{
		"q":           {"hercules"},
		"species":     {"Dynastes hercules"},
		"forSale":     {"true"},
		"stage":       {"adult"},
		"gender":      {"male"},
		"category":    {"rhinoceros"},
		"emergedFrom": {"2025-01-01"},
		"emergedTo":   {"2025-12-31"},
		"sort":        {SortSpeciesAsc},
		"page":        {"3"},
		"pageSize":    {"50"},
	}

	q, err := ParsePublicListQuery(values)
	require.NoError(t, err)
	assert.Equal(t, "hercules", q.Q)
	require.NotNil(t, q.ForSale)
	assert.True(t, *q.ForSale)
	assert.Equal(t, "adult", q.Stage)
	require.NotNil(t, q.EmergedFrom)
	assert.Equal(t, 2025, q.EmergedFrom.Year())
	assert.Equal(t, SortSpeciesAsc, q.Sort)
	assert.Equal(t, 100, q.Offset())
}

func TestParsePublicListQueryRejectsBadValues(t *testing.T) {
	cases := map[string]url.Values{
		"forSale":  {"forSale": {"yes"}},
		"stage":    {"stage": {"pupa"}},
		"sort":     {"sort": {"price_desc"}},
		"page":     {"page": {"0"}},
		"pageSize": {"pageSize": {"101"}},
		"date":     {"emergedFrom": {"june"}},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePublicListQuery(values)
			assert.Error(t, err)
		})
	}
}
