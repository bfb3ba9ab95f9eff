package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beetlevault-backend/internal/domains/beetle"
)

func baseQuery() beetle.PublicListQuery {
	return beetle.PublicListQuery{
		Sort:     beetle.SortCreatedAtDesc,
		Page:     1,
		PageSize: 20,
	}
}

func TestBuildPublicWhereClauseAlwaysRequiresPublished(t *testing.T) {
	where, args := buildPublicWhereClause(baseQuery())

	assert.Equal(t, "b.is_published = true", where)
	assert.Empty(t, args)
}

func TestBuildPublicWhereClauseFreeText(t *testing.T) {
	q := baseQuery()
	q.Q = "hercules"

	where, args := buildPublicWhereClause(q)

	assert.Contains(t, where, "b.species LIKE '%' || $1 || '%'")
	assert.Contains(t, where, "b.lineage LIKE '%' || $1 || '%'")
	assert.Contains(t, where, "b.notes LIKE '%' || $1 || '%'")
	assert.Equal(t, []interface{}{"hercules"}, args)
}

func TestBuildPublicWhereClauseSpeciesAndQConjoin(t *testing.T) {
	q := baseQuery()
	q.Q = "taiwan"
	q.Species = "獨角仙"

	where, args := buildPublicWhereClause(q)

	assert.Contains(t, where, "b.species LIKE '%' || $2 || '%'")
	require.Len(t, args, 2)
	assert.Equal(t, "taiwan", args[0])
	assert.Equal(t, "獨角仙", args[1])
}

func TestBuildPublicWhereClauseForSaleTriState(t *testing.T) {
	forSale := true
	q := baseQuery()
	q.ForSale = &forSale

	where, args := buildPublicWhereClause(q)
	assert.Contains(t, where, "b.is_for_sale = $1")
	assert.Equal(t, []interface{}{true}, args)

	forSale = false
	_, args = buildPublicWhereClause(q)
	assert.Equal(t, []interface{}{false}, args)

	q.ForSale = nil
	where, args = buildPublicWhereClause(q)
	assert.NotContains(t, where, "is_for_sale")
	assert.Empty(t, args)
}

func TestBuildPublicWhereClauseExactMatchFilters(t *testing.T) {
	q := baseQuery()
	q.Stage = beetle.StageLarva
	q.LarvaStage = beetle.LarvaStageL2
	q.Gender = beetle.GenderMale
	q.Category = beetle.CategoryStag

	where, args := buildPublicWhereClause(q)

	assert.Contains(t, where, "b.stage = $1")
	assert.Contains(t, where, "b.larva_stage = $2")
	assert.Contains(t, where, "b.gender = $3")
	assert.Contains(t, where, "b.category = $4")
	assert.Equal(t, []interface{}{"larva", "L2", "male", "stag"}, args)
}

func TestBuildPublicWhereClauseDateBounds(t *testing.T) {
	from := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 8, 31, 0, 0, 0, 0, time.UTC)

	q := baseQuery()
	q.EmergedFrom = &from
	where, args := buildPublicWhereClause(q)
	assert.Contains(t, where, "b.emerged_at >= $1")
	assert.NotContains(t, where, "b.emerged_at <=")
	assert.Equal(t, []interface{}{from}, args)

	q.EmergedTo = &to
	where, args = buildPublicWhereClause(q)
	assert.Contains(t, where, "b.emerged_at >= $1")
	assert.Contains(t, where, "b.emerged_at <= $2")
	assert.Equal(t, []interface{}{from, to}, args)
}

func TestBuildPublicWhereClauseArgIndexesStayAligned(t *testing.T) {
	forSale := true
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	q := baseQuery()
	q.Q = "a"
	q.Species = "b"
	q.ForSale = &forSale
	q.Stage = beetle.StageAdult
	q.Gender = beetle.GenderFemale
	q.Category = beetle.CategoryRhinoceros
	q.EmergedFrom = &from

	where, args := buildPublicWhereClause(q)

	// Placeholders must run $1..$7 with no gaps
	for i := 1; i <= len(args); i++ {
		assert.Contains(t, where, "$"+string(rune('0'+i)))
	}
	assert.Len(t, args, 7)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "b.created_at DESC", orderClause(beetle.SortCreatedAtDesc))
	assert.Equal(t, "b.created_at ASC", orderClause(beetle.SortCreatedAtAsc))
	assert.Equal(t, "b.species ASC", orderClause(beetle.SortSpeciesAsc))
	assert.Equal(t, "b.created_at DESC", orderClause(""), "unknown sort falls back to newest first")
}
