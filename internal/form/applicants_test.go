package form

import (
	"fmt"
	"testing"

	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddApplicant(t *testing.T) {
	list := []models.Applicant{NewApplicant()}

	list = AddApplicant(list)

	require.Len(t, list, 2)
	assert.NotEqual(t, list[0].ID, list[1].ID)
	assert.Empty(t, list[1].FirstName)
}

func TestAddApplicant_CapIsSilent(t *testing.T) {
	var list []models.Applicant
	for i := 0; i < MaxApplicants; i++ {
		list = append(list, NewApplicant())
	}

	capped := AddApplicant(list)

	assert.Len(t, capped, MaxApplicants)
	assert.Equal(t, list, capped)
}

func TestRemoveApplicant(t *testing.T) {
	first := NewApplicant()
	second := NewApplicant()
	list := []models.Applicant{first, second}

	list = RemoveApplicant(list, second.ID)

	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestRemoveApplicant_FloorIsSilent(t *testing.T) {
	only := NewApplicant()
	list := []models.Applicant{only}

	list = RemoveApplicant(list, only.ID)

	require.Len(t, list, 1)
	assert.Equal(t, only.ID, list[0].ID)
}

func TestRemoveApplicant_UnknownID(t *testing.T) {
	list := []models.Applicant{NewApplicant(), NewApplicant()}

	result := RemoveApplicant(list, "no-such-id")

	assert.Equal(t, list, result)
}

func TestSetApplicantCount_Grow(t *testing.T) {
	first := NewApplicant()
	first.FirstName = "Jane"
	list := []models.Applicant{first}

	list = SetApplicantCount(list, 3)

	require.Len(t, list, 3)
	assert.Equal(t, "Jane", list[0].FirstName)
	assert.NotEqual(t, list[1].ID, list[2].ID)
}

func TestSetApplicantCount_TruncatesTailPreservingPrefix(t *testing.T) {
	var list []models.Applicant
	for i := 0; i < 4; i++ {
		a := NewApplicant()
		a.FirstName = fmt.Sprintf("Applicant%d", i)
		list = append(list, a)
	}

	list = SetApplicantCount(list, 2)

	require.Len(t, list, 2)
	assert.Equal(t, "Applicant0", list[0].FirstName)
	assert.Equal(t, "Applicant1", list[1].FirstName)
}

func TestSetApplicantCount_ClampsBounds(t *testing.T) {
	list := []models.Applicant{NewApplicant(), NewApplicant()}

	assert.Len(t, SetApplicantCount(list, 0), MinApplicants)
	assert.Len(t, SetApplicantCount(list, 12), MaxApplicants)
}

func TestApplicantListInvariant_UnderOperationSequences(t *testing.T) {
	list := []models.Applicant{NewApplicant()}

	ops := []func([]models.Applicant) []models.Applicant{
		AddApplicant,
		AddApplicant,
		func(l []models.Applicant) []models.Applicant { return SetApplicantCount(l, 5) },
		AddApplicant,
		func(l []models.Applicant) []models.Applicant { return RemoveApplicant(l, l[0].ID) },
		func(l []models.Applicant) []models.Applicant { return SetApplicantCount(l, 1) },
		func(l []models.Applicant) []models.Applicant { return RemoveApplicant(l, l[0].ID) },
		func(l []models.Applicant) []models.Applicant { return SetApplicantCount(l, 3) },
	}

	for i, op := range ops {
		list = op(list)
		assert.GreaterOrEqual(t, len(list), MinApplicants, "after op %d", i)
		assert.LessOrEqual(t, len(list), MaxApplicants, "after op %d", i)
	}
}

func TestUpdateApplicantField_ImmutableReplace(t *testing.T) {
	first := NewApplicant()
	second := NewApplicant()
	original := []models.Applicant{first, second}

	updated, err := UpdateApplicantField(original, second.ID, "first_name", "Sam")

	require.NoError(t, err)
	assert.Equal(t, "Sam", updated[1].FirstName)
	assert.Empty(t, original[1].FirstName, "input list must not be mutated")
	assert.Equal(t, first, updated[0])
}

func TestUpdateApplicantField_BoolFields(t *testing.T) {
	a := NewApplicant()
	list := []models.Applicant{a}

	list, err := UpdateApplicantField(list, a.ID, "requires_guarantor", "true")
	require.NoError(t, err)
	assert.True(t, list[0].RequiresGuarantor)

	list, err = UpdateApplicantField(list, a.ID, "adverse_credit", "false")
	require.NoError(t, err)
	assert.False(t, list[0].AdverseCredit)

	_, err = UpdateApplicantField(list, a.ID, "adverse_credit", "maybe")
	assert.ErrorIs(t, err, models.ErrInvalidFieldValue)
}

func TestUpdateApplicantField_UnknownApplicant(t *testing.T) {
	list := []models.Applicant{NewApplicant()}

	_, err := UpdateApplicantField(list, "no-such-id", "first_name", "Sam")

	assert.ErrorIs(t, err, models.ErrApplicantNotFound)
}

func TestUpdateApplicantField_UnknownField(t *testing.T) {
	a := NewApplicant()

	_, err := UpdateApplicantField([]models.Applicant{a}, a.ID, "shoe_size", "42")

	assert.ErrorIs(t, err, models.ErrUnknownField)
}

func TestNewApplicant_IDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		a := NewApplicant()
		assert.False(t, seen[a.ID])
		seen[a.ID] = true
	}
}
