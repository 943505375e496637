package services

import (
	"testing"
	"time"

	"github.com/dokoth/harambee-api/internal/database"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecurringPledge(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	group := createTestGroup(t, admin, dec("1000"))

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	rp, err := CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("50"),
		Frequency: models.FrequencyMonthly,
		StartDate: start,
	})
	require.NoError(t, err)
	assert.True(t, rp.IsActive)
	assert.True(t, start.Equal(rp.NextDueDate), "first due date is the start date")
}

func TestCreateRecurringPledgeValidation(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	group := createTestGroup(t, admin, dec("1000"))

	_, err := CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("0"),
		Frequency: models.FrequencyWeekly,
		StartDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("50"),
		Frequency: models.FrequencyDaily, // not a recurring cadence
		StartDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("50"),
		Frequency: "fortnightly",
		StartDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestCreateRecurringPledgeRequiresMembership(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	outsider := createTestUser(t, "outsider@example.com")
	group := createTestGroup(t, admin, dec("1000"))

	_, err := CreateRecurringPledge(group.ID, outsider.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("50"),
		Frequency: models.FrequencyWeekly,
		StartDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestAdvanceRecurringPledge(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	group := createTestGroup(t, admin, dec("1000"))

	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	rp, err := CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("100"),
		Frequency: models.FrequencyQuarterly,
		StartDate: start,
	})
	require.NoError(t, err)

	require.NoError(t, AdvanceRecurringPledge(rp))
	assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), rp.NextDueDate.UTC())
	assert.True(t, rp.IsActive)
}

func TestAdvanceRecurringPledgeDeactivatesPastEndDate(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	group := createTestGroup(t, admin, dec("1000"))

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	rp, err := CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("100"),
		Frequency: models.FrequencyWeekly,
		StartDate: start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	// Jan 1 + 7d = Jan 8, past the Jan 5 end date.
	require.NoError(t, AdvanceRecurringPledge(rp))
	assert.False(t, rp.IsActive)
}

func TestPauseResumeCancelRecurringPledge(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	member := createTestUser(t, "member@example.com")
	group := createTestGroup(t, admin, dec("1000"))
	addTestMember(t, group.ID, member.ID, models.RoleMember)

	rp, err := CreateRecurringPledge(group.ID, member.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("25"),
		Frequency: models.FrequencyBiweekly,
		StartDate: time.Now(),
	})
	require.NoError(t, err)

	paused, err := PauseRecurringPledge(group.ID, rp.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, paused.IsActive)

	resumed, err := ResumeRecurringPledge(group.ID, rp.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, resumed.IsActive)

	cancelled, err := CancelRecurringPledge(group.ID, rp.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, cancelled.IsActive)

	// Row survives cancellation for audit.
	var count int64
	database.DB.Model(&models.RecurringPledge{}).Where("id = ?", rp.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecurringPledgeOwnerScoped(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	member := createTestUser(t, "member@example.com")
	group := createTestGroup(t, admin, dec("1000"))
	addTestMember(t, group.ID, member.ID, models.RoleMember)

	rp, err := CreateRecurringPledge(group.ID, member.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("25"),
		Frequency: models.FrequencyWeekly,
		StartDate: time.Now(),
	})
	require.NoError(t, err)

	_, err = PauseRecurringPledge(group.ID, rp.ID, admin.ID)
	assert.ErrorIs(t, err, ErrPledgeNotFound)
}

func TestUpdateRecurringPledge(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	group := createTestGroup(t, admin, dec("1000"))

	rp, err := CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("25"),
		Frequency: models.FrequencyWeekly,
		StartDate: time.Now(),
	})
	require.NoError(t, err)

	newAmount := dec("40")
	newFreq := models.FrequencyMonthly
	updated, err := UpdateRecurringPledge(group.ID, rp.ID, admin.ID, models.UpdateRecurringPledgeRequest{
		Amount:    &newAmount,
		Frequency: &newFreq,
	})
	require.NoError(t, err)
	assert.True(t, newAmount.Equal(updated.Amount))
	assert.Equal(t, models.FrequencyMonthly, updated.Frequency)

	badFreq := "hourly"
	_, err = UpdateRecurringPledge(group.ID, rp.ID, admin.ID, models.UpdateRecurringPledgeRequest{
		Frequency: &badFreq,
	})
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestGetDueRecurringPledges(t *testing.T) {
	setupTestDB(t)
	admin := createTestUser(t, "admin@example.com")
	group := createTestGroup(t, admin, dec("1000"))

	past := time.Now().AddDate(0, 0, -3)
	future := time.Now().AddDate(0, 0, 3)

	due, err := CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("10"),
		Frequency: models.FrequencyWeekly,
		StartDate: past,
	})
	require.NoError(t, err)
	_, err = CreateRecurringPledge(group.ID, admin.ID, models.CreateRecurringPledgeRequest{
		Amount:    dec("20"),
		Frequency: models.FrequencyWeekly,
		StartDate: future,
	})
	require.NoError(t, err)

	pledges, err := GetDueRecurringPledges(time.Now())
	require.NoError(t, err)
	require.Len(t, pledges, 1)
	assert.Equal(t, due.ID, pledges[0].ID)
}
