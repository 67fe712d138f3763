package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime-control/internal/domain"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	dbPath := filepath.Join(t.TempDir(), "wtc.db")

	repo, err := New(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateAndGetTimeRecord(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	record := &domain.TimeRecord{
		UserID:    7,
		IssueID:   42,
		ProjectID: 3,
		Hours:     7.5,
		Comments:  "refactoring",
		SpentOn:   day(2024, time.March, 18),
		IsNew:     true,
	}

	created, err := repo.CreateTimeRecord(ctx, record)
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))

	retrieved, err := repo.GetTimeRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, int64(7), retrieved.UserID)
	assert.Equal(t, int64(42), retrieved.IssueID)
	assert.Equal(t, 7.5, retrieved.Hours)
	assert.Equal(t, "refactoring", retrieved.Comments)
	assert.True(t, domain.SameDay(day(2024, time.March, 18), retrieved.SpentOn))

	// A loaded record is the unchanged baseline for an edit.
	assert.False(t, retrieved.IsNew)
	assert.Equal(t, retrieved.Hours, retrieved.PreviousHours)
	assert.True(t, domain.SameDay(retrieved.SpentOn, retrieved.PreviousSpentOn))
}

func TestGetTimeRecordNotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetTimeRecord(context.Background(), 999)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateTimeRecord(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.CreateTimeRecord(ctx, &domain.TimeRecord{
		UserID:  7,
		Hours:   4,
		SpentOn: day(2024, time.March, 18),
	})
	require.NoError(t, err)

	created.Hours = 6
	created.Comments = "extended"
	created.SpentOn = day(2024, time.March, 19)
	err = repo.UpdateTimeRecord(ctx, created)
	require.NoError(t, err)

	retrieved, err := repo.GetTimeRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, retrieved.Hours)
	assert.Equal(t, "extended", retrieved.Comments)
	assert.True(t, domain.SameDay(day(2024, time.March, 19), retrieved.SpentOn))
}

func TestUpdateTimeRecordNotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.UpdateTimeRecord(context.Background(), &domain.TimeRecord{ID: 999, Hours: 1, SpentOn: day(2024, time.March, 18)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteTimeRecord(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.CreateTimeRecord(ctx, &domain.TimeRecord{
		UserID:  7,
		Hours:   2,
		SpentOn: day(2024, time.March, 18),
	})
	require.NoError(t, err)

	err = repo.DeleteTimeRecord(ctx, created.ID)
	require.NoError(t, err)

	_, err = repo.GetTimeRecord(ctx, created.ID)
	assert.Error(t, err)

	err = repo.DeleteTimeRecord(ctx, created.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTimeRecordsForMonth(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	days := []time.Time{
		day(2024, time.February, 29),
		day(2024, time.March, 1),
		day(2024, time.March, 31),
		day(2024, time.April, 1),
	}
	for _, d := range days {
		_, err := repo.CreateTimeRecord(ctx, &domain.TimeRecord{UserID: 7, Hours: 1, SpentOn: d})
		require.NoError(t, err)
	}
	_, err := repo.CreateTimeRecord(ctx, &domain.TimeRecord{UserID: 8, Hours: 1, SpentOn: day(2024, time.March, 15)})
	require.NoError(t, err)

	records, err := repo.ListTimeRecordsForMonth(ctx, 7, day(2024, time.March, 20))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, domain.SameDay(day(2024, time.March, 1), records[0].SpentOn))
	assert.True(t, domain.SameDay(day(2024, time.March, 31), records[1].SpentOn))
}

func TestDailyHoursSum(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	sum, err := repo.DailyHoursSum(ctx, 7, day(2024, time.March, 18))
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum)

	for _, hours := range []float64{3.25, 4.5} {
		_, err := repo.CreateTimeRecord(ctx, &domain.TimeRecord{UserID: 7, Hours: hours, SpentOn: day(2024, time.March, 18)})
		require.NoError(t, err)
	}
	_, err = repo.CreateTimeRecord(ctx, &domain.TimeRecord{UserID: 7, Hours: 8, SpentOn: day(2024, time.March, 19)})
	require.NoError(t, err)

	sum, err = repo.DailyHoursSum(ctx, 7, day(2024, time.March, 18))
	require.NoError(t, err)
	assert.Equal(t, 7.75, sum)
}

func TestOfficeAssignments(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	office, err := repo.OfficeFor(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, office)

	err = repo.UpsertOfficeAssignment(ctx, 7, &domain.Office{OfficeID: 1, CorporationID: 2, TimeZoneID: "Europe/Warsaw"})
	require.NoError(t, err)

	office, err = repo.OfficeFor(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, office)
	assert.Equal(t, int64(1), office.OfficeID)
	assert.Equal(t, "Europe/Warsaw", office.TimeZoneID)

	// Reassignment replaces the previous office.
	err = repo.UpsertOfficeAssignment(ctx, 7, &domain.Office{OfficeID: 5, CorporationID: 2})
	require.NoError(t, err)

	office, err = repo.OfficeFor(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, office)
	assert.Equal(t, int64(5), office.OfficeID)
	assert.Equal(t, "", office.TimeZoneID)
}

func TestHolidays(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	holiday := day(2024, time.March, 8)

	paid, err := repo.IsPaidHoliday(ctx, 1, holiday)
	require.NoError(t, err)
	assert.False(t, paid)

	err = repo.UpsertHoliday(ctx, &domain.Holiday{OfficeID: 1, Date: holiday, DayType: domain.DayTypePaid})
	require.NoError(t, err)

	paid, err = repo.IsPaidHoliday(ctx, 1, holiday)
	require.NoError(t, err)
	assert.True(t, paid)

	// Other offices are unaffected.
	paid, err = repo.IsPaidHoliday(ctx, 2, holiday)
	require.NoError(t, err)
	assert.False(t, paid)

	// Downgrading the day type clears the paid flag.
	err = repo.UpsertHoliday(ctx, &domain.Holiday{OfficeID: 1, Date: holiday, DayType: "observed"})
	require.NoError(t, err)

	paid, err = repo.IsPaidHoliday(ctx, 1, holiday)
	require.NoError(t, err)
	assert.False(t, paid)
}

func TestSettlementStatuses(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	february := day(2024, time.February, 1)
	march := day(2024, time.March, 1)

	status, err := repo.FindStatus(ctx, 1, 2, []time.Time{february, march})
	require.NoError(t, err)
	assert.Nil(t, status)

	err = repo.SaveStatus(ctx, &domain.ApprovalPeriodStatus{OfficeID: 1, CorporationID: 2, Period: february, Closed: true})
	require.NoError(t, err)

	status, err = repo.FindStatus(ctx, 1, 2, []time.Time{february, march})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Closed)
	assert.True(t, domain.SameDay(february, status.Period))

	// Wrong office or corporation finds nothing.
	status, err = repo.FindStatus(ctx, 9, 2, []time.Time{february})
	require.NoError(t, err)
	assert.Nil(t, status)

	// Reopening overwrites the stored flag.
	err = repo.SaveStatus(ctx, &domain.ApprovalPeriodStatus{OfficeID: 1, CorporationID: 2, Period: february, Closed: false})
	require.NoError(t, err)

	status, err = repo.FindStatus(ctx, 1, 2, []time.Time{february})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.False(t, status.Closed)
}

func TestFindStatusEmptyPeriods(t *testing.T) {
	repo := setupTestDB(t)

	status, err := repo.FindStatus(context.Background(), 1, 2, nil)
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestSaveStatusNormalizesPeriod(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	// A mid-month period is stored as the first day of its month.
	err := repo.SaveStatus(ctx, &domain.ApprovalPeriodStatus{OfficeID: 1, CorporationID: 2, Period: day(2024, time.March, 17), Closed: true})
	require.NoError(t, err)

	status, err := repo.FindStatus(ctx, 1, 2, []time.Time{day(2024, time.March, 1)})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Closed)
}

func TestIssues(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	issue, err := repo.GetIssue(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, issue)

	err = repo.UpsertIssue(ctx, &domain.Issue{
		ID:        42,
		ProjectID: 3,
		Subject:   "Broken export",
		Status:    domain.IssueStatus{ID: 1, Name: "New", IsClosed: false},
	})
	require.NoError(t, err)

	issue, err = repo.GetIssue(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, issue)
	assert.Equal(t, "Broken export", issue.Subject)
	assert.Equal(t, "New", issue.Status.Name)
	assert.False(t, issue.Status.IsClosed)

	// Status transitions replace the stored snapshot.
	err = repo.UpsertIssue(ctx, &domain.Issue{
		ID:        42,
		ProjectID: 3,
		Subject:   "Broken export",
		Status:    domain.IssueStatus{ID: 5, Name: "Closed", IsClosed: true},
	})
	require.NoError(t, err)

	issue, err = repo.GetIssue(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, issue)
	assert.True(t, issue.Status.IsClosed)
}
