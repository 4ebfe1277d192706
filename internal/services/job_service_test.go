package services

import (
	"context"
	"fmt"
	"testing"

	"jobboard_backend/internal/appErrors"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchJobs_Filters(t *testing.T) {
	config.AppConfig = testConfig()
	f := newFixture()
	ctx := context.Background()

	acme := f.addUser("acme", models.UserRoleCompany)
	globex := f.addUser("globex", models.UserRoleCompany)

	f.addJob(acme, "Backend Engineer", "Berlin", models.JobTypeFullTime)
	f.addJob(acme, "Frontend Engineer", "Hamburg", models.JobTypePartTime)
	f.addJob(globex, "Data Analyst", "Berlin", models.JobTypeRemote)

	t.Run("no filters returns everything newest first", func(t *testing.T) {
		resp, err := f.job.SearchJobs(ctx, &dto.SearchJobsRequest{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, resp.Total)
		require.Len(t, resp.Jobs, 3)
		assert.Equal(t, "Data Analyst", resp.Jobs[0].Title)
		assert.Equal(t, "Backend Engineer", resp.Jobs[2].Title)
	})

	t.Run("location filter is case-insensitive substring", func(t *testing.T) {
		resp, err := f.job.SearchJobs(ctx, &dto.SearchJobsRequest{Location: "berLIN"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, resp.Total)
	})

	t.Run("job type filter is exact", func(t *testing.T) {
		resp, err := f.job.SearchJobs(ctx, &dto.SearchJobsRequest{JobType: "REMOTE"})
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Data Analyst", resp.Jobs[0].Title)
	})

	t.Run("search also matches the company name", func(t *testing.T) {
		resp, err := f.job.SearchJobs(ctx, &dto.SearchJobsRequest{Search: "globex"})
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Data Analyst", resp.Jobs[0].Title)
	})

	t.Run("filters combine", func(t *testing.T) {
		resp, err := f.job.SearchJobs(ctx, &dto.SearchJobsRequest{Location: "Berlin", JobType: "FULL_TIME"})
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Backend Engineer", resp.Jobs[0].Title)
	})

	t.Run("no matches is an empty page, not an error", func(t *testing.T) {
		resp, err := f.job.SearchJobs(ctx, &dto.SearchJobsRequest{Location: "Atlantis"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, resp.Total)
		assert.Empty(t, resp.Jobs)
	})
}

func TestSearchJobs_Pagination(t *testing.T) {
	config.AppConfig = testConfig()
	f := newFixture()
	ctx := context.Background()

	acme := f.addUser("acme", models.UserRoleCompany)
	for i := 0; i < 23; i++ {
		f.addJob(acme, fmt.Sprintf("Job %02d", i), "Berlin", models.JobTypeFullTime)
	}

	resp, err := f.job.SearchJobs(ctx, &dto.SearchJobsRequest{Page: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Jobs, 10)
	assert.EqualValues(t, 23, resp.Total)
	assert.Equal(t, 3, resp.Pages)
	assert.Equal(t, "Job 22", resp.Jobs[0].Title)

	resp, err = f.job.SearchJobs(ctx, &dto.SearchJobsRequest{Page: 3})
	require.NoError(t, err)
	assert.Len(t, resp.Jobs, 3)
	assert.Equal(t, 3, resp.Page)

	// A page past the end clamps to the last page.
	resp, err = f.job.SearchJobs(ctx, &dto.SearchJobsRequest{Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Page)
	assert.Len(t, resp.Jobs, 3)

	// Page zero behaves like page one.
	resp, err = f.job.SearchJobs(ctx, &dto.SearchJobsRequest{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Len(t, resp.Jobs, 10)
}

func TestHomepage(t *testing.T) {
	config.AppConfig = testConfig()
	f := newFixture()
	ctx := context.Background()

	acme := f.addUser("acme", models.UserRoleCompany)
	globex := f.addUser("globex", models.UserRoleCompany)
	for i := 0; i < 5; i++ {
		f.addJob(acme, fmt.Sprintf("Acme %d", i), "Berlin", models.JobTypeFullTime)
	}
	for i := 0; i < 3; i++ {
		f.addJob(globex, fmt.Sprintf("Globex %d", i), "Hamburg", models.JobTypeRemote)
	}

	resp, err := f.job.Homepage(ctx, &dto.SearchJobsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.FeaturedJobs, 6)
	assert.EqualValues(t, 8, resp.TotalJobs)
	assert.EqualValues(t, 2, resp.TotalCompanies)
	assert.Equal(t, []string{"FULL_TIME", "PART_TIME", "REMOTE"}, resp.JobTypeChoices)

	counts := make(map[string]int64)
	for _, tc := range resp.JobTypeCounts {
		counts[tc.JobType] = tc.Count
	}
	assert.EqualValues(t, 5, counts["FULL_TIME"])
	assert.EqualValues(t, 3, counts["REMOTE"])

	// Filters narrow the featured list but not the statistics.
	resp, err = f.job.Homepage(ctx, &dto.SearchJobsRequest{Location: "Hamburg"})
	require.NoError(t, err)
	assert.Len(t, resp.FeaturedJobs, 3)
	assert.EqualValues(t, 8, resp.TotalJobs)
}

func TestGetJob(t *testing.T) {
	config.AppConfig = testConfig()
	f := newFixture()
	ctx := context.Background()

	acme := f.addUser("acme", models.UserRoleCompany)
	globex := f.addUser("globex", models.UserRoleCompany)
	seeker := f.addUser("alice", models.UserRoleSeeker)

	job := f.addJob(acme, "Backend Engineer", "Berlin", models.JobTypeFullTime)
	f.addJob(acme, "Frontend Engineer", "Berlin", models.JobTypePartTime)      // same company
	f.addJob(globex, "Platform Engineer", "Hamburg", models.JobTypeFullTime)   // same type
	unrelated := f.addJob(globex, "Designer", "Hamburg", models.JobTypeRemote) // neither

	resp, err := f.job.GetJob(ctx, job.ID, "")
	require.NoError(t, err)
	assert.Equal(t, job.ID, resp.Job.ID)
	assert.False(t, resp.HasApplied)
	require.Len(t, resp.RelatedJobs, 2)
	for _, r := range resp.RelatedJobs {
		assert.NotEqual(t, job.ID, r.ID)
		assert.NotEqual(t, unrelated.ID, r.ID)
	}

	f.addApplication(job, seeker, models.ApplicationStatusPending)
	resp, err = f.job.GetJob(ctx, job.ID, seeker.ID)
	require.NoError(t, err)
	assert.True(t, resp.HasApplied)

	_, err = f.job.GetJob(ctx, "no-such-job", "")
	require.ErrorIs(t, err, appErrors.ErrJobNotFound)
}

func TestCreateJob(t *testing.T) {
	config.AppConfig = testConfig()
	f := newFixture()
	ctx := context.Background()

	company := f.addUser("acme", models.UserRoleCompany)
	seeker := f.addUser("alice", models.UserRoleSeeker)

	req := &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Go services",
		Location:    "Berlin",
		JobType:     "FULL_TIME",
	}

	resp, err := f.job.CreateJob(ctx, company.ID, req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, company.ID, resp.Company.ID)
	assert.Equal(t, "acme", resp.Company.Username)

	_, err = f.job.CreateJob(ctx, seeker.ID, req)
	require.ErrorIs(t, err, appErrors.ErrCompanyRoleRequired)
}

func TestMyJobs(t *testing.T) {
	config.AppConfig = testConfig()
	f := newFixture()
	ctx := context.Background()

	acme := f.addUser("acme", models.UserRoleCompany)
	globex := f.addUser("globex", models.UserRoleCompany)
	alice := f.addUser("alice", models.UserRoleSeeker)
	bob := f.addUser("bob", models.UserRoleSeeker)

	mine := f.addJob(acme, "Backend Engineer", "Berlin", models.JobTypeFullTime)
	f.addJob(acme, "Frontend Engineer", "Berlin", models.JobTypePartTime)
	theirs := f.addJob(globex, "Designer", "Hamburg", models.JobTypeRemote)

	f.addApplication(mine, alice, models.ApplicationStatusPending)
	f.addApplication(mine, bob, models.ApplicationStatusAccepted)
	f.addApplication(theirs, alice, models.ApplicationStatusPending)

	resp, err := f.job.MyJobs(ctx, acme.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Jobs, 2)
	assert.EqualValues(t, 2, resp.TotalJobs)
	assert.EqualValues(t, 2, resp.TotalApplications)
	assert.EqualValues(t, 1, resp.PendingApplications)

	_, err = f.job.MyJobs(ctx, alice.ID)
	require.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestUpdateJob_ScopedToOwner(t *testing.T) {
	config.AppConfig = testConfig()
	f := newFixture()
	ctx := context.Background()

	owner := f.addUser("acme", models.UserRoleCompany)
	intruder := f.addUser("globex", models.UserRoleCompany)
	job := f.addJob(owner, "Backend Engineer", "Berlin", models.JobTypeFullTime)

	req := &dto.UpdateJobRequest{
		Title:       "Senior Backend Engineer",
		Description: "More Go services",
		Location:    "Remote",
		JobType:     "REMOTE",
	}

	resp, err := f.job.UpdateJob(ctx, job.ID, owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", resp.Title)
	assert.Equal(t, "REMOTE", resp.JobType)

	// Not the owner: indistinguishable from a missing job.
	_, err = f.job.UpdateJob(ctx, job.ID, intruder.ID, req)
	require.ErrorIs(t, err, appErrors.ErrJobNotFound)

	stored, err := f.jobs.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", stored.Title)
}

func TestDeleteJob_CascadesApplications(t *testing.T) {
	config.AppConfig = testConfig()
	f := newFixture()
	ctx := context.Background()

	owner := f.addUser("acme", models.UserRoleCompany)
	intruder := f.addUser("globex", models.UserRoleCompany)
	alice := f.addUser("alice", models.UserRoleSeeker)
	bob := f.addUser("bob", models.UserRoleSeeker)

	job := f.addJob(owner, "Backend Engineer", "Berlin", models.JobTypeFullTime)
	other := f.addJob(owner, "Frontend Engineer", "Berlin", models.JobTypePartTime)
	f.addApplication(job, alice, models.ApplicationStatusPending)
	f.addApplication(job, bob, models.ApplicationStatusReviewed)
	survivor := f.addApplication(other, alice, models.ApplicationStatusPending)

	err := f.job.DeleteJob(ctx, job.ID, intruder.ID)
	require.ErrorIs(t, err, appErrors.ErrJobNotFound)

	require.NoError(t, f.job.DeleteJob(ctx, job.ID, owner.ID))
	_, err = f.jobs.FindByID(ctx, job.ID)
	require.Error(t, err)

	// Only the deleted job's applications disappear.
	assert.Equal(t, 1, f.apps.count())
	_, err = f.apps.FindByID(ctx, survivor.ID)
	require.NoError(t, err)
}
