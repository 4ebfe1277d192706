package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory doubles for the repository and storage interfaces so the
// service rules can be exercised without a database.

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Upload.MaxSize = 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"application/pdf"}
	return cfg
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// tick returns strictly increasing timestamps so newest-first ordering
// is deterministic.
func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	clk   *clock
}

func newFakeUserRepo(clk *clock) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), clk: clk}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repositories.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return repositories.ErrEmailAlreadyUsed
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = r.clk.tick()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
	apps *fakeApplicationRepo
	clk  *clock
}

func newFakeJobRepo(clk *clock) *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job), clk: clk}
}

func (r *fakeJobRepo) Create(ctx context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.CreatedAt = r.clk.tick()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) FindByID(ctx context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, repositories.ErrJobNotFound
}

func (r *fakeJobRepo) FindByIDForCompany(ctx context.Context, id, companyID string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok && j.CompanyID == companyID {
		cp := *j
		return &cp, nil
	}
	return nil, repositories.ErrJobNotFound
}

func (r *fakeJobRepo) Update(ctx context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.jobs, id)
	r.mu.Unlock()
	// Mirror of the transactional cascade in the real repository.
	if r.apps != nil {
		r.apps.deleteByJob(id)
	}
	return nil
}

func (r *fakeJobRepo) matching(filter repositories.JobFilter, matchCompanyName bool) []models.Job {
	var out []models.Job
	for _, j := range r.jobs {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			hay := strings.ToLower(j.Title) + "\x00" + strings.ToLower(j.Description)
			if matchCompanyName && j.Company != nil {
				hay += "\x00" + strings.ToLower(j.Company.Username)
			}
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		if filter.Location != "" &&
			!strings.Contains(strings.ToLower(j.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.JobType != "" && j.JobType != filter.JobType {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out
}

func (r *fakeJobRepo) Search(ctx context.Context, filter repositories.JobFilter) ([]models.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(filter, true)
	total := int64(len(all))

	if filter.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (r *fakeJobRepo) FindLatest(ctx context.Context, filter repositories.JobFilter, limit int) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(filter, false)
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeJobRepo) FindByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

func (r *fakeJobRepo) FindRelated(ctx context.Context, job *models.Job, limit int) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, j := range r.jobs {
		if j.ID == job.ID {
			continue
		}
		if j.CompanyID == job.CompanyID || j.JobType == job.JobType {
			out = append(out, *j)
		}
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeJobRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}

func (r *fakeJobRepo) CountDistinctCompanies(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	for _, j := range r.jobs {
		seen[j.CompanyID] = true
	}
	return int64(len(seen)), nil
}

func (r *fakeJobRepo) CountByType(ctx context.Context) ([]repositories.JobTypeCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byType := make(map[models.JobType]int64)
	for _, j := range r.jobs {
		byType[j.JobType]++
	}
	var out []repositories.JobTypeCount
	for t, n := range byType {
		out = append(out, repositories.JobTypeCount{JobType: t, Count: n})
	}
	return out, nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*models.Application
	jobs *fakeJobRepo
	clk  *clock
}

func newFakeApplicationRepo(clk *clock) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*models.Application), clk: clk}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.ApplicantID == app.ApplicantID {
			return repositories.ErrApplicationAlreadyExists
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = r.clk.tick()
	cp := *app
	cp.Job = nil
	cp.Applicant = nil
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) FindByID(ctx context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	cp := *a
	if r.jobs != nil {
		if j, err := r.jobs.FindByID(ctx, a.JobID); err == nil {
			cp.Job = j
		}
	}
	return &cp, nil
}

func (r *fakeApplicationRepo) FindByIDForApplicant(ctx context.Context, id, applicantID string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[id]; ok && a.ApplicantID == applicantID {
		cp := *a
		return &cp, nil
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) FindByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.ApplicantID == applicantID {
			cp := *a
			if r.jobs != nil {
				if j, err := r.jobs.FindByID(ctx, a.JobID); err == nil {
					cp.Job = j
				}
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

func (r *fakeApplicationRepo) FindByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) CountForCompany(ctx context.Context, companyID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countForCompanyLocked(companyID, ""), nil
}

func (r *fakeApplicationRepo) CountPendingForCompany(ctx context.Context, companyID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countForCompanyLocked(companyID, models.ApplicationStatusPending), nil
}

func (r *fakeApplicationRepo) countForCompanyLocked(companyID string, status models.ApplicationStatus) int64 {
	if r.jobs == nil {
		return 0
	}
	var count int64
	for _, a := range r.apps {
		j, ok := r.jobs.jobs[a.JobID]
		if !ok || j.CompanyID != companyID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		count++
	}
	return count
}

func (r *fakeApplicationRepo) deleteByJob(jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.apps {
		if a.JobID == jobID {
			delete(r.apps, id)
		}
	}
}

func (r *fakeApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok, nil
}

func (s *fakeStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/files/" + path, nil
}

func (s *fakeStorage) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "/files/" + path, nil
}

// fixture wires one of everything over shared fakes.
type fixture struct {
	users   *fakeUserRepo
	jobs    *fakeJobRepo
	apps    *fakeApplicationRepo
	store   *fakeStorage
	auth    *AuthService
	job     *JobService
	appSvc  *ApplicationService
	dash    *DashboardService
	counter int
}

func newFixture() *fixture {
	clk := newClock()
	users := newFakeUserRepo(clk)
	jobs := newFakeJobRepo(clk)
	apps := newFakeApplicationRepo(clk)
	jobs.apps = apps
	apps.jobs = jobs
	store := newFakeStorage()

	return &fixture{
		users:  users,
		jobs:   jobs,
		apps:   apps,
		store:  store,
		auth:   NewAuthService(users),
		job:    NewJobService(jobs, apps, users),
		appSvc: NewApplicationService(apps, jobs, users, store),
		dash:   NewDashboardService(jobs, users),
	}
}

func (f *fixture) addUser(username string, role models.UserRole) *models.User {
	f.counter++
	user := &models.User{
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func (f *fixture) addJob(company *models.User, title, location string, jobType models.JobType) *models.Job {
	job := &models.Job{
		Title:       title,
		Description: title + " description",
		Location:    location,
		JobType:     jobType,
		CompanyID:   company.ID,
		Company:     company,
	}
	if err := f.jobs.Create(context.Background(), job); err != nil {
		panic(err)
	}
	return job
}

func (f *fixture) addApplication(job *models.Job, applicant *models.User, status models.ApplicationStatus) *models.Application {
	app := &models.Application{
		JobID:       job.ID,
		ApplicantID: applicant.ID,
		Status:      status,
	}
	if err := f.apps.Create(context.Background(), app); err != nil {
		panic(err)
	}
	return app
}
