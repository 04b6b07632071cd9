package listing

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	domainFavorite "hamrah-bazaar/internal/domain/favorite"
	domainListing "hamrah-bazaar/internal/domain/listing"
	domainReport "hamrah-bazaar/internal/domain/report"
	domainUser "hamrah-bazaar/internal/domain/user"
	"hamrah-bazaar/internal/reference"
	appErrors "hamrah-bazaar/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeListingRepo is an in-memory listing repository mirroring the store
// semantics: public queries return approved listings only, text filters are
// plain substring matches, and sequences come back newest-first.
type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[uuid.UUID]*domainListing.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[uuid.UUID]*domainListing.Listing)}
}

func (r *fakeListingRepo) Create(_ context.Context, l *domainListing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cp := *l
	r.listings[l.ID] = &cp
	return nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id uuid.UUID) (*domainListing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, domainListing.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeListingRepo) Update(_ context.Context, l *domainListing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[l.ID]; !ok {
		return domainListing.ErrListingNotFound
	}
	cp := *l
	r.listings[l.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return domainListing.ErrListingNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) Query(_ context.Context, filter *domainListing.Filter) ([]*domainListing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domainListing.Listing
	for _, l := range r.listings {
		if l.State != domainListing.StateApproved {
			continue
		}
		if filter.Text != "" &&
			!strings.Contains(l.Title, filter.Text) &&
			!strings.Contains(l.Description, filter.Text) {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && l.Category != filter.Category {
			continue
		}
		if filter.City != "" && l.City != filter.City {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeListingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domainListing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domainListing.Listing
	for _, l := range r.listings {
		if l.UserID == ownerID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeListingRepo) ListPending(_ context.Context) ([]*domainListing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domainListing.Listing
	for _, l := range r.listings {
		if l.State == domainListing.StatePending {
			cp := *l
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeListingRepo) SetState(_ context.Context, id uuid.UUID, state domainListing.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return domainListing.ErrListingNotFound
	}
	l.State = state
	return nil
}

func (r *fakeListingRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return domainListing.ErrListingNotFound
	}
	l.Views++
	return nil
}

func sortNewestFirst(listings []*domainListing.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo(users ...*domainUser.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*domainUser.User, error) {
	var out []*domainUser.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, bio, avatar *string) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if bio != nil {
		u.Bio = bio
	}
	if avatar != nil {
		u.Avatar = avatar
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHashed = hash
	return nil
}

type fakeFavoriteRepo struct {
	favorites map[uuid.UUID]map[uuid.UUID]time.Time
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[uuid.UUID]map[uuid.UUID]time.Time)}
}

func (r *fakeFavoriteRepo) Add(_ context.Context, userID, listingID uuid.UUID) error {
	if r.favorites[userID] == nil {
		r.favorites[userID] = make(map[uuid.UUID]time.Time)
	}
	if _, ok := r.favorites[userID][listingID]; !ok {
		r.favorites[userID][listingID] = time.Now()
	}
	return nil
}

func (r *fakeFavoriteRepo) Remove(_ context.Context, userID, listingID uuid.UUID) error {
	if m, ok := r.favorites[userID]; ok {
		delete(m, listingID)
	}
	return nil
}

func (r *fakeFavoriteRepo) Exists(_ context.Context, userID, listingID uuid.UUID) (bool, error) {
	_, ok := r.favorites[userID][listingID]
	return ok, nil
}

func (r *fakeFavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domainFavorite.Favorite, error) {
	var out []*domainFavorite.Favorite
	for listingID, at := range r.favorites[userID] {
		out = append(out, &domainFavorite.Favorite{
			UserID:    userID,
			ListingID: listingID,
			CreatedAt: at,
		})
	}
	return out, nil
}

type fakeReportRepo struct {
	reports []*domainReport.Report
}

func (r *fakeReportRepo) Create(_ context.Context, rep *domainReport.Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	rep.CreatedAt = time.Now()
	r.reports = append(r.reports, rep)
	return nil
}

func (r *fakeReportRepo) ListAll(_ context.Context) ([]*domainReport.Report, error) {
	out := make([]*domainReport.Report, len(r.reports))
	copy(out, r.reports)
	return out, nil
}

func newTestService() (*Service, *fakeListingRepo, *fakeUserRepo, *fakeFavoriteRepo, *fakeReportRepo) {
	listingRepo := newFakeListingRepo()
	owner := &domainUser.User{ID: uuid.New(), Name: "Ahmad", Phone: "+93700000001", Role: domainUser.RoleUser}
	userRepo := newFakeUserRepo(owner)
	favoriteRepo := newFakeFavoriteRepo()
	reportRepo := &fakeReportRepo{}
	svc := NewService(listingRepo, userRepo, favoriteRepo, reportRepo, reference.NewCatalog())
	return svc, listingRepo, userRepo, favoriteRepo, reportRepo
}

func firstUserID(repo *fakeUserRepo) uuid.UUID {
	for id := range repo.users {
		return id
	}
	return uuid.Nil
}

func validCreateRequest() *CreateListingRequest {
	return &CreateListingRequest{
		Title:       "Toyota Corolla 2015",
		Description: "Clean car, single owner, low mileage",
		Price:       8500,
		Currency:    "USD",
		Category:    "vehicles",
		City:        "kabul",
	}
}

func TestCreateListingStartsPending(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domainListing.StatePending), created.State)
	assert.Equal(t, ownerID, created.UserID)
	assert.Equal(t, int64(0), created.Views)
}

func TestCreateListingRejectsUnknownCategory(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	req := validCreateRequest()
	req.Category = "spaceships"

	_, err := svc.Create(context.Background(), ownerID, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainListing.ErrInvalidCategory)
}

func TestCreateListingRejectsUnknownOwner(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
}

// A freshly submitted listing must stay invisible to public search until a
// moderator approves it, and show up afterwards.
func TestPendingListingHiddenUntilApproved(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	results, err := svc.Query(context.Background(), &QueryRequest{Text: "Corolla"})
	require.NoError(t, err)
	assert.Empty(t, results)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = svc.Approve(context.Background(), created.ID)
	require.NoError(t, err)

	results, err = svc.Query(context.Background(), &QueryRequest{Text: "Corolla"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, created.ID, results[0].ID)

	pending, err = svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApproveIsIdempotent(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	first, err := svc.Approve(context.Background(), created.ID)
	require.NoError(t, err)
	second, err := svc.Approve(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domainListing.StateApproved), first.State)
	assert.Equal(t, string(domainListing.StateApproved), second.State)
}

func TestApproveMissingListing(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainListing.ErrListingNotFound)
}

func TestQueryFiltersCombineWithAnd(t *testing.T) {
	svc, repo, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	seed := []struct {
		title    string
		category string
		city     string
	}{
		{"Toyota Corolla 2015", "vehicles", "kabul"},
		{"Toyota Hilux", "vehicles", "herat"},
		{"Apartment near Toyota dealer", "realestate", "kabul"},
		{"Dell laptop", "electronics", "kabul"},
	}
	for i, s := range seed {
		l := &domainListing.Listing{
			Title:       s.title,
			Description: "seeded",
			Currency:    "AFN",
			Category:    s.category,
			City:        s.city,
			UserID:      ownerID,
			State:       domainListing.StateApproved,
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(context.Background(), l))
	}

	tests := []struct {
		name     string
		req      *QueryRequest
		expected []string
	}{
		{
			name:     "text only",
			req:      &QueryRequest{Text: "Toyota"},
			expected: []string{"Apartment near Toyota dealer", "Toyota Hilux", "Toyota Corolla 2015"},
		},
		{
			name:     "text and category",
			req:      &QueryRequest{Text: "Toyota", Category: "vehicles"},
			expected: []string{"Toyota Hilux", "Toyota Corolla 2015"},
		},
		{
			name:     "text, category and city",
			req:      &QueryRequest{Text: "Toyota", Category: "vehicles", City: "kabul"},
			expected: []string{"Toyota Corolla 2015"},
		},
		{
			name:     "all category means no constraint",
			req:      &QueryRequest{Category: "all", City: "kabul"},
			expected: []string{"Dell laptop", "Apartment near Toyota dealer", "Toyota Corolla 2015"},
		},
		{
			name:     "substring match is case sensitive",
			req:      &QueryRequest{Text: "toyota"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := svc.Query(context.Background(), tt.req)
			require.NoError(t, err)

			var titles []string
			for _, r := range results {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.expected, titles)
		})
	}
}

func TestUpdateListingOwnerOnly(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	newTitle := "Toyota Corolla 2016"
	_, err = svc.Update(context.Background(), created.ID, uuid.New(), &UpdateListingRequest{Title: &newTitle})
	assert.ErrorIs(t, err, domainListing.ErrNotOwner)

	updated, err := svc.Update(context.Background(), created.ID, ownerID, &UpdateListingRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, string(domainListing.StatePending), updated.State)
}

func TestUpdateRevalidatesEnumFields(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	badCity := "atlantis"
	_, err = svc.Update(context.Background(), created.ID, ownerID, &UpdateListingRequest{City: &badCity})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainListing.ErrInvalidCity)
}

func TestDeleteListing(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	// A stranger cannot delete
	_, err = svc.Delete(context.Background(), created.ID, uuid.New(), domainUser.RoleUser)
	assert.ErrorIs(t, err, domainListing.ErrNotOwner)

	// The owner can
	deleted, err := svc.Delete(context.Background(), created.ID, ownerID, domainUser.RoleUser)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting again reports that nothing existed
	deleted, err = svc.Delete(context.Background(), created.ID, ownerID, domainUser.RoleUser)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAdminCanDeleteAnyListing(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID, uuid.New(), domainUser.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestRejectRemovesListing(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID, ownerID, false)
	assert.ErrorIs(t, err, domainListing.ErrListingNotFound)
}

func TestGetVisibility(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	// While pending: hidden from anonymous readers and strangers
	_, err = svc.Get(context.Background(), created.ID, uuid.Nil, false)
	assert.ErrorIs(t, err, domainListing.ErrListingNotFound)
	_, err = svc.Get(context.Background(), created.ID, uuid.New(), false)
	assert.ErrorIs(t, err, domainListing.ErrListingNotFound)

	// Visible to its owner and to admins
	_, err = svc.Get(context.Background(), created.ID, ownerID, false)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), created.ID, uuid.Nil, true)
	assert.NoError(t, err)

	// Once approved: visible to everyone
	_, err = svc.Approve(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), created.ID, uuid.Nil, false)
	assert.NoError(t, err)
}

func TestGetIncrementsViews(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	first, err := svc.Get(context.Background(), created.ID, ownerID, false)
	require.NoError(t, err)
	second, err := svc.Get(context.Background(), created.ID, ownerID, false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Views)
	assert.Equal(t, int64(2), second.Views)
}

func TestFavoritesSkipUnapprovedListings(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)
	buyerID := uuid.New()

	approved, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), approved.ID)
	require.NoError(t, err)

	stillPending, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.AddFavorite(context.Background(), buyerID, approved.ID))
	require.NoError(t, svc.AddFavorite(context.Background(), buyerID, stillPending.ID))
	// Favoriting twice is a no-op
	require.NoError(t, svc.AddFavorite(context.Background(), buyerID, approved.ID))

	favorites, err := svc.ListFavorites(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, approved.ID, favorites[0].ID)
}

func TestFavoriteMissingListing(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	err := svc.AddFavorite(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainListing.ErrListingNotFound)
}

func TestReportListing(t *testing.T) {
	svc, _, userRepo, _, reportRepo := newTestService()
	ownerID := firstUserID(userRepo)
	reporterID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	err = svc.Report(context.Background(), reporterID, created.ID, &ReportRequest{Reason: "misleading photos"})
	require.NoError(t, err)

	require.Len(t, reportRepo.reports, 1)
	assert.Equal(t, created.ID, reportRepo.reports[0].ListingID)
	assert.Equal(t, reporterID, reportRepo.reports[0].ReporterID)

	reports, err := svc.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "misleading photos", reports[0].Reason)
}

func TestListOwnerIncludesPending(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	first, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), first.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), ownerID, validCreateRequest())
	require.NoError(t, err)

	mine, err := svc.ListOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestCreateValidationErrorCarriesCode(t *testing.T) {
	svc, _, userRepo, _, _ := newTestService()
	ownerID := firstUserID(userRepo)

	req := validCreateRequest()
	req.Title = ""

	_, err := svc.Create(context.Background(), ownerID, req)
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
