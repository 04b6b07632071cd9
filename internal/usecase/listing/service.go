package listing

import (
	"context"
	"errors"
	"time"

	domainFavorite "hamrah-bazaar/internal/domain/favorite"
	domainListing "hamrah-bazaar/internal/domain/listing"
	domainReport "hamrah-bazaar/internal/domain/report"
	domainUser "hamrah-bazaar/internal/domain/user"
	"hamrah-bazaar/internal/logger"
	"hamrah-bazaar/internal/reference"
	appErrors "hamrah-bazaar/pkg/errors"
	"hamrah-bazaar/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements listing use cases: the public browse/search views,
// owner CRUD, favorites, reports and the moderation operations.
type Service struct {
	listingRepo  domainListing.Repository
	userRepo     domainUser.Repository
	favoriteRepo domainFavorite.Repository
	reportRepo   domainReport.Repository
	catalog      *reference.Catalog
}

// NewService creates a new listing service
func NewService(
	listingRepo domainListing.Repository,
	userRepo domainUser.Repository,
	favoriteRepo domainFavorite.Repository,
	reportRepo domainReport.Repository,
	catalog *reference.Catalog,
) *Service {
	return &Service{
		listingRepo:  listingRepo,
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		reportRepo:   reportRepo,
		catalog:      catalog,
	}
}

// Create validates the draft and stores it in the pending state. Every new
// listing goes through moderation before it becomes publicly visible.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateListingRequest) (*ListingResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	l := &domainListing.Listing{
		Title:       utils.SanitizeText(req.Title),
		Description: utils.SanitizeText(req.Description),
		Price:       req.Price,
		Currency:    req.Currency,
		Category:    req.Category,
		City:        req.City,
		ImageURL:    req.ImageURL,
		ExtraImages: req.ExtraImages,
		UserID:      ownerID,
		State:       domainListing.StatePending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := validateDraft(s.catalog, l); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	if err := s.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	logger.Info("Listing created",
		zap.String("listing_id", l.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("category", l.Category),
		zap.String("city", l.City),
		zap.String("event", "listing_created"),
	)

	return ToListingResponse(l), nil
}

// Get returns a single listing and counts the view. Pending listings stay
// hidden from everyone but their owner and admins, surfacing as not found.
// The view increment is best effort: a failed counter update never fails
// the read.
func (s *Service) Get(ctx context.Context, listingID, requesterID uuid.UUID, isAdmin bool) (*ListingResponse, error) {
	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !l.IsVisibleTo(requesterID, isAdmin) {
		return nil, domainListing.ErrListingNotFound
	}

	if err := s.listingRepo.IncrementViews(ctx, listingID); err != nil {
		logger.Warn("Failed to increment listing views",
			zap.String("listing_id", listingID.String()),
			zap.Error(err),
		)
	} else {
		l.Views++
	}

	return ToListingResponse(l), nil
}

// Query answers the public browse and search views. Approved listings
// only, newest-first; all supplied filters combine with AND.
func (s *Service) Query(ctx context.Context, req *QueryRequest) ([]*ListingResponse, error) {
	filter := &domainListing.Filter{}
	if req != nil {
		filter.Text = req.Text
		filter.Category = req.Category
		filter.City = req.City
	}

	listings, err := s.listingRepo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToListingResponses(listings), nil
}

// ListOwner returns every listing of one owner regardless of state. This
// is the one view where a non-admin sees pending listings: their own.
func (s *Service) ListOwner(ctx context.Context, ownerID uuid.UUID) ([]*ListingResponse, error) {
	listings, err := s.listingRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return ToListingResponses(listings), nil
}

// ListPending returns the moderation queue. The route is admin-gated.
func (s *Service) ListPending(ctx context.Context) ([]*ListingResponse, error) {
	listings, err := s.listingRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	return ToListingResponses(listings), nil
}

// Update patches the owner-editable fields. Only the owner may update;
// changed enum fields are re-validated; the moderation state is untouched.
func (s *Service) Update(ctx context.Context, listingID, requesterID uuid.UUID, req *UpdateListingRequest) (*ListingResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if l.UserID != requesterID {
		logger.Warn("Listing update denied",
			zap.String("listing_id", listingID.String()),
			zap.String("requester_id", requesterID.String()),
			zap.String("event", "listing_update_forbidden"),
		)
		return nil, domainListing.ErrNotOwner
	}

	if req.Title != nil {
		l.Title = utils.SanitizeText(*req.Title)
	}
	if req.Description != nil {
		l.Description = utils.SanitizeText(*req.Description)
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Currency != nil {
		l.Currency = *req.Currency
	}
	if req.Category != nil {
		l.Category = *req.Category
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.ImageURL != nil {
		l.ImageURL = req.ImageURL
	}
	if req.ExtraImages != nil {
		l.ExtraImages = req.ExtraImages
	}

	if err := validateDraft(s.catalog, l); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", err.Error(), err)
	}

	if err := s.listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	return ToListingResponse(l), nil
}

// Delete removes the listing entirely. The owner or an admin may delete;
// the bool result reports whether a record existed.
func (s *Service) Delete(ctx context.Context, listingID, requesterID uuid.UUID, requesterRole string) (bool, error) {
	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domainListing.ErrListingNotFound) {
			return false, nil
		}
		return false, err
	}

	if l.UserID != requesterID && requesterRole != domainUser.RoleAdmin {
		return false, domainListing.ErrNotOwner
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		if errors.Is(err, domainListing.ErrListingNotFound) {
			return false, nil
		}
		return false, err
	}

	logger.Info("Listing deleted",
		zap.String("listing_id", listingID.String()),
		zap.String("requester_id", requesterID.String()),
		zap.String("event", "listing_deleted"),
	)

	return true, nil
}

// Approve transitions pending to approved. Approving an already approved
// listing is not an error: the operation is idempotent so retries and
// concurrent moderator clicks are safe.
func (s *Service) Approve(ctx context.Context, listingID uuid.UUID) (*ListingResponse, error) {
	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if l.State == domainListing.StateApproved {
		return ToListingResponse(l), nil
	}

	if err := s.listingRepo.SetState(ctx, listingID, domainListing.StateApproved); err != nil {
		return nil, err
	}
	l.State = domainListing.StateApproved

	logger.Info("Listing approved",
		zap.String("listing_id", listingID.String()),
		zap.String("event", "listing_approved"),
	)

	return ToListingResponse(l), nil
}

// Reject removes the listing. Rejection and deletion are the same terminal
// transition: no rejected tombstone is kept, the reports table is the
// moderation audit trail.
func (s *Service) Reject(ctx context.Context, listingID uuid.UUID) error {
	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	logger.Info("Listing rejected",
		zap.String("listing_id", listingID.String()),
		zap.String("event", "listing_rejected"),
	)

	return nil
}

// AddFavorite marks the listing as a favorite of the user. Repeating the
// call for the same pair is a no-op.
func (s *Service) AddFavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return err
	}

	return s.favoriteRepo.Add(ctx, userID, listingID)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.favoriteRepo.Remove(ctx, userID, listingID)
}

// ListFavorites returns the user's favorited listings. Listings that have
// been deleted or pulled back out of the approved state are skipped rather
// than surfaced as holes.
func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*ListingResponse, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ListingResponse, 0, len(favorites))
	for _, f := range favorites {
		l, err := s.listingRepo.GetByID(ctx, f.ListingID)
		if err != nil {
			if errors.Is(err, domainListing.ErrListingNotFound) {
				continue
			}
			return nil, err
		}
		if l.State != domainListing.StateApproved {
			continue
		}
		responses = append(responses, ToListingResponse(l))
	}

	return responses, nil
}

// Report files a complaint against a listing.
func (s *Service) Report(ctx context.Context, reporterID, listingID uuid.UUID, req *ReportRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return err
	}

	rep := &domainReport.Report{
		ListingID:  listingID,
		ReporterID: reporterID,
		Reason:     utils.SanitizeText(req.Reason),
	}
	if err := s.reportRepo.Create(ctx, rep); err != nil {
		return err
	}

	logger.Info("Listing reported",
		zap.String("listing_id", listingID.String()),
		zap.String("reporter_id", reporterID.String()),
		zap.String("event", "listing_reported"),
	)

	return nil
}

// ListReports returns all filed reports, newest-first. Admin-gated.
func (s *Service) ListReports(ctx context.Context) ([]*ReportResponse, error) {
	reports, err := s.reportRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*ReportResponse, len(reports))
	for i, rep := range reports {
		responses[i] = &ReportResponse{
			ID:         rep.ID,
			ListingID:  rep.ListingID,
			ReporterID: rep.ReporterID,
			Reason:     rep.Reason,
			CreatedAt:  rep.CreatedAt,
		}
	}

	return responses, nil
}
