package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gudlft/internal/bookings/engine"
	bookingserrors "gudlft/internal/bookings/errors"
	"gudlft/internal/bookings/events"
	"gudlft/internal/bookings/metrics"
	"gudlft/internal/bookings/repository"
	"gudlft/internal/bookings/validator"
	"gudlft/pkg/config"
	apperrors "gudlft/pkg/errors"
	"gudlft/pkg/model"

	"github.com/google/uuid"
)

// User-facing messages of the portal.
const (
	MsgUnknownEmail    = "This email is not valid, please enter a new email"
	MsgSomethingWrong  = "Something went wrong-please try again"
	MsgPastCompetition = "This is a past competition, reservation is not available"
	MsgNotEnoughPlaces = "Not enough places left. You can book at most %d places"
	MsgMoreThanTwelve  = "Not possible to book more than twelve places."
	MsgNotEnoughPoints = "Not enough points to book"
	MsgBookingComplete = "Great-booking complete!"
	MsgPlacesReserved  = "%d places reserved"
	MsgMalformedPlaces = "Places must be a positive whole number"
	MsgInvalidPurchase = "Invalid purchase request"
	MsgInvalidSummary  = "Invalid summary request"
	MsgRegistryProblem = "Failed to read bookings data"
	MsgPurchaseProblem = "Failed to complete purchase"
)

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

type BookingService interface {
	Summary(ctx context.Context, req *model.SummaryRequest) (*model.Summary, error)
	Competitions(ctx context.Context) ([]model.CompetitionView, error)
	OpenBooking(ctx context.Context, competitionName, clubName string) (*model.BookingView, error)
	Purchase(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseResult, error)
	Board(ctx context.Context) ([]model.BoardEntry, error)
	ClubBoard(ctx context.Context, clubName string) (*model.Board, error)
}

type bookingService struct {
	registry  repository.Registry
	validator *validator.BookingValidator
	publisher events.Publisher
	metrics   *metrics.BookingMetrics
	clock     Clock
	cfg       *config.Config
}

type Option func(*bookingService)

func WithClock(clock Clock) Option {
	return func(s *bookingService) {
		s.clock = clock
	}
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *bookingService) {
		s.publisher = publisher
	}
}

func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *bookingService) {
		s.metrics = m
	}
}

func NewBookingService(
	registry repository.Registry,
	validator *validator.BookingValidator,
	cfg *config.Config,
	opts ...Option,
) BookingService {
	s := &bookingService{
		registry:  registry,
		validator: validator,
		publisher: events.NoopPublisher{},
		clock:     time.Now,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) Summary(ctx context.Context, req *model.SummaryRequest) (*model.Summary, error) {
	if err := s.validator.ValidateSummary(req); err != nil {
		return nil, apperrors.InvalidInput(MsgInvalidSummary).WithDetails(validator.Details(err))
	}

	club, err := s.registry.FindClubByEmail(ctx, req.Email)
	s.metrics.Lookup("club_email", err == nil)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrClubNotFound) {
			s.cfg.Log.Info("Summary requested for unknown email")
			return nil, apperrors.NotFoundMessage(MsgUnknownEmail, err)
		}
		return nil, apperrors.Internal(MsgRegistryProblem, err)
	}

	comps, err := s.Competitions(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Summary{Club: club, Competitions: comps}, nil
}

// Competitions lists every competition in fixture order, flagged with
// whether it can still be booked today.
func (s *bookingService) Competitions(ctx context.Context) ([]model.CompetitionView, error) {
	comps, err := s.registry.ListCompetitions(ctx)
	if err != nil {
		return nil, apperrors.Internal(MsgRegistryProblem, err)
	}

	now := s.clock()
	views := make([]model.CompetitionView, len(comps))
	for i, comp := range comps {
		views[i] = model.CompetitionView{
			Competition: comp,
			Bookable:    engine.IsBookable(comp, now),
		}
	}
	return views, nil
}

func (s *bookingService) OpenBooking(ctx context.Context, competitionName, clubName string) (*model.BookingView, error) {
	club, err := s.registry.FindClubByName(ctx, clubName)
	s.metrics.Lookup("club_name", err == nil)
	if err != nil {
		return nil, s.lookupError(err)
	}

	comp, err := s.registry.FindCompetitionByName(ctx, competitionName)
	s.metrics.Lookup("competition_name", err == nil)
	if err != nil {
		return nil, s.lookupError(err)
	}

	if !engine.IsBookable(comp, s.clock()) {
		return nil, apperrors.Closed(MsgPastCompetition, bookingserrors.ErrCompetitionClosed)
	}

	return &model.BookingView{Club: club, Competition: comp}, nil
}

// Purchase validates the request, then runs the date gate and the booking
// rules inside one registry transaction.
func (s *bookingService) Purchase(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseResult, error) {
	start := time.Now()

	if err := s.validator.ValidatePurchase(req); err != nil {
		s.metrics.PurchaseFailed(metrics.OutcomeInvalid, "", time.Since(start))
		return nil, apperrors.InvalidInput(MsgInvalidPurchase).WithDetails(validator.Details(err))
	}

	places, err := engine.ParsePlaces(string(req.Places))
	if err != nil {
		s.metrics.PurchaseFailed(metrics.OutcomeInvalid, "", time.Since(start))
		return nil, apperrors.Validation(MsgMalformedPlaces, map[string]any{"places": string(req.Places)})
	}

	now := s.clock()
	var (
		receipt model.Receipt
		club    model.Club
	)
	err = s.registry.ExecuteTransaction(ctx, req.Club, req.Competition, func(c *model.Club, k *model.Competition) error {
		if !engine.IsBookable(*k, now) {
			return bookingserrors.ErrCompetitionClosed
		}

		r, err := engine.PurchasePlaces(c, k, places)
		if err != nil {
			return err
		}
		receipt = r
		club = *c
		return nil
	})
	if err != nil {
		return nil, s.purchaseFailed(ctx, req, places, now, start, err)
	}

	receipt.ID = uuid.NewString()
	receipt.BookedAt = now
	s.metrics.PurchaseCompleted(receipt.PlacesBooked, receipt.PointsSpent, time.Since(start))

	s.cfg.Log.Info("Purchase completed",
		"receipt_id", receipt.ID,
		"club", receipt.Club,
		"competition", receipt.Competition,
		"places", receipt.PlacesBooked,
		"points_remaining", receipt.PointsRemaining,
		"places_remaining", receipt.PlacesRemaining,
	)

	s.publish(ctx, model.BookingEventCompleted, model.BookingEvent{
		ReceiptID:       receipt.ID,
		Club:            receipt.Club,
		Competition:     receipt.Competition,
		Places:          receipt.PlacesBooked,
		PointsSpent:     receipt.PointsSpent,
		PointsRemaining: receipt.PointsRemaining,
		PlacesRemaining: receipt.PlacesRemaining,
		OccurredAt:      now,
	})

	return &model.PurchaseResult{
		Receipt: receipt,
		Club:    club,
		Messages: []string{
			MsgBookingComplete,
			fmt.Sprintf(MsgPlacesReserved, receipt.PlacesBooked),
		},
	}, nil
}

func (s *bookingService) purchaseFailed(ctx context.Context, req *model.PurchaseRequest, places int, now, start time.Time, err error) error {
	elapsed := time.Since(start)

	if rejection, ok := bookingserrors.AsRejection(err); ok {
		s.metrics.PurchaseFailed(metrics.OutcomeRejected, string(rejection.Reason), elapsed)
		s.cfg.Log.Info("Purchase rejected",
			"club", req.Club,
			"competition", req.Competition,
			"places", places,
			"reason", rejection.Reason,
		)
		s.publish(ctx, model.BookingEventRejected, model.BookingEvent{
			Club:            req.Club,
			Competition:     req.Competition,
			Places:          places,
			PointsRemaining: rejection.PointsAvailable,
			PlacesRemaining: rejection.RemainingPlaces,
			Reason:          string(rejection.Reason),
			OccurredAt:      now,
		})
		return rejectionError(rejection)
	}

	switch {
	case errors.Is(err, bookingserrors.ErrCompetitionClosed):
		s.metrics.PurchaseFailed(metrics.OutcomeClosed, "", elapsed)
		return apperrors.Closed(MsgPastCompetition, err)
	case errors.Is(err, bookingserrors.ErrClubNotFound), errors.Is(err, bookingserrors.ErrCompetitionNotFound):
		s.metrics.PurchaseFailed(metrics.OutcomeNotFound, "", elapsed)
		return apperrors.NotFoundMessage(MsgSomethingWrong, err)
	case errors.Is(err, bookingserrors.ErrMalformedPlaces):
		s.metrics.PurchaseFailed(metrics.OutcomeInvalid, "", elapsed)
		return apperrors.Validation(MsgMalformedPlaces, map[string]any{"places": string(req.Places)})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.metrics.PurchaseFailed(metrics.OutcomeError, "", elapsed)
		return apperrors.Timeout("Purchase was cancelled")
	default:
		s.metrics.PurchaseFailed(metrics.OutcomeError, "", elapsed)
		s.cfg.Log.Error("Purchase failed", "club", req.Club, "competition", req.Competition, "error", err)
		return apperrors.Internal(MsgPurchaseProblem, err)
	}
}

func rejectionError(rejection *bookingserrors.RejectionError) *apperrors.AppError {
	reason := string(rejection.Reason)
	switch rejection.Reason {
	case bookingserrors.ReasonInsufficientCapacity:
		appErr := apperrors.Rejected(reason, fmt.Sprintf(MsgNotEnoughPlaces, rejection.RemainingPlaces), rejection)
		appErr.Details["remaining_places"] = rejection.RemainingPlaces
		return appErr
	case bookingserrors.ReasonExceedsMaxPerBooking:
		appErr := apperrors.Rejected(reason, MsgMoreThanTwelve, rejection)
		appErr.Details["max_places"] = engine.MaxPlacesPerBooking
		return appErr
	default:
		appErr := apperrors.Rejected(reason, MsgNotEnoughPoints, rejection)
		appErr.Details["points_required"] = rejection.Requested * engine.PointsPerPlace
		appErr.Details["points_available"] = rejection.PointsAvailable
		return appErr
	}
}

func (s *bookingService) Board(ctx context.Context) ([]model.BoardEntry, error) {
	clubs, err := s.registry.ListClubs(ctx)
	if err != nil {
		return nil, apperrors.Internal(MsgRegistryProblem, err)
	}

	board := make([]model.BoardEntry, len(clubs))
	for i, club := range clubs {
		board[i] = model.BoardEntry{Name: club.Name, Points: club.Points}
	}
	return board, nil
}

func (s *bookingService) ClubBoard(ctx context.Context, clubName string) (*model.Board, error) {
	club, err := s.registry.FindClubByName(ctx, clubName)
	s.metrics.Lookup("club_name", err == nil)
	if err != nil {
		return nil, s.lookupError(err)
	}

	entries, err := s.Board(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Board{Club: club, Clubs: entries}, nil
}

func (s *bookingService) lookupError(err error) error {
	if errors.Is(err, bookingserrors.ErrClubNotFound) || errors.Is(err, bookingserrors.ErrCompetitionNotFound) {
		return apperrors.NotFoundMessage(MsgSomethingWrong, err)
	}
	return apperrors.Internal(MsgRegistryProblem, err)
}

// publish is fire and forget: the purchase is already committed.
func (s *bookingService) publish(ctx context.Context, eventType string, event model.BookingEvent) {
	if err := s.publisher.Publish(ctx, eventType, event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"club", event.Club,
			"competition", event.Competition,
			"error", err,
		)
	}
}
