package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	nrpkg "github.com/piresc/roadassist/internal/pkg/newrelic"
	"github.com/piresc/roadassist/internal/pkg/websocket"
	"github.com/piresc/roadassist/services/requests"
)

const (
	defaultOfferTTL = 24 * time.Hour
	expiryReason    = "no provider accepted in time"
)

// RequestUC implements the request use case interface
type RequestUC struct {
	cfg       *models.Config
	repo      requests.RequestRepo
	machine   *lifecycle.Machine
	matcher   requests.Matcher
	emitter   requests.RoomEmitter
	publisher requests.EventPublisher
	scheduler requests.ExpiryScheduler
	notifier  requests.Notifier
	photos    requests.PhotoStore
}

// NewRequestUC creates a new request use case. scheduler and notifier may be
// nil when pending expiry or push notifications are disabled.
func NewRequestUC(
	cfg *models.Config,
	repo requests.RequestRepo,
	machine *lifecycle.Machine,
	matcher requests.Matcher,
	emitter requests.RoomEmitter,
	publisher requests.EventPublisher,
	scheduler requests.ExpiryScheduler,
	notifier requests.Notifier,
	photos requests.PhotoStore,
) *RequestUC {
	return &RequestUC{
		cfg:       cfg,
		repo:      repo,
		machine:   machine,
		matcher:   matcher,
		emitter:   emitter,
		publisher: publisher,
		scheduler: scheduler,
		notifier:  notifier,
		photos:    photos,
	}
}

func pricingFrom(c models.ProviderCandidate) models.Pricing {
	p := models.Pricing{
		BaseFee:     c.BaseFeeTotal,
		DistanceFee: c.DistanceFee,
		DistanceKm:  c.DistanceKm,
	}
	p.Recompute()
	return p
}

func searchQuery(req *models.ServiceRequest) models.SearchQuery {
	return models.SearchQuery{Origin: req.Origin, Category: req.Category, Services: req.Services}
}

// CreateRequest stores a pending request priced from the best matching
// provider and offers it to the target provider or to every candidate
func (uc *RequestUC) CreateRequest(ctx context.Context, customerID uuid.UUID, input models.CreateRequestInput) (*models.CreateRequestResult, error) {
	return nrpkg.TraceUseCaseWithReturn(ctx, "RequestUC.CreateRequest", func(ctx context.Context) (*models.CreateRequestResult, error) {
		if err := uc.ensureNoOpenRequest(ctx, customerID); err != nil {
			return nil, err
		}

		req := &models.ServiceRequest{
			CustomerID:       customerID,
			TargetProviderID: input.ProviderID,
			Category:         input.Category,
			Services:         input.Services,
			Origin:           input.Origin,
			Address:          strings.TrimSpace(input.Address),
		}
		if input.Fuel != nil {
			fuel := *input.Fuel
			fuel.RatePerLitre = 0
			req.Fuel = &fuel
		}

		var candidates []models.ProviderCandidate
		if input.ProviderID != nil {
			quote, err := uc.matcher.Quote(ctx, *input.ProviderID, input.SearchQuery())
			if err != nil {
				return nil, err
			}
			candidates = []models.ProviderCandidate{*quote}
		} else {
			found, err := uc.matcher.Search(ctx, input.SearchQuery())
			if err != nil {
				return nil, err
			}
			candidates = found
		}

		if len(candidates) > 0 {
			best := candidates[0]
			req.Pricing = pricingFrom(best)
			if req.Fuel != nil {
				req.Fuel.RatePerLitre = best.FuelRatePerLitre
			}
		}

		id, err := uc.repo.Create(ctx, req)
		if err != nil {
			return nil, err
		}

		offered := make([]uuid.UUID, len(candidates))
		for i, c := range candidates {
			offered[i] = c.Provider.ID
		}
		offerTTL := defaultOfferTTL
		if uc.cfg.Lifecycle.PendingTimeout > 0 {
			offerTTL = uc.cfg.Lifecycle.PendingTimeout
		}
		if err := uc.repo.SaveOffers(ctx, id, offered, offerTTL); err != nil {
			logger.WarnCtx(ctx, "Failed to save request offers",
				logger.String("request_id", id.String()),
				logger.Err(err))
		}

		for i := range candidates {
			uc.offer(ctx, req, candidates[i])
		}
		uc.scheduleExpiry(ctx, req)
		uc.publish(ctx, constants.SubjectRequestCreated, req, "")

		logger.InfoCtx(ctx, "Service request created",
			logger.String("request_id", id.String()),
			logger.String("category", string(req.Category)),
			logger.Int("candidates", len(candidates)))

		return &models.CreateRequestResult{
			RequestID:  id,
			Request:    req.View(customerID),
			Candidates: candidates,
		}, nil
	})
}

func (uc *RequestUC) ensureNoOpenRequest(ctx context.Context, customerID uuid.UUID) error {
	open, err := uc.repo.FindPendingForCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if open == nil {
		if open, err = uc.repo.FindActiveForCustomer(ctx, customerID); err != nil {
			return err
		}
	}
	if open != nil {
		return apperrors.NewInvalidTransition(string(open.Status()), "create",
			"you already have an open request, cancel it before asking again")
	}
	return nil
}

func (uc *RequestUC) offer(ctx context.Context, req *models.ServiceRequest, candidate models.ProviderCandidate) {
	payload := models.NewRequestOffer{Request: req.View(uuid.Nil), Estimate: &candidate}
	if uc.emitter.Emit(websocket.UserRoom(candidate.Provider.ID), constants.EventNewRequest, payload) > 0 ||
		uc.emitter.Reachable(ctx, candidate.Provider.ID) {
		return
	}
	uc.push(ctx, candidate.Provider.ID, "New service request",
		fmt.Sprintf("%s needed nearby", strings.Join(req.Services, ", ")),
		map[string]string{"event": constants.EventNewRequest, "request_id": req.ID.String()})
}

func (uc *RequestUC) scheduleExpiry(ctx context.Context, req *models.ServiceRequest) {
	timeout := uc.cfg.Lifecycle.PendingTimeout
	if timeout <= 0 || uc.scheduler == nil {
		return
	}
	if err := uc.scheduler.ScheduleExpiry(ctx, req.ID, req.CreatedAt.Add(timeout)); err != nil {
		logger.WarnCtx(ctx, "Failed to schedule request expiry",
			logger.String("request_id", req.ID.String()),
			logger.Err(err))
	}
}

// AcceptRequest assigns providerID to a pending request
func (uc *RequestUC) AcceptRequest(ctx context.Context, requestID, providerID uuid.UUID) (*models.RequestView, error) {
	return nrpkg.TraceUseCaseWithReturn(ctx, "RequestUC.AcceptRequest", func(ctx context.Context) (*models.RequestView, error) {
		current, err := uc.repo.Get(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if err := uc.matcher.CheckEligible(ctx, providerID, current); err != nil {
			return nil, err
		}
		busy, err := uc.repo.FindActiveForProvider(ctx, providerID)
		if err != nil {
			return nil, err
		}
		if busy != nil && busy.ID != requestID {
			return nil, apperrors.NewInvalidTransition(string(current.Status()), "accept",
				"finish your current job before accepting another")
		}

		// priced before taking the request lock
		quote, err := uc.matcher.Quote(ctx, providerID, searchQuery(current))
		if err != nil {
			if current.Pricing.TotalAmount == 0 {
				return nil, err
			}
			logger.WarnCtx(ctx, "Failed to quote accepting provider, keeping creation price",
				logger.String("request_id", requestID.String()),
				logger.Err(err))
			quote = nil
		}

		tr, err := uc.machine.Fire(ctx, requestID, lifecycle.ProviderAccepts{Provider: providerID}, priceOnAccept(quote))
		if err != nil {
			return nil, err
		}
		after := tr.After

		// offered providers that lost the race stop hearing about the request
		if n := uc.emitter.EvictExcept(websocket.RequestRoom(after.ID), after.CustomerID, providerID); n > 0 {
			logger.InfoCtx(ctx, "Removed other providers from request room",
				logger.String("request_id", after.ID.String()),
				logger.Int("connections", n))
		}

		accepted := models.RequestAcceptedEvent{
			RequestID:    after.ID,
			ProviderID:   providerID,
			SecurityCode: after.SecurityCode(),
			Assigned:     after.AssignedPerson,
		}
		if quote != nil {
			accepted.ProviderName = quote.Provider.Name
		}
		if uc.emitter.Emit(websocket.UserRoom(after.CustomerID), constants.EventRequestAccepted, accepted) == 0 &&
			!uc.emitter.Reachable(ctx, after.CustomerID) {
			uc.push(ctx, after.CustomerID, "Help is on the way",
				"A provider accepted your request, open the app to see your security code",
				map[string]string{"event": constants.EventRequestAccepted, "request_id": after.ID.String()})
		}
		uc.emitStatus(after)
		uc.publish(ctx, constants.SubjectRequestAccepted, after, "")

		view := after.View(providerID)
		return &view, nil
	})
}

// priceOnAccept re-captures the price snapshot from the accepting provider
// for requests that were not sent to one provider, and locks the fuel rate
func priceOnAccept(quote *models.ProviderCandidate) lifecycle.Guard {
	return func(ctx context.Context, before, after *models.ServiceRequest) error {
		requote := quote != nil && (after.TargetProviderID == nil || after.Pricing.TotalAmount == 0)
		if requote {
			after.Pricing = pricingFrom(*quote)
		}
		if after.Category != models.CategoryFuelDelivery || after.Fuel == nil {
			return nil
		}

		rate := after.Fuel.RatePerLitre
		if quote != nil && quote.FuelRatePerLitre > 0 && (requote || rate == 0) {
			rate = quote.FuelRatePerLitre
		}
		if rate <= 0 {
			return apperrors.NewInvalidTransition(string(before.Status()), "accept",
				"the provider has no rate for this fuel")
		}
		fuel := *after.Fuel
		fuel.RatePerLitre = rate
		after.Fuel = &fuel
		return nil
	}
}

// MarkArrived records the provider on site
func (uc *RequestUC) MarkArrived(ctx context.Context, requestID, providerID uuid.UUID) (*models.RequestView, error) {
	tr, err := uc.machine.Fire(ctx, requestID, lifecycle.ProviderMarksArrived{Provider: providerID})
	if err != nil {
		return nil, err
	}
	uc.emitStatus(tr.After)
	uc.publish(ctx, constants.SubjectRequestArrived, tr.After, "")

	view := tr.After.View(providerID)
	return &view, nil
}

// VerifyOTP checks the security code the customer shows to the provider
func (uc *RequestUC) VerifyOTP(ctx context.Context, requestID uuid.UUID, by lifecycle.Actor, code string) (*models.VerifyOTPResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.NewValidationError("code", "enter the security code")
	}

	tr, err := uc.machine.Fire(ctx, requestID, lifecycle.VerifyOTP{By: by, Code: code})
	if err != nil {
		var mismatch *apperrors.OtpMismatchError
		if errors.As(err, &mismatch) {
			logger.InfoCtx(ctx, "Security code mismatch",
				logger.String("request_id", requestID.String()),
				logger.String("role", string(by.Role)))
		}
		return nil, err
	}

	uc.emitter.Emit(websocket.RequestRoom(requestID), constants.EventOTPVerified,
		models.OTPVerifiedEvent{RequestID: requestID, VerifiedBy: by.Role})
	uc.emitStatus(tr.After)

	return &models.VerifyOTPResult{
		Success: true,
		Message: "Security code verified, the provider can start the job",
	}, nil
}

// CancelRequest ends a request before completion
func (uc *RequestUC) CancelRequest(ctx context.Context, requestID uuid.UUID, by lifecycle.Actor, reason string) (*models.RequestView, error) {
	tr, err := uc.machine.Fire(ctx, requestID, lifecycle.Cancel{By: by, Reason: reason})
	if err != nil {
		return nil, err
	}
	uc.afterCancel(ctx, tr)

	view := tr.After.View(by.ID)
	return &view, nil
}

// ExpireRequest cancels a request nobody accepted. Requests that moved on
// in the meantime are left alone.
func (uc *RequestUC) ExpireRequest(ctx context.Context, requestID uuid.UUID) error {
	current, err := uc.repo.Get(ctx, requestID)
	if err != nil {
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) {
			logger.WarnCtx(ctx, "Expiry for unknown request", logger.String("request_id", requestID.String()))
			return nil
		}
		return err
	}
	if current.Status() != models.StatusPending {
		return nil
	}

	tr, err := uc.machine.Fire(ctx, requestID, lifecycle.Cancel{By: lifecycle.System, Reason: expiryReason})
	if err != nil {
		var transition *apperrors.InvalidTransitionError
		if errors.As(err, &transition) {
			return nil
		}
		return err
	}
	uc.afterCancel(ctx, tr)

	logger.InfoCtx(ctx, "Pending request expired", logger.String("request_id", requestID.String()))
	return nil
}

func (uc *RequestUC) afterCancel(ctx context.Context, tr *lifecycle.Transition) {
	after := tr.After
	s, _ := after.State.(models.StateCancelled)
	event := models.RequestCancelledEvent{RequestID: after.ID, Reason: s.Reason, CancelledBy: s.CancelledBy}

	uc.emitter.Emit(websocket.RequestRoom(after.ID), constants.EventRequestCancelled, event)
	if _, pending := tr.Before.State.(models.StatePending); pending && after.TargetProviderID != nil {
		uc.emitter.Emit(websocket.UserRoom(*after.TargetProviderID), constants.EventRequestCancelled, event)
	}
	uc.emitStatus(after)
	uc.publish(ctx, constants.SubjectRequestCancelled, after, s.Reason)

	// a checkout opened on the bill may still capture; it can no longer complete the request
	if billed, ok := tr.Before.State.(models.StateBilled); ok && billed.PaymentStatus == models.PaymentPending {
		logger.WarnCtx(ctx, "Request cancelled during checkout, a late payment needs a refund",
			logger.String("request_id", after.ID.String()),
			logger.String("customer_id", after.CustomerID.String()),
			logger.Float64("amount", after.Pricing.TotalAmount))
	}

	if err := uc.repo.ClearLiveState(ctx, after.ID); err != nil {
		logger.WarnCtx(ctx, "Failed to clear request live state",
			logger.String("request_id", after.ID.String()),
			logger.Err(err))
	}
}

func (uc *RequestUC) emitStatus(req *models.ServiceRequest) {
	uc.emitter.Emit(websocket.RequestRoom(req.ID), constants.EventStatusChanged, models.NewStatusChangedEvent(req))
}

func (uc *RequestUC) publish(ctx context.Context, subject string, req *models.ServiceRequest, reason string) {
	if uc.publisher == nil {
		return
	}
	event := models.RequestEvent{
		RequestID:  req.ID,
		CustomerID: req.CustomerID,
		ProviderID: req.ProviderID(),
		Category:   req.Category,
		Status:     req.Status(),
		Amount:     req.Pricing.TotalAmount,
		Reason:     reason,
		OccurredAt: models.Now(),
	}
	if err := uc.publisher.Publish(ctx, subject, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish request event",
			logger.String("subject", subject),
			logger.String("request_id", req.ID.String()),
			logger.Err(err))
	}
}

func (uc *RequestUC) push(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, userID, title, body, data); err != nil {
		logger.WarnCtx(ctx, "Failed to send push notification",
			logger.String("user_id", userID.String()),
			logger.Err(err))
	}
}
