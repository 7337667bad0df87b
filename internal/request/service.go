package request

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/auditlog"
	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/user"
)

type EventLookup interface {
	GetByID(ctx context.Context, id uint) (*event.Event, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// Service wraps participation requests and their moderation
type Service struct {
	Repo   Repository
	Events EventLookup
	Users  UserLookup
	Audit  auditlog.Service
	Log    *zap.Logger
	Clock  func() time.Time
}

func NewService(r Repository, events EventLookup, users UserLookup, audit auditlog.Service, log *zap.Logger) *Service {
	return &Service{
		Repo:   r,
		Events: events,
		Users:  users,
		Audit:  audit,
		Log:    log,
		Clock:  func() time.Time { return time.Now().UTC() },
	}
}

// ===========================
// 🎯 Create Request
func (s *Service) Create(ctx context.Context, userID, eventID uint) (*ParticipationRequestDto, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var created Request
	err := s.Repo.WithEventLock(ctx, eventID, func(tx Repository, e *event.Event) error {
		if e.InitiatorID == userID {
			return apierror.Conflict("The initiator cannot request participation in their own event")
		}
		if e.State != event.StatePublished {
			return apierror.Conflict("Cannot participate in an unpublished event")
		}

		active, err := tx.HasActive(ctx, userID, eventID)
		if err != nil {
			return err
		}
		if active {
			return apierror.Conflict("User with id=%d already has a request for event with id=%d", userID, eventID)
		}

		if e.ConfirmedRequests, err = tx.CountConfirmed(ctx, eventID); err != nil {
			return err
		}
		if !e.HasFreeSlots() {
			return apierror.Conflict("The participant limit has been reached")
		}

		status := StatusPending
		if !e.RequestModeration || e.ParticipantLimit == 0 {
			status = StatusConfirmed
		}

		created = Request{
			Created:     s.Clock(),
			EventID:     eventID,
			RequesterID: userID,
			Status:      status,
		}
		return tx.Create(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("participation requested",
		zap.Uint("request_id", created.ID),
		zap.Uint("event_id", eventID),
		zap.String("status", string(created.Status)),
	)
	dto := ToDto(created)
	return &dto, nil
}

// ===========================
// 🛡️ Bulk moderation by the initiator
func (s *Service) UpdateStatuses(ctx context.Context, userID, eventID uint, req EventRequestStatusUpdateRequest) (*EventRequestStatusUpdateResult, error) {
	if req.Status != StatusConfirmed && req.Status != StatusRejected {
		return nil, apierror.Validation("Status must be CONFIRMED or REJECTED, got %q", req.Status)
	}
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ids := dedupe(req.RequestIds)
	result := &EventRequestStatusUpdateResult{
		ConfirmedRequests: []ParticipationRequestDto{},
		RejectedRequests:  []ParticipationRequestDto{},
	}

	err := s.Repo.WithEventLock(ctx, eventID, func(tx Repository, e *event.Event) error {
		if e.InitiatorID != userID {
			return apierror.Conflict("User with id=%d is not the initiator of event with id=%d", userID, eventID)
		}

		reqs, err := tx.ListByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]Request, len(reqs))
		for _, r := range reqs {
			if r.EventID == eventID {
				byID[r.ID] = r
			}
		}
		batch := make([]Request, 0, len(ids))
		for _, id := range ids {
			r, ok := byID[id]
			if !ok {
				return apierror.NotFound("Request with id=%d was not found for event with id=%d", id, eventID)
			}
			batch = append(batch, r)
		}

		for _, r := range batch {
			if r.Status == StatusConfirmed && req.Status == StatusRejected {
				return apierror.Conflict("Request with id=%d is already confirmed and cannot be rejected", r.ID)
			}
			if r.Status != StatusPending {
				return apierror.Conflict("Request with id=%d must have status PENDING, got %s", r.ID, r.Status)
			}
		}

		var confirmed, rejected []Request
		if req.Status == StatusRejected {
			for _, r := range batch {
				r.Status = StatusRejected
				rejected = append(rejected, r)
			}
		} else {
			count, err := tx.CountConfirmed(ctx, eventID)
			if err != nil {
				return err
			}
			limit := int64(e.ParticipantLimit)
			if limit > 0 && count >= limit {
				return apierror.Conflict("The participant limit has been reached")
			}
			for _, r := range batch {
				if limit == 0 || count < limit {
					r.Status = StatusConfirmed
					confirmed = append(confirmed, r)
					count++
				} else {
					r.Status = StatusRejected
					rejected = append(rejected, r)
				}
			}
		}

		if err := tx.SaveAll(ctx, confirmed); err != nil {
			return err
		}
		if err := tx.SaveAll(ctx, rejected); err != nil {
			return err
		}
		result.ConfirmedRequests = append(result.ConfirmedRequests, toDtos(confirmed)...)
		result.RejectedRequests = append(result.RejectedRequests, toDtos(rejected)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Audit.LogAction(ctx, &userID, &eventID, auditlog.ActionRequestsModerated, map[string]interface{}{
		"status":    req.Status,
		"confirmed": len(result.ConfirmedRequests),
		"rejected":  len(result.RejectedRequests),
	}, auditlog.StatusSuccess)
	return result, nil
}

// ===========================
// ❌ Cancel own request
func (s *Service) Cancel(ctx context.Context, userID, requestID uint) (*ParticipationRequestDto, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.Repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.RequesterID != userID {
		return nil, apierror.Conflict("User with id=%d is not the requester of request with id=%d", userID, requestID)
	}
	// a rejected request stays on record so the requester cannot re-apply
	if r.Status == StatusRejected {
		return nil, apierror.Conflict("Request with id=%d was rejected and cannot be canceled", requestID)
	}

	r.Status = StatusCanceled
	if err := s.Repo.Save(ctx, r); err != nil {
		return nil, err
	}
	dto := ToDto(*r)
	return &dto, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uint) ([]ParticipationRequestDto, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.Repo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDtos(reqs), nil
}

// ListByEvent returns requests for an event the caller initiated.
func (s *Service) ListByEvent(ctx context.Context, userID, eventID uint) ([]ParticipationRequestDto, error) {
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.InitiatorID != userID {
		return nil, apierror.NotFound("Event with id=%d was not found", eventID)
	}
	reqs, err := s.Repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toDtos(reqs), nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
