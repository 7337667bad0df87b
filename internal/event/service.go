package event

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/auditlog"
	"github.com/sharath018/ewm-backend/internal/category"
	"github.com/sharath018/ewm-backend/internal/user"
	"github.com/sharath018/ewm-backend/utils"
)

type CategoryLookup interface {
	GetByID(ctx context.Context, id uint) (*category.Category, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// Stats is the main-service side of the stats boundary. Implementations
// log their own failures; a stats outage never fails an event request.
type Stats interface {
	RecordHit(ctx context.Context, uri, ip string)
	Views(ctx context.Context, eventIDs []uint) map[uint]int64
}

// Service wraps the event lifecycle
type Service struct {
	Repo       Repository
	Categories CategoryLookup
	Users      UserLookup
	Stats      Stats
	Audit      auditlog.Service
	Log        *zap.Logger
	Clock      func() time.Time
}

func NewService(r Repository, categories CategoryLookup, users UserLookup, stats Stats, audit auditlog.Service, log *zap.Logger) *Service {
	return &Service{
		Repo:       r,
		Categories: categories,
		Users:      users,
		Stats:      stats,
		Audit:      audit,
		Log:        log,
		Clock:      func() time.Time { return time.Now().UTC() },
	}
}

func EventURI(id uint) string {
	return fmt.Sprintf("/events/%d", id)
}

// ===========================
// 🎯 Submit Event
func (s *Service) Create(ctx context.Context, userID uint, req NewEventRequest) (*EventFullDto, error) {
	initiator, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cat, err := s.Categories.GetByID(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	now := s.Clock()
	if err := checkLeadTime(req.EventDate.Time, now, userLeadTime); err != nil {
		return nil, err
	}

	e := &Event{
		Title:             strings.TrimSpace(req.Title),
		Annotation:        req.Annotation,
		Description:       req.Description,
		CategoryID:        cat.ID,
		Category:          *cat,
		InitiatorID:       initiator.ID,
		Initiator:         *initiator,
		Location:          *req.Location,
		Paid:              boolOr(req.Paid, false),
		ParticipantLimit:  intOr(req.ParticipantLimit, 0),
		RequestModeration: boolOr(req.RequestModeration, true),
		State:             StatePending,
		CreatedOn:         now,
		EventDate:         req.EventDate.Time.UTC(),
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.Log.Info("event submitted", zap.Uint("event_id", e.ID), zap.Uint("user_id", userID))
	dto := ToFullDto(*e)
	return &dto, nil
}

// ===========================
// 👤 Initiator views
func (s *Service) ListByUser(ctx context.Context, userID uint, page utils.Page) ([]EventShortDto, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	events, err := s.Repo.ListByInitiator(ctx, userID, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}
	return s.ShortDtos(ctx, events)
}

func (s *Service) GetByUser(ctx context.Context, userID, eventID uint) (*EventFullDto, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.InitiatorID != userID {
		return nil, apierror.NotFound("Event with id=%d was not found", eventID)
	}
	return s.fullDto(ctx, e)
}

// ===========================
// ✏️ Initiator edit
func (s *Service) UpdateByUser(ctx context.Context, userID, eventID uint, req UpdateEventUserRequest) (*EventFullDto, error) {
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.InitiatorID != userID {
		return nil, apierror.Conflict("User with id=%d is not the initiator of event with id=%d", userID, eventID)
	}
	if e.State != StatePending && e.State != StateCanceled {
		return nil, apierror.Conflict("Only pending or canceled events can be changed")
	}

	now := s.Clock()
	if err := s.applyFields(ctx, e, req.UpdateEventFields, now, userLeadTime); err != nil {
		return nil, err
	}

	expected := e.State
	action := ""
	if req.StateAction != nil {
		switch *req.StateAction {
		case ActionSendToReview:
			e.State = StatePending
			if expected == StateCanceled {
				action = auditlog.ActionEventResubmitted
			}
		case ActionCancelReview:
			if expected != StatePending {
				return nil, apierror.Conflict("Only pending events can be canceled, event state is %s", expected)
			}
			e.State = StateCanceled
			action = auditlog.ActionEventCanceled
		default:
			return nil, apierror.Validation("Unknown state action %q", *req.StateAction)
		}
	}

	if err := s.Repo.UpdateIfState(ctx, e, expected); err != nil {
		return nil, err
	}

	if action != "" {
		s.Audit.LogAction(ctx, &userID, &e.ID, action,
			map[string]interface{}{"from": expected, "to": e.State}, auditlog.StatusSuccess)
	}
	return s.fullDto(ctx, e)
}

func (s *Service) CancelByUser(ctx context.Context, eventID, userID uint) (*EventFullDto, error) {
	action := ActionCancelReview
	return s.UpdateByUser(ctx, userID, eventID, UpdateEventUserRequest{StateAction: &action})
}

// SendToReview moves a canceled event back to PENDING.
func (s *Service) SendToReview(ctx context.Context, eventID, userID uint) (*EventFullDto, error) {
	action := ActionSendToReview
	return s.UpdateByUser(ctx, userID, eventID, UpdateEventUserRequest{StateAction: &action})
}

// ===========================
// 🛡️ Admin edit
func (s *Service) UpdateByAdmin(ctx context.Context, eventID uint, req UpdateEventAdminRequest) (*EventFullDto, error) {
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := s.Clock()
	if err := s.applyFields(ctx, e, req.UpdateEventFields, now, adminLeadTime); err != nil {
		return nil, err
	}

	expected := e.State
	action := ""
	if req.StateAction != nil {
		switch *req.StateAction {
		case ActionPublish:
			if expected != StatePending {
				return nil, apierror.Conflict("Cannot publish the event because it's not in the right state: %s", expected)
			}
			if e.EventDate.Before(now.Add(adminLeadTime)) {
				return nil, apierror.Conflict("Cannot publish the event because it starts in less than %s", adminLeadTime)
			}
			e.State = StatePublished
			e.PublishedOn = &now
			action = auditlog.ActionEventPublished
		case ActionReject:
			if expected != StatePending {
				return nil, apierror.Conflict("Cannot reject the event because it's not in the right state: %s", expected)
			}
			e.State = StateCanceled
			action = auditlog.ActionEventRejected
		default:
			return nil, apierror.Validation("Unknown state action %q", *req.StateAction)
		}
	}

	if err := s.Repo.UpdateIfState(ctx, e, expected); err != nil {
		return nil, err
	}

	if action != "" {
		s.Audit.LogAction(ctx, nil, &e.ID, action,
			map[string]interface{}{"from": expected, "to": e.State}, auditlog.StatusSuccess)
		s.Log.Info("event moderated", zap.Uint("event_id", e.ID), zap.String("action", action))
	}
	return s.fullDto(ctx, e)
}

func (s *Service) Publish(ctx context.Context, eventID uint) (*EventFullDto, error) {
	action := ActionPublish
	return s.UpdateByAdmin(ctx, eventID, UpdateEventAdminRequest{StateAction: &action})
}

func (s *Service) Reject(ctx context.Context, eventID uint) (*EventFullDto, error) {
	action := ActionReject
	return s.UpdateByAdmin(ctx, eventID, UpdateEventAdminRequest{StateAction: &action})
}

func (s *Service) SearchAdmin(ctx context.Context, f AdminFilter) ([]EventFullDto, error) {
	if err := checkRange(f.RangeStart, f.RangeEnd); err != nil {
		return nil, err
	}
	for _, st := range f.States {
		if !st.Valid() {
			return nil, apierror.Validation("Unknown event state %q", st)
		}
	}

	events, err := s.Repo.SearchAdmin(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, events); err != nil {
		return nil, err
	}

	out := make([]EventFullDto, 0, len(events))
	for _, e := range events {
		out = append(out, ToFullDto(e))
	}
	return out, nil
}

// ===========================
// 🌐 Public views
func (s *Service) SearchPublic(ctx context.Context, f PublicFilter, ip string) ([]EventShortDto, error) {
	if f.Sort != "" && f.Sort != SortEventDate && f.Sort != SortViews {
		return nil, apierror.Validation("Unknown sort %q", f.Sort)
	}
	if err := checkRange(f.RangeStart, f.RangeEnd); err != nil {
		return nil, err
	}
	if f.RangeStart == nil && f.RangeEnd == nil {
		now := s.Clock()
		f.RangeStart = &now
	}

	events, err := s.Repo.SearchPublic(ctx, f)
	if err != nil {
		return nil, err
	}

	s.recordHit(ctx, "/events", ip)

	out, err := s.ShortDtos(ctx, events)
	if err != nil {
		return nil, err
	}
	if f.Sort == SortViews {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	}
	return out, nil
}

func (s *Service) GetPublished(ctx context.Context, eventID uint, ip string) (*EventFullDto, error) {
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.State != StatePublished {
		return nil, apierror.NotFound("Event with id=%d was not found", eventID)
	}

	s.recordHit(ctx, EventURI(eventID), ip)
	return s.fullDto(ctx, e)
}

// GetByID is used by the request and comment services.
func (s *Service) GetByID(ctx context.Context, id uint) (*Event, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListByIDs resolves every id or fails with NotFound naming the first missing one.
func (s *Service) ListByIDs(ctx context.Context, ids []uint) ([]Event, error) {
	events, err := s.Repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(events))
	for _, e := range events {
		found[e.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apierror.NotFound("Event with id=%d was not found", id)
		}
	}
	return events, nil
}

// ShortDtos fills confirmed counts and views for a batch of events.
func (s *Service) ShortDtos(ctx context.Context, events []Event) ([]EventShortDto, error) {
	if err := s.enrich(ctx, events); err != nil {
		return nil, err
	}
	out := make([]EventShortDto, 0, len(events))
	for _, e := range events {
		out = append(out, ToShortDto(e))
	}
	return out, nil
}

// ===========================
// 🔧 Helpers
func (s *Service) applyFields(ctx context.Context, e *Event, f UpdateEventFields, now time.Time, lead time.Duration) error {
	if f.EventDate != nil && !f.EventDate.Time.Equal(e.EventDate) {
		if err := checkLeadTime(f.EventDate.Time, now, lead); err != nil {
			return err
		}
		e.EventDate = f.EventDate.Time.UTC()
	}
	if f.Category != nil && *f.Category != e.CategoryID {
		cat, err := s.Categories.GetByID(ctx, *f.Category)
		if err != nil {
			return err
		}
		e.CategoryID = cat.ID
		e.Category = *cat
	}
	if f.Title != nil {
		e.Title = strings.TrimSpace(*f.Title)
	}
	if f.Annotation != nil {
		e.Annotation = *f.Annotation
	}
	if f.Description != nil {
		e.Description = *f.Description
	}
	if f.Location != nil {
		e.Location = *f.Location
	}
	if f.Paid != nil {
		e.Paid = *f.Paid
	}
	if f.ParticipantLimit != nil {
		e.ParticipantLimit = *f.ParticipantLimit
	}
	if f.RequestModeration != nil {
		e.RequestModeration = *f.RequestModeration
	}
	return nil
}

func (s *Service) fullDto(ctx context.Context, e *Event) (*EventFullDto, error) {
	batch := []Event{*e}
	if err := s.enrich(ctx, batch); err != nil {
		return nil, err
	}
	dto := ToFullDto(batch[0])
	return &dto, nil
}

func (s *Service) enrich(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	confirmed, err := s.Repo.CountConfirmed(ctx, ids)
	if err != nil {
		return err
	}

	var views map[uint]int64
	if s.Stats != nil {
		views = s.Stats.Views(ctx, ids)
	}

	for i := range events {
		events[i].ConfirmedRequests = confirmed[events[i].ID]
		events[i].Views = views[events[i].ID]
	}
	return nil
}

func (s *Service) recordHit(ctx context.Context, uri, ip string) {
	if s.Stats != nil {
		s.Stats.RecordHit(ctx, uri, ip)
	}
}

func checkLeadTime(date, now time.Time, lead time.Duration) error {
	if date.Before(now.Add(lead)) {
		return apierror.Validation("Event date must be at least %s after the current moment, got %s",
			lead, date.UTC().Format(utils.DateTimeLayout))
	}
	return nil
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return apierror.Validation("rangeStart must not be after rangeEnd")
	}
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
