package comment

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/auditlog"
	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/user"
	"github.com/sharath018/ewm-backend/utils"
)

type EventLookup interface {
	GetByID(ctx context.Context, id uint) (*event.Event, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// Service wraps event comments
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
// 🎯 Create Comment
func (s *Service) Create(ctx context.Context, userID, eventID uint, req CommentRequest) (*CommentDto, error) {
	text, err := checkText(req.Text)
	if err != nil {
		return nil, err
	}

	author, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.State != event.StatePublished {
		return nil, apierror.Conflict("Comments are only allowed on published events")
	}

	c := &Comment{
		Text:     text,
		AuthorID: author.ID,
		Author:   *author,
		EventID:  e.ID,
		Created:  s.Clock(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := ToDto(*c)
	return &dto, nil
}

// ===========================
// 🛠 Update Comment
// Only the author may edit, and only within the edit window.
func (s *Service) Update(ctx context.Context, userID, commentID uint, req CommentRequest) (*CommentDto, error) {
	text, err := checkText(req.Text)
	if err != nil {
		return nil, err
	}

	c, err := s.Repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != userID {
		return nil, apierror.Conflict("User with id=%d is not the author of comment with id=%d", userID, commentID)
	}

	now := s.Clock()
	if now.After(c.Created.Add(editWindow)) {
		return nil, apierror.Conflict("Comments can only be edited within %s of creation", editWindow)
	}

	c.Text = text
	c.LastUpdatedOn = &now
	if err := s.Repo.UpdateText(ctx, c); err != nil {
		return nil, err
	}
	dto := ToDto(*c)
	return &dto, nil
}

func (s *Service) DeleteByUser(ctx context.Context, userID, commentID uint) error {
	c, err := s.Repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != userID {
		return apierror.Conflict("User with id=%d is not the author of comment with id=%d", userID, commentID)
	}
	return s.Repo.Delete(ctx, commentID)
}

func (s *Service) DeleteByAdmin(ctx context.Context, commentID uint) error {
	c, err := s.Repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.Audit.LogAction(ctx, nil, &c.EventID, auditlog.ActionCommentAdminDelete, map[string]interface{}{
		"commentId": commentID,
		"authorId":  c.AuthorID,
	}, auditlog.StatusSuccess)
	return nil
}

// ===========================
// 📄 Reads
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]CommentDto, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	comments, err := s.Repo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDtos(comments), nil
}

func (s *Service) GetUserComment(ctx context.Context, userID, commentID uint) (*CommentDto, error) {
	c, err := s.Repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != userID {
		return nil, apierror.NotFound("Comment with id=%d was not found", commentID)
	}
	dto := ToDto(*c)
	return &dto, nil
}

func (s *Service) ListByEvent(ctx context.Context, eventID uint, page utils.Page) ([]CommentDto, error) {
	if _, err := s.Events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	comments, err := s.Repo.ListByEvent(ctx, eventID, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}
	return toDtos(comments), nil
}

// Search returns an empty page for a blank query.
func (s *Service) Search(ctx context.Context, text string, page utils.Page) ([]CommentDto, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []CommentDto{}, nil
	}
	comments, err := s.Repo.Search(ctx, text, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}
	return toDtos(comments), nil
}

func checkText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apierror.Validation("Comment text must not be blank")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", apierror.Validation("Comment text must not exceed %d characters", MaxTextLength)
	}
	return text, nil
}
