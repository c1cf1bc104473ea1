package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/pkg/models"
	storage "github.com/sokomart/backend/pkg/mongo"
)

type AccountService struct {
	users         UserStore
	notifications NotificationStore
	activities    ActivityStore
	tokens        *auth.TokenIssuer
	log           *logrus.Logger
}

func NewAccountService(users UserStore, notifications NotificationStore, activities ActivityStore, tokens *auth.TokenIssuer, log *logrus.Logger) *AccountService {
	return &AccountService{
		users:         users,
		notifications: notifications,
		activities:    activities,
		tokens:        tokens,
		log:           log,
	}
}

// Register creates an account. Only user and agent roles are self-selectable;
// admins are provisioned out of band. The unique indexes on email and
// user_name backstop the explicit pre-checks against races.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !models.ValidUserName(req.UserName) {
		return nil, ErrInvalidUserName
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAgent {
		return nil, &ForbiddenError{}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUserName(ctx, req.UserName); err == nil {
		return nil, ErrUserNameTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		UserName: req.UserName,
		Password: hashed,
		Role:     role,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return created, nil
}

// Login verifies credentials and issues a session token. The same error
// covers an unknown email and a wrong password.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AccountService) Get(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) ListUsers(ctx context.Context, p *auth.Principal) ([]models.User, error) {
	if !p.IsAdmin() {
		return nil, &ForbiddenError{}
	}
	return s.users.List(ctx)
}

// ListActivities returns the most recent audit records for the back office.
func (s *AccountService) ListActivities(ctx context.Context, p *auth.Principal, limit int) ([]models.Activity, error) {
	if !p.IsAdmin() {
		return nil, &ForbiddenError{}
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.activities.ListRecent(ctx, limit)
}

func (s *AccountService) Notifications(ctx context.Context, p *auth.Principal) ([]models.Notification, error) {
	return s.notifications.ListByUser(ctx, p.ID)
}

func (s *AccountService) MarkNotificationRead(ctx context.Context, p *auth.Principal, id bson.ObjectID) (*models.Notification, error) {
	notification, err := s.notifications.MarkRead(ctx, id, p.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return notification, nil
}
