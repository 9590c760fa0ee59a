package services

import (
	"context"
	"errors"

	"github.com/baharkarakas/ong-backend/internal/apperr"
	"github.com/baharkarakas/ong-backend/internal/metrics"
	"github.com/baharkarakas/ong-backend/internal/models"
	repo "github.com/baharkarakas/ong-backend/internal/repository"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

type UserService struct {
	users     repo.Users
	resources repo.Resources
	hasher    PasswordHasher
	tokens    TokenIssuer
}

func NewUserService(users repo.Users, resources repo.Resources, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, resources: resources, hasher: hasher, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (models.UserView, error) {
	// advisory; the store's unique constraints settle races below
	existing, err := s.users.FindByEmailOrUsername(ctx, email, username)
	switch {
	case err == nil && existing.Email == email:
		return s.registerFailed("email_taken", apperr.ErrEmailTaken)
	case err == nil && existing.Username == username:
		return s.registerFailed("username_taken", apperr.ErrUsernameTaken)
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return s.registerFailed("error", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return s.registerFailed("error", err)
	}

	u, err := s.users.Create(ctx, models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		var dup *repo.DuplicateError
		if errors.As(err, &dup) {
			if dup.Field == "username" {
				return s.registerFailed("username_taken", apperr.ErrUsernameTaken)
			}
			return s.registerFailed("email_taken", apperr.ErrEmailTaken)
		}
		return s.registerFailed("error", err)
	}

	tok, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return s.registerFailed("error", err)
	}
	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return u.ViewWithToken(tok), nil
}

func (s *UserService) registerFailed(result string, err error) (models.UserView, error) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
	return models.UserView{}, err
}

func (s *UserService) Login(ctx context.Context, email, password string) (models.UserView, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return s.loginFailed("unknown_email", apperr.ErrUnknownEmail)
	}
	if err != nil {
		return s.loginFailed("error", err)
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return s.loginFailed("error", err)
	}
	if !ok {
		return s.loginFailed("bad_password", apperr.ErrBadPassword)
	}

	tok, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return s.loginFailed("error", err)
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return u.ViewWithToken(tok), nil
}

func (s *UserService) loginFailed(result string, err error) (models.UserView, error) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
	return models.UserView{}, err
}

// List returns every user with the ids of the ONGs it owns.
func (s *UserService) List(ctx context.Context) ([]models.UserListItem, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	owned, err := s.resources.OwnedIDs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserListItem, 0, len(users))
	for _, u := range users {
		ongs := owned[u.ID]
		if ongs == nil {
			ongs = []string{}
		}
		out = append(out, models.UserListItem{UserView: u.View(), Ongs: ongs})
	}
	return out, nil
}
