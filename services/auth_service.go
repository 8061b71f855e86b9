package services

import (
	"context"

	"conduit/models"
	"conduit/repositories"

	"github.com/rs/zerolog"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterUser) (*models.UserView, error)
	Login(ctx context.Context, req models.LoginUser) (*models.UserView, error)
	CurrentUser(ctx context.Context, caller, token string) (*models.UserView, error)
	UpdateUser(ctx context.Context, caller string, req models.UpdateUser) (*models.UserView, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   TokenIssuer
	log      zerolog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, tokens TokenIssuer, log zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterUser) (*models.UserView, error) {
	switch {
	case blank(req.Username):
		return nil, models.NewValidationError("username", "can't be blank")
	case blank(req.Email):
		return nil, models.NewValidationError("email", "can't be blank")
	case blank(req.Password):
		return nil, models.NewValidationError("password", "can't be blank")
	}

	if err := s.ensureUnique(ctx, req.Username, req.Email, 0); err != nil {
		return nil, err
	}

	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}

	person := &models.Person{
		Username: req.Username,
		Email:    req.Email,
		Hash:     HashPassword(req.Password, salt),
		Salt:     salt,
	}

	if err := s.userRepo.Create(ctx, person); err != nil {
		if isDuplicate(err) {
			return nil, models.NewConflictError("user", "username or email has already been taken")
		}
		return nil, err
	}

	s.log.Info().Str("username", person.Username).Msg("User registered")

	return s.userWithToken(person)
}

func (s *authService) Login(ctx context.Context, req models.LoginUser) (*models.UserView, error) {
	person, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewUnauthenticatedError("email or password is invalid")
		}
		return nil, err
	}

	if !VerifyPassword(req.Password, person.Salt, person.Hash) {
		s.log.Debug().Str("username", person.Username).Msg("Login rejected")
		return nil, models.NewUnauthenticatedError("email or password is invalid")
	}

	return s.userWithToken(person)
}

func (s *authService) CurrentUser(ctx context.Context, caller, token string) (*models.UserView, error) {
	if caller == "" {
		return nil, models.NewUnauthenticatedError("authentication required")
	}
	person, err := s.userRepo.GetByUsername(ctx, caller)
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewNotFoundError("user", caller)
		}
		return nil, err
	}

	view := userView(person, token)
	return &view, nil
}

func (s *authService) UpdateUser(ctx context.Context, caller string, req models.UpdateUser) (*models.UserView, error) {
	person, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}

	var username, email string
	if req.Username != nil && !blank(*req.Username) && *req.Username != person.Username {
		username = *req.Username
	}
	if req.Email != nil && !blank(*req.Email) && *req.Email != person.Email {
		email = *req.Email
	}
	if err := s.ensureUnique(ctx, username, email, person.ID); err != nil {
		return nil, err
	}

	if username != "" {
		person.Username = username
	}
	if email != "" {
		person.Email = email
	}
	if req.Bio != nil && *req.Bio != "" {
		person.Bio = *req.Bio
	}
	if req.Image != nil && *req.Image != "" {
		person.Image = *req.Image
	}
	if req.Password != nil && !blank(*req.Password) {
		salt, err := NewSalt()
		if err != nil {
			return nil, err
		}
		person.Salt = salt
		person.Hash = HashPassword(*req.Password, salt)
	}

	if err := s.userRepo.Update(ctx, person); err != nil {
		if isDuplicate(err) {
			return nil, models.NewConflictError("user", "username or email has already been taken")
		}
		return nil, err
	}

	// The token subject is the username, so a rename needs a new token.
	return s.userWithToken(person)
}

// ensureUnique checks the non-empty values against every person except
// excludeID.
func (s *authService) ensureUnique(ctx context.Context, username, email string, excludeID uint) error {
	if username != "" {
		taken, err := s.userRepo.UsernameExists(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return models.NewConflictError("username", "has already been taken")
		}
	}
	if email != "" {
		taken, err := s.userRepo.EmailExists(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return models.NewConflictError("email", "has already been taken")
		}
	}
	return nil
}

func (s *authService) userWithToken(person *models.Person) (*models.UserView, error) {
	token, err := s.tokens.Issue(person.Username)
	if err != nil {
		return nil, err
	}
	view := userView(person, token)
	return &view, nil
}

func userView(person *models.Person, token string) models.UserView {
	return models.UserView{
		Email:    person.Email,
		Token:    token,
		Username: person.Username,
		Bio:      person.Bio,
		Image:    person.Image,
	}
}
