package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ride-hailing/internal/auth"
	"ride-hailing/internal/models"
	emailSvc "ride-hailing/pkg/email"
	"ride-hailing/pkg/utils"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

const (
	// bcryptCost matches the cost the existing password hashes were created with.
	bcryptCost = 10

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// ServiceInterface defines methods for rider account logic.
type ServiceInterface interface {
	GetClientOrigin() string

	Register(ctx context.Context, req models.RegisterUserRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	HandleGoogleLogin() (string, string, error)
	HandleGoogleCallback(ctx context.Context, code string) (*models.AuthResponse, error)

	GetUserProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error)
}

type Service struct {
	userRepo          RepositoryInterface
	emailer           emailSvc.ServiceInterface
	templateManager   *emailSvc.TemplateManager
	tokens            *auth.TokenIssuer
	clientOrigin      string // frontend origin for OAuth redirects
	googleOAuthConfig *oauth2.Config
	log               echo.Logger
}

func NewService(
	userRepo RepositoryInterface,
	emailer emailSvc.ServiceInterface,
	tm *emailSvc.TemplateManager,
	tokens *auth.TokenIssuer,
	clientOrigin string,
	googleOAuthConfig *oauth2.Config,
	log echo.Logger,
) ServiceInterface {
	return &Service{
		userRepo:          userRepo,
		emailer:           emailer,
		templateManager:   tm,
		tokens:            tokens,
		clientOrigin:      clientOrigin,
		googleOAuthConfig: googleOAuthConfig,
		log:               log,
	}
}

// A struct to unmarshal the Google user info response
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) GetClientOrigin() string {
	return s.clientOrigin
}

// Register creates a rider and logs them in straight away.
func (s *Service) Register(ctx context.Context, req models.RegisterUserRequest) (*models.AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	// 1. Check if user with that email already exists
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("service.Register.FindByEmail: %w", err)
	}
	if err == nil {
		return nil, models.ErrConflict
	}

	// 2. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("service.Register.HashPassword: %w", err)
	}

	// 3. Create the user; a concurrent registration still surfaces as ErrConflict
	createdUser, err := s.userRepo.Create(ctx, &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		AuthProvider: "email",
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service.Register.CreateUser: %w", err)
	}

	s.sendWelcomeEmail(createdUser)

	return s.generateAuthResponse(createdUser)
}

func (s *Service) sendWelcomeEmail(user *models.User) {
	if s.emailer == nil || s.templateManager == nil {
		return
	}

	htmlContent, err := s.templateManager.GenerateWelcomeEmailHTML(emailSvc.WelcomeData{Name: user.Name})
	if err != nil {
		// Log the error but don't fail the registration
		s.log.Errorf("failed to generate welcome email HTML: %v", err)
		return
	}
	plainTextContent := fmt.Sprintf("Welcome, %s! Your rider account is ready.", user.Name)

	go func() {
		// Run in a goroutine so it doesn't block the registration response
		if err := s.emailer.SendEmail(context.Background(), user.Email, "Welcome aboard", plainTextContent, htmlContent); err != nil {
			s.log.Errorf("failed to send welcome email to %s: %v", user.Email, err)
		}
	}()
}

// private helper function to generate AuthResponse
func (s *Service) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, models.RoleRider)
	if err != nil {
		return nil, fmt.Errorf("service.generateAuthResponse: %w", err)
	}

	user.PasswordHash = "" // Do NOT send sensitive info back

	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	// 1. Find user by email; an unknown email is reported as not found
	userWithHash, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service.Login.FindByEmail: %w", err)
	}

	// Accounts created through Google have no password
	if userWithHash.PasswordHash == "" {
		return nil, models.ErrInvalidCredentials
	}

	// 2. Compare the provided password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(userWithHash.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	// 3. Use helper function to generate JWT and AuthResponse
	return s.generateAuthResponse(userWithHash)
}

// HandleGoogleLogin generates and returns the redirect URL and the state value for the user.
func (s *Service) HandleGoogleLogin() (string, string, error) {
	if s.googleOAuthConfig == nil {
		return "", "", models.ErrFeatureDisabled
	}
	state, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state for google login: %w", err)
	}
	url := s.googleOAuthConfig.AuthCodeURL(state)
	return url, state, nil
}

// HandleGoogleCallback processes the callback from Google, completing the login/signup.
func (s *Service) HandleGoogleCallback(ctx context.Context, code string) (*models.AuthResponse, error) {
	if s.googleOAuthConfig == nil {
		return nil, models.ErrFeatureDisabled
	}

	// 1. Exchange authorization code for a token from Google
	token, err := s.googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: google code exchange failed: %v", models.ErrInvalidToken, err)
	}

	// 2. Use the token to get the user's info from Google's API.
	response, err := s.googleOAuthConfig.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info from google: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google user info returned %s", response.Status)
	}

	var userInfo GoogleUserInfo
	if err := json.NewDecoder(response.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if !userInfo.VerifiedEmail {
		return nil, fmt.Errorf("%w: google email not verified", models.ErrInvalidCredentials)
	}

	// 3. Find or create user in database
	email := NormalizeEmail(userInfo.Email)
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("db error while finding user by email: %w", err)
	}

	if errors.Is(err, models.ErrNotFound) {
		user, err = s.userRepo.Create(ctx, &models.User{
			Name:         userInfo.Name,
			Email:        email,
			ProfileImage: userInfo.Picture,
			AuthProvider: "google",
		})
		if err != nil {
			return nil, fmt.Errorf("service.HandleGoogleCallback.CreateUser: %w", err)
		}
		s.sendWelcomeEmail(user)
	}

	// 4. Issue JWT for this user.
	return s.generateAuthResponse(user)
}

func (s *Service) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.GetUserProfile: %w", err)
	}
	return user, nil
}

// UpdateUserProfile applies the non-nil fields. A new email must not belong to another account.
func (s *Service) UpdateUserProfile(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error) {
	if data.Email != nil {
		email := NormalizeEmail(*data.Email)
		data.Email = &email

		existing, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if existing != nil && existing.ID != userID {
			return nil, models.ErrConflict
		}
	}

	updatedUser, err := s.userRepo.Update(ctx, userID, data)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateUserProfile: %w", err)
	}
	return updatedUser, nil
}
