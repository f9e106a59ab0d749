package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"golang.org/x/oauth2"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/domain/repositories"
	"tax-portal.backend/pkg/crypto"
	"tax-portal.backend/pkg/jwt"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthUsecase handles authentication and profile business logic
type AuthUsecase struct {
	profileRepo repositories.ProfileRepository
	jwtService  *jwt.JWTService
	oauthConfig *oauth2.Config
}

// NewAuthUsecase creates a new auth usecase. oauthConfig may be nil when
// Google sign-in is not configured.
func NewAuthUsecase(
	profileRepo repositories.ProfileRepository,
	jwtService *jwt.JWTService,
	oauthConfig *oauth2.Config,
) *AuthUsecase {
	return &AuthUsecase{
		profileRepo: profileRepo,
		jwtService:  jwtService,
		oauthConfig: oauthConfig,
	}
}

// Register creates a new account with its profile row
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.Profile, error) {
	// Check if email already exists
	_, err := u.profileRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	profile := &entities.Profile{
		Email:              input.Email,
		FullName:           input.FullName,
		PasswordHash:       passwordHash,
		Role:               entities.ProfileRoleClient,
		VerificationStatus: entities.VerificationUnverified,
	}
	if input.Phone != "" {
		profile.Phone.SetValid(input.Phone)
	}
	if input.BusinessName != "" {
		profile.BusinessName.SetValid(input.BusinessName)
	}
	if input.AccountType != "" {
		profile.AccountType.SetValid(input.AccountType)
	}

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	profile, err := u.profileRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, profile.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Profile:      profile,
	}, nil
}

// googleUserInfo is the subset of the userinfo payload we consume
type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleSignIn exchanges an OAuth authorization code, signs the user in,
// and lazily creates the profile row on first sign-in, seeded from the
// provider metadata.
func (u *AuthUsecase) GoogleSignIn(ctx context.Context, code string) (*entities.AuthResponse, error) {
	if u.oauthConfig == nil || u.oauthConfig.ClientID == "" {
		return nil, domainerrors.BadRequest("Google sign-in is not configured")
	}

	token, err := u.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, domainerrors.Unauthorized("OAuth code exchange failed")
	}

	info, err := u.fetchGoogleUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, domainerrors.Unauthorized("OAuth provider returned no email")
	}

	profile, err := u.profileRepo.GetByEmail(ctx, info.Email)
	if errors.Is(err, domainerrors.ErrNotFound) {
		profile = &entities.Profile{
			Email:              info.Email,
			FullName:           info.Name,
			Role:               entities.ProfileRoleClient,
			VerificationStatus: entities.VerificationUnverified,
		}
		if err := u.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(profile.ID, profile.Email, string(profile.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Profile:      profile,
	}, nil
}

func (u *AuthUsecase) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := u.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.Unauthorized("OAuth provider rejected the token")
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// Re-read the profile so a role change takes effect on refresh
	profile, err := u.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(profile.ID, profile.Email, string(profile.Role))
}

// GetProfile gets a profile by ID
func (u *AuthUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	return u.profileRepo.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update and returns the result
func (u *AuthUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		profile.FullName = input.FullName
	}
	if input.Phone != "" {
		profile.Phone = null.StringFrom(input.Phone)
	}
	if input.BusinessName != "" {
		profile.BusinessName = null.StringFrom(input.BusinessName)
	}
	if input.TIN != "" {
		profile.TIN = null.StringFrom(input.TIN)
	}

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
