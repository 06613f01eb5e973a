package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// usernames: letters, digits and @/./+/-/_ (same shape the admin
// surface accepts); "me" is reserved for the self-service route
var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// Claims is the identity carried by an access token.
type Claims struct {
	UserID    string
	Username  string
	Role      string
	Superuser bool
}

// Actor converts token claims into a policy actor.
func (c Claims) Actor() policy.Actor {
	return policy.Actor{
		ID:            c.UserID,
		Role:          c.Role,
		Superuser:     c.Superuser,
		Authenticated: true,
	}
}

type AuthService interface {
	Signup(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codes          *CodeGenerator
	mail           mailer.Mailer
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes *CodeGenerator,
	mail mailer.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codes:          codes,
		mail:           mail,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// Signup registers a new user and mails a confirmation code. A taken
// username is a conflict and no code is issued for it, so an existing
// account cannot be impersonated through re-registration.
func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if username == "me" || !usernameRe.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// the unique constraints close the race between the checks
		// above and the insert
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameInUse
		}
		return nil, err
	}

	code := s.codes.Generate(user.ID)
	if err := s.mail.SendConfirmationCode(ctx, user.Email, user.Username, code); err != nil {
		return nil, err
	}

	return user, nil
}

// IssueToken exchanges a valid confirmation code for a signed access
// token.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if !s.codes.Verify(user.ID, code) {
		return "", ErrInvalidCode
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      user.ID,
		"username":     user.Username,
		"role":         user.Role,
		"is_superuser": user.IsSuperuser,
		"exp":          time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":          time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	}
	if v, ok := mapClaims["username"].(string); ok {
		claims.Username = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if v, ok := mapClaims["is_superuser"].(bool); ok {
		claims.Superuser = v
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
