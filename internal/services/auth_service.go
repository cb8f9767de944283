package services

import (
	"fmt"
	"log"
	"time"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	issuer     string
	audience   string
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, issuer, audience string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		issuer:     issuer,
		audience:   audience,
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new user with the given role, hashes their
// password, and saves them. The role must be one of the model role
// constants; an empty role defaults to customer.
func (s *AuthService) RegisterUser(user *models.User, role string) error {
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleAdmin && role != models.RoleSeller && role != models.RoleCustomer {
		return fmt.Errorf("unknown role %q", role)
	}

	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("email '%s' already registered", user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Role = role

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iss":     s.issuer,
		"aud":     s.audience,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid. Signature, expiry, issuer, and audience are all checked.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("invalid token: wrong issuer")
	}
	if !claims.VerifyAudience(s.audience, true) {
		return nil, fmt.Errorf("invalid token: wrong audience")
	}

	return claims, nil
}

// PrincipalFromClaims builds the request principal for a validated bearer
// token. The seller profile id is deliberately not resolved here; the
// authorization engine looks it up lazily so that requests that never touch
// seller resources skip the extra lookup.
func PrincipalFromClaims(claims jwt.MapClaims) models.Principal {
	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	kind := models.PrincipalCustomer
	switch role {
	case models.RoleAdmin:
		kind = models.PrincipalAdmin
	case models.RoleSeller:
		kind = models.PrincipalSeller
	}

	return models.Principal{
		Kind:   kind,
		UserID: userID,
		Email:  email,
	}
}
