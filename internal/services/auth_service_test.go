package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

const (
	testJWTSecret   = "test_jwt_secret"
	testJWTIssuer   = "lapak-test"
	testJWTAudience = "lapak-test-api"
)

func newTestAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, testJWTIssuer, testJWTAudience)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	user := &models.User{
		Email:    "test@example.com",
		Password: "password123",
	}

	// Test successful registration; empty role defaults to customer
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("user not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user, "")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", user.Password) // must be hashed
	mockRepo.AssertExpectations(t)

	// Test seller registration keeps the requested role
	sellerUser := &models.User{Email: "seller@example.com", Password: "password123"}
	mockRepo.On("GetByEmail", sellerUser.Email).Return(nil, fmt.Errorf("user not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	err = authService.RegisterUser(sellerUser, models.RoleSeller)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleSeller, sellerUser.Role)
	mockRepo.AssertExpectations(t)

	// Test unknown role is rejected before any repository call
	err = authService.RegisterUser(&models.User{Email: "x@example.com", Password: "p"}, "superuser")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")

	// Test email already registered
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(&models.User{Email: user.Email, Password: "password123"}, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleSeller,
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the token structure and claims
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, models.RoleSeller, claims["role"])
	assert.Equal(t, testJWTIssuer, claims["iss"])
	assert.Equal(t, testJWTAudience, claims["aud"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser("test@example.com", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found); same message to avoid
	// revealing whether the email exists
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user not found")).Once()
	_, err = authService.LoginUser("nobody@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	makeToken := func(claims jwt.MapClaims, secret string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, _ := token.SignedString([]byte(secret))
		return signed
	}

	validClaims := jwt.MapClaims{
		"user_id": "user-123",
		"email":   "test@example.com",
		"role":    models.RoleCustomer,
		"iss":     testJWTIssuer,
		"aud":     testJWTAudience,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	// Test valid token
	claims, err := authService.ValidateToken(makeToken(validClaims, testJWTSecret))
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	// Test garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test wrong signing secret
	_, err = authService.ValidateToken(makeToken(validClaims, "other_secret"))
	assert.Error(t, err)

	// Test expired token
	expiredClaims := jwt.MapClaims{
		"user_id": "user-123",
		"iss":     testJWTIssuer,
		"aud":     testJWTAudience,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	_, err = authService.ValidateToken(makeToken(expiredClaims, testJWTSecret))
	assert.Error(t, err)

	// Test wrong issuer
	wrongIssuer := jwt.MapClaims{
		"user_id": "user-123",
		"iss":     "someone-else",
		"aud":     testJWTAudience,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	_, err = authService.ValidateToken(makeToken(wrongIssuer, testJWTSecret))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "issuer")

	// Test wrong audience
	wrongAudience := jwt.MapClaims{
		"user_id": "user-123",
		"iss":     testJWTIssuer,
		"aud":     "another-api",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	_, err = authService.ValidateToken(makeToken(wrongAudience, testJWTSecret))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "audience")
}

func TestPrincipalFromClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "user-123",
		"email":   "seller@example.com",
		"role":    models.RoleSeller,
	}

	p := services.PrincipalFromClaims(claims)
	assert.Equal(t, models.PrincipalSeller, p.Kind)
	assert.Equal(t, "user-123", p.UserID)
	assert.Equal(t, "seller@example.com", p.Email)
	// The seller profile id is resolved lazily, never at token time
	assert.Empty(t, p.SellerID)

	claims["role"] = models.RoleAdmin
	assert.Equal(t, models.PrincipalAdmin, services.PrincipalFromClaims(claims).Kind)

	claims["role"] = models.RoleCustomer
	assert.Equal(t, models.PrincipalCustomer, services.PrincipalFromClaims(claims).Kind)

	// Unknown roles fall back to customer
	claims["role"] = "something-else"
	assert.Equal(t, models.PrincipalCustomer, services.PrincipalFromClaims(claims).Kind)
}
