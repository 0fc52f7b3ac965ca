package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vedawell/backend/internal/middleware"
	"github.com/vedawell/backend/internal/models"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Register creates an account. Patients may declare dietary preferences and
// allergies at signup; both are comma-separated free text.
func (s *AuthService) Register(name, email, password, role, dietaryPrefs, allergies string) (string, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return "", ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if role != "doctor" {
		role = "patient"
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", err
	}

	for _, p := range strings.Split(dietaryPrefs, ",") {
		pref := strings.TrimSpace(p)
		if pref == "" {
			continue
		}
		dp := models.DietaryPreference{
			UserID:         user.ID,
			PreferenceType: strings.ToLower(pref),
		}
		if err := s.db.Create(&dp).Error; err != nil {
			return "", err
		}
	}

	for _, a := range strings.Split(allergies, ",") {
		allergen := strings.TrimSpace(a)
		if allergen == "" {
			continue
		}
		record := models.Allergen{
			UserID:        user.ID,
			AllergenName:  strings.ToLower(allergen),
			SeverityLevel: 1,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return "", err
		}
	}

	return s.generateToken(user.ID, user.Role)
}

func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user.ID, user.Role)
}

func (s *AuthService) generateToken(userID uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	role, _ := claims["role"].(string)

	return &middleware.TokenClaims{
		UserID: userID,
		Role:   role,
	}, nil
}

// GetUserAllergies returns the allergen names declared at registration,
// used to prefill intake forms.
func (s *AuthService) GetUserAllergies(userID uuid.UUID) ([]string, error) {
	var allergens []models.Allergen
	if err := s.db.Where("user_id = ?", userID).Find(&allergens).Error; err != nil {
		return nil, err
	}

	names := make([]string, 0, len(allergens))
	for _, a := range allergens {
		names = append(names, a.AllergenName)
	}
	return names, nil
}
