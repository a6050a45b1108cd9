// Package identity is the identity & session provider: it owns credential
// records and issues and verifies the bearer tokens the rest of the system
// treats as opaque.
package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edugpt/backend/config"
	"edugpt/backend/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid authentication token")
	ErrAccountDisabled    = errors.New("account disabled")
)

// Claims is the verified content of a bearer token.
type Claims struct {
	UID            string
	Email          string
	Name           string
	Picture        string
	SignInProvider string
}

type Provider struct {
	DB     *gorm.DB
	secret []byte
	ttl    time.Duration
}

func NewProvider(db *gorm.DB, cfg *config.Config) *Provider {
	return &Provider{DB: db, secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL}
}

// CreateUser registers a new identity account with a generated subject id.
func (p *Provider) CreateUser(email, password string) (*models.IdentityAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := models.IdentityAccount{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.DB.Create(&account).Error; err != nil {
		var existing models.IdentityAccount
		if p.DB.First(&existing, "email = ?", email).Error == nil {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return &account, nil
}

// DeleteUser removes an identity account; used as the compensation step when
// profile creation fails after the account was created.
func (p *Provider) DeleteUser(uid string) error {
	return p.DB.Where("uid = ?", uid).Delete(&models.IdentityAccount{}).Error
}

// VerifyPassword resolves an email/password pair to its account.
func (p *Provider) VerifyPassword(email, password string) (*models.IdentityAccount, error) {
	var account models.IdentityAccount
	err := p.DB.First(&account, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if account.Disabled {
		return nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &account, nil
}

// IssueToken signs a bearer token carrying the given claims.
func (p *Provider) IssueToken(claims Claims) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"uid":   claims.UID,
		"email": claims.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.ttl).Unix(),
	}
	if claims.Name != "" {
		mapClaims["name"] = claims.Name
	}
	if claims.Picture != "" {
		mapClaims["picture"] = claims.Picture
	}
	if claims.SignInProvider != "" {
		mapClaims["sign_in_provider"] = claims.SignInProvider
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(p.secret)
}

// VerifyToken parses and validates a bearer token. An expired token is a
// distinguished condition; every other failure is ErrTokenInvalid.
func (p *Provider) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	uid, _ := mapClaims["uid"].(string)
	if uid == "" {
		return nil, ErrTokenInvalid
	}

	claims := &Claims{UID: uid}
	claims.Email, _ = mapClaims["email"].(string)
	claims.Name, _ = mapClaims["name"].(string)
	claims.Picture, _ = mapClaims["picture"].(string)
	claims.SignInProvider, _ = mapClaims["sign_in_provider"].(string)
	return claims, nil
}
