package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/k12tutor/config"
	"github.com/lshigami/k12tutor/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims identify a student. The subject is the student id.
type Claims struct {
	Username   string `json:"username"`
	GradeLevel string `json:"gradeLevel"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(student *model.Student) (string, error)
	Parse(token string) (*Claims, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{secret: []byte(cfg.Auth.JWTSecret), ttl: cfg.Auth.JWTExpiration, now: time.Now}
}

func (s *tokenService) Issue(student *model.Student) (string, error) {
	now := s.now()
	claims := Claims{
		Username:   student.Username,
		GradeLevel: student.GradeLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   student.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
