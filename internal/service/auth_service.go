package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lshigami/k12tutor/internal/apperror"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/model"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const msgInvalidCredentials = "Invalid credentials"

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Profile(ctx context.Context, studentID string) (*dto.StudentResponse, error)
}

type authService struct {
	studentRepo repository.StudentRepository
	tokens      TokenService
	hashCost    int
}

func NewAuthService(studentRepo repository.StudentRepository, tokens TokenService) AuthService {
	return &authService{studentRepo: studentRepo, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.studentRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, storeError("auth.Register", err)
	}
	if exists {
		return nil, apperror.Conflict("auth.Register", "Username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, storeError("auth.Register", err)
	}
	student := model.Student{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		GradeLevel:   req.GradeLevel,
	}
	if err := s.studentRepo.Create(ctx, &student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("auth.Register", "Username or email already exists")
		}
		return nil, storeError("auth.Register", err)
	}

	// Reload so database defaults (points, level, pet) are reflected.
	created, err := s.studentRepo.FindByID(ctx, student.ID)
	if err != nil {
		return nil, storeError("auth.Register", err)
	}
	log.Info().Str("studentID", created.ID).Str("username", created.Username).Msg("Student registered")
	return s.authResponse(created)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	student, err := s.studentRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("auth.Login", msgInvalidCredentials)
		}
		return nil, storeError("auth.Login", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("username", req.Username).Msg("Login rejected")
		return nil, apperror.Unauthorized("auth.Login", msgInvalidCredentials)
	}
	return s.authResponse(student)
}

func (s *authService) Profile(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError("auth.Profile", "Student not found", err)
	}
	var resp dto.StudentResponse
	if err := copier.Copy(&resp, student); err != nil {
		return nil, storeError("auth.Profile", err)
	}
	return &resp, nil
}

func (s *authService) authResponse(student *model.Student) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(student)
	if err != nil {
		return nil, storeError("auth.Token", err)
	}
	resp := dto.AuthResponse{Token: token}
	if err := copier.Copy(&resp.Student, student); err != nil {
		return nil, storeError("auth.Token", err)
	}
	return &resp, nil
}
