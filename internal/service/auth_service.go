package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gasolinera/internal/dto"
	"gasolinera/internal/middleware"
	"gasolinera/internal/model"
	"gasolinera/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo       repository.UsuarioRepository
	jwtSecret  string
	expiracion time.Duration
}

func NewAuthService(repo repository.UsuarioRepository, jwtSecret string, expirationHours int) AuthService {
	return &authService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		expiracion: time.Duration(expirationHours) * time.Hour,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCredenciales
	}
	if err != nil {
		return nil, err
	}
	if !u.Activo {
		return nil, ErrCredenciales
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		log.Warn().Str("username", req.Username).Msg("login fallido")
		return nil, ErrCredenciales
	}

	expira := time.Now().Add(s.expiracion)
	claims := middleware.JWTClaims{
		UserID:   u.ID.String(),
		Username: u.Username,
		Rol:      u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expira),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", u.Username).Str("rol", u.Rol).Msg("login correcto")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expira.Format(time.RFC3339),
		Usuario:   *usuarioToResponse(u),
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: el usuario %s ya existe", ErrValidacion, req.Username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := model.Usuario{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, err
	}
	return usuarioToResponse(&u), nil
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
}
