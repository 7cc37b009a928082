package auth

import (
	"context"
	"strings"

	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/jmolina/avicola-api/pkg/config"
	"github.com/jmolina/avicola-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase autentica usuarios y emite tokens JWT.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      config.JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg config.JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Login valida credenciales y devuelve un token firmado. El error es el
// mismo para email inexistente y contraseña incorrecta: no se filtra cuál
// de los dos falló.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.usuarioRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Activo {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioResponse{
			ID:        u.ID,
			Nombre:    u.Nombre,
			DNI:       u.DNI,
			Email:     u.Email,
			Rol:       u.Rol,
			Activo:    u.Activo,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
	}, nil
}

// Me devuelve el usuario autenticado a partir del ID del token.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarioRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		DNI:       u.DNI,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}
