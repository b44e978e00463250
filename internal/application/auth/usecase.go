package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/dto"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/auth"
	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain/repository"
	"github.com/bellinicahuanadevelopment/gestor-textil/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación: login y consulta del usuario actual.
// La gestión de usuarios (altas, bajas) queda fuera; el núcleo solo
// emite y consume la identidad.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password contra el hash bcrypt, genera JWT y
// retorna token + usuario. Credenciales malas responden Unauthorized sin
// distinguir usuario inexistente de password incorrecto.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.NewValidationError("email y contraseña son requeridos")
	}
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:             user.ID,
			Email:          user.Email,
			NombreCompleto: user.NombreCompleto,
			Role:           string(user.Role),
		},
	}, nil
}

// Me devuelve el usuario del principal actual.
func (uc *UseCase) Me(ctx context.Context, principal auth.Principal) (*dto.UserResponse, error) {
	if !principal.Valid() {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		NombreCompleto: user.NombreCompleto,
		Role:           string(user.Role),
	}, nil
}
