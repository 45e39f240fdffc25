package auth

import (
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro público y login.
type AuthUseCase struct {
	users  repository.UserRepository
	userUC *usecase.UserUseCase
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, userUC *usecase.UserUseCase, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, userUC: userUC, jwtCfg: jwtCfg}
}

// Register registro público: pasa por el manager de usuarios con actor nil
// (la compuerta de creación admite anónimos para este flujo). El rol queda
// siempre en cashier y nunca superusuario.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	return uc.userUC.Create(nil, dto.CreateUserRequest{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
	})
}

// Login verifica email/password, exige usuario activo y emite un JWT con
// el rol como claim.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
