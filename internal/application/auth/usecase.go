package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de tenant, alta de
// usuarios dentro del tenant y login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, jwtCfg: jwtCfg}
}

// RegisterTenant crea un tenant nuevo junto con su usuario Owner.
// Es la única ruta de alta que no exige identidad previa.
func (uc *AuthUseCase) RegisterTenant(ctx context.Context, in dto.RegisterTenantRequest) (*dto.UserResponse, error) {
	if in.TenantName == "" {
		return nil, domain.Validationf("tenant_name es obligatorio")
	}
	if in.Email == "" || in.Password == "" {
		return nil, domain.Validationf("email y password son obligatorios")
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflictf("el email ya está registrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      in.TenantName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenant.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         permission.RoleOwner,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// RegisterUser crea un usuario adicional dentro del tenant del caller.
// Solo el Owner puede dar de alta usuarios; el rol debe pertenecer al
// conjunto cerrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, id authz.Identity, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if id.PrincipalID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	if id.Role != permission.RoleOwner {
		return nil, domain.Forbidden("register_user")
	}
	if in.Email == "" || in.Password == "" {
		return nil, domain.Validationf("email y password son obligatorios")
	}
	role, ok := permission.Parse(in.Role)
	if !ok {
		return nil, domain.Validationf("rol desconocido: %s", in.Role)
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflictf("el email ya está registrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     id.TenantID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.Forbidden("login")
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		Status:   u.Status,
	}
}
