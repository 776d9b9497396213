package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-recetas/internal/application/auth"
	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Inventario-recetas/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func newAuth() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{
		Secret: secret, ExpMinutes: 60, Issuer: "test",
	})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "Ana@Panaderia.co", Password: "secreto123", BusinessName: "Panadería Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@panaderia.co", u.Email)
	assert.Equal(t, "Panadería Ana", u.BusinessName)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@panaderia.co", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, out.UserID)

	ownerID, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, ownerID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.co", Password: "otro-secreto"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Fallos(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
