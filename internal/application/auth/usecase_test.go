package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Obrix-api/internal/application/auth"
	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/security"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository/mocks"
	"github.com/jhoicas/Obrix-api/pkg/jwt"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

const secret = "test-secret"

type sessionSpy struct{ begun, ended []string }

func (s *sessionSpy) Begin(userID string) { s.begun = append(s.begun, userID) }
func (s *sessionSpy) End(userID string)   { s.ended = append(s.ended, userID) }

func newUseCase(t *testing.T) (*auth.AuthUseCase, *mocks.MockUserRepository, *mocks.MockCompanyRepository, *security.EventLog, *sessionSpy) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	companies := mocks.NewMockCompanyRepository(ctrl)
	events := security.NewEventLog(10, logger.Nop())
	spy := &sessionSpy{}
	uc := auth.NewAuthUseCase(users, companies, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "obrix"}, events, spy)
	return uc, users, companies, events, spy
}

func hashed(t *testing.T, pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_Exitoso(t *testing.T) {
	uc, users, _, events, spy := newUseCase(t)
	users.EXPECT().GetByEmail(gomock.Any(), "ana@obrix.app").Return(&entity.User{
		ID: "u1", CompanyID: "c1", Email: "ana@obrix.app", Role: entity.RoleAdmin, Status: "active",
		PasswordHash: hashed(t, "secreto123"),
	}, nil)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Ana@Obrix.app ", Password: "secreto123"}, "10.0.0.1")
	require.NoError(t, err)

	id, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "c1", id.CompanyID)
	assert.Equal(t, entity.RoleAdmin, id.Role)
	assert.Equal(t, []string{"u1"}, spy.begun)
	assert.Equal(t, 0, events.Len())
}

func TestLogin_PasswordIncorrectoRegistraEvento(t *testing.T) {
	uc, users, _, events, spy := newUseCase(t)
	users.EXPECT().GetByEmail(gomock.Any(), "ana@obrix.app").Return(&entity.User{
		ID: "u1", CompanyID: "c1", Status: "active", PasswordHash: hashed(t, "secreto123"),
	}, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@obrix.app", Password: "otro"}, "10.0.0.1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	require.Equal(t, 1, events.Len())
	ev := events.Recent(1, "")[0]
	assert.Equal(t, security.EventLoginFailed, ev.Type)
	assert.Equal(t, "10.0.0.1", ev.IP)
	assert.Empty(t, spy.begun)
}

func TestLogin_EmailDesconocidoMismoError(t *testing.T) {
	uc, users, _, events, _ := newUseCase(t)
	users.EXPECT().GetByEmail(gomock.Any(), "nadie@obrix.app").Return(nil, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@obrix.app", Password: "x"}, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, events.Len())
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, _, _, _ := newUseCase(t)
	users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(&entity.User{
		ID: "u1", Status: "suspended", PasswordHash: hashed(t, "secreto123"),
	}, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.co", Password: "secreto123"}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterUser(t *testing.T) {
	t.Run("email duplicado", func(t *testing.T) {
		uc, users, _, _, _ := newUseCase(t)
		users.EXPECT().GetByEmail(gomock.Any(), "ana@obrix.app").Return(&entity.User{ID: "u1"}, nil)
		_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@obrix.app", Password: "12345678", CompanyID: "c1"})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("empresa inexistente", func(t *testing.T) {
		uc, users, companies, _, _ := newUseCase(t)
		users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
		companies.EXPECT().GetByID(gomock.Any(), "c1").Return(nil, nil)
		_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@obrix.app", Password: "12345678", CompanyID: "c1"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rol por defecto staff y password hasheado", func(t *testing.T) {
		uc, users, companies, _, _ := newUseCase(t)
		users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
		companies.EXPECT().GetByID(gomock.Any(), "c1").Return(&entity.Company{ID: "c1"}, nil)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("12345678")))
			return nil
		})

		resp, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "Ana@Obrix.app", Password: "12345678", CompanyID: "c1"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleStaff, resp.Role)
		assert.Equal(t, "ana@obrix.app", resp.Email)
		assert.Equal(t, "ana@obrix.app", resp.Name)
	})
}

func TestLogout_RevocaSesion(t *testing.T) {
	uc, _, _, _, spy := newUseCase(t)
	uc.Logout("u9")
	assert.Equal(t, []string{"u9"}, spy.ended)
}
