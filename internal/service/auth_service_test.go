package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/soict-hust/gradadmit-api/internal/models"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
)

type mockAuthRepo struct {
	userByEmail         *models.User
	userByID            *models.User
	findByEmailErr      error
	findByIDErr         error
	created             *models.User
	createErr           error
	refreshTokens       map[string]*models.RefreshToken
	refreshTokenErr     error
	createRefreshErr    error
	revokeRefreshErr    error
	revokeUserTokensErr error
	updatePasswordErr   error
	auditLogs           []*models.AuditLog
	lastLoginUpdated    bool
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.userByEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if m.userByID != nil {
		return m.userByID, nil
	}
	if m.userByEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "generated"
	m.created = user
	return nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	if m.userByEmail != nil && m.userByEmail.ID == id {
		m.userByEmail.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockAuthRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	return m.revokeUserTokensErr
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.createRefreshErr != nil {
		return m.createRefreshErr
	}
	if m.refreshTokens == nil {
		m.refreshTokens = make(map[string]*models.RefreshToken)
	}
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if m.refreshTokenErr != nil {
		return nil, m.refreshTokenErr
	}
	rt, ok := m.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rt, nil
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	if m.revokeRefreshErr != nil {
		return m.revokeRefreshErr
	}
	for _, token := range m.refreshTokens {
		if token.ID == id {
			token.Revoked = true
			token.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

type mockOTPRepo struct {
	code    string
	deleted bool
	genErr  error
}

func (m *mockOTPRepo) Generate(ctx context.Context, email string) (string, error) {
	if m.genErr != nil {
		return "", m.genErr
	}
	m.code = "482913"
	return m.code, nil
}

func (m *mockOTPRepo) Verify(ctx context.Context, email, code string) (bool, error) {
	return m.code != "" && m.code == code, nil
}

func (m *mockOTPRepo) Delete(ctx context.Context, email string) error {
	m.deleted = true
	return nil
}

func newAuthService(repo *mockAuthRepo, otps *mockOTPRepo) *AuthService {
	return NewAuthService(repo, otps, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: time.Hour * 24,
	})
}

func TestAuthServiceRegister(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := newAuthService(repo, &mockOTPRepo{})

	res, err := svc.Register(context.Background(), models.RegisterRequest{
		FullName: "Nguyễn Văn An",
		Email:    "an.nv@example.com",
		Phone:    "0912345678",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, models.RoleApplicant, repo.created.Role)
	assert.True(t, repo.created.Active)
	assert.NotEqual(t, "password123", repo.created.PasswordHash)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "an.nv@example.com", res.User.Email)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", Email: "an.nv@example.com"}}
	svc := newAuthService(repo, &mockOTPRepo{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		FullName: "Nguyễn Văn An",
		Email:    "an.nv@example.com",
		Phone:    "0912345678",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmailExists.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterInvalidPhone(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockOTPRepo{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		FullName: "Nguyễn Văn An",
		Email:    "an.nv@example.com",
		Phone:    "12345",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "123", Email: "an.nv@example.com", PasswordHash: string(password), Active: true, Role: models.RoleApplicant}}
	svc := newAuthService(repo, &mockOTPRepo{})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "an.nv@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.True(t, repo.lastLoginUpdated)
	assert.NotEmpty(t, repo.refreshTokens)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "123", Email: "an.nv@example.com", PasswordHash: string(password), Active: true}}
	svc := newAuthService(repo, &mockOTPRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "an.nv@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactive(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "123", Email: "an.nv@example.com", PasswordHash: string(password), Active: false}}
	svc := newAuthService(repo, &mockOTPRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "an.nv@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRefreshToken(t *testing.T) {
	repo := &mockAuthRepo{refreshTokens: make(map[string]*models.RefreshToken)}
	user := &models.User{ID: "u1", Email: "an.nv@example.com", PasswordHash: "hash", Active: true, Role: models.RoleApplicant}
	repo.userByEmail = user
	repo.userByID = user
	token := &models.RefreshToken{ID: "rt1", UserID: user.ID, Token: "token", ExpiresAt: time.Now().Add(time.Hour)}
	repo.refreshTokens[token.Token] = token

	svc := newAuthService(repo, &mockOTPRepo{})

	res, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: "token"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEqual(t, "token", res.RefreshToken)
	assert.True(t, repo.refreshTokens["token"].Revoked)
}

func TestAuthServiceChangePassword(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", PasswordHash: string(oldHash), Active: true}}
	svc := newAuthService(repo, &mockOTPRepo{})

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "oldpassword", NewPassword: "newpassword"})
	require.NoError(t, err)
	assert.NotEqual(t, string(oldHash), repo.userByEmail.PasswordHash)
}

func TestAuthServiceForgotPasswordIssuesCode(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", Email: "an.nv@example.com", Active: true}}
	otps := &mockOTPRepo{}
	svc := newAuthService(repo, otps)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "an.nv@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, otps.code)
}

func TestAuthServiceForgotPasswordUnknownEmailSilent(t *testing.T) {
	otps := &mockOTPRepo{}
	svc := newAuthService(&mockAuthRepo{}, otps)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "nobody@example.com"})
	require.NoError(t, err, "the endpoint must not reveal whether the account exists")
	assert.Empty(t, otps.code)
}

func TestAuthServiceResetPassword(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", Email: "an.nv@example.com", PasswordHash: string(oldHash), Active: true}}
	otps := &mockOTPRepo{code: "482913"}
	svc := newAuthService(repo, otps)

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Email:       "an.nv@example.com",
		Code:        "482913",
		NewPassword: "newpassword",
	})
	require.NoError(t, err)
	assert.NotEqual(t, string(oldHash), repo.userByEmail.PasswordHash)
	assert.True(t, otps.deleted)
}

func TestAuthServiceResetPasswordWrongCode(t *testing.T) {
	repo := &mockAuthRepo{userByEmail: &models.User{ID: "u1", Email: "an.nv@example.com", Active: true}}
	otps := &mockOTPRepo{code: "482913"}
	svc := newAuthService(repo, otps)

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Email:       "an.nv@example.com",
		Code:        "000000",
		NewPassword: "newpassword",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidOTP.Code, appErrors.FromError(err).Code)
	assert.False(t, otps.deleted)
}

func TestValidateToken(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{}, &mockOTPRepo{})
	user := &models.User{ID: "u1", Email: "an.nv@example.com", Role: models.RoleApplicant}
	token, _, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleApplicant, claims.Role)
}
