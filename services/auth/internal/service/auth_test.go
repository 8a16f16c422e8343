package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/testutil"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/transport"
)

var refreshSecret = []byte("test-refresh-secret")

func newService(t *testing.T, pub *testutil.MockPublisher) *AuthService {
	t.Helper()

	return &AuthService{
		Repo:          &repo.GormRepo{DB: testutil.NewDB(t)},
		Publisher:     pub,
		AccessSecret:  testutil.TestSecret,
		RefreshSecret: refreshSecret,
		ClientURL:     "http://shop.test/",
	}
}

func signup(t *testing.T, svc *AuthService, email string) (*Session, string) {
	t.Helper()

	sess, err := svc.Signup(context.Background(), transport.SignupRequest{
		Email: email, Password: "secret1", Name: "Ann", PhoneNumber: "+100000",
	})
	require.NoError(t, err)

	var u models.User
	require.NoError(t, svc.Repo.DB.First(&u, "id = ?", sess.User.ID).Error)
	require.NotNil(t, u.VerificationCode)
	return sess, *u.VerificationCode
}

func TestSignup(t *testing.T) {
	pub := &testutil.MockPublisher{}
	pub.On("PublishEvent", mock.Anything, mykafka.TopicUserEvents, mock.Anything, testutil.EventOfType(EventVerificationRequested)).Return(nil).Once()
	svc := newService(t, pub)

	sess, code := signup(t, svc, "Ann@Example.com")
	assert.Equal(t, "ann@example.com", sess.User.Email)
	assert.Equal(t, tokens.RoleCustomer, sess.User.Role)
	assert.False(t, sess.User.IsVerified)
	assert.Len(t, code, 6)

	claims, err := tokens.AccessClaimsFromToken(sess.AccessToken, testutil.TestSecret)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID.String(), claims.Subject)

	_, err = svc.Signup(context.Background(), transport.SignupRequest{
		Email: "ann@example.com", Password: "secret1", Name: "Ann", PhoneNumber: "+100000",
	})
	assert.ErrorIs(t, err, ErrConflict)

	pub.AssertExpectations(t)
}

func TestVerifyThenLogin(t *testing.T) {
	svc := newService(t, testutil.AcceptAll())
	ctx := context.Background()
	_, code := signup(t, svc, "ann@example.com")

	_, err := svc.Login(ctx, transport.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation, "unverified accounts cannot log in")

	_, err = svc.VerifyEmail(ctx, "000000x")
	assert.ErrorIs(t, err, ErrValidation)

	u, err := svc.VerifyEmail(ctx, code)
	require.NoError(t, err)
	assert.True(t, u.IsVerified)

	_, err = svc.VerifyEmail(ctx, code)
	assert.ErrorIs(t, err, ErrValidation, "codes are single use")

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Login(ctx, transport.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation)

	sess, err := svc.Login(ctx, transport.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotNil(t, sess.User.LastLogin)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), sess.AccessExp, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), sess.RefreshExp, 5*time.Second)
}

func TestVerifyEmail_Expired(t *testing.T) {
	svc := newService(t, testutil.AcceptAll())
	sess, code := signup(t, svc, "ann@example.com")

	require.NoError(t, svc.Repo.DB.Model(&models.User{}).Where("id = ?", sess.User.ID).
		Update("verification_expires", time.Now().UTC().Add(-time.Minute)).Error)

	_, err := svc.VerifyEmail(context.Background(), code)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRefresh_RotatesAndRevokes(t *testing.T) {
	svc := newService(t, testutil.AcceptAll())
	ctx := context.Background()
	first, _ := signup(t, svc, "ann@example.com")

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized, "a rotated token cannot be reused")

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.Logout(ctx, second.RefreshToken))
	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestForgotAndResetPassword(t *testing.T) {
	pub := testutil.AcceptAll()
	svc := newService(t, pub)
	ctx := context.Background()
	sess, code := signup(t, svc, "ann@example.com")
	_, err := svc.VerifyEmail(ctx, code)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ForgotPassword(ctx, "nobody@example.com"), ErrValidation)
	require.NoError(t, svc.ForgotPassword(ctx, "ann@example.com"))

	var u models.User
	require.NoError(t, svc.Repo.DB.First(&u, "id = ?", sess.User.ID).Error)
	require.NotNil(t, u.ResetToken)
	assert.Len(t, *u.ResetToken, 40)
	pub.AssertCalled(t, "PublishEvent", mock.Anything, mykafka.TopicUserEvents, sess.User.ID.String(),
		mock.MatchedBy(func(e mykafka.Event) bool {
			data, ok := e.Data.(emailEvent)
			return ok && e.Type == EventPasswordResetRequested && data.ResetURL == "http://shop.test/reset-password/"+*u.ResetToken
		}))

	assert.ErrorIs(t, svc.ResetPassword(ctx, "nope", "newpass1"), ErrValidation)
	require.NoError(t, svc.ResetPassword(ctx, *u.ResetToken, "newpass1"))
	assert.ErrorIs(t, svc.ResetPassword(ctx, *u.ResetToken, "again11"), ErrValidation)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "ann@example.com", Password: "newpass1"})
	assert.NoError(t, err)
}

func TestProfileAndDelete(t *testing.T) {
	svc := newService(t, testutil.AcceptAll())
	ctx := context.Background()
	sess, _ := signup(t, svc, "ann@example.com")
	id := sess.User.ID.String()

	u, err := svc.UpdateProfile(ctx, id, transport.ProfileRequest{Name: "Anna", PhoneNumber: "+199"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", u.Name)
	assert.Equal(t, "+199", u.PhoneNumber)

	require.NoError(t, svc.DeleteAccount(ctx, id))
	_, err = svc.CheckAuth(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Refresh(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestBootstrapManager_Idempotent(t *testing.T) {
	svc := newService(t, testutil.AcceptAll())
	ctx := context.Background()

	created, err := svc.BootstrapManager(ctx, "Boss@Example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.BootstrapManager(ctx, "boss@example.com", "other11")
	require.NoError(t, err)
	assert.False(t, created)

	sess, err := svc.Login(ctx, transport.LoginRequest{Email: "boss@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleManager, sess.User.Role)
}
