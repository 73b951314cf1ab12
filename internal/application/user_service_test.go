package application

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/invoice-dashboard/internal/domain/entity"
	repo "github.com/oksasatya/invoice-dashboard/internal/domain/repository"
	"github.com/oksasatya/invoice-dashboard/pkg/helpers"
)

type fakeUserRepo struct {
	users     map[string]*entity.User // by email
	emailErr  error
	createErr error
	createCnt int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.createCnt++
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) addUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password, 4)
	require.NoError(t, err)
	u := &entity.User{ID: "user-" + email, Name: "User", Email: email, Password: hash}
	f.users[email] = u
	return u
}

func newTestUserService(t *testing.T, r *fakeUserRepo) (*UserService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewUserService(r, jwt, rdb, logger, nil, 4, time.Hour, false), mr
}

func registrationForm(email, password, name string) url.Values {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	form.Set("name", name)
	return form
}

func TestSignIn(t *testing.T) {
	r := newFakeUserRepo()
	u := r.addUser(t, "user@nextmail.com", "123456")
	svc, mr := newTestUserService(t, r)
	ctx := context.Background()

	res, err := svc.SignIn(ctx, "user@nextmail.com", "123456")
	require.NoError(t, err)
	assert.Empty(t, res.Message)
	require.NotNil(t, res.User)
	assert.Equal(t, u.ID, res.User.ID)
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.NotEmpty(t, res.Tokens.RefreshToken)

	// session hash exists and carries the sid the token was minted with
	claims, err := svc.JWT.ParseAccessToken(res.Tokens.AccessToken)
	require.NoError(t, err)
	sid := mr.HGet("user:session:"+u.ID, "sid")
	assert.Equal(t, claims.SessionID, sid)
}

func TestSignInWrongPassword(t *testing.T) {
	r := newFakeUserRepo()
	r.addUser(t, "user@nextmail.com", "123456")
	svc, _ := newTestUserService(t, r)

	res, err := svc.SignIn(context.Background(), "user@nextmail.com", "wrong")
	require.NoError(t, err)
	assert.Equal(t, MsgInvalidCredentials, res.Message)
	assert.Nil(t, res.User)
}

func TestSignInUnknownEmail(t *testing.T) {
	svc, _ := newTestUserService(t, newFakeUserRepo())

	res, err := svc.SignIn(context.Background(), "nobody@nextmail.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, MsgInvalidCredentials, res.Message)
}

func TestSignInStoreErrorPropagates(t *testing.T) {
	r := newFakeUserRepo()
	r.emailErr = errors.New("connection refused")
	svc, _ := newTestUserService(t, r)

	_, err := svc.SignIn(context.Background(), "user@nextmail.com", "123456")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInSessionStoreDown(t *testing.T) {
	r := newFakeUserRepo()
	r.addUser(t, "user@nextmail.com", "123456")
	svc, mr := newTestUserService(t, r)
	mr.Close()

	res, err := svc.SignIn(context.Background(), "user@nextmail.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, MsgSomethingWentWrong, res.Message)
	assert.Nil(t, res.User)
}

func TestRegister(t *testing.T) {
	r := newFakeUserRepo()
	svc, mr := newTestUserService(t, r)

	res, err := svc.Register(context.Background(), registrationForm("new@nextmail.com", "123456", "New User"))
	require.NoError(t, err)
	assert.Empty(t, res.Message)
	require.NotNil(t, res.User, "registration signs the new user in")
	assert.NotEmpty(t, res.Tokens.AccessToken)

	stored := r.users["new@nextmail.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "123456", stored.Password, "password must be stored hashed")
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "123456"))
	assert.True(t, mr.Exists("user:session:"+stored.ID))
}

func TestRegisterMissingFields(t *testing.T) {
	r := newFakeUserRepo()
	svc, _ := newTestUserService(t, r)

	res, err := svc.Register(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, MsgRegisterMissingFields, res.Message)
	assert.Zero(t, r.createCnt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newFakeUserRepo()
	r.addUser(t, "user@nextmail.com", "123456")
	svc, _ := newTestUserService(t, r)

	res, err := svc.Register(context.Background(), registrationForm("user@nextmail.com", "654321", "Other"))
	require.NoError(t, err)
	assert.Equal(t, MsgUserExists, res.Message)
	assert.Zero(t, r.createCnt, "no insert on duplicate email")
}

func TestRegisterInsertFailure(t *testing.T) {
	r := newFakeUserRepo()
	r.createErr = errors.New("unique_violation")
	svc, _ := newTestUserService(t, r)

	res, err := svc.Register(context.Background(), registrationForm("new@nextmail.com", "123456", "New User"))
	require.NoError(t, err)
	assert.Equal(t, MsgRegisterDBError, res.Message)
}

func TestLogout(t *testing.T) {
	r := newFakeUserRepo()
	u := r.addUser(t, "user@nextmail.com", "123456")
	svc, mr := newTestUserService(t, r)
	ctx := context.Background()

	res, err := svc.SignIn(ctx, "user@nextmail.com", "123456")
	require.NoError(t, err)
	require.NotNil(t, res.User)
	require.True(t, mr.Exists("user:session:"+u.ID))

	svc.Logout(ctx, u.ID)
	assert.False(t, mr.Exists("user:session:"+u.ID))
}
