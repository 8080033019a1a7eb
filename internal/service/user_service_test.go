package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/inkwells/smart-note-service/internal/dto"
	pkgapp "github.com/inkwells/smart-note-service/pkg/app"
	"github.com/inkwells/smart-note-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestTokenManager(t *testing.T) pkgapp.TokenManager {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return pkgapp.NewTokenManagerFromKeys(pkgapp.TokenConfig{
		Issuer:        "smart-note-service-test",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	}, key, &key.PublicKey)
}

func newTestUserService(t *testing.T) (UserService, *fakeUserRepo, pkgapp.TokenManager) {
	t.Helper()
	repo := newFakeUserRepo()
	tm := newTestTokenManager(t)
	return NewUserService(repo, tm, zap.NewNop()), repo, tm
}

func TestUserService_SignUp(t *testing.T) {
	svc, _, tm := newTestUserService(t)
	ctx := context.Background()

	token, err := svc.SignUp(ctx, &dto.SignUpRequest{Username: "alice", Password: "Str0ng!Pass"})
	assert.Nil(t, err)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := tm.Parse(token.AccessToken, pkgapp.TokenTypeAccess)
	assert.Nil(t, err)
	assert.Equal(t, "alice", claims.Username)

	refreshClaims, err := tm.Parse(token.RefreshToken, pkgapp.TokenTypeRefresh)
	assert.Nil(t, err)
	assert.Equal(t, claims.UID(), refreshClaims.UID())
}

func TestUserService_SignUpWeakPassword(t *testing.T) {
	svc, repo, _ := newTestUserService(t)

	_, err := svc.SignUp(context.Background(), &dto.SignUpRequest{Username: "alice", Password: "weak"})
	assert.Equal(t, code.ErrorWeakPassword, err)

	// the policy rejects before any storage access
	// 策略校验在任何存储访问之前拒绝
	assert.Equal(t, 0, repo.creates)
}

func TestUserService_SignUpUsernameTaken(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &dto.SignUpRequest{Username: "alice", Password: "Str0ng!Pass"})
	assert.Nil(t, err)

	_, err = svc.SignUp(ctx, &dto.SignUpRequest{Username: "alice", Password: "An0ther!Pass"})
	codeErr, ok := err.(*code.Code)
	if assert.True(t, ok) {
		assert.Equal(t, code.ErrorUsernameTaken.StatusCode(), codeErr.StatusCode())
		assert.Equal(t, code.ErrorUsernameTaken.Msg(), codeErr.Msg())
	}
}

func TestUserService_SignUpDuplicateRace(t *testing.T) {
	svc, repo, _ := newTestUserService(t)

	// a concurrent sign-up that wins between the check and the insert
	// surfaces as the unique index firing on Create
	// 并发注册在检查与插入之间抢先成功时，表现为 Create 触发唯一索引
	repo.createErr = gorm.ErrDuplicatedKey

	_, err := svc.SignUp(context.Background(), &dto.SignUpRequest{Username: "alice", Password: "Str0ng!Pass"})
	codeErr, ok := err.(*code.Code)
	if assert.True(t, ok, "expected a code error, got %v", err) {
		assert.Equal(t, code.ErrorUsernameTaken.StatusCode(), codeErr.StatusCode())
		assert.Equal(t, code.ErrorUsernameTaken.Msg(), codeErr.Msg())
	}
}

func TestUserService_Login(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &dto.SignUpRequest{Username: "alice", Password: "Str0ng!Pass"})
	assert.Nil(t, err)

	token, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "Str0ng!Pass"})
	assert.Nil(t, err)
	assert.NotEmpty(t, token.AccessToken)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "Wr0ng!Pass"})
	assert.Equal(t, code.ErrorBadCredentials, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "Str0ng!Pass"})
	codeErr, ok := err.(*code.Code)
	if assert.True(t, ok) {
		assert.Equal(t, code.ErrorUserNotFound.StatusCode(), codeErr.StatusCode())
	}
}

func TestUserService_Refresh(t *testing.T) {
	svc, repo, tm := newTestUserService(t)
	ctx := context.Background()

	token, err := svc.SignUp(ctx, &dto.SignUpRequest{Username: "alice", Password: "Str0ng!Pass"})
	assert.Nil(t, err)

	claims, err := tm.Parse(token.RefreshToken, pkgapp.TokenTypeRefresh)
	assert.Nil(t, err)

	fresh, err := svc.Refresh(ctx, claims.UID())
	assert.Nil(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)

	// a deleted user cannot refresh
	// 已删除的用户不能刷新
	repo.delete(claims.UID())
	_, err = svc.Refresh(ctx, claims.UID())
	assert.Equal(t, code.ErrorUserNotFound, err)
}

func TestUserService_Me(t *testing.T) {
	svc, _, tm := newTestUserService(t)
	ctx := context.Background()

	token, err := svc.SignUp(ctx, &dto.SignUpRequest{Username: "alice", Password: "Str0ng!Pass"})
	assert.Nil(t, err)

	claims, err := tm.Parse(token.AccessToken, pkgapp.TokenTypeAccess)
	assert.Nil(t, err)

	me, err := svc.Me(ctx, claims.UID())
	assert.Nil(t, err)
	assert.Equal(t, "alice", me.Username)

	_, err = svc.Me(ctx, claims.UID()+100)
	assert.Equal(t, code.ErrorUserNotFound, err)
}
