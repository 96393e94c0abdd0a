// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/mock"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestResetService(t *testing.T) (*resetService, *mock.MockUserRepository, *mock.MockMailer, *clock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	mailer := mock.NewMockMailer(ctrl)
	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	svc := NewResetService(repo, mailer, testAppConfig(), logger.Nop()).(*resetService)
	svc.now = c.now
	return svc, repo, mailer, c
}

func TestResetService_RoundTrip(t *testing.T) {
	svc, repo, _, _ := newTestResetService(t)
	ctx := testContext()

	token, err := svc.IssueToken(alice, 30*time.Minute)
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, int64(1)).Return(alice, nil)

	user, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, user.UserID)
}

func TestResetService_Expired(t *testing.T) {
	svc, _, _, c := newTestResetService(t)

	token, err := svc.IssueToken(alice, 30*time.Minute)
	require.NoError(t, err)

	c.advance(30*time.Minute + time.Second)

	_, err = svc.VerifyToken(testContext(), token)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestResetService_AnyAlteredByteIsRejected(t *testing.T) {
	svc, _, _, _ := newTestResetService(t)
	ctx := testContext()

	token, err := svc.IssueToken(alice, 30*time.Minute)
	require.NoError(t, err)

	for i := range token {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		altered := token[:i] + string(replacement) + token[i+1:]

		_, err := svc.VerifyToken(ctx, altered)
		require.ErrorIsf(t, err, ErrTokenIsExpiredOrInvalid, "byte %d altered", i)
	}
}

func TestResetService_OtherKeyIsRejected(t *testing.T) {
	svc, _, _, c := newTestResetService(t)

	forged, err := utils.GenerateResetToken(svc.tokenIssuer, 1, c.t, time.Hour, "another-key")
	require.NoError(t, err)

	_, err = svc.VerifyToken(testContext(), forged.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestResetService_VerifyToken_UnknownUser(t *testing.T) {
	svc, repo, _, _ := newTestResetService(t)
	ctx := testContext()

	token, err := svc.IssueToken(models.User{UserID: 99}, time.Minute)
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, int64(99)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestResetService_RequestReset(t *testing.T) {
	svc, repo, mailer, _ := newTestResetService(t)
	ctx := testContext()

	repo.EXPECT().FindUserByEmail(ctx, "a@x.com").Return(alice, nil)
	repo.EXPECT().FindUserByID(ctx, int64(1)).Return(alice, nil)

	var sent models.Email
	mailer.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e models.Email) error {
		sent = e
		return nil
	})

	require.NoError(t, svc.RequestReset(ctx, "a@x.com", "http://localhost:5000/"))

	assert.Equal(t, []string{"a@x.com"}, sent.To)
	assert.Equal(t, "Password Reset Request", sent.Subject)
	assert.Contains(t, sent.Body, "If you did not make this request then simply ignore this email")

	const prefix = "http://localhost:5000/reset_password/"
	idx := strings.Index(sent.Body, prefix)
	require.GreaterOrEqual(t, idx, 0)
	token := strings.Fields(sent.Body[idx+len(prefix):])[0]

	user, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, user.UserID)
}

func TestResetService_RequestReset_Errors(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _, _ := newTestResetService(t)
		ctx := testContext()
		repo.EXPECT().FindUserByEmail(ctx, "b@x.com").Return(models.User{}, store.ErrNoUserWasFound)

		assert.ErrorIs(t, svc.RequestReset(ctx, "b@x.com", "http://localhost"), ErrNoAccountWithEmail)
	})

	t.Run("mail failure", func(t *testing.T) {
		svc, repo, mailer, _ := newTestResetService(t)
		ctx := testContext()
		repo.EXPECT().FindUserByEmail(ctx, "a@x.com").Return(alice, nil)
		mailer.EXPECT().Send(ctx, gomock.Any()).Return(adapter.ErrMailNotSent)

		err := svc.RequestReset(ctx, "a@x.com", "http://localhost")
		assert.ErrorIs(t, err, ErrMailFailed)
		assert.ErrorIs(t, err, adapter.ErrMailNotSent)
	})
}

func TestResetService_ResetPassword(t *testing.T) {
	svc, repo, _, _ := newTestResetService(t)
	ctx := testContext()

	repo.EXPECT().UpdatePassword(ctx, int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, hash string) error {
			assert.True(t, utils.CheckPassword(hash, "new-password"))
			return nil
		})

	require.NoError(t, svc.ResetPassword(ctx, alice, "new-password"))
	assert.ErrorIs(t, svc.ResetPassword(ctx, alice, ""), ErrEmptyPassword)
}

func TestResetService_ResetPassword_StorageError(t *testing.T) {
	svc, repo, _, _ := newTestResetService(t)
	ctx := testContext()
	storageErr := errors.New("disk full")

	repo.EXPECT().UpdatePassword(ctx, int64(1), gomock.Any()).Return(storageErr)

	assert.ErrorIs(t, svc.ResetPassword(ctx, alice, "new-password"), storageErr)
}
