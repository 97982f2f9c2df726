package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores token and user", func(t *testing.T) {
		api := newFakeAPI()
		sess, tokens := newSession(t, api, false)
		svc := NewAuthService(api, sess)

		require.NoError(t, svc.Login(ctx, "ala@example.test", "secret"))

		st := sess.State()
		assert.Equal(t, "abc123", st.Token)
		require.NotNil(t, st.User)
		assert.Equal(t, "ala", st.User.Username)
		assert.Equal(t, "abc123", tokens.token)
		assert.Equal(t, []string{"Login", "FetchProfile"}, api.callLog())
	})

	t.Run("bad credentials", func(t *testing.T) {
		api := newFakeAPI()
		sess, tokens := newSession(t, api, false)
		svc := NewAuthService(api, sess)

		err := svc.Login(ctx, "ala@example.test", "nope")
		var he *client.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, 400, he.Status)
		assert.Empty(t, sess.Token())
		assert.Empty(t, tokens.token)
	})

	t.Run("missing fields", func(t *testing.T) {
		api := newFakeAPI()
		sess, _ := newSession(t, api, false)
		svc := NewAuthService(api, sess)

		require.ErrorIs(t, svc.Login(ctx, " ", "secret"), common.ErrEmptyField)
		assert.Empty(t, api.callLog())
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("password mismatch never reaches the server", func(t *testing.T) {
		api := newFakeAPI()
		sess, _ := newSession(t, api, false)
		svc := NewAuthService(api, sess)

		err := svc.Register(ctx, "ola", "ola@example.test", "one", "two")
		require.ErrorIs(t, err, common.ErrPasswordMismatch)
		assert.Empty(t, api.callLog())
	})

	t.Run("success logs in", func(t *testing.T) {
		api := newFakeAPI()
		sess, _ := newSession(t, api, false)
		svc := NewAuthService(api, sess)

		require.NoError(t, svc.Register(ctx, "ola", "ola@example.test", "pw", "pw"))
		assert.Equal(t, "reg-tok", sess.Token())
		assert.Equal(t, "ola", sess.State().User.Username)
	})

	t.Run("duplicate account", func(t *testing.T) {
		api := newFakeAPI()
		sess, _ := newSession(t, api, false)
		svc := NewAuthService(api, sess)

		err := svc.Register(ctx, "ala", "ala@example.test", "pw", "pw")
		require.Error(t, err)
		assert.Empty(t, sess.Token())
	})
}

func TestAuthService_RenameAndPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("rename refreshes profile", func(t *testing.T) {
		api := newFakeAPI()
		sess, _ := newSession(t, api, true)
		svc := NewAuthService(api, sess)

		require.NoError(t, svc.Rename(ctx, "ola"))
		assert.Equal(t, "ola", api.lastProfile.Username)
		assert.Equal(t, "ola", sess.State().User.Username)
	})

	t.Run("change password", func(t *testing.T) {
		api := newFakeAPI()
		sess, _ := newSession(t, api, true)
		svc := NewAuthService(api, sess)

		require.NoError(t, svc.ChangePassword(ctx, "n3w"))
		assert.Equal(t, "n3w", api.lastPwd)
	})

	t.Run("anonymous", func(t *testing.T) {
		api := newFakeAPI()
		sess, _ := newSession(t, api, false)
		svc := NewAuthService(api, sess)

		require.ErrorIs(t, svc.Rename(ctx, "ola"), common.ErrNotAuthenticated)
		require.ErrorIs(t, svc.ChangePassword(ctx, "pw"), common.ErrNotAuthenticated)
		assert.Empty(t, api.callLog())
	})
}

func TestAuthService_Logout(t *testing.T) {
	api := newFakeAPI()
	sess, tokens := newSession(t, api, true)
	svc := NewAuthService(api, sess)

	svc.Logout(context.Background())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.State().User)
	assert.Empty(t, tokens.token)
}
