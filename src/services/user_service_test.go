package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"fleet/src/schemas"
	"fleet/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	h := newHarness(time.Now())
	ctx := context.Background()

	u, err := h.users.Register(ctx, schemas.RegisterRequest{Fullname: " Siti ", Username: "siti", Password: "rahasia", Role: "mechanic"})
	require.NoError(t, err)
	assert.Equal(t, "Siti", u.Fullname)
	assert.Equal(t, utils.RoleMechanic, u.Role)
	assert.NotEqual(t, "rahasia", u.PasswordHash)
	assert.Equal(t, 1, h.changes)

	_, err = h.users.Register(ctx, schemas.RegisterRequest{Fullname: "Other", Username: "siti", Password: "secret1"})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = h.users.Register(ctx, schemas.RegisterRequest{Username: "x", Password: "123", Role: "boss"})
	var verr *utils.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)

	res, err := h.users.Login(ctx, schemas.LoginRequest{Username: " siti ", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, u.ID, res.User.ID)

	token, err := h.tokenAuth.Decode(res.AccessToken)
	require.NoError(t, err)
	claims := token.PrivateClaims()
	assert.Equal(t, u.ID, claims["user_id"])
	assert.Equal(t, "siti", claims["username"])
	assert.Equal(t, utils.RoleMechanic, claims["role"])
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiration(), time.Minute)
}

func TestUserService_LoginRejects(t *testing.T) {
	h := newHarness(time.Now())
	ctx := context.Background()
	u, err := h.users.Register(ctx, schemas.RegisterRequest{Fullname: "Andi", Username: "andi", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, utils.RoleStaff, u.Role)

	_, err = h.users.Login(ctx, schemas.LoginRequest{Username: "andi", Password: "wrong-pass"})
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = h.users.Login(ctx, schemas.LoginRequest{Username: "nobody", Password: "password"})
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = h.users.Update(ctx, u.ID, schemas.UpdateUserRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)
	_, err = h.users.Login(ctx, schemas.LoginRequest{Username: "andi", Password: "password"})
	requireStatus(t, err, http.StatusForbidden)
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	h := newHarness(time.Now())
	ctx := context.Background()
	a, err := h.users.Register(ctx, schemas.RegisterRequest{Fullname: "A", Username: "a-user", Password: "password"})
	require.NoError(t, err)
	_, err = h.users.Register(ctx, schemas.RegisterRequest{Fullname: "B", Username: "b-user", Password: "password"})
	require.NoError(t, err)

	updated, err := h.users.Update(ctx, a.ID, schemas.UpdateUserRequest{Role: str("admin"), Password: str("new-password")})
	require.NoError(t, err)
	assert.Equal(t, utils.RoleAdmin, updated.Role)
	_, err = h.users.Login(ctx, schemas.LoginRequest{Username: "a-user", Password: "new-password"})
	require.NoError(t, err)

	_, err = h.users.Update(ctx, a.ID, schemas.UpdateUserRequest{Username: str("b-user")})
	requireStatus(t, err, http.StatusBadRequest)

	require.NoError(t, h.users.Delete(ctx, a.ID))
	_, err = h.users.GetByID(ctx, a.ID)
	requireStatus(t, err, http.StatusNotFound)
	requireStatus(t, h.users.Delete(ctx, a.ID), http.StatusNotFound)
	assert.NotNil(t, h.store.users[a.ID].DeletedAt, "the row is kept")

	_, err = h.users.Login(ctx, schemas.LoginRequest{Username: "a-user", Password: "new-password"})
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestDriverService(t *testing.T) {
	h := newHarness(time.Now())
	d, err := h.drivers.Create(context.Background(), schemas.DriverRequest{Name: "Joko", Phone: "0812"})
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)

	_, err = h.drivers.Create(context.Background(), schemas.DriverRequest{Phone: "0813"})
	var verr *utils.ValidationError
	assert.True(t, errors.As(err, &verr))

	list, err := h.drivers.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
