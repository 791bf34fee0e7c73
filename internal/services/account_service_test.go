package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpify.com/helpify/internal/auth"
	"helpify.com/helpify/internal/constants"
	apperrors "helpify.com/helpify/internal/errors"
)

func TestAccountService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.accounts.Register(ctx, RegisterInput{
		Fullname: "  Carla Client ",
		Email:    "Carla@Example.com",
		Password: "correct horse",
		UserType: constants.UserTypeClient,
	})
	require.NoError(t, err)
	assert.Equal(t, "Carla Client", user.Fullname)
	assert.Equal(t, "carla@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	session, err := f.accounts.Login(ctx, "CARLA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)

	claims, err := auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", 0).Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, constants.UserTypeClient, claims.UserType)

	_, err = f.accounts.Login(ctx, "carla@example.com", "wrong password")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	_, err = f.accounts.Login(ctx, "nobody@example.com", "correct horse")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestAccountService_RegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	valid := RegisterInput{
		Fullname: "Hank Helper",
		Email:    "hank@example.com",
		Password: "long enough",
		UserType: constants.UserTypeHelper,
	}

	cases := map[string]func(in *RegisterInput){
		"short name":   func(in *RegisterInput) { in.Fullname = "H" },
		"bad email":    func(in *RegisterInput) { in.Email = "not-an-email" },
		"display name": func(in *RegisterInput) { in.Email = "Hank <hank@example.com>" },
		"short pass":   func(in *RegisterInput) { in.Password = "short" },
		"bad type":     func(in *RegisterInput) { in.UserType = "admin" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := f.accounts.Register(ctx, in)
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}

	_, err := f.accounts.Register(ctx, valid)
	require.NoError(t, err)

	dup := valid
	dup.Email = "HANK@example.com"
	_, err = f.accounts.Register(ctx, dup)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestAccountService_Profile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	helper := f.helper(t, "Hank Helper")

	user, err := f.accounts.UpdateProfile(ctx, helper, "Hank H.", "  Handy with tools.  ")
	require.NoError(t, err)
	assert.Equal(t, "Hank H.", user.Fullname)
	assert.Equal(t, "Handy with tools.", user.Bio)

	got, err := f.accounts.GetProfile(ctx, helper)
	require.NoError(t, err)
	assert.Equal(t, "Hank H.", got.Fullname)

	_, err = f.accounts.UpdateProfile(ctx, helper, " ", "")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = f.accounts.GetProfile(ctx, Actor{UserID: "ghost", UserType: constants.UserTypeHelper})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = f.accounts.GetProfile(ctx, Actor{})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestAccountService_RegisterConcurrentDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := RegisterInput{
		Fullname: "Dora Duplicate",
		Email:    "dora@example.com",
		Password: "long enough",
		UserType: constants.UserTypeClient,
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.accounts.Register(ctx, in)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicts)
}

func TestAccountService_LoginUnknownEmailComparesDummyHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var hashes []string
	f.accounts.checkPassword = func(password, hash string) bool {
		hashes = append(hashes, hash)
		return auth.CheckPassword(password, hash)
	}

	_, err := f.accounts.Login(ctx, "nobody@example.com", "correct horse")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	require.Len(t, hashes, 1)
	assert.Equal(t, auth.DummyHash(), hashes[0])
}
