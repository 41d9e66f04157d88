package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories/repotest"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

func TestRegisterCreatesCustomer(t *testing.T) {
	db := repotest.NewDB()
	svc := services.NewAuthService(db.Users(), newIssuer())

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Password: "fresh-basil-42",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "fresh-basil-42", user.Password)

	stored, err := db.Users().FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterReportsEveryFieldProblem(t *testing.T) {
	svc := services.NewAuthService(repotest.NewDB().Users(), newIssuer())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "bad name!",
		Password: "123",
		Email:    "not-an-email",
	})
	appErr := requireKind(t, err, services.KindValidation)
	assert.Contains(t, appErr.Fields, "username")
	assert.Contains(t, appErr.Fields, "password")
	assert.Contains(t, appErr.Fields, "email")
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	db := repotest.NewDB()
	seedUser(t, db, "alice", models.RoleCustomer)
	svc := services.NewAuthService(db.Users(), newIssuer())

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "fresh-basil-42"})
	appErr := requireKind(t, err, services.KindValidation)
	assert.Equal(t, []string{"A user with that username already exists."}, appErr.Fields["username"])
}

func TestObtainTokenAndAuthenticate(t *testing.T) {
	db := repotest.NewDB()
	svc := services.NewAuthService(db.Users(), newIssuer())
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{Username: "bob", Password: "fresh-basil-42"})
	require.NoError(t, err)

	_, err = svc.ObtainToken(ctx, models.TokenRequest{Username: "bob", Password: "wrong-password"})
	requireKind(t, err, services.KindUnauthorized)

	_, err = svc.ObtainToken(ctx, models.TokenRequest{Username: "nobody", Password: "fresh-basil-42"})
	requireKind(t, err, services.KindUnauthorized)

	tokens, err := svc.ObtainToken(ctx, models.TokenRequest{Username: "bob", Password: "fresh-basil-42"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)

	user, err := svc.Authenticate(ctx, tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, tokens.Refresh)
	requireKind(t, err, services.KindUnauthorized)
}

func TestRefreshCarriesCurrentRole(t *testing.T) {
	db := repotest.NewDB()
	svc := services.NewAuthService(db.Users(), newIssuer())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "carol", Password: "fresh-basil-42"})
	require.NoError(t, err)
	tokens, err := svc.ObtainToken(ctx, models.TokenRequest{Username: "carol", Password: "fresh-basil-42"})
	require.NoError(t, err)

	require.NoError(t, svc.SetRole(ctx, "carol", models.RoleManager))

	refreshed, err := svc.Refresh(ctx, tokens.Refresh)
	require.NoError(t, err)
	assert.Empty(t, refreshed.Refresh)

	user, err := svc.Authenticate(ctx, refreshed.Access)
	require.NoError(t, err)
	assert.True(t, user.IsManager())

	_, err = svc.Refresh(ctx, tokens.Access)
	requireKind(t, err, services.KindUnauthorized)
}

func TestSetRoleValidation(t *testing.T) {
	svc := services.NewAuthService(repotest.NewDB().Users(), nil)

	requireKind(t, svc.SetRole(context.Background(), "nobody", "admin"), services.KindBadRequest)
	requireKind(t, svc.SetRole(context.Background(), "nobody", models.RoleManager), services.KindNotFound)
}
