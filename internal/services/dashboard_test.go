package services

import (
	"context"
	"testing"

	"github.com/consultoria/portal/internal/models"
	"github.com/consultoria/portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDashboard(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	dashboards := NewDashboardService(db)
	projects := NewProjectService(db)

	alice := newClient(t, db, "alice@x.com")
	bob := newClient(t, db, "bob@x.com")
	_, err := projects.Create(ctx, CreateProjectInput{Name: "Alice site", ClientID: alice.ID})
	require.NoError(t, err)
	_, err = projects.Create(ctx, CreateProjectInput{Name: "Bob app", ClientID: bob.ID})
	require.NoError(t, err)

	view, err := dashboards.ClientDashboard(ctx, alice)
	require.NoError(t, err)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, "Alice site", view.Projects[0].Name)
	assert.Equal(t, alice.ID, view.Client.ID)
}

func TestClientDashboard_RejectsAdmin(t *testing.T) {
	dashboards := NewDashboardService(testutil.NewTestDB(t))

	_, err := dashboards.ClientDashboard(context.Background(), &models.User{ID: 1, Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAdminDashboard(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	dashboards := NewDashboardService(db)

	_, err := NewAuthService(db).CreateAdminIfNotExists(ctx, AdminSeed{Email: "admin@x.com", Password: "a", Name: "Admin"})
	require.NoError(t, err)
	admin, err := NewAuthService(db).Authenticate(ctx, "admin@x.com", "a")
	require.NoError(t, err)

	client := newClient(t, db, "c@x.com")
	_, err = NewProjectService(db).Create(ctx, CreateProjectInput{Name: "P", StartDate: "2024-01-01", ClientID: client.ID})
	require.NoError(t, err)

	view, err := dashboards.AdminDashboard(ctx, admin)
	require.NoError(t, err)
	require.Len(t, view.Clients, 1, "admins are not listed as clients")
	assert.Equal(t, client.ID, view.Clients[0].ID)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, models.ProjectStatuses, view.Statuses)
}

func TestAdminDashboard_RejectsClient(t *testing.T) {
	dashboards := NewDashboardService(testutil.NewTestDB(t))

	_, err := dashboards.AdminDashboard(context.Background(), &models.User{ID: 2, Role: models.RoleClient})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
