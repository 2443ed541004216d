package services

import (
	"context"
	"errors"
	"testing"

	"github.com/consultoria/portal/internal/models"
	"github.com/consultoria/portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newClient(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := NewClientService(db).CreateClient(context.Background(), CreateClientInput{
		FirstName: "Client",
		LastName:  email,
		Email:     email,
		Password:  "pw",
	})
	require.NoError(t, err)
	return user
}

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantNil bool
		wantErr bool
	}{
		{in: "2024-03-15", want: "2024-03-15"},
		{in: " 2024-01-01 ", want: "2024-01-01"},
		{in: "", wantNil: true},
		{in: "15/03/2024", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStartDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format(models.StartDateLayout))
		})
	}
}

func TestCreateProject_StoresCalendarDate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	projects := NewProjectService(db)
	client := newClient(t, db, "c@x.com")

	created, err := projects.Create(ctx, CreateProjectInput{
		Name:      "Audit",
		Status:    "In Progress",
		StartDate: "2024-03-15",
		ClientID:  client.ID,
	})
	require.NoError(t, err)

	var stored models.Project
	require.NoError(t, db.First(&stored, created.ID).Error)
	require.NotNil(t, stored.StartDate)
	assert.Equal(t, 2024, stored.StartDate.Year())
	assert.Equal(t, 3, int(stored.StartDate.Month()))
	assert.Equal(t, 15, stored.StartDate.Day())
	assert.Equal(t, "2024-03-15", stored.StartDateString())
	assert.Equal(t, "In Progress", stored.Status)
}

func TestCreateProject_BadDatePersistsNothing(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	projects := NewProjectService(db)
	client := newClient(t, db, "c@x.com")

	_, err := projects.Create(ctx, CreateProjectInput{Name: "Bad", StartDate: "03/15/2024", ClientID: client.ID})
	assert.ErrorIs(t, err, ErrInvalidDate)

	total, err := projects.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCreateProject_Defaults(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	client := newClient(t, db, "c@x.com")

	project, err := NewProjectService(db).Create(ctx, CreateProjectInput{Name: "No date", ClientID: client.ID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, project.Status)
	assert.Nil(t, project.StartDate)
}

func TestCreateProject_UnknownClient(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	projects := NewProjectService(db)

	_, err := projects.Create(ctx, CreateProjectInput{Name: "Orphan", StartDate: "2024-01-01", ClientID: 42})
	assert.True(t, errors.Is(err, ErrNotFound))

	total, err := projects.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCreateProject_NotIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	projects := NewProjectService(db)
	client := newClient(t, db, "c@x.com")

	in := CreateProjectInput{Name: "Same", Status: "Pending", StartDate: "2024-01-01", ClientID: client.ID}
	_, err := projects.Create(ctx, in)
	require.NoError(t, err)
	_, err = projects.Create(ctx, in)
	require.NoError(t, err)

	list, err := projects.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListByClient_Isolation(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	projects := NewProjectService(db)

	me := newClient(t, db, "me@x.com")
	others := []*models.User{newClient(t, db, "o1@x.com"), newClient(t, db, "o2@x.com"), newClient(t, db, "o3@x.com")}

	_, err := projects.Create(ctx, CreateProjectInput{Name: "Mine", ClientID: me.ID})
	require.NoError(t, err)
	for i, other := range others {
		for j := 0; j <= i; j++ {
			_, err := projects.Create(ctx, CreateProjectInput{Name: "Theirs", ClientID: other.ID})
			require.NoError(t, err)
		}
	}

	list, err := projects.ListByClient(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	for _, p := range list {
		assert.Equal(t, me.ID, p.ClientID)
	}
}

func TestListAll_OrderAndJoin(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	projects := NewProjectService(db)
	client := newClient(t, db, "c@x.com")

	for _, in := range []CreateProjectInput{
		{Name: "Undated", ClientID: client.ID},
		{Name: "Old", StartDate: "2023-05-01", ClientID: client.ID},
		{Name: "New", StartDate: "2024-06-01", ClientID: client.ID},
		{Name: "Middle", StartDate: "2024-01-01", ClientID: client.ID},
	} {
		_, err := projects.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := projects.ListAll(ctx)
	require.NoError(t, err)

	var names []string
	for _, p := range list {
		names = append(names, p.Name)
		assert.Equal(t, client.Name, p.ClientName())
	}
	assert.Equal(t, []string{"New", "Middle", "Old", "Undated"}, names)
}
