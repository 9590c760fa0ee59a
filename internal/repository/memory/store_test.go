package memory

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/ong-backend/internal/models"
	"github.com/baharkarakas/ong-backend/internal/repository"
)

func TestUsers_CreateEnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	alice, err := repos.Users.Create(ctx, models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	tests := []struct {
		name      string
		in        models.User
		wantField string
	}{
		{name: "same email", in: models.User{Username: "other", Email: "a@x.com"}, wantField: "email"},
		{name: "same username", in: models.User{Username: "alice", Email: "b@x.com"}, wantField: "username"},
		{name: "both taken reports email", in: models.User{Username: "alice", Email: "a@x.com"}, wantField: "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repos.Users.Create(ctx, tt.in)
			var dup *repository.DuplicateError
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tt.wantField, dup.Field)
		})
	}
}

func TestUsers_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	var ok atomic.Int32
	var g errgroup.Group
	for i := range 16 {
		g.Go(func() error {
			_, err := repos.Users.Create(ctx, models.User{Username: fmt.Sprintf("u%d", i), Email: "same@x.com"})
			if err == nil {
				ok.Add(1)
				return nil
			}
			if !assert.ErrorIs(t, err, repository.ErrDuplicate) {
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), ok.Load())

	all, err := repos.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUsers_Lookups(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	alice, err := repos.Users.Create(ctx, models.User{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	bob, err := repos.Users.Create(ctx, models.User{Username: "bob", Email: "b@x.com"})
	require.NoError(t, err)

	got, err := repos.Users.GetByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	_, err = repos.Users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// email match wins over a username match on another user
	got, err = repos.Users.FindByEmailOrUsername(ctx, "a@x.com", "bob")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = repos.Users.FindByEmailOrUsername(ctx, "c@x.com", "carol")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repos.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].Username)
}

func TestResources_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	alice, err := repos.Users.Create(ctx, models.User{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repos.Resources.Create(ctx, models.Resource{Name: "x", Owner: models.User{ID: "ghost"}})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	r1, err := repos.Resources.Create(ctx, models.Resource{Name: "Green", Description: "d", CreatedYear: 2001, Owner: models.User{ID: alice.ID}})
	require.NoError(t, err)
	assert.Equal(t, "alice", r1.Owner.Username)
	r2, err := repos.Resources.Create(ctx, models.Resource{Name: "Blue", Description: "d", CreatedYear: 2002, Owner: models.User{ID: alice.ID}})
	require.NoError(t, err)

	name := "Greener"
	updated, err := repos.Resources.Update(ctx, r1.ID, models.ResourcePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Greener", updated.Name)
	assert.Equal(t, "d", updated.Description)
	assert.Equal(t, 2001, updated.CreatedYear)
	assert.Equal(t, alice.ID, updated.Owner.ID)

	owned, err := repos.Resources.OwnedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{r1.ID, r2.ID}, owned[alice.ID])

	require.NoError(t, repos.Resources.Delete(ctx, r1.ID))
	assert.ErrorIs(t, repos.Resources.Delete(ctx, r1.ID), repository.ErrNotFound)

	_, err = repos.Resources.GetByID(ctx, r1.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repos.Resources.Update(ctx, r1.ID, models.ResourcePatch{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repos.Resources.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r2.ID, list[0].ID)
}

func TestResources_InterleavedPatchesKeepEachOthersFields(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	alice, err := repos.Users.Create(ctx, models.User{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	r, err := repos.Resources.Create(ctx, models.Resource{Name: "Green", Description: "trees", CreatedYear: 1999, Owner: models.User{ID: alice.ID}})
	require.NoError(t, err)

	var g errgroup.Group
	for i := range 20 {
		g.Go(func() error {
			if i%2 == 0 {
				name := fmt.Sprintf("name-%d", i)
				_, err := repos.Resources.Update(ctx, r.ID, models.ResourcePatch{Name: &name})
				return err
			}
			year := 2000 + i
			_, err := repos.Resources.Update(ctx, r.ID, models.ResourcePatch{CreatedYear: &year})
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err := repos.Resources.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "trees", got.Description)
	assert.NotEqual(t, "Green", got.Name)
	assert.NotEqual(t, 1999, got.CreatedYear)
}
