package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/maska/internal/model"
	"github.com/deppfellow/maska/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var joined = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func member(cin string, number int32) model.Member {
	return model.NewMember("John", "Doe", cin, "American", joined, joined.AddDate(1, 0, 0), number)
}

func newMemoryMembers(t *testing.T) *MemoryGateway[model.Member] {
	t.Helper()
	g, err := NewMemoryGateway(MemberTable())
	require.NoError(t, err)
	return g
}

func TestMemoryGateway_SaveAssignsIDs(t *testing.T) {
	ctx := context.Background()
	g := newMemoryMembers(t)

	first, err := g.Save(ctx, member("PA123456", 889939))
	require.NoError(t, err)
	second, err := g.Save(ctx, member("PA123457", 889940))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	all, err := g.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "PA123456", all[0].CIN)
	assert.Equal(t, "PA123457", all[1].CIN)
}

func TestMemoryGateway_DuplicateCINRejected(t *testing.T) {
	ctx := context.Background()
	g := newMemoryMembers(t)

	_, err := g.Save(ctx, member("PA123456", 889939))
	require.NoError(t, err)
	_, err = g.Save(ctx, member("PA123457", 889940))
	require.NoError(t, err)

	_, err = g.Save(ctx, member("PA123456", 889941))
	require.Error(t, err)

	var pgerr *pgconn.PgError
	require.True(t, errors.As(err, &pgerr))
	assert.Equal(t, "members_cin_key", pgerr.ConstraintName)
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))

	all, err := g.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryGateway_DuplicateMembershipNumberRejected(t *testing.T) {
	ctx := context.Background()
	g := newMemoryMembers(t)

	_, err := g.Save(ctx, member("PA123456", 889939))
	require.NoError(t, err)

	_, err = g.Save(ctx, member("PA999999", 889939))
	var pgerr *pgconn.PgError
	require.True(t, errors.As(err, &pgerr))
	assert.Equal(t, "members_membership_number_key", pgerr.ConstraintName)
}

func TestMemoryGateway_FindByID(t *testing.T) {
	ctx := context.Background()
	g := newMemoryMembers(t)

	saved, err := g.Save(ctx, member("PA123456", 889939))
	require.NoError(t, err)

	found, ok, err := g.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, saved, found)

	_, ok, err = g.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryGateway_Update(t *testing.T) {
	ctx := context.Background()
	g := newMemoryMembers(t)

	saved, err := g.Save(ctx, member("PA123456", 889939))
	require.NoError(t, err)
	other, err := g.Save(ctx, member("PA123457", 889940))
	require.NoError(t, err)

	saved.Nationality = "British"
	updated, err := g.Update(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, "British", updated.Nationality)

	// Keeping its own cin is not a conflict; taking another member's is.
	other.CIN = "PA123456"
	_, err = g.Update(ctx, other)
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))

	found, _, err := g.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "PA123457", found.CIN)
}

func TestMemoryGateway_SaveWithIDUpdates(t *testing.T) {
	ctx := context.Background()
	g := newMemoryMembers(t)

	saved, err := g.Save(ctx, member("PA123456", 889939))
	require.NoError(t, err)

	saved.FirstName = "Johnny"
	resaved, err := g.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, resaved.ID)

	all, err := g.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Johnny", all[0].FirstName)
}

func TestMemoryGateway_UpdateMissing(t *testing.T) {
	g := newMemoryMembers(t)

	m := member("PA123456", 889939)
	m.ID = 9
	_, err := g.Update(context.Background(), m)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestMemoryGateway_Delete(t *testing.T) {
	ctx := context.Background()
	g := newMemoryMembers(t)

	first, err := g.Save(ctx, member("PA123456", 889939))
	require.NoError(t, err)
	_, err = g.Save(ctx, member("PA123457", 889940))
	require.NoError(t, err)

	deleted, err := g.Delete(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first, deleted)

	all, err := g.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "PA123457", all[0].CIN)

	_, err = g.Delete(ctx, first)
	assert.True(t, IsNotFound(err))

	// A freed cin can be reused, ids are never.
	again, err := g.Save(ctx, member("PA123456", 889939))
	require.NoError(t, err)
	assert.Equal(t, int64(3), again.ID)
}

func TestMemoryGateway_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	g := newMemoryMembers(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Save(ctx, member("PA123456", 889939))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok)

	all, err := g.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
