package dynamorepo

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyinventory/internal/domain"
	apperror "easyinventory/internal/errors"
	"easyinventory/internal/pkg/logger"
)

func newTestStore(fake *fakeDynamo) *Store {
	store := NewStore(fake, "spaces", "items", time.Second, logger.NewLoggerWithWriter("error", &bytes.Buffer{}))

	// Relógio determinístico: cada chamada avança um segundo.
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.nowFunc = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return store
}

func TestStore_SpaceRoundTrip(t *testing.T) {
	store := newTestStore(newFakeDynamo("spaces", "items"))
	ctx := context.Background()

	created, err := store.CreateSpace(ctx, domain.Space{Name: "Main Warehouse", Location: "Building A", Type: domain.SpaceTypeWarehouse, Description: "HQ"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := store.GetSpaceByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	created.Location = "Building B"
	updated, err := store.UpdateSpace(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Building B", updated.Location)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	require.NoError(t, store.DeleteSpace(ctx, created.ID))
	_, err = store.GetSpaceByID(ctx, created.ID)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestStore_GetAllSpacesPaginatesAndSortsNewestFirst(t *testing.T) {
	store := newTestStore(newFakeDynamo("spaces", "items"))
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		s, err := store.CreateSpace(ctx, domain.Space{Name: name, Location: "x", Type: domain.SpaceTypeOther})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	all, err := store.GetAllSpaces(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5, "pageSize=2 força três páginas")
	assert.Equal(t, ids[4], all[0].ID)
	assert.Equal(t, ids[0], all[4].ID)
}

func TestStore_MissingSpace(t *testing.T) {
	store := newTestStore(newFakeDynamo("spaces", "items"))
	ctx := context.Background()

	_, err := store.UpdateSpace(ctx, domain.Space{ID: "nope", Name: "x", Location: "y"})
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.IsType(t, &apperror.NotFoundError{}, store.DeleteSpace(ctx, "nope"))
}

func TestStore_Items(t *testing.T) {
	store := newTestStore(newFakeDynamo("spaces", "items"))
	ctx := context.Background()

	widget, err := store.CreateItem(ctx, domain.Item{Name: "Widget", Category: "Hardware", Quantity: 2, MinStock: 5, Price: 1.5, Supplier: "ACME", SpaceID: "s1"})
	require.NoError(t, err)
	bolt, err := store.CreateItem(ctx, domain.Item{Name: "Bolt", Category: "Hardware", Quantity: 10, Price: 0.1, SpaceID: "s1"})
	require.NoError(t, err)
	nut, err := store.CreateItem(ctx, domain.Item{Name: "Nut", Category: "Hardware", SpaceID: "s1"})
	require.NoError(t, err)
	_, err = store.CreateItem(ctx, domain.Item{Name: "Elsewhere", Category: "Misc", SpaceID: "s2"})
	require.NoError(t, err)

	items, err := store.GetItemsBySpace(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{nut.ID, bolt.ID, widget.ID}, []string{items[0].ID, items[1].ID, items[2].ID})

	qty, err := store.UpdateItemQuantity(ctx, widget.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, qty.Quantity)
	assert.Equal(t, widget.Name, qty.Name)
	assert.Equal(t, widget.Supplier, qty.Supplier)
	assert.Equal(t, widget.Price, qty.Price)
	assert.Equal(t, widget.MinStock, qty.MinStock)
	assert.Equal(t, widget.CreatedAt, qty.CreatedAt)

	bolt.Category = "Fasteners"
	updated, err := store.UpdateItem(ctx, bolt)
	require.NoError(t, err)
	assert.Equal(t, "Fasteners", updated.Category)

	_, err = store.UpdateItemQuantity(ctx, "missing", 1)
	assert.IsType(t, &apperror.NotFoundError{}, err)

	require.NoError(t, store.DeleteItem(ctx, nut.ID))
	assert.IsType(t, &apperror.NotFoundError{}, store.DeleteItem(ctx, nut.ID))

	removed, err := store.DeleteItemsBySpace(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	remaining, err := store.GetItemsBySpace(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestStore_DriverFailureIsDBError(t *testing.T) {
	fake := newFakeDynamo("spaces", "items")
	store := newTestStore(fake)
	fake.failWith = errors.New("throttled")

	_, err := store.GetAllSpaces(context.Background())
	require.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "throttled")

	assert.Error(t, store.Ping(context.Background()))
}

func TestStore_EnsureTables(t *testing.T) {
	fake := newFakeDynamo()
	store := newTestStore(fake)
	ctx := context.Background()

	assert.Error(t, store.Ping(ctx))
	require.NoError(t, store.EnsureTables(ctx))
	assert.NoError(t, store.Ping(ctx))
	require.NoError(t, store.EnsureTables(ctx), "idempotente")
}

func TestIsConditionFailure(t *testing.T) {
	assert.True(t, isConditionFailure(&types.ConditionalCheckFailedException{}))
	assert.True(t, isConditionFailure(&smithy.GenericAPIError{Code: "ConditionalCheckFailedException"}))
	assert.False(t, isConditionFailure(&smithy.GenericAPIError{Code: "ThrottlingException"}))
	assert.False(t, isConditionFailure(errors.New("boom")))
}
