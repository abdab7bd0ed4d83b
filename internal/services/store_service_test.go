package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/models"
	"storefront_backend/internal/services"
	"storefront_backend/internal/services/dto"
)

func floatPtr(v float64) *float64 { return &v }

func createRequest(name string) *dto.CreateStoreRequest {
	return &dto.CreateStoreRequest{
		Name:    name,
		Lng:     floatPtr(76.9),
		Lat:     floatPtr(43.2),
		Address: "1 Main Street",
	}
}

func TestStoreService_Create_SlugDeduplication(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	first, err := svc.Create("user-1", createRequest("Cafe"))
	require.NoError(t, err)
	assert.Equal(t, "cafe", first.Slug)

	second, err := svc.Create("user-1", createRequest("Cafe"))
	require.NoError(t, err)
	assert.Equal(t, "cafe-2", second.Slug)

	third, err := svc.Create("user-2", createRequest("Cafe"))
	require.NoError(t, err)
	assert.Equal(t, "cafe-3", third.Slug)

	// A name that only shares a prefix must not collide.
	other, err := svc.Create("user-1", createRequest("Cafe Deluxe"))
	require.NoError(t, err)
	assert.Equal(t, "cafe-deluxe", other.Slug)
}

func TestStoreService_Create_SetsAuthor(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	store, err := svc.Create("user-7", createRequest("Bakery"))
	require.NoError(t, err)
	assert.Equal(t, "user-7", store.AuthorID)
	assert.Equal(t, 76.9, store.Lng)
	assert.Equal(t, 43.2, store.Lat)
}

func TestStoreService_Update_OwnershipAndSlug(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	store, err := svc.Create("owner-1", createRequest("Tea House"))
	require.NoError(t, err)
	require.Equal(t, "tea-house", store.Slug)

	update := &dto.UpdateStoreRequest{
		Name:    "Tea House",
		Tags:    []string{"tea"},
		Lng:     floatPtr(76.9),
		Lat:     floatPtr(43.2),
		Address: "2 Side Street",
	}

	// A stranger is rejected.
	_, err = svc.Update(store.ID, "stranger", 1, update)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	// The owner can edit; the slug is untouched when the name is the same.
	updated, err := svc.Update(store.ID, "owner-1", 1, update)
	require.NoError(t, err)
	assert.Equal(t, "tea-house", updated.Slug)
	assert.Equal(t, "2 Side Street", updated.Address)
	assert.Equal(t, "owner-1", updated.AuthorID)

	// An admin above the threshold can edit anyone's store.
	update.Name = "Chai House"
	updated, err = svc.Update(store.ID, "admin-1", models.AdminLevel+1, update)
	require.NoError(t, err)
	assert.Equal(t, "chai-house", updated.Slug)
	// The author never changes hands on edit.
	assert.Equal(t, "owner-1", updated.AuthorID)
}

func TestStoreService_Update_LevelAtThresholdIsNotAdmin(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	store, err := svc.Create("owner-1", createRequest("Diner"))
	require.NoError(t, err)

	update := &dto.UpdateStoreRequest{
		Name:    "Diner",
		Lng:     floatPtr(76.9),
		Lat:     floatPtr(43.2),
		Address: "1 Main Street",
	}

	_, err = svc.Update(store.ID, "someone-else", models.AdminLevel, update)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
}

func TestStoreService_Update_PhotoKeptWhenNotReplaced(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	req := createRequest("Grill")
	req.Photo = "abc.jpeg"
	store, err := svc.Create("owner-1", req)
	require.NoError(t, err)

	update := &dto.UpdateStoreRequest{
		Name:    "Grill",
		Lng:     floatPtr(76.9),
		Lat:     floatPtr(43.2),
		Address: "1 Main Street",
	}

	updated, err := svc.Update(store.ID, "owner-1", 1, update)
	require.NoError(t, err)
	assert.Equal(t, "abc.jpeg", updated.Photo)

	update.Photo = "new.png"
	updated, err = svc.Update(store.ID, "owner-1", 1, update)
	require.NoError(t, err)
	assert.Equal(t, "new.png", updated.Photo)
}

func TestStoreService_List_Pagination(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	for i := 0; i < 17; i++ {
		_, err := svc.Create("user-1", createRequest(fmt.Sprintf("Store %d", i)))
		require.NoError(t, err)
	}

	first, err := svc.List(1)
	require.NoError(t, err)
	assert.Len(t, first.Stores, services.StorePageSize)
	assert.Equal(t, 5, first.Pages)
	assert.Equal(t, int64(17), first.Count)

	last, err := svc.List(5)
	require.NoError(t, err)
	assert.Len(t, last.Stores, 1)
	assert.Equal(t, 5, last.Page)
}

func TestStoreService_List_PageOutOfRange(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	for i := 0; i < 17; i++ {
		_, err := svc.Create("user-1", createRequest(fmt.Sprintf("Store %d", i)))
		require.NoError(t, err)
	}

	_, err := svc.List(6)
	var pageErr *services.PageOutOfRangeError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 6, pageErr.Page)
	assert.Equal(t, 5, pageErr.LastPage)
}

func TestStoreService_List_EmptyDatabaseIsNotAnError(t *testing.T) {
	t.Parallel()

	svc := services.NewStoreService(newFakeStoreRepo())

	response, err := svc.List(1)
	require.NoError(t, err)
	assert.Empty(t, response.Stores)
	assert.Equal(t, 0, response.Pages)
}

func TestStoreService_GetBySlug_NotFound(t *testing.T) {
	t.Parallel()

	svc := services.NewStoreService(newFakeStoreRepo())

	_, err := svc.GetBySlug("no-such-store")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestStoreService_TagsPage(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	tagged := createRequest("Wifi Cafe")
	tagged.Tags = []string{"wifi", "family-friendly"}
	_, err := svc.Create("user-1", tagged)
	require.NoError(t, err)

	plain := createRequest("Plain Diner")
	_, err = svc.Create("user-1", plain)
	require.NoError(t, err)

	page, err := svc.TagsPage("wifi")
	require.NoError(t, err)
	assert.Equal(t, "wifi", page.Tag)
	assert.Len(t, page.Stores, 1)
	assert.Len(t, page.Tags, 2)

	// No tag selected: only stores that carry tags at all.
	all, err := svc.TagsPage("")
	require.NoError(t, err)
	assert.Len(t, all.Stores, 1)
}

func TestStoreService_HeartedBy(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo()
	svc := services.NewStoreService(repo)

	a, err := svc.Create("user-1", createRequest("First"))
	require.NoError(t, err)
	_, err = svc.Create("user-1", createRequest("Second"))
	require.NoError(t, err)

	user := &models.User{Hearts: []string{a.ID}}
	stores, err := svc.HeartedBy(user)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "First", stores[0].Name)
}
