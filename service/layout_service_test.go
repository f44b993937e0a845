package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-home/logging"
	"storefront-home/models"
)

func newTestLayoutService(stores *fakeStores) *LayoutService {
	catalog := &fakeCatalogRepo{
		categories: []models.CategoryInfo{{ID: "c1", Name: "Bakery"}},
		tags:       []models.TagInfo{{ID: "t1", Name: "Vegan"}},
	}
	return NewLayoutService(stores, catalog, logging.Discard())
}

func TestLayoutService_GetLayout(t *testing.T) {
	stores := seededStores()
	svc := newTestLayoutService(stores)

	data, err := svc.GetLayout(context.Background(), "b1")
	require.NoError(t, err)
	assert.NotNil(t, data.LayoutDraft)
	assert.Len(t, data.LayoutPublished, 4)

	_, err = svc.GetLayout(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrStoreNotFound))
}

func TestLayoutService_SaveDraftDoesNotValidate(t *testing.T) {
	stores := seededStores()
	svc := newTestLayoutService(stores)

	draft := models.StoreLayout{{SectionID: "wip", SectionType: models.SectionTypeBaseCategory}}
	saved, err := svc.SaveDraft(context.Background(), "b1", draft)
	require.NoError(t, err)
	assert.Equal(t, draft, saved)
	assert.Equal(t, draft, stores.drafts["b1"])

	_, err = svc.SaveDraft(context.Background(), "nope", draft)
	assert.True(t, errors.Is(err, ErrStoreNotFound))
}

func TestLayoutService_Publish(t *testing.T) {
	stores := seededStores()
	svc := newTestLayoutService(stores)
	ctx := context.Background()

	_, err := svc.Publish(ctx, "b1", models.StoreLayout{})
	assert.True(t, errors.Is(err, ErrEmptyLayout))

	invalid := models.StoreLayout{categorySection("c", models.LayoutStyleGrid)}
	errs, err := svc.Publish(ctx, "b1", invalid)
	assert.True(t, errors.Is(err, ErrInvalidLayout))
	require.Len(t, errs, 1)
	assert.Equal(t, "source.ids", errs[0].Field)

	valid := models.StoreLayout{bannerSection("hero"), categorySection("c", models.LayoutStyleGrid, "c1")}
	errs, err = svc.Publish(ctx, "b1", valid)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, valid, stores.published["b1"])

	_, err = svc.Publish(ctx, "nope", valid)
	assert.True(t, errors.Is(err, ErrStoreNotFound))
}

func TestLayoutService_Selectors(t *testing.T) {
	svc := newTestLayoutService(seededStores())
	ctx := context.Background()

	categories, err := svc.Categories(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Bakery", categories[0].Name)

	tags, err := svc.Tags(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Vegan", tags[0].Name)

	_, err = svc.Tags(ctx, "nope")
	assert.True(t, errors.Is(err, ErrStoreNotFound))
}
