package restapi_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitara/admin-media/internal/apitest"
	"github.com/habitara/admin-media/pkg/adminmedia"
	"github.com/habitara/admin-media/pkg/adminmedia/restapi"
)

const testToken = "test-token"

func newTestClient(t *testing.T) (*restapi.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(testToken)
	t.Cleanup(srv.Close)
	client := restapi.New(srv.URL(), restapi.Credentials{Token: testToken})
	return client, srv
}

func TestNewsCRUD(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t)

	created, err := client.CreateNews(ctx, adminmedia.CreateNewsRequest{
		Title:     "Entrega de llaves",
		Body:      "Detalle",
		Author:    "Redacción",
		Category:  "eventos",
		IsActive:  true,
		ImageURL:  "https://cdn.test/imagenes_noticias/a.jpg",
		ImagePath: "imagenes_noticias/a.jpg",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "imagenes_noticias/a.jpg", created.ImagePath)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := client.GetNews(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	list, err := client.ListNews(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	empty := ""
	updated, err := client.UpdateNews(ctx, created.ID, adminmedia.UpdateNewsRequest{
		Title:     "Entrega de llaves (actualizada)",
		Body:      "Detalle",
		Author:    "Redacción",
		Category:  "eventos",
		IsActive:  false,
		ImageURL:  &empty,
		ImagePath: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "Entrega de llaves (actualizada)", updated.Title)
	assert.Empty(t, updated.ImageURL)
	assert.Empty(t, updated.ImagePath)

	require.NoError(t, client.DeleteNews(ctx, created.ID))
	_, ok := srv.News(created.ID)
	assert.False(t, ok)
}

func TestNewsUpdateOmitsMediaFieldsWhenUnset(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t)

	seeded := srv.SeedNews(adminmedia.NewsArticle{
		Title:     "Con imagen",
		Body:      "b",
		Author:    "a",
		Category:  "c",
		ImageURL:  "https://cdn.test/imagenes_noticias/keep.jpg",
		ImagePath: "imagenes_noticias/keep.jpg",
	})

	updated, err := client.UpdateNews(ctx, seeded.ID, adminmedia.UpdateNewsRequest{
		Title:    "Con imagen (editada)",
		Body:     "b",
		Author:   "a",
		Category: "c",
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ImageURL, updated.ImageURL, "nil media fields must stay off the wire")
	assert.Equal(t, seeded.ImagePath, updated.ImagePath)
}

func TestPromotionCRUD(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t)

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)
	created, err := client.CreatePromotion(ctx, adminmedia.CreatePromotionRequest{
		Title:     "Preventa torre B",
		IsActive:  true,
		StartDate: &start,
		EndDate:   &end,
		MediaURL:  "https://cdn.test/videos_promos/tour.mp4",
		MediaPath: "videos_promos/tour.mp4",
		MediaKind: adminmedia.KindVideo,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, adminmedia.KindVideo, created.MediaKind)

	got, err := client.GetPromotion(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.MediaURL, got.MediaURL)

	list, err := client.ListPromotions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	kind := adminmedia.KindImage
	url := "https://cdn.test/imagenes_promos/banner.jpg"
	path := "imagenes_promos/banner.jpg"
	updated, err := client.UpdatePromotion(ctx, created.ID, adminmedia.UpdatePromotionRequest{
		Title:     "Preventa torre B (extendida)",
		IsActive:  true,
		MediaURL:  &url,
		MediaPath: &path,
		MediaKind: &kind,
	})
	require.NoError(t, err)
	assert.Equal(t, adminmedia.KindImage, updated.MediaKind)
	assert.Equal(t, path, updated.MediaPath)

	require.NoError(t, client.DeletePromotion(ctx, created.ID))
	_, ok := srv.Promotion(created.ID)
	assert.False(t, ok)
}

func TestValidationErrorDecoding(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	_, err := client.CreateNews(ctx, adminmedia.CreateNewsRequest{Title: "solo título"})

	var verr *adminmedia.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "validation failed", verr.Message)
	assert.Equal(t, "required", verr.Fields["body"])
	assert.Equal(t, "required", verr.Fields["author"])
	assert.Equal(t, "required", verr.Fields["category"])
	assert.NotContains(t, verr.Fields, "title")
}

func TestNotFoundDecoding(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	_, err := client.GetNews(ctx, "missing")
	require.ErrorIs(t, err, adminmedia.ErrNotFound)

	var apiErr *adminmedia.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestServerErrorDecoding(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t)

	srv.FailNext(500)
	_, err := client.CreateNews(ctx, adminmedia.CreateNewsRequest{
		Title: "t", Body: "b", Author: "a", Category: "c",
	})

	var apiErr *adminmedia.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "induced failure", apiErr.Message)
	assert.NotErrorIs(t, err, adminmedia.ErrNotFound)
}

func TestAuthRequired(t *testing.T) {
	ctx := context.Background()
	srv := apitest.NewServer(testToken)
	t.Cleanup(srv.Close)

	anon := restapi.New(srv.URL(), restapi.Credentials{})
	seeded := srv.SeedNews(adminmedia.NewsArticle{
		Title: "pública", Body: "b", Author: "a", Category: "c",
	})

	// Read endpoints for news are public.
	_, err := anon.ListNews(ctx)
	require.NoError(t, err)
	_, err = anon.GetNews(ctx, seeded.ID)
	require.NoError(t, err)

	// Everything else rejects missing credentials.
	_, err = anon.CreateNews(ctx, adminmedia.CreateNewsRequest{
		Title: "t", Body: "b", Author: "a", Category: "c",
	})
	var apiErr *adminmedia.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)

	_, err = anon.ListPromotions(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)

	wrong := restapi.New(srv.URL(), restapi.Credentials{Token: "wrong"})
	err = wrong.DeleteNews(ctx, seeded.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}
