package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/pkg/ctx"
)

func testContext() *ctx.Context {
	return ctx.NewContext(context.Background(), zap.NewNop().Sugar())
}

func newImageFixture() (*ImageService, *fakeImageRepo, *fakeCategoryRepo, *fakeStorageProvider) {
	images := newFakeImageRepo()
	categoryRepo := newFakeCategoryRepo(images)
	provider := newFakeStorageProvider()
	svc := NewImageService(testContext(), images, categoryRepo, provider)
	return svc, images, categoryRepo, provider
}

func TestCreateImageValidation(t *testing.T) {
	svc, _, _, _ := newImageFixture()

	_, err := svc.CreateImage(&model.CreateImageReq{OriginalUrl: "http://x/a.jpg"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.CreateImage(&model.CreateImageReq{Alt: "sunset"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.CreateImage(&model.CreateImageReq{Alt: "sunset", OriginalUrl: "not a url"})
	assert.ErrorIs(t, err, ErrInvalid)

	image, err := svc.CreateImage(&model.CreateImageReq{
		Alt: "sunset", OriginalUrl: "http://cdn.example.com/a.jpg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, image.ImageId)
	assert.Equal(t, model.ImageVisible, image.IsVisible)
}

func TestUpdateImage(t *testing.T) {
	svc, _, _, _ := newImageFixture()

	image, err := svc.CreateImage(&model.CreateImageReq{
		Alt: "sunset", OriginalUrl: "http://cdn.example.com/a.jpg",
	})
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdateImage(image.ImageId, &model.UpdateImageReq{Alt: &empty})
	assert.ErrorIs(t, err, ErrInvalid)

	title := "Sunset over the bay"
	hidden := model.ImageInvisible
	updated, err := svc.UpdateImage(image.ImageId, &model.UpdateImageReq{Title: &title, IsVisible: &hidden})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, model.ImageInvisible, updated.IsVisible)
	assert.Equal(t, "sunset", updated.Alt)
}

func TestDeleteImageCleansUp(t *testing.T) {
	svc, images, categoryRepo, provider := newImageFixture()

	require.NoError(t, categoryRepo.CreateCategory(&model.Category{CategoryId: "cat1", Name: "L", Slug: "l"}))
	provider.objects["a.jpg"] = []byte("x")
	provider.objects["thumb_a.jpg"] = []byte("y")

	image, err := svc.CreateImage(&model.CreateImageReq{
		Alt:          "sunset",
		OriginalUrl:  "http://cdn.example.com/files/a.jpg",
		ThumbnailUrl: "http://cdn.example.com/files/thumb_a.jpg",
	})
	require.NoError(t, err)
	require.NoError(t, images.CreateAssociation(&model.CategoryImage{CategoryId: "cat1", ImageId: image.ImageId}))

	require.NoError(t, svc.DeleteImage(image.ImageId))

	_, err = images.GetImage(image.ImageId)
	assert.Error(t, err)
	_, err = images.GetAssociation("cat1", image.ImageId)
	assert.Error(t, err)
	assert.False(t, provider.has("a.jpg"))
	assert.False(t, provider.has("thumb_a.jpg"))
}

func TestDeleteImageStorageFailureIsNonFatal(t *testing.T) {
	svc, images, _, provider := newImageFixture()

	provider.objects["a.jpg"] = []byte("x")
	provider.setFailDel("a.jpg")

	image, err := svc.CreateImage(&model.CreateImageReq{
		Alt: "sunset", OriginalUrl: "http://cdn.example.com/files/a.jpg",
	})
	require.NoError(t, err)

	// DB record is gone even though the storage delete failed
	require.NoError(t, svc.DeleteImage(image.ImageId))
	_, err = images.GetImage(image.ImageId)
	assert.Error(t, err)
	assert.True(t, provider.has("a.jpg"))
}

func TestAssociateImage(t *testing.T) {
	svc, _, categoryRepo, _ := newImageFixture()

	require.NoError(t, categoryRepo.CreateCategory(&model.Category{CategoryId: "cat1", Name: "L", Slug: "l"}))
	image, err := svc.CreateImage(&model.CreateImageReq{Alt: "a", OriginalUrl: "http://x/a.jpg"})
	require.NoError(t, err)

	_, err = svc.AssociateImage("missing", &model.AssociateImageReq{ImageId: image.ImageId})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AssociateImage("cat1", &model.AssociateImageReq{ImageId: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	assoc, err := svc.AssociateImage("cat1", &model.AssociateImageReq{ImageId: image.ImageId, Order: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, assoc.Order)

	// duplicate association rejected
	_, err = svc.AssociateImage("cat1", &model.AssociateImageReq{ImageId: image.ImageId})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCarouselOrderCollision(t *testing.T) {
	svc, _, categoryRepo, _ := newImageFixture()

	require.NoError(t, categoryRepo.CreateCategory(&model.Category{CategoryId: "cat1", Name: "L", Slug: "l"}))
	first, err := svc.CreateImage(&model.CreateImageReq{Alt: "a", OriginalUrl: "http://x/a.jpg"})
	require.NoError(t, err)
	second, err := svc.CreateImage(&model.CreateImageReq{Alt: "b", OriginalUrl: "http://x/b.jpg"})
	require.NoError(t, err)

	_, err = svc.AssociateImage("cat1", &model.AssociateImageReq{
		ImageId: first.ImageId, IsCarousel: model.InCarousel, CarouselOrder: 1,
	})
	require.NoError(t, err)

	// same carousel slot in the same category is rejected
	_, err = svc.AssociateImage("cat1", &model.AssociateImageReq{
		ImageId: second.ImageId, IsCarousel: model.InCarousel, CarouselOrder: 1,
	})
	assert.ErrorIs(t, err, ErrInvalid)

	// a different slot works
	_, err = svc.AssociateImage("cat1", &model.AssociateImageReq{
		ImageId: second.ImageId, IsCarousel: model.InCarousel, CarouselOrder: 2,
	})
	require.NoError(t, err)

	// moving an image onto its own slot is fine
	_, err = svc.UpdateAssociation("cat1", first.ImageId, &model.AssociateImageReq{
		IsCarousel: model.InCarousel, CarouselOrder: 1,
	})
	assert.NoError(t, err)

	// moving onto an occupied slot is rejected
	_, err = svc.UpdateAssociation("cat1", first.ImageId, &model.AssociateImageReq{
		IsCarousel: model.InCarousel, CarouselOrder: 2,
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestListCategoryImagesVisibility(t *testing.T) {
	svc, images, categoryRepo, _ := newImageFixture()

	require.NoError(t, categoryRepo.CreateCategory(&model.Category{CategoryId: "cat1", Name: "L", Slug: "l"}))
	require.NoError(t, images.CreateImage(&model.Image{ImageId: "v", Alt: "a", OriginalUrl: "http://x/v.jpg", IsVisible: model.ImageVisible}))
	require.NoError(t, images.CreateImage(&model.Image{ImageId: "h", Alt: "b", OriginalUrl: "http://x/h.jpg", IsVisible: model.ImageInvisible}))
	require.NoError(t, images.CreateAssociation(&model.CategoryImage{CategoryId: "cat1", ImageId: "v", Order: 1}))
	require.NoError(t, images.CreateAssociation(&model.CategoryImage{CategoryId: "cat1", ImageId: "h", Order: 2}))

	public, err := svc.ListCategoryImages("cat1", false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "v", public[0].Image.ImageId)

	admin, err := svc.ListCategoryImages("cat1", true)
	require.NoError(t, err)
	assert.Len(t, admin, 2)
}

func TestListCarouselImages(t *testing.T) {
	svc, images, categoryRepo, _ := newImageFixture()

	require.NoError(t, categoryRepo.CreateCategory(&model.Category{CategoryId: "cat1", Name: "L", Slug: "l"}))
	require.NoError(t, images.CreateImage(&model.Image{ImageId: "a", Alt: "a", OriginalUrl: "http://x/a.jpg", IsVisible: model.ImageVisible}))
	require.NoError(t, images.CreateImage(&model.Image{ImageId: "b", Alt: "b", OriginalUrl: "http://x/b.jpg", IsVisible: model.ImageVisible}))
	require.NoError(t, images.CreateAssociation(&model.CategoryImage{CategoryId: "cat1", ImageId: "a", IsCarousel: model.InCarousel, CarouselOrder: 2}))
	require.NoError(t, images.CreateAssociation(&model.CategoryImage{CategoryId: "cat1", ImageId: "b", IsCarousel: model.InCarousel, CarouselOrder: 1}))

	carousel, err := svc.ListCarouselImages("cat1")
	require.NoError(t, err)
	require.Len(t, carousel, 2)
	assert.Equal(t, "b", carousel[0].Image.ImageId)
	assert.Equal(t, "a", carousel[1].Image.ImageId)
}
