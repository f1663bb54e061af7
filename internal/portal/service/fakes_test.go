package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/pkg/ctx"
)

// in-memory repo implementations used across the service tests

type fakeNavigationRepo struct {
	mu   sync.Mutex
	navs map[string]*model.NavigationItem
}

func newFakeNavigationRepo() *fakeNavigationRepo {
	return &fakeNavigationRepo{navs: make(map[string]*model.NavigationItem)}
}

func (f *fakeNavigationRepo) GetNavigation(navId string) (*model.NavigationItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	nav, ok := f.navs[navId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *nav
	return &cp, nil
}

func (f *fakeNavigationRepo) GetNavigationBySlug(slug string) (*model.NavigationItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, nav := range f.navs {
		if nav.Slug == slug {
			cp := *nav
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNavigationRepo) GetAllNavigations() ([]model.NavigationItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	navs := make([]model.NavigationItem, 0, len(f.navs))
	for _, nav := range f.navs {
		navs = append(navs, *nav)
	}
	sort.Slice(navs, func(i, j int) bool { return navs[i].Order < navs[j].Order })
	return navs, nil
}

func (f *fakeNavigationRepo) GetVisibleNavigations() ([]model.NavigationItem, error) {
	all, _ := f.GetAllNavigations()
	visible := make([]model.NavigationItem, 0, len(all))
	for _, nav := range all {
		if nav.IsVisible == model.NavVisible {
			visible = append(visible, nav)
		}
	}
	return visible, nil
}

func (f *fakeNavigationRepo) GetNavigationsByParentId(parentId string) ([]model.NavigationItem, error) {
	all, _ := f.GetAllNavigations()
	children := make([]model.NavigationItem, 0)
	for _, nav := range all {
		if nav.ParentId == parentId {
			children = append(children, nav)
		}
	}
	return children, nil
}

func (f *fakeNavigationRepo) CountChildren(navId string) (int64, error) {
	children, _ := f.GetNavigationsByParentId(navId)
	return int64(len(children)), nil
}

func (f *fakeNavigationRepo) CountByCategoryId(categoryId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, nav := range f.navs {
		if nav.CategoryId == categoryId {
			count++
		}
	}
	return count, nil
}

func (f *fakeNavigationRepo) CreateNavigation(nav *model.NavigationItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *nav
	f.navs[nav.NavId] = &cp
	return nil
}

func (f *fakeNavigationRepo) UpdateNavigation(navId string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	nav, ok := f.navs[navId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	applyNavUpdates(nav, updates)
	return nil
}

func applyNavUpdates(nav *model.NavigationItem, updates map[string]interface{}) {
	for col, val := range updates {
		switch col {
		case "title":
			nav.Title = val.(string)
		case "slug":
			nav.Slug = val.(string)
		case "order":
			nav.Order = val.(int)
		case "is_visible":
			nav.IsVisible = val.(int)
		case "category_id":
			nav.CategoryId = val.(string)
		case "external_url":
			nav.ExternalUrl = val.(string)
		case "description":
			nav.Description = val.(string)
		}
	}
}

func (f *fakeNavigationRepo) DeleteNavigation(navId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.navs, navId)
	return nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*model.Category
	assocs     *fakeImageRepo // shares join rows with the image repo
}

func newFakeCategoryRepo(images *fakeImageRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[string]*model.Category),
		assocs:     images,
	}
}

func (f *fakeCategoryRepo) GetCategory(categoryId string) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[categoryId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *category
	return &cp, nil
}

func (f *fakeCategoryRepo) GetCategoryBySlug(slug string) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.categories {
		if category.Slug == slug {
			cp := *category
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) GetAllCategories() ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	categories := make([]model.Category, 0, len(f.categories))
	for _, category := range f.categories {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Order < categories[j].Order })
	return categories, nil
}

func (f *fakeCategoryRepo) GetActiveCategories() ([]model.Category, error) {
	all, _ := f.GetAllCategories()
	active := make([]model.Category, 0, len(all))
	for _, category := range all {
		if category.IsActive == model.CategoryActive {
			active = append(active, category)
		}
	}
	return active, nil
}

func (f *fakeCategoryRepo) CreateCategory(category *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *category
	f.categories[category.CategoryId] = &cp
	return nil
}

func (f *fakeCategoryRepo) UpdateCategory(categoryId string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[categoryId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, val := range updates {
		switch col {
		case "name":
			category.Name = val.(string)
		case "slug":
			category.Slug = val.(string)
		case "description":
			category.Description = val.(string)
		case "order":
			category.Order = val.(int)
		case "is_active":
			category.IsActive = val.(int)
		}
	}
	return nil
}

func (f *fakeCategoryRepo) DeleteCategory(categoryId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.categories, categoryId)
	return nil
}

func (f *fakeCategoryRepo) CountImages(categoryId string) (int64, error) {
	if f.assocs == nil {
		return 0, nil
	}
	details, _ := f.assocs.GetImagesByCategory(categoryId, false)
	return int64(len(details)), nil
}

func (f *fakeCategoryRepo) DeleteCategoryAssociations(categoryId string) error {
	if f.assocs == nil {
		return nil
	}
	f.assocs.mu.Lock()
	defer f.assocs.mu.Unlock()
	kept := f.assocs.assocs[:0]
	for _, a := range f.assocs.assocs {
		if a.CategoryId != categoryId {
			kept = append(kept, a)
		}
	}
	f.assocs.assocs = kept
	return nil
}

type fakeImageRepo struct {
	mu     sync.Mutex
	images map[string]*model.Image
	assocs []model.CategoryImage
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[string]*model.Image)}
}

func (f *fakeImageRepo) GetImage(imageId string) (*model.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	image, ok := f.images[imageId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *image
	return &cp, nil
}

func (f *fakeImageRepo) GetAllImages() ([]model.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	images := make([]model.Image, 0, len(f.images))
	for _, image := range f.images {
		images = append(images, *image)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].Order < images[j].Order })
	return images, nil
}

func (f *fakeImageRepo) GetImagesByCategory(categoryId string, visibleOnly bool) ([]model.CategoryImageDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	details := make([]model.CategoryImageDetail, 0)
	for _, a := range f.assocs {
		if a.CategoryId != categoryId {
			continue
		}
		image, ok := f.images[a.ImageId]
		if !ok {
			continue
		}
		if visibleOnly && image.IsVisible != model.ImageVisible {
			continue
		}
		details = append(details, model.CategoryImageDetail{Image: *image, CategoryImage: a})
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].CategoryImage.Order < details[j].CategoryImage.Order
	})
	return details, nil
}

func (f *fakeImageRepo) GetCarouselImages(categoryId string) ([]model.CategoryImageDetail, error) {
	all, _ := f.GetImagesByCategory(categoryId, true)
	carousel := make([]model.CategoryImageDetail, 0)
	for _, d := range all {
		if d.CategoryImage.IsCarousel == model.InCarousel {
			carousel = append(carousel, d)
		}
	}
	sort.Slice(carousel, func(i, j int) bool {
		return carousel[i].CategoryImage.CarouselOrder < carousel[j].CategoryImage.CarouselOrder
	})
	return carousel, nil
}

func (f *fakeImageRepo) ListImageURLs() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	urls := make([]string, 0, len(f.images)*2)
	for _, image := range f.images {
		if image.OriginalUrl != "" {
			urls = append(urls, image.OriginalUrl)
		}
		if image.ThumbnailUrl != "" {
			urls = append(urls, image.ThumbnailUrl)
		}
	}
	return urls, nil
}

func (f *fakeImageRepo) CreateImage(image *model.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *image
	f.images[image.ImageId] = &cp
	return nil
}

func (f *fakeImageRepo) UpdateImage(imageId string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	image, ok := f.images[imageId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, val := range updates {
		switch col {
		case "title":
			image.Title = val.(string)
		case "alt":
			image.Alt = val.(string)
		case "description":
			image.Description = val.(string)
		case "order":
			image.Order = val.(int)
		case "is_visible":
			image.IsVisible = val.(int)
		}
	}
	return nil
}

func (f *fakeImageRepo) DeleteImage(imageId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.images, imageId)
	return nil
}

func (f *fakeImageRepo) GetAssociation(categoryId, imageId string) (*model.CategoryImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assocs {
		if a.CategoryId == categoryId && a.ImageId == imageId {
			cp := a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeImageRepo) CreateAssociation(assoc *model.CategoryImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assocs = append(f.assocs, *assoc)
	return nil
}

func (f *fakeImageRepo) UpdateAssociation(categoryId, imageId string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.assocs {
		if f.assocs[i].CategoryId == categoryId && f.assocs[i].ImageId == imageId {
			for col, val := range updates {
				switch col {
				case "order":
					f.assocs[i].Order = val.(int)
				case "is_carousel":
					f.assocs[i].IsCarousel = val.(int)
				case "carousel_order":
					f.assocs[i].CarouselOrder = val.(int)
				}
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeImageRepo) DeleteAssociation(categoryId, imageId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.assocs[:0]
	for _, a := range f.assocs {
		if !(a.CategoryId == categoryId && a.ImageId == imageId) {
			kept = append(kept, a)
		}
	}
	f.assocs = kept
	return nil
}

func (f *fakeImageRepo) DeleteImageAssociations(imageId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.assocs[:0]
	for _, a := range f.assocs {
		if a.ImageId != imageId {
			kept = append(kept, a)
		}
	}
	f.assocs = kept
	return nil
}

func (f *fakeImageRepo) CountCarouselOrder(categoryId string, carouselOrder int, excludeImageId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, a := range f.assocs {
		if a.CategoryId == categoryId && a.IsCarousel == model.InCarousel &&
			a.CarouselOrder == carouselOrder && a.ImageId != excludeImageId {
			count++
		}
	}
	return count, nil
}

type fakeSettingRepo struct {
	mu       sync.Mutex
	settings map[string]string
	failKey  string // batch containing this key fails without writing
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: make(map[string]string)}
}

func (f *fakeSettingRepo) GetSetting(key string) (*model.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.settings[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Setting{Key: key, Value: value}, nil
}

func (f *fakeSettingRepo) GetSettingsByPrefix(prefix string) ([]model.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	settings := make([]model.Setting, 0)
	for key, value := range f.settings {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			settings = append(settings, model.Setting{Key: key, Value: value})
		}
	}
	return settings, nil
}

func (f *fakeSettingRepo) GetAllSettings() ([]model.Setting, error) {
	return f.GetSettingsByPrefix("")
}

func (f *fakeSettingRepo) UpsertSetting(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[key] = value
	return nil
}

func (f *fakeSettingRepo) UpsertSettings(settings map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKey != "" {
		if _, ok := settings[f.failKey]; ok {
			return errors.New("upsert batch failed")
		}
	}
	for key, value := range settings {
		f.settings[key] = value
	}
	return nil
}

func (f *fakeSettingRepo) DeleteSetting(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.settings, key)
	return nil
}

// fakeStorageProvider keeps objects in memory and can be told to fail
type fakeStorageProvider struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failDel    map[string]bool
	failNthPut int // 1-based put call to fail, 0 disables
	putCalls   int
}

func newFakeStorageProvider() *fakeStorageProvider {
	return &fakeStorageProvider{
		objects: make(map[string][]byte),
		failDel: make(map[string]bool),
	}
}

func (f *fakeStorageProvider) PutObject(c *ctx.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	if f.failNthPut > 0 && f.putCalls == f.failNthPut {
		return "", fmt.Errorf("put %s: injected failure", objectName)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	f.objects[objectName] = buf.Bytes()
	return objectName, nil
}

func (f *fakeStorageProvider) GetObject(c *ctx.Context, objectName string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[objectName]
	if !ok {
		return nil, fmt.Errorf("object %s not found", objectName)
	}
	return data, nil
}

func (f *fakeStorageProvider) Delete(c *ctx.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDel[objectName] {
		return fmt.Errorf("delete %s: injected failure", objectName)
	}
	delete(f.objects, objectName)
	return nil
}

func (f *fakeStorageProvider) ListObjects(c *ctx.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.objects))
	for name := range f.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeStorageProvider) setFailDel(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failDel[name] = true
}

func (f *fakeStorageProvider) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[name]
	return ok
}
