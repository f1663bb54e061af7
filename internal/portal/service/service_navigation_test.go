package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-aperture/aperture/internal/portal/model"
)

func newNavigationFixture() (*NavigationService, *fakeNavigationRepo, *fakeCategoryRepo) {
	images := newFakeImageRepo()
	navRepo := newFakeNavigationRepo()
	categoryRepo := newFakeCategoryRepo(images)
	return NewNavigationService(navRepo, categoryRepo), navRepo, categoryRepo
}

func TestCreateNavigationValidation(t *testing.T) {
	svc, _, _ := newNavigationFixture()

	tests := []struct {
		name string
		req  *model.CreateNavigationReq
	}{
		{"missing title", &model.CreateNavigationReq{Slug: "a", Type: model.NavTypeLink}},
		{"missing slug", &model.CreateNavigationReq{Title: "a", Type: model.NavTypeLink}},
		{"unknown type", &model.CreateNavigationReq{Title: "a", Slug: "a", Type: "BANNER"}},
		{"category without ref", &model.CreateNavigationReq{Title: "a", Slug: "a", Type: model.NavTypeCategory}},
		{"external without url", &model.CreateNavigationReq{Title: "a", Slug: "a", Type: model.NavTypeExternal}},
		{"link with category ref", &model.CreateNavigationReq{Title: "a", Slug: "a", Type: model.NavTypeLink, CategoryId: "cat1"}},
		{"link with external url", &model.CreateNavigationReq{Title: "a", Slug: "a", Type: model.NavTypeLink, ExternalUrl: "https://example.com"}},
		{"parent with category ref", &model.CreateNavigationReq{Title: "a", Slug: "a", Type: model.NavTypeParent, CategoryId: "cat1"}},
		{"external with category ref", &model.CreateNavigationReq{Title: "a", Slug: "a", Type: model.NavTypeExternal, ExternalUrl: "https://example.com", CategoryId: "cat1"}},
		{"category with external url", &model.CreateNavigationReq{Title: "a", Slug: "a", Type: model.NavTypeCategory, CategoryId: "cat1", ExternalUrl: "https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateNavigation(tt.req)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestCreateNavigationCategoryMustExist(t *testing.T) {
	svc, _, categoryRepo := newNavigationFixture()

	_, err := svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Portfolio", Slug: "portfolio", Type: model.NavTypeCategory, CategoryId: "missing",
	})
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, categoryRepo.CreateCategory(&model.Category{
		CategoryId: "cat1", Name: "Landscape", Slug: "landscape", IsActive: model.CategoryActive,
	}))
	nav, err := svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Portfolio", Slug: "portfolio", Type: model.NavTypeCategory, CategoryId: "cat1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, nav.NavId)
	assert.Equal(t, "cat1", nav.CategoryId)
}

func TestCreateNavigationSlugConflict(t *testing.T) {
	svc, _, _ := newNavigationFixture()

	_, err := svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Home", Slug: "home", Type: model.NavTypeLink,
	})
	require.NoError(t, err)

	_, err = svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Other", Slug: "home", Type: model.NavTypeLink,
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCreateNavigationParentRules(t *testing.T) {
	svc, _, _ := newNavigationFixture()

	parent, err := svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Galleries", Slug: "galleries", Type: model.NavTypeParent,
	})
	require.NoError(t, err)

	link, err := svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Contact", Slug: "contact", Type: model.NavTypeLink,
	})
	require.NoError(t, err)

	// child under a PARENT nav is allowed
	_, err = svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Nested", Slug: "nested", Type: model.NavTypeLink, ParentId: parent.NavId,
	})
	assert.NoError(t, err)

	// child under a non-PARENT nav is rejected
	_, err = svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Bad", Slug: "bad", Type: model.NavTypeLink, ParentId: link.NavId,
	})
	assert.ErrorIs(t, err, ErrInvalid)

	// PARENT navs cannot be nested
	_, err = svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Deep", Slug: "deep", Type: model.NavTypeParent, ParentId: parent.NavId,
	})
	assert.ErrorIs(t, err, ErrInvalid)

	// missing parent
	_, err = svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Lost", Slug: "lost", Type: model.NavTypeLink, ParentId: "missing",
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestUpdateNavigation(t *testing.T) {
	svc, _, _ := newNavigationFixture()

	nav, err := svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "About", Slug: "about", Type: model.NavTypeLink,
	})
	require.NoError(t, err)

	newTitle := "About Me"
	hidden := model.NavInvisible
	updated, err := svc.UpdateNavigation(nav.NavId, &model.UpdateNavigationReq{
		Title: &newTitle, IsVisible: &hidden,
	})
	require.NoError(t, err)
	assert.Equal(t, "About Me", updated.Title)
	assert.Equal(t, model.NavInvisible, updated.IsVisible)
	// untouched fields stay
	assert.Equal(t, "about", updated.Slug)

	// externalUrl not applicable to LINK navs
	u := "https://example.com"
	_, err = svc.UpdateNavigation(nav.NavId, &model.UpdateNavigationReq{ExternalUrl: &u})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.UpdateNavigation("missing", &model.UpdateNavigationReq{Title: &newTitle})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNavigationWithChildren(t *testing.T) {
	svc, _, _ := newNavigationFixture()

	parent, err := svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Galleries", Slug: "galleries", Type: model.NavTypeParent,
	})
	require.NoError(t, err)
	child, err := svc.CreateNavigation(&model.CreateNavigationReq{
		Title: "Street", Slug: "street", Type: model.NavTypeLink, ParentId: parent.NavId,
	})
	require.NoError(t, err)

	err = svc.DeleteNavigation(parent.NavId)
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, svc.DeleteNavigation(child.NavId))
	require.NoError(t, svc.DeleteNavigation(parent.NavId))

	err = svc.DeleteNavigation(parent.NavId)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetNavigationTree(t *testing.T) {
	svc, navRepo, _ := newNavigationFixture()

	seed := []model.NavigationItem{
		{NavId: "p1", Title: "Galleries", Slug: "galleries", Type: model.NavTypeParent, Order: 1, IsVisible: model.NavVisible},
		{NavId: "c1", Title: "Street", Slug: "street", Type: model.NavTypeLink, Order: 1, IsVisible: model.NavVisible, ParentId: "p1"},
		{NavId: "c2", Title: "Hidden", Slug: "hidden", Type: model.NavTypeLink, Order: 2, IsVisible: model.NavInvisible, ParentId: "p1"},
		{NavId: "p2", Title: "Secret", Slug: "secret", Type: model.NavTypeParent, Order: 2, IsVisible: model.NavInvisible},
		{NavId: "c3", Title: "Orphaned", Slug: "orphaned", Type: model.NavTypeLink, Order: 1, IsVisible: model.NavVisible, ParentId: "p2"},
		{NavId: "t1", Title: "Contact", Slug: "contact", Type: model.NavTypeLink, Order: 3, IsVisible: model.NavVisible},
	}
	for i := range seed {
		require.NoError(t, navRepo.CreateNavigation(&seed[i]))
	}

	tree, err := svc.GetNavigationTree()
	require.NoError(t, err)

	require.Len(t, tree, 2)
	assert.Equal(t, "p1", tree[0].NavId)
	assert.Equal(t, "t1", tree[1].NavId)

	// only visible children appear, hidden parent hides its subtree
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "c1", tree[0].Children[0].NavId)
	assert.Empty(t, tree[1].Children)
}

func TestGetNavigationTreeDropsDanglingCategoryRefs(t *testing.T) {
	svc, navRepo, categoryRepo := newNavigationFixture()

	require.NoError(t, categoryRepo.CreateCategory(&model.Category{
		CategoryId: "cat1", Name: "Landscape", Slug: "landscape", IsActive: model.CategoryActive,
	}))
	require.NoError(t, categoryRepo.CreateCategory(&model.Category{
		CategoryId: "cat2", Name: "Retired", Slug: "retired", IsActive: model.CategoryInactive,
	}))

	seed := []model.NavigationItem{
		{NavId: "n1", Title: "Landscape", Slug: "landscape", Type: model.NavTypeCategory, Order: 1, IsVisible: model.NavVisible, CategoryId: "cat1"},
		{NavId: "n2", Title: "Retired", Slug: "retired", Type: model.NavTypeCategory, Order: 2, IsVisible: model.NavVisible, CategoryId: "cat2"},
		{NavId: "n3", Title: "Gone", Slug: "gone", Type: model.NavTypeCategory, Order: 3, IsVisible: model.NavVisible, CategoryId: "deleted"},
		{NavId: "n4", Title: "Contact", Slug: "contact", Type: model.NavTypeLink, Order: 4, IsVisible: model.NavVisible},
	}
	for i := range seed {
		require.NoError(t, navRepo.CreateNavigation(&seed[i]))
	}

	tree, err := svc.GetNavigationTree()
	require.NoError(t, err)

	// items bound to an inactive or deleted category disappear from the tree
	require.Len(t, tree, 2)
	assert.Equal(t, "n1", tree[0].NavId)
	assert.Equal(t, "n4", tree[1].NavId)
}
