package catalog

import (
	"context"
	"strings"

	"github.com/diyabansal-1605/full-stack-project/internal/api"
	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
	"github.com/diyabansal-1605/full-stack-project/internal/nav"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

const (
	msgLoginToAdd      = "Please log in to add items to the cart."
	msgAdded           = "Product added to cart successfully!"
	msgAddLimit        = "You can only add up to 10 items for this product."
	msgLoginToReview   = "Please log in to submit a review."
	msgEmptyReview     = "Please enter your review."
	msgReviewed        = "Review submitted successfully!"
	msgDuplicateReview = "You have already submitted a review for this product."
)

// Backend is the read side of the catalog API plus the two writes the
// product views trigger.
type Backend interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	ProductsByCategory(ctx context.Context, category, subcategory string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Reviews(ctx context.Context, productID string) ([]domain.Review, error)
	AddToCart(ctx context.Context, p domain.Product, quantity int) (string, error)
	AddReview(ctx context.Context, productID, text string) (*domain.Review, error)
}

type Sessions interface {
	Current() domain.Session
}

type Catalog struct {
	backend  Backend
	sessions Sessions
	notifier notice.Notifier
	nav      nav.Navigator
}

func New(backend Backend, sessions Sessions, n notice.Notifier, navigator nav.Navigator) *Catalog {
	return &Catalog{backend: backend, sessions: sessions, notifier: n, nav: navigator}
}

func (c *Catalog) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.backend.Categories(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("fetch categories failed")
		return nil, err
	}
	return categories, nil
}

// CategoryListing is what the category products view shows: the products
// and the subcategories available for narrowing.
type CategoryListing struct {
	Category      string
	Subcategory   string
	Subcategories []string
	Products      []domain.Product
}

// CategoryProducts lists a category. Subcategories come from the category
// whose name matches case-insensitively and are empty when none does.
func (c *Catalog) CategoryProducts(ctx context.Context, category, subcategory string) (*CategoryListing, error) {
	log := logger.WithContext(ctx).WithField("category", category)
	listing := &CategoryListing{Category: category, Subcategory: subcategory}

	categories, err := c.backend.Categories(ctx)
	if err != nil {
		log.WithError(err).Error("fetch subcategories failed")
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, category) {
			listing.Subcategories = cat.Subcategories
			break
		}
	}

	products, err := c.backend.ProductsByCategory(ctx, category, subcategory)
	if err != nil {
		log.WithError(err).Error("fetch category products failed")
		return listing, err
	}
	listing.Products = products
	return listing, nil
}

type ProductDetail struct {
	Product domain.Product
	Reviews []domain.Review
}

func (c *Catalog) ProductPage(ctx context.Context, id string) (*ProductDetail, error) {
	log := logger.WithContext(ctx).WithField("product_id", id)

	p, err := c.backend.Product(ctx, id)
	if err != nil {
		log.WithError(err).Error("fetch product failed")
		return nil, err
	}
	detail := &ProductDetail{Product: *p}

	reviews, err := c.backend.Reviews(ctx, id)
	if err != nil {
		log.WithError(err).Error("fetch reviews failed")
		return detail, nil
	}
	detail.Reviews = reviews
	return detail, nil
}

// AddToCart adds quantity of p to the user's cart. Without a session it
// redirects to login and makes no call.
func (c *Catalog) AddToCart(ctx context.Context, p domain.Product, quantity int) error {
	if !c.sessions.Current().Authenticated() {
		notice.Errorf(c.notifier, msgLoginToAdd)
		c.nav.Navigate(nav.Login)
		return api.ErrNoSession
	}

	msg, err := c.backend.AddToCart(ctx, p, quantity)
	if err != nil {
		logger.WithContext(ctx).WithError(err).WithField("product_id", p.ID).Error("add to cart failed")
		notice.Infof(c.notifier, msgAddLimit)
		return err
	}
	if msg == "" {
		msg = msgAdded
	}
	notice.Successf(c.notifier, "%s", msg)
	return nil
}

// AddReview posts text for productID and reloads the page on success.
func (c *Catalog) AddReview(ctx context.Context, productID, text string) error {
	if !c.sessions.Current().Authenticated() {
		notice.Errorf(c.notifier, msgLoginToReview)
		c.nav.Navigate(nav.Login)
		return api.ErrNoSession
	}
	if strings.TrimSpace(text) == "" {
		notice.Errorf(c.notifier, msgEmptyReview)
		return ErrEmptyReview
	}

	if _, err := c.backend.AddReview(ctx, productID, text); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("product_id", productID).Error("submit review failed")
		notice.Infof(c.notifier, msgDuplicateReview)
		return err
	}
	c.nav.Reload()
	notice.Successf(c.notifier, msgReviewed)
	return nil
}
