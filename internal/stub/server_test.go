package stub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diyabansal-1605/full-stack-project/internal/api"
	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/stub"
)

const paymentSecret = "pay-secret"

type tokenBox struct{ token string }

func (b *tokenBox) Token() string { return b.token }

func newBackend(t *testing.T) (*api.Client, *tokenBox, *stub.MemoryStore) {
	t.Helper()
	store := stub.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	stub.Seed(store)

	srv := httptest.NewServer(stub.NewServer(store, stub.Config{JWTSecret: "jwt", PaymentSecret: paymentSecret}).Router())
	t.Cleanup(srv.Close)

	box := &tokenBox{}
	return api.New(api.Config{BaseURL: srv.URL, HTTPClient: srv.Client()}, box), box, store
}

func signup(t *testing.T, c *api.Client, box *tokenBox) {
	t.Helper()
	tok, err := c.Signup(context.Background(), api.SignupRequestDTO{
		Name: "Asha", Email: "asha@example.in", Password: "password1", PhoneNumber: "9876543210",
	})
	require.NoError(t, err)
	box.token = tok
}

func TestCatalogEndpoints(t *testing.T) {
	c, _, _ := newBackend(t)
	ctx := context.Background()

	products, err := c.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 8)

	byCat, err := c.ProductsByCategory(ctx, "Grocery", "Tea")
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	p, err := c.Product(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, products[0], *p)

	_, err = c.Product(ctx, "missing")
	assert.True(t, api.IsStatus(err, http.StatusNotFound))

	categories, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)
}

func TestProtectedEndpointRejectsBadToken(t *testing.T) {
	c, box, _ := newBackend(t)
	box.token = "forged"

	_, err := c.Cart(context.Background())
	assert.True(t, api.IsStatus(err, http.StatusUnauthorized))
}

func TestLoginAndDuplicateSignup(t *testing.T) {
	c, box, _ := newBackend(t)
	ctx := context.Background()
	signup(t, c, box)

	_, err := c.Signup(ctx, api.SignupRequestDTO{Name: "B", Email: "asha@example.in", Password: "password1"})
	assert.True(t, api.IsStatus(err, http.StatusBadRequest))

	tok, err := c.Login(ctx, "asha@example.in", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	_, err = c.Login(ctx, "asha@example.in", "nope-nope")
	assert.Equal(t, "invalid email or password", api.Message(err))
}

func TestCartFlow(t *testing.T) {
	c, box, _ := newBackend(t)
	ctx := context.Background()
	signup(t, c, box)

	products, err := c.ProductsByCategory(ctx, "Grocery", "Rice")
	require.NoError(t, err)
	rice := products[0]

	msg, err := c.AddToCart(ctx, rice, 9)
	require.NoError(t, err)
	assert.Equal(t, "Product added to cart", msg)

	_, err = c.AddToCart(ctx, rice, 2)
	assert.True(t, api.IsStatus(err, http.StatusBadRequest))

	require.NoError(t, c.UpdateCartItem(ctx, rice.ID, 3))
	lines, err := c.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, rice.Name, lines[0].Name)

	require.NoError(t, c.RemoveCartItem(ctx, rice.ID))
	lines, err = c.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAddressFlow(t *testing.T) {
	c, box, _ := newBackend(t)
	ctx := context.Background()
	signup(t, c, box)

	a, err := c.Address(ctx)
	require.NoError(t, err)
	assert.Nil(t, a)

	home := domain.Address{Name: "Asha", Phone: "9876543210", Address: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"}
	saved, err := c.AddAddress(ctx, home)
	require.NoError(t, err)
	assert.Equal(t, home, *saved)

	home.City = "Mumbai"
	saved, err = c.UpdateAddress(ctx, home)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", saved.City)
}

func TestPaymentFlow(t *testing.T) {
	c, box, store := newBackend(t)
	ctx := context.Background()
	signup(t, c, box)

	products, err := c.Products(ctx)
	require.NoError(t, err)
	_, err = c.AddToCart(ctx, products[0], 2)
	require.NoError(t, err)

	order, err := c.CreatePaymentOrder(ctx, 2*products[0].Price)
	require.NoError(t, err)
	assert.Equal(t, int64(2*products[0].Price*100), order.Amount)
	assert.Equal(t, "INR", order.Currency)

	ok, err := c.VerifyPayment(ctx, domain.PaymentResult{OrderID: order.ID, PaymentID: "pay_1", Signature: "bad"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.VerifyPayment(ctx, domain.PaymentResult{
		OrderID:   order.ID,
		PaymentID: "pay_1",
		Signature: stub.SignPayment(paymentSecret, order.ID, "pay_1"),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	orders, err := c.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2*products[0].Price, orders[0].TotalAmount)

	lines, err := c.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	stored, err := store.PaymentOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, stub.PaymentPaid, stored.Status)
}

func TestReviewsAndProfile(t *testing.T) {
	c, box, _ := newBackend(t)
	ctx := context.Background()
	signup(t, c, box)

	products, err := c.Products(ctx)
	require.NoError(t, err)
	id := products[0].ID

	r, err := c.AddReview(ctx, id, "great")
	require.NoError(t, err)
	assert.Equal(t, "great", r.Text)

	_, err = c.AddReview(ctx, id, "again")
	assert.True(t, api.IsStatus(err, http.StatusBadRequest))

	reviews, err := c.Reviews(ctx, id)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Asha", reviews[0].UserName)

	require.NoError(t, c.UpdateProfile(ctx, domain.Identity{Name: "Asha K", Email: "asha@example.in", PhoneNumber: "9000000000"}))
}
