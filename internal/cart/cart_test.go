package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

type backendMock struct {
	lines       []domain.CartLine
	loadErr     error
	updateErr   error
	removeErr   error
	updateCalls int
	removeCalls int
}

func (b *backendMock) Cart(ctx context.Context) ([]domain.CartLine, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	out := make([]domain.CartLine, len(b.lines))
	copy(out, b.lines)
	return out, nil
}

func (b *backendMock) UpdateCartItem(ctx context.Context, productRef string, quantity int) error {
	b.updateCalls++
	return b.updateErr
}

func (b *backendMock) RemoveCartItem(ctx context.Context, productRef string) error {
	b.removeCalls++
	return b.removeErr
}

func loadedView(t *testing.T) (*View, *backendMock, *notice.Recorder) {
	t.Helper()
	b := &backendMock{lines: []domain.CartLine{
		{ProductRef: "p1", Name: "Tea", UnitPrice: 120, Quantity: 2},
		{ProductRef: "p2", Name: "Rice", UnitPrice: 75.5, Quantity: 1},
	}}
	rec := &notice.Recorder{}
	v := NewView(b, rec)
	require.NoError(t, v.Load(context.Background()))
	return v, b, rec
}

func TestLoad_Failure(t *testing.T) {
	rec := &notice.Recorder{}
	v := NewView(&backendMock{loadErr: errors.New("down")}, rec)

	assert.Error(t, v.Load(context.Background()))
	assert.Equal(t, notice.Notice{Level: notice.Error, Text: "Failed to fetch cart items."}, rec.Last())
	assert.True(t, v.IsEmpty())
}

func TestChangeQuantity_InRangeIssuesOneCall(t *testing.T) {
	for q := domain.MinQuantity; q <= domain.MaxQuantity; q++ {
		v, b, _ := loadedView(t)
		require.NoError(t, v.ChangeQuantity(context.Background(), "p1", q))
		assert.Equal(t, 1, b.updateCalls)
		line, err := v.Line("p1")
		require.NoError(t, err)
		assert.Equal(t, q, line.Quantity)
	}
}

func TestChangeQuantity_OutOfRangeIssuesNoCall(t *testing.T) {
	tests := []struct {
		name string
		q    int
		text string
	}{
		{name: "above maximum", q: 11, text: "We only accept orders for a maximum of 10 items."},
		{name: "far above maximum", q: 500, text: "We only accept orders for a maximum of 10 items."},
		{name: "zero", q: 0, text: "Quantity must be at least 1."},
		{name: "negative", q: -3, text: "Quantity must be at least 1."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, b, rec := loadedView(t)
			before := v.Lines()

			err := v.ChangeQuantity(context.Background(), "p1", tt.q)
			assert.ErrorIs(t, err, ErrQuantityOutOfRange)
			assert.Equal(t, 0, b.updateCalls)
			assert.Equal(t, before, v.Lines())
			assert.Equal(t, tt.text, rec.Last().Text)
		})
	}
}

func TestChangeQuantity_FailureLeavesState(t *testing.T) {
	v, b, rec := loadedView(t)
	b.updateErr = errors.New("boom")
	before := v.Lines()

	assert.Error(t, v.ChangeQuantity(context.Background(), "p1", 5))
	assert.Equal(t, before, v.Lines())
	assert.Equal(t, notice.Notice{Level: notice.Error, Text: "Failed to update cart."}, rec.Last())
}

func TestRemoveItem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		v, b, rec := loadedView(t)
		require.NoError(t, v.RemoveItem(context.Background(), "p1"))
		assert.Equal(t, 1, b.removeCalls)
		_, err := v.Line("p1")
		assert.ErrorIs(t, err, ErrLineNotFound)
		assert.Len(t, v.Lines(), 1)
		assert.Equal(t, notice.Notice{Level: notice.Success, Text: "Item removed from cart."}, rec.Last())
	})

	t.Run("failure keeps line", func(t *testing.T) {
		v, b, rec := loadedView(t)
		b.removeErr = errors.New("boom")
		assert.Error(t, v.RemoveItem(context.Background(), "p1"))
		assert.Len(t, v.Lines(), 2)
		assert.Equal(t, notice.Notice{Level: notice.Error, Text: "Failed to remove item from cart."}, rec.Last())
	})
}

func TestTotal_TracksMutations(t *testing.T) {
	v, _, _ := loadedView(t)
	assert.Equal(t, 315.5, v.Total())
	assert.Equal(t, v.Total(), v.Total())
	assert.Equal(t, 3, v.ItemCount())

	require.NoError(t, v.ChangeQuantity(context.Background(), "p1", 3))
	assert.Equal(t, 435.5, v.Total())

	require.NoError(t, v.RemoveItem(context.Background(), "p2"))
	assert.Equal(t, 360.0, v.Total())
}

func TestTotal_Pure(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
	lines := []domain.CartLine{{UnitPrice: 10, Quantity: 3}, {UnitPrice: 2.5, Quantity: 2}}
	assert.Equal(t, 35.0, Total(lines))
}
