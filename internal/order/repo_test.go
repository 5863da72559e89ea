package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/shop-orders/internal/store"
)

func newTestRepo(t *testing.T) (*SQLRepo, *store.SQL) {
	t.Helper()
	ctx := context.Background()
	db, err := store.OpenSQLite(ctx, store.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ddl, err := store.Schema(db.Dialect())
	require.NoError(t, err)
	_, err = db.Exec(ctx, ddl)
	require.NoError(t, err)
	return NewSQLRepo(db), db
}

func seed(t *testing.T, repo *SQLRepo, o Order) *Order {
	t.Helper()
	if o.ProductName == "" {
		o.ProductName = "Widget"
	}
	if o.Quantity == 0 {
		o.Quantity = 1
	}
	if o.TotalPrice.IsZero() {
		o.TotalPrice = decimal.RequireFromString("9.99")
	}
	require.NoError(t, repo.Create(context.Background(), &o))
	return &o
}

func ids(orders []Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestSQLRepo_CreateThenGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	o := &Order{
		OrderNo:     "ORD1",
		UserName:    "Alice",
		ProductName: "Widget",
		Quantity:    2,
		TotalPrice:  decimal.RequireFromString("19.98"),
		Status:      "ignored",
	}
	require.NoError(t, repo.Create(ctx, o))
	require.NotZero(t, o.ID)

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, "ORD1", got.OrderNo)
	assert.Equal(t, "Alice", got.UserName)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, 2, got.Quantity)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("19.98")), "total_price=%s", got.TotalPrice)
	assert.Equal(t, StatusPendingPayment, got.Status)
	assert.False(t, got.CreateTime.IsZero())
}

func TestSQLRepo_IDsAreNotReused(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first := seed(t, repo, Order{OrderNo: "A", UserName: "a"})
	require.NoError(t, repo.Delete(ctx, first.ID))
	second := seed(t, repo, Order{OrderNo: "B", UserName: "b"})

	assert.Greater(t, second.ID, first.ID)
}

func TestSQLRepo_CreateDuplicateOrderNo(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, Order{OrderNo: "DUP", UserName: "a"})

	o := &Order{OrderNo: "DUP", UserName: "b", ProductName: "x", Quantity: 1, TotalPrice: decimal.NewFromInt(1)}
	err := repo.Create(context.Background(), o)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestSQLRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLRepo_ListPagination(t *testing.T) {
	repo, _ := newTestRepo(t)
	for i := 1; i <= 25; i++ {
		seed(t, repo, Order{OrderNo: fmt.Sprintf("ORD%02d", i), UserName: "u"})
	}
	ctx := context.Background()

	page1, err := repo.List(ctx, Query{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{25, 24, 23, 22, 21, 20, 19, 18, 17, 16}, ids(page1))

	page2, err := repo.List(ctx, Query{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{15, 14, 13, 12, 11, 10, 9, 8, 7, 6}, ids(page2))

	page3, err := repo.List(ctx, Query{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(page3))

	page4, err := repo.List(ctx, Query{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.NotNil(t, page4)
	assert.Empty(t, page4)

	defaults, err := repo.List(ctx, Query{})
	require.NoError(t, err)
	assert.Len(t, defaults, DefaultPageSize)
}

func TestSQLRepo_ListPageFarPastTheEnd(t *testing.T) {
	repo, _ := newTestRepo(t)
	seed(t, repo, Order{OrderNo: "A", UserName: "a"})
	seed(t, repo, Order{OrderNo: "B", UserName: "b"})

	got, err := repo.List(context.Background(), Query{Page: 922337203685477581, PageSize: 20})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLRepo_ListStatusFilter(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	a := seed(t, repo, Order{OrderNo: "A", UserName: "a"})
	seed(t, repo, Order{OrderNo: "B", UserName: "b"})
	c := seed(t, repo, Order{OrderNo: "C", UserName: "c"})
	require.NoError(t, repo.UpdateStatus(ctx, a.ID, "paid"))
	require.NoError(t, repo.UpdateStatus(ctx, c.ID, "paid"))

	got, err := repo.List(ctx, Query{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID}, ids(got))
	for _, o := range got {
		assert.Equal(t, "paid", o.Status)
	}

	got, err = repo.List(ctx, Query{Status: "pai"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLRepo_ListKeyword(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	byNo := seed(t, repo, Order{OrderNo: "xxabcxx", UserName: "zed"})
	byUser := seed(t, repo, Order{OrderNo: "N-2", UserName: "abc-user"})
	seed(t, repo, Order{OrderNo: "N-3", UserName: "nobody"})
	seed(t, repo, Order{OrderNo: "N-4", UserName: "ab c"})

	got, err := repo.List(ctx, Query{Keyword: "abc"})
	require.NoError(t, err)
	assert.Equal(t, []int64{byUser.ID, byNo.ID}, ids(got))
}

func TestSQLRepo_ListKeywordWildcardsAreLiteral(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	pct := seed(t, repo, Order{OrderNo: "SALE-50%", UserName: "a"})
	seed(t, repo, Order{OrderNo: "SALE-500", UserName: "b"})
	under := seed(t, repo, Order{OrderNo: "X_1", UserName: "c"})
	seed(t, repo, Order{OrderNo: "XY1", UserName: "d"})

	got, err := repo.List(ctx, Query{Keyword: "50%"})
	require.NoError(t, err)
	assert.Equal(t, []int64{pct.ID}, ids(got))

	got, err = repo.List(ctx, Query{Keyword: "X_"})
	require.NoError(t, err)
	assert.Equal(t, []int64{under.ID}, ids(got))
}

func TestSQLRepo_ListStatusAndKeyword(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	hit := seed(t, repo, Order{OrderNo: "K1", UserName: "kate"})
	seed(t, repo, Order{OrderNo: "K2", UserName: "kate"})
	require.NoError(t, repo.UpdateStatus(ctx, hit.ID, "已发货"))

	got, err := repo.List(ctx, Query{Status: "已发货", Keyword: "kat"})
	require.NoError(t, err)
	assert.Equal(t, []int64{hit.ID}, ids(got))
}

func TestSQLRepo_UpdateStatus(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	o := seed(t, repo, Order{OrderNo: "U1", UserName: "u"})

	require.NoError(t, repo.UpdateStatus(ctx, o.ID, "shipped"))
	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", got.Status)

	// same value again still matches the row
	assert.NoError(t, repo.UpdateStatus(ctx, o.ID, "shipped"))

	// back to pending is allowed, no transition rules
	assert.NoError(t, repo.UpdateStatus(ctx, o.ID, StatusPendingPayment))

	assert.ErrorIs(t, repo.UpdateStatus(ctx, o.ID+100, "shipped"), ErrNotFound)
}

func TestSQLRepo_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	o := seed(t, repo, Order{OrderNo: "D1", UserName: "u"})

	require.NoError(t, repo.Delete(ctx, o.ID))

	_, err := repo.GetByID(ctx, o.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, o.ID), ErrNotFound)
}

func TestSQLRepo_StoreFailureSurfaces(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	db.Close()

	_, err := repo.List(ctx, Query{})
	assert.Error(t, err)

	_, err = repo.GetByID(ctx, 1)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	err = repo.UpdateStatus(ctx, 1, "x")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	err = repo.Delete(ctx, 1)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
