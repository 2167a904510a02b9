package cart_test

import (
	"errors"
	"testing"

	"app/internal/cart"
	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

// =====================
// テスト用のStore
// =====================

type memStore struct {
	initial []model.LineItem
	loadErr error
	saveErr error
	saved   [][]model.LineItem
}

func (s *memStore) Load() ([]model.LineItem, error) {
	return s.initial, s.loadErr
}

func (s *memStore) Save(items []model.LineItem) error {
	cp := make([]model.LineItem, len(items))
	copy(cp, items)
	s.saved = append(s.saved, cp)
	return s.saveErr
}

func product(id int64, name string, price float64) model.Product {
	return model.Product{ID: id, Name: name, Price: price, IsActive: true}
}

func TestCart_Add_SameProductIncrementsSingleLine(t *testing.T) {
	c := cart.New(&memStore{})

	//同じ商品を3回追加しても行は1つ、数量は3
	p := product(1, "Beans", 10.00)
	c.Add(p)
	c.Add(p)
	c.Add(p)

	items := c.Items()
	assert.Equal(t, 1, len(items))
	assert.Equal(t, int64(3), items[0].Quantity)
	assert.Equal(t, int64(3), c.ItemCount())
}

func TestCart_Add_KeepsInsertionOrder(t *testing.T) {
	c := cart.New(&memStore{})

	c.Add(product(1, "A", 10.00))
	c.Add(product(2, "B", 5.50))
	//Aの数量を増やしても並びは変わらない
	c.Add(product(1, "A", 10.00))

	items := c.Items()
	assert.Equal(t, 2, len(items))
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, int64(2), items[1].ProductID)
}

func TestCart_SetQuantity_ClampsToOne(t *testing.T) {
	c := cart.New(&memStore{})
	c.Add(product(1, "A", 10.00))

	c.SetQuantity(1, 0)
	assert.Equal(t, int64(1), c.Items()[0].Quantity)

	c.SetQuantity(1, -5)
	assert.Equal(t, int64(1), c.Items()[0].Quantity)

	c.SetQuantity(1, 4)
	assert.Equal(t, int64(4), c.Items()[0].Quantity)
}

func TestCart_SetQuantity_UnknownProductIsNoop(t *testing.T) {
	c := cart.New(&memStore{})
	c.Add(product(1, "A", 10.00))

	c.SetQuantity(99, 5)

	items := c.Items()
	assert.Equal(t, 1, len(items))
	assert.Equal(t, int64(1), items[0].Quantity)
}

func TestCart_Remove_AbsentIsNoop(t *testing.T) {
	store := &memStore{}
	c := cart.New(store)
	c.Add(product(1, "A", 10.00))
	savesBefore := len(store.saved)

	c.Remove(99)

	assert.Equal(t, 1, c.Lines())
	//何も変わっていないので保存もされない
	assert.Equal(t, savesBefore, len(store.saved))
}

func TestCart_Total_RecomputedAfterEachMutation(t *testing.T) {
	c := cart.New(&memStore{})

	c.Add(product(1, "A", 10.00))
	c.Add(product(1, "A", 10.00))
	c.Add(product(2, "B", 5.50))
	assert.InDelta(t, 25.50, c.Total(), 1e-9)

	c.SetQuantity(1, 1)
	assert.InDelta(t, 15.50, c.Total(), 1e-9)

	c.Remove(2)
	assert.InDelta(t, 10.00, c.Total(), 1e-9)

	c.Clear()
	assert.InDelta(t, 0.0, c.Total(), 1e-9)
	assert.True(t, c.IsEmpty())
}

func TestCart_EveryMutationPersists(t *testing.T) {
	store := &memStore{}
	c := cart.New(store)

	c.Add(product(1, "A", 10.00))
	c.SetQuantity(1, 3)
	c.Remove(1)
	c.Clear()

	assert.Equal(t, 4, len(store.saved))
	//最後の保存は空の状態
	assert.Equal(t, 0, len(store.saved[3]))
}

func TestCart_PersistFailureDoesNotBreakMutation(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	c := cart.New(store)

	//保存に失敗してもカート自体は変わる
	c.Add(product(1, "A", 10.00))
	assert.Equal(t, 1, c.Lines())
}

func TestCart_New_HydratesFromStore(t *testing.T) {
	store := &memStore{initial: []model.LineItem{
		{ProductID: 1, Name: "A", UnitPrice: 10.00, Quantity: 2},
		{ProductID: 2, Name: "B", UnitPrice: 5.50, Quantity: 1},
	}}
	c := cart.New(store)

	assert.Equal(t, 2, c.Lines())
	assert.InDelta(t, 25.50, c.Total(), 1e-9)
}

func TestCart_New_BrokenStoreStartsEmpty(t *testing.T) {
	store := &memStore{loadErr: errors.New("parse cart file: unexpected end of JSON input")}

	//起動は失敗しない。空のカートになる。
	c := cart.New(store)
	assert.True(t, c.IsEmpty())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	c := cart.New(&memStore{})
	c.Add(product(1, "A", 10.00))

	items := c.Items()
	items[0].Quantity = 100

	assert.Equal(t, int64(1), c.Items()[0].Quantity)
}
