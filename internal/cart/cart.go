package cart

import (
	"sync"

	"app/internal/domain/model"

	"github.com/labstack/gommon/log"
)

// Cart は現在の買い物内容を持つ集約。プロセス内にひとつだけ。
// product_idごとに1行、並びは最初に追加した順のまま変えない。
// 変更が成功するたびにStoreへ全量を書き戻す（失敗してもログだけ）。
type Cart struct {
	mu    sync.Mutex
	items []model.LineItem
	store Store
}

// New はStoreから復元してカートを作る。
// 保存データが無い・壊れている場合は空のカートで起動する（起動は止めない）。
func New(store Store) *Cart {
	items, err := store.Load()
	if err != nil {
		log.Warnf("cart: stored payload unreadable, starting empty: %v", err)
		items = nil
	}
	return &Cart{items: items, store: store}
}

// Add は商品を1個追加。既にあれば数量+1、無ければ末尾に数量1で追加。
func (c *Cart) Add(p model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			c.persist()
			return
		}
	}

	c.items = append(c.items, model.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		ImageURL:  p.ImageURL,
	})
	c.persist()
}

// Remove は行を削除。無ければ何もしない（エラーにしない）。
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

// SetQuantity は数量変更。1未満は1に切り上げる。行が無ければ何もしない。
func (c *Cart) SetQuantity(productID int64, qty int64) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = qty
			c.persist()
			return
		}
	}
}

// Clear は全行を削除して空の状態を保存する。
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist()
}

// Items は現在の行のコピーを返す（追加順）。
func (c *Cart) Items() []model.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total は Σ(単価×数量)。毎回計算する（キャッシュしない）。
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// ItemCount は Σ数量。バッジ表示用。
func (c *Cart) ItemCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Lines は行数（商品種類数）。
func (c *Cart) Lines() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return c.Lines() == 0
}

// 変更後の全量をStoreへ書く。呼び出し元はmuを握っていること。
// 保存失敗で操作自体は失敗させない。
func (c *Cart) persist() {
	snapshot := make([]model.LineItem, len(c.items))
	copy(snapshot, c.items)

	if err := c.store.Save(snapshot); err != nil {
		log.Errorf("cart: persist failed: %v", err)
	}
}
