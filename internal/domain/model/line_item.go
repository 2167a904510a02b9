package model

// カートの1行。product_idごとに必ず1行。
// カートストアにそのままJSONで保存される形なのでタグは変えないこと。
type LineItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// 行小計
func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}
