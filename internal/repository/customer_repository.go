package repository

import (
	"app/internal/domain/model"
	"context"
)

// 注文者の保存・取得を約束。
type CustomerRepository interface {
	//電話番号で検索（見つからないのは正常系なのでboolで返す）
	FindByPhone(ctx context.Context, phone string) (model.Customer, bool, error)

	//新規作成。ID等が埋まったものを返す。
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
}
