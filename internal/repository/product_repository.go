package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 公開カタログの検索条件。
// ゼロ値（空文字/nil）は「条件なし」として扱う。全条件はAND。
type ProductListQuery struct {
	//名前の部分一致（大文字小文字は区別しない）
	NameContains string
	MinPrice     *float64
	MaxPrice     *float64
	//カテゴリ完全一致
	Category string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開中の商品を検索。同じ条件なら必ず同じ並び（name asc, id asc）。
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	//商品に付いているカテゴリの一覧（重複なし・ソート済み）
	ListCategories(ctx context.Context) ([]string, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
