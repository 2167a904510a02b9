package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"app/internal/domain/model"
)

// Store はカートの保存先。スロットはひとつだけで、毎回全量を上書きする。
type Store interface {
	//保存済みの行を読む。保存データが無いだけなら (nil, nil)。
	Load() ([]model.LineItem, error)
	//全量を上書き保存する。
	Save(items []model.LineItem) error
}

// FileStore は決まったパスのJSONファイル1枚に保存する実装。
// バージョン番号もマージも無し（last-write-wins）。
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]model.LineItem, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		//初回起動。エラーではない。
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}

	var items []model.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse cart file: %w", err)
	}
	return items, nil
}

func (s *FileStore) Save(items []model.LineItem) error {
	if items == nil {
		items = []model.LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}

	//書きかけのファイルでスロットを壊さないよう、tmpに書いてからrename
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cart file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}
