package notify

import (
	"context"
	"fmt"
	"strings"

	"app/internal/domain/model"

	"github.com/labstack/gommon/log"
)

// Notifier は注文通知の送り先。
// 配達結果は注文の状態に反映しない（送りっぱなし）。
type Notifier interface {
	Send(ctx context.Context, destination string, message string) error
}

// LogNotifier はWhatsApp送信の代わりにログへ出すだけの実装。
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, destination string, message string) error {
	log.Infof("simulated whatsapp send to %s:\n%s", destination, message)
	return nil
}

// ComposeOrderMessage は店側へ送る注文サマリを組み立てる。
// 行ごとの小計はカートのスナップショット価格で計算する。
func ComposeOrderMessage(name string, phone string, items []model.LineItem, total float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Nuevo pedido de %s (%s):\n\n", name, phone)
	for _, it := range items {
		fmt.Fprintf(&b, "- %s x %d ($%.2f)\n", it.Name, it.Quantity, it.Subtotal())
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f", total)

	return b.String()
}
