package usecase

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"app/internal/cart"
	"app/internal/domain/model"
	"app/internal/notify"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// チェックアウトの状態。
// ボタンのdisabledに頼らず、ここが二重送信を弾く唯一のゲート。
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "IDLE"
	CheckoutStateValidating CheckoutState = "VALIDATING"
	CheckoutStateSubmitting CheckoutState = "SUBMITTING"
	CheckoutStateSucceeded  CheckoutState = "SUCCEEDED"
	CheckoutStateFailed     CheckoutState = "FAILED"
)

// CheckoutUsecase はカートを注文に変換する一連の処理。
// 順番は固定：検証 → 顧客解決 → 注文+明細（同一Tx） → 通知 → カートクリア。
type CheckoutUsecase struct {
	cart      *cart.Cart
	customers repo.CustomerRepository
	tx        repo.TransactionManager
	notifier  notify.Notifier

	//通知の宛先（店側の電話番号）
	shopPhone string
	//リモート1ステップあたりの上限時間
	stepTimeout time.Duration

	mu    sync.Mutex
	state CheckoutState
}

func NewCheckoutUsecase(
	c *cart.Cart,
	customers repo.CustomerRepository,
	tx repo.TransactionManager,
	notifier notify.Notifier,
	shopPhone string,
	stepTimeout time.Duration,
) *CheckoutUsecase {
	if stepTimeout <= 0 {
		stepTimeout = 10 * time.Second
	}
	return &CheckoutUsecase{
		cart:        c,
		customers:   customers,
		tx:          tx,
		notifier:    notifier,
		shopPhone:   shopPhone,
		stepTimeout: stepTimeout,
		state:       CheckoutStateIdle,
	}
}

type CheckoutInput struct {
	Name  string
	Phone string
}

type CheckoutOutput struct {
	OrderID     int64   `json:"order_id"`
	CustomerID  int64   `json:"customer_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// State は現在の状態を返す。
func (u *CheckoutUsecase) State() CheckoutState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Submit はチェックアウトを1回実行する。
// 実行中（VALIDATING/SUBMITTING）の再入は409で拒否。
// 失敗時はカートに一切触らないので、そのままリトライできる。
func (u *CheckoutUsecase) Submit(ctx context.Context, in CheckoutInput) (CheckoutOutput, error) {
	if !u.begin() {
		return CheckoutOutput{}, NewHTTPError(http.StatusConflict, "checkout in progress")
	}

	//事前検証。ここで落ちたらリモートには一切書かない。
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" {
		u.setState(CheckoutStateFailed)
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if phone == "" {
		u.setState(CheckoutStateFailed)
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "phone required")
	}
	if u.cart.IsEmpty() {
		u.setState(CheckoutStateFailed)
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	u.setState(CheckoutStateSubmitting)

	//カートはこの時点の内容で確定。合計もここで一度だけ計算する。
	lines := u.cart.Items()
	var total float64
	for _, li := range lines {
		total += li.Subtotal()
	}

	//Step1: 電話番号で顧客を引き当て、いなければ作る
	customer, err := u.resolveCustomer(ctx, name, phone)
	if err != nil {
		u.setState(CheckoutStateFailed)
		log.Errorf("checkout: customer step failed: %v", err)
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//Step2+3: 注文と明細は同じTxで書く（明細だけ欠ける状態を作らない）
	orderItems := make([]model.OrderItem, 0, len(lines))
	now := time.Now()
	for _, li := range lines {
		orderItems = append(orderItems, model.OrderItem{
			ProductID:           li.ProductID,
			ProductNameSnapshot: li.Name,
			UnitPriceSnapshot:   li.UnitPrice,
			Quantity:            li.Quantity,
			CreatedAt:           now,
		})
	}

	var orderID int64
	txCtx, cancel := context.WithTimeout(ctx, u.stepTimeout)
	defer cancel()

	err = u.tx.WithinTx(txCtx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(txCtx, model.Order{
			CustomerID:     customer.ID,
			Status:         model.OrderStatusPending,
			TotalAmount:    total,
			IdempotencyKey: uuid.NewString(),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return err
		}
		orderID = id

		return r.OrderItems().CreateBulk(txCtx, orderID, orderItems)
	})
	if err != nil {
		//作成済みの顧客は戻さない（リトライでそのまま使える）
		u.setState(CheckoutStateFailed)
		log.Errorf("checkout: order tx failed: %v", err)
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "order failed, please retry")
	}

	//Step4: 通知はベストエフォート。失敗しても注文は成立している。
	msg := notify.ComposeOrderMessage(name, phone, lines, total)
	nCtx, nCancel := context.WithTimeout(ctx, u.stepTimeout)
	defer nCancel()
	if err := u.notifier.Send(nCtx, u.shopPhone, msg); err != nil {
		log.Warnf("checkout: notification failed (order %d kept): %v", orderID, err)
	}

	//Step5: 全部通ったのでカートを空にする（空の状態も保存される）
	u.cart.Clear()
	u.setState(CheckoutStateSucceeded)

	return CheckoutOutput{
		OrderID:     orderID,
		CustomerID:  customer.ID,
		TotalAmount: total,
		Status:      string(model.OrderStatusPending),
	}, nil
}

// 実行権を取る。取れたらVALIDATINGへ。
func (u *CheckoutUsecase) begin() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch u.state {
	case CheckoutStateIdle, CheckoutStateSucceeded, CheckoutStateFailed:
		u.state = CheckoutStateValidating
		return true
	default:
		return false
	}
}

func (u *CheckoutUsecase) setState(s CheckoutState) {
	u.mu.Lock()
	u.state = s
	u.mu.Unlock()
}

// 電話番号で検索して、いなければ作る。
// 「見つからない」は正常系。それ以外の失敗はこの試行ごと中断。
func (u *CheckoutUsecase) resolveCustomer(ctx context.Context, name string, phone string) (model.Customer, error) {
	stepCtx, cancel := context.WithTimeout(ctx, u.stepTimeout)
	defer cancel()

	c, found, err := u.customers.FindByPhone(stepCtx, phone)
	if err != nil {
		return model.Customer{}, err
	}
	if found {
		return c, nil
	}

	now := time.Now()
	return u.customers.Create(stepCtx, model.Customer{
		Name:        name,
		PhoneNumber: phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}
