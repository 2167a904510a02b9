package main

import (
	"context"
	"errors"
	"os"
	"time"

	"app/internal/cart"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/notify"
	"app/internal/repository"
	"app/internal/server"
	"app/internal/session"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// 初期管理者がいなければ作る
func seedAdmin(userRepo repository.AdminUserRepository, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	ctx := context.Background()
	_, err := userRepo.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hasher := auth.NewBcryptPasswordHasher(12)
	hashed, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	return userRepo.Create(ctx, &model.AdminUser{
		Email:        cfg.AdminEmail,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func main() {
	//.envは無くてもよい（本番は環境変数だけで動かす）
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file, using environment as is")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.AdminUser{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	adminUserRepo := infraRepo.NewAdminUserGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	if err := seedAdmin(adminUserRepo, cfg); err != nil {
		panic(err)
	}

	//カートはローカルのファイルスロットから復元
	cartStore := cart.NewFileStore(cfg.CartStorePath)
	shoppingCart := cart.New(cartStore)

	//セッション（管理画面のゲートが購読する）
	sessions := session.NewContext()

	//usecaseに渡す部品
	clock := &realClock{}
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg.JWTSecret)
	notifier := notify.NewLogNotifier()

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(
		shoppingCart, customerRepo, txManager, notifier,
		cfg.ShopPhone, cfg.CheckoutStepTimeout,
	)
	loginUC := auth.NewLoginUsecase(adminUserRepo, verifier, issuer, clock, sessions)

	//Handler生成
	h := server.Handlers{
		Products:     handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(shoppingCart, productUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC),
		Auth:         handler.NewAuthHandler(loginUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
	}

	//Server起動
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		if v[0] != ':' {
			addr = ":" + v
		} else {
			addr = v
		}
	}

	if err := server.Start(addr, cfg, h); err != nil {
		panic(err)
	}
}
