package main

import (
	"context"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// 初回起動時のサンプル商品
func seedProducts(ctx context.Context, products repo.ProductRepository) error {
	n, err := products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seeds := []model.Product{
		{Name: "Laptop", Price: 99999, Description: "High-performance laptop for professionals"},
		{Name: "Smartphone", Price: 69999, Description: "Latest smartphone with advanced features"},
		{Name: "Tablet", Price: 39999, Description: "Lightweight tablet perfect for entertainment"},
		{Name: "Headphones", Price: 19999, Description: "Premium noise-cancelling headphones"},
		{Name: "Smart Watch", Price: 29999, Description: "Fitness tracker with smart features"},
	}
	for _, p := range seeds {
		if _, err := products.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	// .envは無くても起動できる
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	if err := seedProducts(context.Background(), productRepo); err != nil {
		panic(err)
	}

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	authUC := usecase.NewAuthUsecase(userRepo, issuer, 12)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	productH := handler.NewProductHandler(productUC)
	authH := handler.NewAuthHandler(authUC, cartUC)

	//Server起動
	e := server.New(cfg, productH, cartH, authH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := e.Start(addr); err != nil {
		panic(err)
	}
}
