package main

import (
	"fmt"
	"strings"
	"time"

	"robostore/internal/config"
	"robostore/internal/domain/model"
	"robostore/internal/handler"
	"robostore/internal/infra/db"
	"robostore/internal/infra/github"
	infraRepo "robostore/internal/infra/repository"
	"robostore/internal/notification"
	"robostore/internal/server"
	"robostore/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// ORD-<unixミリ秒>-<ランダム9文字> を払い出す。
// 一意性の最終保証はDBのunique indexで、衝突時はusecaseが再採番する。
type orderNumberGenerator struct{}

func (g *orderNumberGenerator) NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

func main() {
	//.envは無くてもよい（本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Coupon{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	orderNumGen := &orderNumberGenerator{}
	githubClient := github.NewClient(cfg.GithubClientID, cfg.GithubClientSecret)

	//SMTP未設定ならログ出力に落とす
	var notifier notification.Notifier
	if cfg.SMTPEnabled() {
		notifier = notification.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	} else {
		log.Warn("SMTP not configured, emails will be logged only")
		notifier = notification.NewLogNotifier()
	}

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, inventoryRepo, auditRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	searchUC := usecase.NewSearchUsecase(productRepo, categoryRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo, clock)
	orderUC := usecase.NewOrderUsecase(txManager, orderNumGen, clock, notifier, cfg.AdminEmail)
	adminCouponUC := usecase.NewAdminCouponUsecase(couponRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, notifier)
	analyticsUC := usecase.NewAnalyticsUsecase(txManager, userRepo, auditRepo)
	authUC := usecase.NewAuthUsecase(userRepo, githubClient, cfg.JWTSecret, clock)

	//Handler生成
	deps := server.Deps{
		Product:        handler.NewProductHandler(productUC),
		Category:       handler.NewCategoryHandler(categoryUC, searchUC),
		Coupon:         handler.NewCouponHandler(couponUC),
		Order:          handler.NewOrderHandler(orderUC),
		Auth:           handler.NewAuthHandler(authUC),
		AdminProduct:   handler.NewAdminProductHandler(productUC),
		AdminCategory:  handler.NewAdminCategoryHandler(categoryUC),
		AdminCoupon:    handler.NewAdminCouponHandler(adminCouponUC),
		AdminOrder:     handler.NewAdminOrderHandler(adminOrderUC),
		AdminAnalytics: handler.NewAdminAnalyticsHandler(analyticsUC),
		UserRepo:       userRepo,
	}

	//Server起動
	e := server.New(cfg, deps)
	if err := server.Start(e, cfg); err != nil {
		panic(err)
	}
}
