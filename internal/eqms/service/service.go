package service

import (
	"github.com/bitfantasy/eqms/internal/cache"
	"github.com/bitfantasy/eqms/internal/config"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Services 서비스 집합
type Services struct {
	Auth        *AuthService
	User        *UserService
	Part        *PartService
	Inventory   *InventoryService
	Supplier    *SupplierService
	Transaction *TransactionService
	Export      *ExportService
}

func NewServices(repos *repository.Repositories, store cache.Store, cfg *config.Config, logger *zap.Logger) *Services {
	// MinIO는 설정된 경우에만 붙인다. 없으면 내보내기 보관만 건너뛴다.
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO 초기화 실패", zap.Error(err))
			minioClient = nil
		}
	}

	inventorySvc := NewInventoryService(repos.Part, repos.Inventory, repos.Price, store, logger)

	return &Services{
		Auth:        NewAuthService(repos.User, cfg.JWT, cfg.Auth, logger),
		User:        NewUserService(repos.User, logger),
		Part:        NewPartService(repos.Part, repos.Price, store, logger),
		Inventory:   inventorySvc,
		Supplier:    NewSupplierService(repos.Supplier, logger),
		Transaction: NewTransactionService(repos.Transaction, repos.Part, repos.Inventory, repos.Price, store, logger),
		Export:      NewExportService(inventorySvc, repos.Transaction, minioClient, cfg.MinIO.Bucket, logger),
	}
}
