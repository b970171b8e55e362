package bootstrap

import (
	"log/slog"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/config"
	"github.com/osse101/SpaceCases_Go/internal/drop"
	"github.com/osse101/SpaceCases_Go/internal/event"
	"github.com/osse101/SpaceCases_Go/internal/inventory"
	"github.com/osse101/SpaceCases_Go/internal/ledger"
	"github.com/osse101/SpaceCases_Go/internal/repository"
	"github.com/osse101/SpaceCases_Go/internal/settlement"
	"github.com/osse101/SpaceCases_Go/internal/upgrade"
	"github.com/osse101/SpaceCases_Go/internal/utils"
	"github.com/osse101/SpaceCases_Go/internal/worker"
)

// Services groups the domain services built over one store
type Services struct {
	Ledger           ledger.Service
	Inventory        inventory.Service
	Upgrade          upgrade.Service
	Settlement       settlement.Service
	SettlementWorker *worker.SettlementWorker
}

// InitializeServices builds the domain services and subscribes the
// settlement worker to the bus. The worker is not started here.
func InitializeServices(
	cfg *config.Config,
	store repository.Store,
	provider catalog.Provider,
	bus event.Bus,
	publisher *event.ResilientPublisher,
) *Services {
	rnd := utils.Rand{}

	ledgerSvc := ledger.NewService(store, ledger.Config{
		StartingBalance:     cfg.StartingBalance,
		InventoryCapacity:   cfg.InventoryCapacity,
		ClaimBaseReward:     cfg.ClaimBaseReward,
		ClaimMaxMultiplier:  cfg.ClaimMaxMultiplier,
		MaxTransferAttempts: cfg.TransferAttempts,
	})

	settlementSvc := settlement.NewService(store, provider, drop.NewEngine(rnd), publisher, settlement.Config{
		KeyPrice: cfg.KeyPrice,
		Window:   cfg.SettlementWindow,
	})

	settlementWorker := worker.NewSettlementWorker(settlementSvc, cfg.SettlementWorkers, cfg.SettlementQueue)
	settlementWorker.Subscribe(bus)

	slog.Info(LogMsgServicesInitialized,
		"key_price", cfg.KeyPrice,
		"settlement_window", cfg.SettlementWindow,
		"settlement_workers", cfg.SettlementWorkers)

	return &Services{
		Ledger:           ledgerSvc,
		Inventory:        inventory.NewService(store, provider),
		Upgrade:          upgrade.NewService(store, provider, rnd),
		Settlement:       settlementSvc,
		SettlementWorker: settlementWorker,
	}
}
