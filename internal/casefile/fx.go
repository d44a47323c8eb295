package casefile

import (
	"github.com/revenuedesk/appealflow/internal/casefile/repository"
	"github.com/revenuedesk/appealflow/internal/casefile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("casefile.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
	fx.Provide(service.NewStatusWriter),
)
