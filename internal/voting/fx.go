package voting

import (
	"github.com/revenuedesk/appealflow/internal/voting/repository"
	"github.com/revenuedesk/appealflow/internal/voting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("voting.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
