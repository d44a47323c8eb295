package member

import (
	"github.com/revenuedesk/appealflow/internal/member/repository"
	"github.com/revenuedesk/appealflow/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
