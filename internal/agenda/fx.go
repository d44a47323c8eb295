package agenda

import (
	"github.com/revenuedesk/appealflow/internal/agenda/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agenda.service",
	fx.Provide(service.NewService),
)
