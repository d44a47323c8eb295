package meeting

import (
	"github.com/revenuedesk/appealflow/internal/meeting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("meeting.service",
	fx.Provide(service.NewService),
)
