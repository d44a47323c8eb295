package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/revenuedesk/appealflow/internal/agenda"
	agendadomain "github.com/revenuedesk/appealflow/internal/agenda/domain"
	"github.com/revenuedesk/appealflow/internal/casefile"
	casedomain "github.com/revenuedesk/appealflow/internal/casefile/domain"
	"github.com/revenuedesk/appealflow/internal/clock"
	"github.com/revenuedesk/appealflow/internal/config"
	"github.com/revenuedesk/appealflow/internal/meeting"
	meetingdomain "github.com/revenuedesk/appealflow/internal/meeting/domain"
	"github.com/revenuedesk/appealflow/internal/member"
	memberdomain "github.com/revenuedesk/appealflow/internal/member/domain"
	"github.com/revenuedesk/appealflow/internal/migration"
	"github.com/revenuedesk/appealflow/internal/seed"
	"github.com/revenuedesk/appealflow/internal/voting"
	votingdomain "github.com/revenuedesk/appealflow/internal/voting/domain"
	"github.com/revenuedesk/appealflow/pkg/db"
	"github.com/revenuedesk/appealflow/pkg/log"
	"github.com/revenuedesk/appealflow/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		telemetry.Module,
		migration.Module,

		fx.Invoke(func(cfg config.Config, conn *gorm.DB, node *snowflake.Node, logger *zap.Logger) error {
			if !cfg.SeedCommittee {
				return nil
			}
			if err := seed.EnsureCommittee(conn, node); err != nil {
				return err
			}
			logger.Info("committee directory seeded")
			return nil
		}),

		// Functional domains
		member.Module,
		casefile.Module,
		voting.Module,
		agenda.Module,
		meeting.Module,

		// Construct every domain service at startup so wiring failures
		// surface immediately rather than on first use by the host.
		fx.Invoke(func(
			casedomain.Service,
			votingdomain.Service,
			agendadomain.Service,
			memberdomain.Service,
			meetingdomain.Service,
		) {
		}),

		fx.Invoke(func(logger *zap.Logger, cfg config.Config) {
			logger.Info("appeal engine ready",
				zap.String("version", cfg.AppVersion),
				zap.String("environment", cfg.Environment),
			)
		}),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
