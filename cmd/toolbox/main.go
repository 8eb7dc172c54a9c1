package main

import (
	"context"
	"log/slog"
	"os"

	"toolbox/config"
	"toolbox/internal/delivery"
	"toolbox/internal/delivery/api"
	apimiddleware "toolbox/internal/delivery/api/middleware"
	"toolbox/internal/delivery/api/router/handler"
	"toolbox/internal/infra/auth"
	"toolbox/internal/infra/cache"
	"toolbox/internal/infra/dispatch"
	logs "toolbox/internal/infra/log"
	"toolbox/internal/infra/persistence/postgres"
	"toolbox/internal/infra/pubsub"
	"toolbox/internal/infra/qrcode"
	"toolbox/internal/infra/tools"
	"toolbox/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewServiceRepository,
			postgres.NewUserRepository,
			postgres.NewCategoryRepository,
			postgres.NewTransactionManager,
		),
		fx.Decorate(cache.DecorateCategoryRepository),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.New,
			tools.NewKinds,
			dispatch.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewTemplateService,
			impl.NewFavoriteService,
			impl.NewReviewService,
			impl.NewCategoryService,
			impl.NewToolService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewToolRateLimiter,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCatalogHandler,
			handler.NewTemplateHandler,
			handler.NewFavoriteHandler,
			handler.NewReviewHandler,
			handler.NewCategoryHandler,
			handler.NewToolHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
