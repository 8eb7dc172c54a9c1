package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"toolbox/config"
	"toolbox/internal/domain/entity"
	"toolbox/internal/domain/repository"
	logs "toolbox/internal/infra/log"
	"toolbox/internal/infra/persistence/postgres"
	"toolbox/internal/infra/pubsub"
	"toolbox/internal/usecase"
	"toolbox/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var adminUser string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Moderate user-submitted templates",
	Long: `Review the moderation queue on behalf of an administrator. The --admin
user must exist and hold the admin role in the user store.`,
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List templates awaiting approval",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTemplates(cmd, func(ctx context.Context, templates usecase.TemplateUsecase, actor usecase.Actor) error {
			pending, err := templates.ListPendingTemplates(ctx, actor)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tTIER\tCREATED BY\tCREATED ON")
			for _, svc := range pending {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					svc.ID, svc.Title, svc.AccessTier, svc.CreatedByUserID, svc.CreatedOn.Format(time.RFC3339))
			}

			return w.Flush()
		})
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <service-id>",
	Short: "Publish a pending template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceID, err := parseServiceID(args[0])
		if err != nil {
			return err
		}

		return withTemplates(cmd, func(ctx context.Context, templates usecase.TemplateUsecase, actor usecase.Actor) error {
			svc, err := templates.ApproveTemplate(ctx, actor, serviceID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "approved %s (%s)\n", svc.ID, svc.Title)

			return nil
		})
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <service-id>",
	Short: "Reject and delete a pending template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceID, err := parseServiceID(args[0])
		if err != nil {
			return err
		}

		return withTemplates(cmd, func(ctx context.Context, templates usecase.TemplateUsecase, actor usecase.Actor) error {
			if err := templates.RejectTemplate(ctx, actor, serviceID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rejected %s\n", serviceID)

			return nil
		})
	},
}

func init() {
	templatesCmd.PersistentFlags().StringVar(&adminUser, "admin", "", "administrator user id to act as")
	_ = templatesCmd.MarkPersistentFlagRequired("admin")

	templatesCmd.AddCommand(pendingCmd, approveCmd, rejectCmd)
	rootCmd.AddCommand(templatesCmd)
}

func parseServiceID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid service id %q", raw)
	}

	return id, nil
}

// withTemplates starts the persistence graph, resolves the admin actor and runs fn.
func withTemplates(cmd *cobra.Command, fn func(ctx context.Context, templates usecase.TemplateUsecase, actor usecase.Actor) error) error {
	adminID, err := uuid.Parse(adminUser)
	if err != nil {
		return errors.Wrapf(err, "invalid --admin %q", adminUser)
	}

	ctx := cmd.Context()

	var (
		users     repository.UserRepository
		templates usecase.TemplateUsecase
	)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			func() context.Context { return ctx },
			postgres.New,
			postgres.NewUserRepository,
			postgres.NewTransactionManager,
			impl.NewTemplateService,
		),
		fx.Decorate(quietLogger),
		pubsub.Module,
		fx.Populate(&users, &templates),
	)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build catalog dependencies")
	}

	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start catalog dependencies")
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	actor, err := resolveActor(ctx, users, adminID)
	if err != nil {
		return err
	}

	return fn(ctx, templates, actor)
}

// resolveActor loads the caller's roles from the user store and requires the admin role.
func resolveActor(ctx context.Context, users repository.UserRepository, userID uuid.UUID) (usecase.Actor, error) {
	roles, err := users.FindRoles(ctx, userID)
	if err != nil {
		return usecase.Actor{}, errors.Wrapf(err, "failed to resolve roles for %s", userID)
	}
	if !roles.Contains(entity.RoleAdmin) {
		return usecase.Actor{}, errors.Errorf("user %s is not an administrator", userID)
	}

	return usecase.Actor{UserID: userID, Roles: roles}, nil
}
