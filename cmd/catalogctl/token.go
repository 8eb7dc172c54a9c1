package main

import (
	"fmt"
	"strings"

	"toolbox/config"
	"toolbox/internal/domain/entity"
	"toolbox/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	tokenUser  string
	tokenRoles []string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for local development",
	Long: `Sign an access token with the configured secret. Roles embedded in the
token are advisory; the API resolves the caller's roles from the user store on
every request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(tokenUser)
		if err != nil {
			return errors.Wrapf(err, "invalid --user %q", tokenUser)
		}
		roles, err := parseRoles(tokenRoles)
		if err != nil {
			return err
		}

		cfg, err := config.New()
		if err != nil {
			return err
		}
		tokens, err := auth.NewJWTService(cfg)
		if err != nil {
			return err
		}

		token, err := tokens.GenerateAccessToken(userID, roles.ToStrings())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)

		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id the token is issued for")
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "roles", []string{entity.RoleUser.String()}, "comma separated roles")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

// parseRoles validates and de-duplicates role names.
func parseRoles(raw []string) (entity.Roles, error) {
	roles := make(entity.Roles, 0, len(raw))
	for _, r := range raw {
		role := entity.Role(strings.ToLower(strings.TrimSpace(r)))
		if role == "" {
			continue
		}
		if !role.IsValid() {
			return nil, errors.Errorf("unknown role %q", r)
		}
		if !roles.Contains(role) {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return nil, errors.New("at least one role is required")
	}

	return roles, nil
}
