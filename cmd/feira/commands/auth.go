package commands

import (
	"agrofeira/cmd/feira/output"
	"agrofeira/pkg/client"

	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var in client.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a producer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			producer, err := a.client().Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Registered %s (%s)", producer.Name, producer.Email)
			output.Muted(cmd.OutOrStdout(), "Run 'feira login --email %s' to start a session.", producer.Email)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Full name")
	f.StringVar(&in.EstablishmentName, "establishment", "", "Establishment name")
	f.StringVar(&in.Email, "email", "", "Email address")
	f.StringVar(&in.Phone, "phone", "", "Phone number")
	f.StringVar(&in.CPF, "cpf", "", "CPF, with or without punctuation")
	f.StringVar(&in.Address, "address", "", "Address")
	f.StringVar(&in.Password, "password", "", "Password: 8+ letters and digits with upper, lower and a digit")
	for _, name := range []string{"name", "email", "phone", "cpf", "address", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Logged in as %s", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.SignOut(); err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in producer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := a.session.User()
			if user == nil {
				output.Info(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			output.Info(cmd.OutOrStdout(), "%s <%s> (id %s)", user.Name, user.Email, user.ID)
			return nil
		},
	}
}
