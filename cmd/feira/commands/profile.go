package commands

import (
	"agrofeira/cmd/feira/output"
	"agrofeira/pkg/client"

	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and manage your producer profile",
	}
	cmd.AddCommand(
		newProfileShowCmd(a),
		newProfileUpdateCmd(a),
		newProfilePasswordCmd(a),
		newProfileDeleteCmd(a),
	)
	return cmd
}

func printProducer(cmd *cobra.Command, p *client.Producer) {
	w := cmd.OutOrStdout()
	output.Section(w, p.Name)
	output.Field(w, "Establishment", p.EstablishmentName)
	output.Field(w, "Email", p.Email)
	output.Field(w, "Phone", p.Phone)
	output.Field(w, "CPF", p.CPF)
	output.Field(w, "Address", p.Address)
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireSession()
			if err != nil {
				return err
			}
			producer, err := a.client().GetProducer(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			printProducer(cmd, producer)
			return nil
		},
	}
}

func newProfileUpdateCmd(a *app) *cobra.Command {
	var in client.ProfileUpdate
	var establishment string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile; requires your current password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireSession()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("establishment") {
				in.EstablishmentName = &establishment
			}
			producer, err := a.client().UpdateProfile(cmd.Context(), user.ID, in)
			if err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Profile updated")
			printProducer(cmd, producer)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.CurrentPassword, "current-password", "", "Your current password")
	f.StringVar(&in.Name, "name", "", "New name")
	f.StringVar(&establishment, "establishment", "", "New establishment name (empty clears it)")
	f.StringVar(&in.Phone, "phone", "", "New phone")
	f.StringVar(&in.Address, "address", "", "New address")
	_ = cmd.MarkFlagRequired("current-password")
	return cmd
}

func newProfilePasswordCmd(a *app) *cobra.Command {
	var in client.PasswordChange
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireSession()
			if err != nil {
				return err
			}
			if err := a.client().ChangePassword(cmd.Context(), user.ID, in); err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.CurrentPassword, "current", "", "Current password")
	f.StringVar(&in.NewPassword, "new", "", "New password")
	f.StringVar(&in.ConfirmNewPassword, "confirm", "", "New password again")
	return cmd
}

func newProfileDeleteCmd(a *app) *cobra.Command {
	var currentPassword string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and all of your products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireSession()
			if err != nil {
				return err
			}
			if err := a.client().DeleteProducer(cmd.Context(), user.ID, currentPassword); err != nil {
				return err
			}
			if err := a.session.SignOut(); err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "Account deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&currentPassword, "current-password", "", "Your current password")
	_ = cmd.MarkFlagRequired("current-password")
	return cmd
}
