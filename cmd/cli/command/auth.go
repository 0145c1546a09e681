package command

import (
	"fmt"
	"time"

	"foodreview/cmd/cli/authentication"
	"foodreview/cmd/cli/command/client"
	"foodreview/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Register, login and logout. The tokens are kept in the OS keyring.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Email, _ = cmd.Flags().GetString("email")
		req.FullName, _ = cmd.Flags().GetString("name")

		user, err := GetClient().Register(&req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println(success("✓ Registration successful! Please login to continue."))
		fmt.Printf("UserID: %s\n", user.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login and save the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		if req.Identifier() == "" {
			return fmt.Errorf("--username or --email is required")
		}

		resp, err := GetClient().Login(&req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		creds := &authentication.StoredCredentials{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			Username:     resp.User.Username,
			UserID:       resp.User.ID,
			ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		}
		if err := authentication.StoreTokens(creds); err != nil {
			fmt.Println(warn("! could not save token to keyring: " + err.Error()))
			fmt.Printf("Access Token: %s\n", resp.AccessToken)
		}

		fmt.Println(success("✓ Logged in as " + resp.User.Username))
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Get a new access token with the saved refresh token",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		if creds == nil || creds.RefreshToken == "" {
			return fmt.Errorf("not logged in, run 'auth login' first")
		}

		resp, err := client.NewHTTPClient(apiURL).RefreshToken(creds.RefreshToken)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		creds.AccessToken = resp.AccessToken
		creds.RefreshToken = resp.RefreshToken
		creds.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
		if err := authentication.StoreTokens(creds); err != nil {
			return err
		}
		fmt.Println(success("✓ Token refreshed for " + creds.Username))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke and forget the saved tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if creds, err := authentication.GetTokens(); err == nil && creds != nil && creds.RefreshToken != "" {
			if err := client.NewHTTPClient(apiURL).RevokeToken(creds.RefreshToken); err != nil {
				fmt.Println(warn("! could not revoke refresh token: " + err.Error()))
			}
		}
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		fmt.Println(success("✓ Logged out."))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := GetClient().Profile()
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s) role=%s\n", heading(user.Username), user.Email, user.Role)
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd, loginCmd, refreshCmd, logoutCmd, whoamiCmd)

	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().String("name", "", "Full name")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringP("username", "u", "", "Username for the account")
	loginCmd.Flags().StringP("email", "e", "", "Email for the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	loginCmd.MarkFlagRequired("password")
}
