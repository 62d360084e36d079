package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/spf13/cobra"
)

var (
	userLogin    string
	userRole     string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage admin users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an admin user",
	Long: `Create an admin user. The password is read from the first line of
stdin unless --password is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := userPassword
		if password == "" {
			var err error
			if password, err = readPassword(cmd.InOrStdin()); err != nil {
				return err
			}
		}

		a, err := newApp(appConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.services.Users.AddUser(cmd.Context(), userLogin, password, domain.Role(userRole))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", user.Role, user.Login, user.ID)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userLogin, "login", "", "login name")
	userAddCmd.Flags().StringVar(&userRole, "role", string(domain.RoleEditor), "administrator, editor, author or contributor")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "password (read from stdin when empty)")
	_ = userAddCmd.MarkFlagRequired("login")

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
