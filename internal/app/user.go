package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/blackwell-systems/taskwatch/internal/auth"
	"github.com/blackwell-systems/taskwatch/internal/config"
	"github.com/blackwell-systems/taskwatch/internal/output"
	"github.com/blackwell-systems/taskwatch/internal/store"
	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Register and list users",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a new user",
	Long: `Create an account with a bcrypt-hashed password. Each new user starts
with the Work, Personal, Health, Learning, and Hobbies categories.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserRegister,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var loginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Verify a password and make the user active",
	Long: `Check the password against the stored hash and record the user as the
active one in the config file. Later commands act as that user unless
--user is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	userRegisterCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	userRegisterCmd.Flags().StringVar(&userPassword, "password", "", "Password (at least 6 characters)")
	_ = userRegisterCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&userPassword, "password", "", "Password")
	_ = loginCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userRegisterCmd, userListCmd)
	rootCmd.AddCommand(userCmd, loginCmd)
}

// registerUser hashes the password and creates the account.
func registerUser(db *store.DB, name, email, password string) (*store.User, error) {
	if name == "" {
		return nil, errors.New("username is required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return db.CreateUser(name, email, hash)
}

// authenticate returns the named user when password matches. Unknown users
// and wrong passwords both yield auth.ErrInvalidCredentials.
func authenticate(db *store.DB, name, password string) (*store.User, error) {
	u, err := db.UserByName(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, err
	}
	return u, nil
}

func runUserRegister(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := registerUser(e.db, args[0], userEmail, userPassword)
	if err != nil {
		return fmt.Errorf("registering %s: %w", args[0], err)
	}

	if flagJSON {
		return outputJSON(u)
	}
	fmt.Printf(" %s Registered %s. Run 'taskwatch login %s' to start.\n",
		output.StyleSuccess.Render("✓"), output.StyleBold.Render(u.Username), u.Username)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	users, err := e.db.ListUsers()
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(users)
	}

	fmt.Println(output.Section("Users"))
	fmt.Println()
	if len(users) == 0 {
		fmt.Println(" No users registered.")
		return nil
	}
	tbl := output.NewTable("ID", "Username", "Email", "Created", "")
	for _, u := range users {
		active := ""
		if u.Username == e.cfg.User {
			active = output.StyleSuccess.Render("active")
		}
		tbl.AddRow(fmt.Sprintf("%d", u.ID), u.Username, u.Email, u.CreatedAt.Format("2006-01-02"), active)
	}
	tbl.Print()
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := authenticate(e.db, args[0], userPassword)
	if err != nil {
		return err
	}

	path, err := config.SaveUser(flagConfig, u.Username)
	if err != nil {
		return fmt.Errorf("saving active user: %w", err)
	}
	slog.Debug("active user saved", "user", u.Username, "config", path)

	fmt.Printf(" %s Logged in as %s\n", output.StyleSuccess.Render("✓"), output.StyleBold.Render(u.Username))
	return nil
}
