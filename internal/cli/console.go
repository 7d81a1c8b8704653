// Package cli provides the interactive numbered menus.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bissquit/hotel-desk/internal/admin"
	"github.com/bissquit/hotel-desk/internal/bookings"
	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/bissquit/hotel-desk/internal/identity"
	"github.com/bissquit/hotel-desk/internal/pkg/ctxlog"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// errQuit ends the session when input is exhausted.
var errQuit = errors.New("input closed")

// Console drives the menus over a line-oriented input and an output writer.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	identity *identity.Service
	admin    *admin.Service
	bookings *bookings.Service
	title    cases.Caser

	// passwordFD is a terminal file descriptor for echo-free password input,
	// or -1 to read passwords as plain lines.
	passwordFD int
}

// NewConsole creates a new console.
func NewConsole(in io.Reader, out io.Writer, identitySvc *identity.Service, adminSvc *admin.Service, bookingsSvc *bookings.Service) *Console {
	return &Console{
		in:         bufio.NewReader(in),
		out:        out,
		identity:   identitySvc,
		admin:      adminSvc,
		bookings:   bookingsSvc,
		title:      cases.Title(language.English),
		passwordFD: -1,
	}
}

// UseTerminal reads passwords without echo when fd is a terminal.
func (c *Console) UseTerminal(fd int) {
	if term.IsTerminal(fd) {
		c.passwordFD = fd
	}
}

// Run shows the welcome menu until the user exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println("\n=== Welcome ===")
		c.println("1. Login")
		c.println("2. Sign Up")
		c.println("3. Exit")

		choice, err := c.prompt("Enter choice (1-3): ")
		if err != nil {
			return c.finish(err)
		}

		switch choice {
		case "1":
			err = c.login(ctx)
		case "2":
			err = c.signup(ctx)
		case "3":
			c.println("Goodbye!")
			return nil
		default:
			c.println("Invalid choice. Please select 1-3.")
		}
		if err != nil {
			return c.finish(err)
		}
	}
}

func (c *Console) login(ctx context.Context) error {
	c.println("\n=== Login ===")
	username, err := c.prompt("Enter username: ")
	if err != nil {
		return err
	}
	if username == "" {
		c.println("Username cannot be empty.")
		return nil
	}

	password, err := c.promptPassword("Enter password: ")
	if err != nil {
		return err
	}
	if password == "" {
		c.println("Password cannot be empty.")
		return nil
	}

	session, err := c.identity.Authenticate(ctx, username, password)
	if err != nil {
		c.report(ctx, "login", err)
		return nil
	}

	ctx, logger := ctxlog.With(ctx, "username", session.Username, "role", session.Role)
	logger.Info("login succeeded")

	if session.IsAdmin() {
		return c.adminMenu(ctx, session)
	}

	c.printf("Welcome %s!\n", session.Username)
	if session.Role == domain.RoleStaff {
		c.printf("You are logged in as %s\n", session.Position)
	}
	return c.userMenu(ctx, session)
}

func (c *Console) signup(ctx context.Context) error {
	c.println("\n=== Sign Up ===")
	c.println("1. Sign up as Staff")
	c.println("2. Sign up as Customer")

	choice, err := c.prompt("Enter choice (1-2): ")
	if err != nil {
		return err
	}

	var role domain.Role
	switch choice {
	case "1":
		role = domain.RoleStaff
	case "2":
		role = domain.RoleCustomer
	default:
		c.println("Invalid choice. Please select 1 or 2.")
		return nil
	}

	for {
		username, err := c.prompt("Enter username: ")
		if err != nil {
			return err
		}
		if username == "" {
			c.println("Username cannot be empty.")
			continue
		}

		unique, err := c.identity.Resolver().IsUnique(ctx, username)
		if err != nil {
			c.report(ctx, "signup", err)
			return nil
		}
		if !unique {
			c.println("Username already exists. Please choose another.")
			continue
		}

		password, err := c.promptPassword("Enter password: ")
		if err != nil {
			return err
		}
		if password == "" {
			c.println("Password cannot be empty.")
			continue
		}

		confirm, err := c.promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			c.println("Passwords don't match. Try again.")
			continue
		}

		var position string
		if role == domain.RoleStaff {
			position, err = c.promptPosition("Enter position (" + positionList() + "): ")
			if err != nil {
				return err
			}
		}

		_, err = c.identity.Register(ctx, identity.RegisterInput{
			Username: username,
			Password: password,
			Role:     role,
			Position: position,
		})
		if errors.Is(err, identity.ErrDuplicateUsername) {
			c.println("Username already exists. Please choose another.")
			continue
		}
		if errors.Is(err, identity.ErrInvalidInput) {
			c.report(ctx, "signup", err)
			continue
		}
		if err != nil {
			c.report(ctx, "signup", err)
			return nil
		}

		c.println("Signup successful!")
		return nil
	}
}

// promptPosition re-prompts until the answer is a known position.
func (c *Console) promptPosition(label string) (string, error) {
	for {
		answer, err := c.prompt(label)
		if err != nil {
			return "", err
		}
		if position, ok := domain.ParsePosition(answer); ok {
			return string(position), nil
		}
		c.println("Invalid position. Please enter one of: " + positionList() + ".")
	}
}

func (c *Console) report(ctx context.Context, op string, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidInput):
		c.println("Invalid input: " + err.Error())
	case errors.Is(err, identity.ErrInvalidPosition):
		c.println("Invalid position.")
	case errors.Is(err, identity.ErrUsernameNotFound):
		c.println("Username not found.")
	case errors.Is(err, identity.ErrIncorrectPassword):
		c.println("Incorrect password.")
	case errors.Is(err, identity.ErrDuplicateUsername):
		c.println("Username already exists.")
	case errors.Is(err, identity.ErrUserNotFound):
		c.println("User not found.")
	case errors.Is(err, identity.ErrAlreadyAdmin):
		c.println("User is already an admin.")
	case errors.Is(err, identity.ErrLastAdmin):
		c.println("Cannot delete the last admin.")
	case errors.Is(err, identity.ErrForbidden):
		c.println("Admin access required.")
	case errors.Is(err, bookings.ErrInvalidBooking):
		c.println("Invalid booking: " + err.Error())
	default:
		ctxlog.FromContext(ctx).Error("operation failed", "op", op, "error", err)
		c.printf("Operation failed: %v\n", err)
	}
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword keeps surrounding spaces: they are part of the password.
func (c *Console) promptPassword(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if c.passwordFD < 0 {
		return c.readLine()
	}

	password, err := term.ReadPassword(c.passwordFD)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; errQuit follows it.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", errQuit
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) promptInt(label string) (int, bool, error) {
	answer, err := c.prompt(label)
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (c *Console) finish(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func positionList() string {
	names := make([]string, 0, len(domain.Positions))
	for _, p := range domain.Positions {
		names = append(names, string(p))
	}
	return strings.Join(names, "/")
}
