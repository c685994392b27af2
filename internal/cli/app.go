package cli

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"park-system/internal/models"
	"park-system/internal/services"
)

// App wires the services to the menu-driven terminal surface.
type App struct {
	prompt   *Prompter
	out      io.Writer
	auth     *services.AuthService
	catalog  *services.CatalogService
	checkout *services.CheckoutService
	bookings *services.BookingService
	support  *services.SupportService
	reports  *services.ReportService
	audit    *services.AuditService
	log      *logrus.Logger
}

// NewApp creates the terminal application
func NewApp(
	in io.Reader,
	out io.Writer,
	auth *services.AuthService,
	catalog *services.CatalogService,
	checkout *services.CheckoutService,
	bookings *services.BookingService,
	support *services.SupportService,
	reports *services.ReportService,
	audit *services.AuditService,
	log *logrus.Logger,
) *App {
	return &App{
		prompt:   NewPrompter(in, out),
		out:      out,
		auth:     auth,
		catalog:  catalog,
		checkout: checkout,
		bookings: bookings,
		support:  support,
		reports:  reports,
		audit:    audit,
		log:      log,
	}
}

// Run drives the main menu until the user exits.
func (a *App) Run(ctx context.Context) error {
	for {
		a.prompt.Println("\n=== STATE PARK SYSTEM ===")
		a.prompt.Println("1. Login")
		a.prompt.Println("2. Register")
		a.prompt.Println("3. Exit")

		switch a.prompt.Line("Choice: ") {
		case "1":
			a.login(ctx)
		case "2":
			a.register(ctx)
		case "3", "":
			a.prompt.Println("Goodbye.")
			return nil
		default:
			a.prompt.Println("Invalid choice.")
		}
	}
}

func (a *App) login(ctx context.Context) {
	a.prompt.Println("\n--- Login ---")
	email := a.prompt.Line("Email: ")
	password := a.prompt.Line("Password: ")

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			a.prompt.Println("Invalid credentials.")
		} else {
			a.prompt.Printf("Login failed: %v\n", err)
		}
		return
	}

	a.prompt.Printf("\nWelcome, %s!\n", user.Name)
	if user.IsAdmin() {
		a.adminMenu(ctx, user)
	} else {
		a.customerMenu(ctx, user)
	}
}

func (a *App) register(ctx context.Context) {
	a.prompt.Println("\n--- Register ---")
	name := a.prompt.NonEmpty("Name: ")
	email := a.prompt.NonEmpty("Email: ")
	password := a.prompt.NonEmpty("Password: ")

	_, err := a.auth.Register(ctx, name, email, password, models.CustomerProfile{})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			a.prompt.Println("Email already exists.")
		} else {
			a.prompt.Printf("Registration failed: %v\n", err)
		}
		return
	}
	a.prompt.Println("Success! Please login.")
}
