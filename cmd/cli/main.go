package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/famledger/infra"
	"github.com/amirasaad/famledger/infra/initializer"
	"github.com/amirasaad/famledger/pkg/app"
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/domain/family"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
	"gorm.io/gorm"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  migrate up|down
  create-user <email> <name>
  create-family <email> <name>
  add-member <family_id> <admin_email> <member_email> [admin|member]
  balances <family_id> <email>`

var errUsage = errors.New(usage)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	cfg, err := config.Load(".env")
	if err != nil {
		fail(err)
	}
	cfg.Auth.Strategy = "basic"
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fail(err)
	}
	c := &cli{app: app.New(deps, cfg), db: deps.DB, in: os.Stdin, out: os.Stdout}
	if err := c.run(context.Background(), os.Args[1:]); err != nil {
		fail(err)
	}
}

func fail(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

type cli struct {
	app *app.App
	db  *gorm.DB
	in  io.Reader
	out io.Writer
}

func (c *cli) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "migrate":
		if len(args) < 2 {
			return errUsage
		}
		if err := infra.Migrate(c.db, infra.Direction(args[1])); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(c.out, "Migrations %s applied\n", args[1])
	case "create-user":
		if len(args) < 3 {
			return errUsage
		}
		password, err := c.password("Password: ")
		if err != nil {
			return err
		}
		u, err := c.app.UserService.CreateUser(ctx, dto.UserCreate{Email: args[1], Name: args[2], Password: password})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "User created: ID=%s Email=%s\n", u.ID, u.Email)
	case "create-family":
		if len(args) < 3 {
			return errUsage
		}
		userID, err := c.login(ctx, args[1])
		if err != nil {
			return err
		}
		f, err := c.app.FamilyService.CreateFamily(ctx, userID, args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Family created: ID=%s Name=%s\n", f.ID, f.Name)
	case "add-member":
		if len(args) < 4 {
			return errUsage
		}
		familyID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid family id: %w", err)
		}
		adminID, err := c.login(ctx, args[2])
		if err != nil {
			return err
		}
		role := family.RoleMember
		if len(args) > 4 {
			role = family.Role(args[4])
		}
		m, err := c.app.FamilyService.AddMember(ctx, familyID, adminID, args[3], role)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Added %s as %s\n", m.Email, m.Role)
	case "balances":
		if len(args) < 3 {
			return errUsage
		}
		familyID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid family id: %w", err)
		}
		userID, err := c.login(ctx, args[2])
		if err != nil {
			return err
		}
		return c.balances(ctx, familyID, userID)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return nil
}

func (c *cli) balances(ctx context.Context, familyID, userID uuid.UUID) error {
	accounts, err := c.app.AccountService.ListAccounts(ctx, familyID, userID)
	if err != nil {
		return err
	}
	positive := color.New(color.FgGreen)
	negative := color.New(color.FgRed)
	for _, a := range accounts {
		paint := positive
		if a.CurrentBalance.IsNegative() {
			paint = negative
		}
		fmt.Fprintf(c.out, "%-24s %-12s ", a.Name, a.Type)
		paint.Fprintln(c.out, a.CurrentBalance.StringFixed(2))
	}
	return nil
}

// login checks the password of email and returns the user id.
func (c *cli) login(ctx context.Context, email string) (uuid.UUID, error) {
	password, err := c.password(fmt.Sprintf("Password for %s: ", email))
	if err != nil {
		return uuid.Nil, err
	}
	u, err := c.app.AuthService.Login(ctx, email, password)
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}

// password prompts without echo on a terminal and reads a line otherwise.
func (c *cli) password(prompt string) (string, error) {
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.out)
		return string(b), err
	}
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
