// Command zeelx is a terminal front-end over the client SDK. Each
// subcommand maps to one screen flow of the mobile app.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"zeelx/internal/client"
	"zeelx/internal/config"
	"zeelx/internal/controllers"
	"zeelx/internal/core/domain"
	"zeelx/internal/session"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := session.NewFileStore(cfg.Client.SessionPath)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	sessions := session.NewManager(store)
	api, err := client.New(client.Config{
		BaseURL: cfg.Client.BaseURL,
		Tokens:  sessions,
	})
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}
	sessions.Bind(api)
	sessions.Bootstrap()

	app := &cli{
		sessions: sessions,
		home:     controllers.NewHomeController(api, sessions),
		loans:    controllers.NewLoansController(api),
		wallet:   controllers.NewWalletController(api),
		profile:  controllers.NewProfileController(api),
		settings: controllers.NewSettingsController(api, sessions),
	}

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

type cli struct {
	sessions *session.Manager
	home     *controllers.HomeController
	loans    *controllers.LoansController
	wallet   *controllers.WalletController
	profile  *controllers.ProfileController
	settings *controllers.SettingsController
}

func (a *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.settings.Logout()
		log.Println("Logged out")
		return nil
	case "change-password":
		return a.changePassword(ctx, args)
	case "home":
		return a.dashboard(ctx)
	case "wallet":
		return a.walletOverview(ctx, args)
	case "deposit":
		return a.deposit(ctx, args)
	case "loans":
		return a.listLoans(ctx, args)
	case "loan":
		return a.loanDetail(ctx, args)
	case "request":
		return a.requestLoan(ctx, args)
	case "pay":
		return a.payLoan(ctx, args)
	case "extend":
		return a.extendLoan(ctx, args)
	case "profile":
		return a.showProfile(ctx)
	case "submit-profile":
		return a.submitProfile(ctx, args)
	case "verify":
		return a.verify(ctx)
	case "withdraw":
		return a.withdraw(ctx, args)
	case "withdrawals":
		return a.listWithdrawals(ctx, args)
	case "cancel-withdrawal":
		return a.cancelWithdrawal(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	phone := fs.String("phone", "", "8-digit phone number")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address (optional)")
	password := fs.String("password", "", "password, at least 8 characters")
	fs.Parse(args)

	err := a.sessions.Register(ctx, client.RegisterInput{
		Phone:    *phone,
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}
	log.Printf("Registered and logged in as %s", a.sessions.User().Name)
	return nil
}

func (a *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	phone := fs.String("phone", "", "8-digit phone number")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := a.sessions.Login(ctx, *phone, *password); err != nil {
		return err
	}
	log.Printf("Logged in as %s", a.sessions.User().Name)
	return nil
}

func (a *cli) changePassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("change-password", flag.ExitOnError)
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	fs.Parse(args)

	if err := a.settings.ChangePassword(ctx, *current, *next); err != nil {
		return err
	}
	log.Println("Password changed")
	return nil
}

func (a *cli) dashboard(ctx context.Context) error {
	view, err := a.home.Load(ctx)
	if err != nil {
		return err
	}
	return printJSON(view)
}

func (a *cli) walletOverview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("wallet", flag.ExitOnError)
	page := fs.Int("page", 1, "history page")
	fs.Parse(args)

	view, err := a.wallet.Overview(ctx, *page)
	if err != nil {
		return err
	}
	return printJSON(view)
}

// deposit opens an invoice and settles it in one go; the sandbox has
// no real payment provider to wait on.
func (a *cli) deposit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ExitOnError)
	amount := fs.Int64("amount", 0, "deposit amount")
	fs.Parse(args)

	invoice, err := a.wallet.Deposit(ctx, *amount)
	if err != nil {
		return err
	}

	tx, wallet, err := a.wallet.SettleDeposit(ctx, invoice.ID)
	if err != nil {
		return err
	}
	log.Printf("Deposited %d, balance is now %d", tx.Amount, wallet.Balance)
	return nil
}

func (a *cli) listLoans(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("loans", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	status := fs.String("status", "", "filter by status")
	fs.Parse(args)

	loans, err := a.loans.List(ctx, *page, domain.LoanStatus(*status))
	if err != nil {
		return err
	}
	return printJSON(loans)
}

func (a *cli) loanDetail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("loan", flag.ExitOnError)
	id := fs.Uint("id", 0, "loan id")
	fs.Parse(args)

	view, err := a.loans.Detail(ctx, uint(*id))
	if err != nil {
		return err
	}
	return printJSON(view)
}

func (a *cli) requestLoan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("request", flag.ExitOnError)
	amount := fs.Int64("amount", 0, "loan amount")
	term := fs.Int("term", 30, "term in days (14, 30 or 90)")
	fs.Parse(args)

	loan, err := a.loans.SubmitRequest(ctx, *amount, *term)
	if err != nil {
		return err
	}
	log.Printf("Loan %s disbursed: %d due %s", loan.LoanNumber, loan.TotalAmount, loan.DueDate.Format("2006-01-02"))
	return nil
}

func (a *cli) payLoan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	id := fs.Uint("id", 0, "loan id")
	amount := fs.Int64("amount", 0, "payment amount, 0 pays the full remainder")
	fs.Parse(args)

	pay := *amount
	if pay == 0 {
		view, err := a.loans.PreparePayment(ctx, uint(*id))
		if err != nil {
			return err
		}
		pay = view.Loan.RemainingAmount
	}

	loan, wallet, err := a.loans.ConfirmPayment(ctx, uint(*id), pay)
	if err != nil {
		return err
	}
	log.Printf("Paid %d on %s, remaining %d, balance %d", pay, loan.LoanNumber, loan.RemainingAmount, wallet.Balance)
	return nil
}

func (a *cli) extendLoan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("extend", flag.ExitOnError)
	id := fs.Uint("id", 0, "loan id")
	fs.Parse(args)

	view, err := a.loans.PrepareExtension(ctx, uint(*id))
	if err != nil {
		return err
	}
	log.Printf("Extension quote: lock %d, new total %d, new due date %s",
		view.Quote.LockPortion, view.Quote.NewTotalRemaining, view.Quote.NewDueDate.Format("2006-01-02"))

	loan, wallet, err := a.loans.ConfirmExtension(ctx, uint(*id))
	if err != nil {
		return err
	}
	log.Printf("Extended %s: remaining %d due %s, balance %d",
		loan.LoanNumber, loan.RemainingAmount, loan.DueDate.Format("2006-01-02"), wallet.Balance)
	return nil
}

func (a *cli) showProfile(ctx context.Context) error {
	profile, err := a.profile.Load(ctx)
	if err != nil {
		return err
	}
	return printJSON(profile)
}

func (a *cli) submitProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit-profile", flag.ExitOnError)
	register := fs.String("register", "", "national register number")
	dob := fs.String("dob", "", "date of birth, YYYY-MM-DD")
	gender := fs.String("gender", "", "male, female or other")
	address := fs.String("address", "", "home address")
	employment := fs.String("employment", "", "employment description")
	emergency := fs.String("emergency", "", "emergency contact")
	bank := fs.String("bank", "", "bank name")
	account := fs.String("account", "", "bank account number")
	fs.Parse(args)

	profile, err := a.profile.Submit(ctx, client.ProfileInput{
		RegisterNumber:   *register,
		DateOfBirth:      *dob,
		Gender:           *gender,
		Address:          *address,
		Employment:       *employment,
		EmergencyContact: *emergency,
		BankName:         *bank,
		BankAccount:      *account,
	})
	if err != nil {
		return err
	}
	log.Printf("Profile saved (verified: %v)", profile.IsVerified)
	return nil
}

func (a *cli) verify(ctx context.Context) error {
	profile, err := a.profile.Verify(ctx)
	if err != nil {
		return err
	}
	log.Printf("Profile verified, loan limit %d", profile.AvailableLoanLimit)
	return nil
}

func (a *cli) withdraw(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("withdraw", flag.ExitOnError)
	amount := fs.Int64("amount", 0, "withdrawal amount")
	bank := fs.String("bank", "", "bank name")
	account := fs.String("account", "", "bank account number")
	fs.Parse(args)

	withdrawal, err := a.wallet.Withdraw(ctx, client.WithdrawalInput{
		Amount:      *amount,
		BankName:    *bank,
		BankAccount: *account,
	})
	if err != nil {
		return err
	}
	log.Printf("Withdrawal #%d requested (%d held)", withdrawal.ID, withdrawal.Amount)
	return nil
}

func (a *cli) listWithdrawals(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("withdrawals", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	withdrawals, err := a.wallet.Withdrawals(ctx, *page)
	if err != nil {
		return err
	}
	return printJSON(withdrawals)
}

func (a *cli) cancelWithdrawal(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel-withdrawal", flag.ExitOnError)
	id := fs.Uint("id", 0, "withdrawal id")
	fs.Parse(args)

	withdrawal, wallet, err := a.wallet.CancelWithdrawal(ctx, uint(*id))
	if err != nil {
		return err
	}
	log.Printf("Withdrawal #%d cancelled, balance is now %d", withdrawal.ID, wallet.Balance)
	return nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: zeelx <command> [flags]

Commands:
  register            create an account and log in
  login               log in with phone and password
  logout              clear the local session
  change-password     rotate the account password
  home                show the dashboard
  wallet              show balance and transaction history
  deposit             deposit into the wallet
  loans               list loans
  loan                show one loan with extension projection
  request             request a loan
  pay                 repay a loan
  extend              extend a loan by one term
  profile             show the KYC profile
  submit-profile      submit or resubmit the KYC profile
  verify              pay the verification fee
  withdraw            request a withdrawal
  withdrawals         list withdrawal requests
  cancel-withdrawal   cancel a pending withdrawal

Run 'zeelx <command> -h' for the flags of a command.`)
}
