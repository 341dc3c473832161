// Command bank is the terminal shell for the banking ledger. It owns no
// business rules: it prompts, calls the services and renders whatever
// they return.
package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Dikshant1907-cyber/Banking-management-System/internal/common/config"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/account"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/auth"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/customer"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/errors"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/domain/ledger"
	"github.com/Dikshant1907-cyber/Banking-management-System/internal/platform/flatfile"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading configuration:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "initializing logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := flatfile.New(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("opening ledger store", zap.Error(err))
	}

	sh := &shell{
		in:     bufio.NewReader(os.Stdin),
		auth:   auth.NewService(store, logger),
		ledger: ledger.NewService(store, logger),
	}
	sh.run()
}

// newLogger builds the process logger from the configured environment
// and level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProd() {
		zcfg = zap.NewProductionConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

type shell struct {
	in     *bufio.Reader
	auth   *auth.Service
	ledger *ledger.Service
}

func (s *shell) run() {
	fmt.Println("=== BANKING MANAGEMENT SYSTEM ===")
	for {
		fmt.Println()
		fmt.Println("1. Login")
		fmt.Println("2. Register")
		fmt.Println("3. Reset password")
		fmt.Println("4. Exit")
		switch s.prompt("Choose") {
		case "1":
			s.login()
		case "2":
			s.register()
		case "3":
			s.resetPassword()
		case "4":
			return
		default:
			fmt.Println("Unknown choice.")
		}
	}
}

func (s *shell) login() {
	username := s.prompt("Username")
	password := s.prompt("Password")
	sess, err := s.auth.Login(username, password)
	if err != nil {
		s.report(err)
		return
	}
	fmt.Println("Login successful! Welcome", sess.Username)
	if !sess.HasDetails {
		fmt.Println("Please complete your account holder details first.")
		if !s.detailsForm(sess.Username) {
			return
		}
	}
	s.mainMenu(sess.Username)
}

func (s *shell) register() {
	username := s.prompt("Username")
	password := s.prompt("Password (4+ chars, 1 uppercase, 1 digit)")
	confirm := s.prompt("Confirm password")
	if err := s.auth.Register(username, password, confirm); err != nil {
		s.report(err)
		return
	}
	fmt.Println("Account registration successful! Now enter your details.")
	if !s.detailsForm(username) {
		return
	}
	fmt.Println("Details saved. Opening main system.")
	s.mainMenu(username)
}

// detailsForm runs step two of registration. It retries until the
// profile saves or the user aborts with an empty first name.
func (s *shell) detailsForm(username string) bool {
	for {
		first := s.prompt("First name (first letter capital, empty to cancel)")
		if first == "" {
			return false
		}
		last := s.prompt("Last name")
		phone := s.prompt("Phone")
		email := s.prompt("Email")
		address := s.prompt("Address")
		if err := s.auth.SaveDetails(username, first, last, phone, email, address); err != nil {
			s.report(err)
			continue
		}
		return true
	}
}

func (s *shell) resetPassword() {
	username := s.prompt("Username for verification")
	email := s.prompt("Email for verification")
	newPassword := s.prompt("New password (4+ chars, 1 uppercase, 1 digit)")
	confirm := s.prompt("Confirm new password")
	if err := s.auth.ResetPassword(username, email, newPassword, confirm); err != nil {
		s.report(err)
		return
	}
	fmt.Println("Password reset successfully! You can now log in.")
}

func (s *shell) mainMenu(username string) {
	for {
		fmt.Println()
		fmt.Println("--- Main Menu (" + username + ") ---")
		fmt.Println(" 1. Dashboard")
		fmt.Println(" 2. Register customer")
		fmt.Println(" 3. Open account")
		fmt.Println(" 4. Deposit")
		fmt.Println(" 5. Withdraw")
		fmt.Println(" 6. Transfer")
		fmt.Println(" 7. Balance inquiry")
		fmt.Println(" 8. Transaction history")
		fmt.Println(" 9. List customers")
		fmt.Println("10. List accounts")
		fmt.Println("11. Account details")
		fmt.Println(" 0. Logout")
		switch s.prompt("Choose") {
		case "1":
			s.dashboard(username)
		case "2":
			s.registerCustomer()
		case "3":
			s.openAccount()
		case "4":
			s.deposit()
		case "5":
			s.withdraw()
		case "6":
			s.transfer()
		case "7":
			s.balance()
		case "8":
			s.history()
		case "9":
			s.listCustomers()
		case "10":
			s.listAccounts()
		case "11":
			s.accountDetails()
		case "0":
			fmt.Println("Logged out.")
			return
		default:
			fmt.Println("Unknown choice.")
		}
	}
}

func (s *shell) dashboard(username string) {
	sum := s.ledger.DashboardSummary()
	fmt.Println("Welcome,", username+"!")
	fmt.Printf("Total Customers:    %d\n", sum.TotalCustomers)
	fmt.Printf("Total Accounts:     %d\n", sum.TotalAccounts)
	fmt.Printf("Active Accounts:    %d\n", sum.ActiveAccounts)
	fmt.Printf("Total Transactions: %d\n", sum.TotalTransactions)
	fmt.Printf("Total Balance:      ₹%s\n", sum.TotalBalance.StringFixed(2))
	fmt.Printf("Average Balance:    ₹%s\n", sum.AverageBalance.StringFixed(2))
}

func (s *shell) registerCustomer() {
	req := &customer.CreateCustomerRequest{
		Name:    s.prompt("Name"),
		Email:   s.prompt("Email"),
		Phone:   s.prompt("Phone"),
		Address: s.prompt("Address"),
	}
	c, err := s.ledger.CreateCustomer(req)
	if err != nil {
		s.report(err)
		return
	}
	fmt.Printf("Customer registered successfully! ID: %d\n", c.ID)
}

func (s *shell) openAccount() {
	req := &account.OpenAccountRequest{
		CustomerID:     s.prompt("Customer ID"),
		Type:           s.prompt("Account type (Savings/Current)"),
		InitialDeposit: s.prompt("Initial deposit"),
	}
	a, err := s.ledger.OpenAccount(req)
	if err != nil {
		s.report(err)
		return
	}
	fmt.Printf("Account created successfully! ID: %d\n", a.AccountID)
}

func (s *shell) deposit() {
	t, err := s.ledger.Deposit(s.prompt("Account ID"), s.prompt("Amount"))
	if err != nil {
		s.report(err)
		return
	}
	fmt.Printf("Deposit of ₹%s successful. New balance: ₹%s\n",
		t.Amount.StringFixed(2), t.BalanceAfter.StringFixed(2))
}

func (s *shell) withdraw() {
	t, err := s.ledger.Withdraw(s.prompt("Account ID"), s.prompt("Amount"))
	if err != nil {
		s.report(err)
		return
	}
	fmt.Printf("Withdrawal of ₹%s successful. New balance: ₹%s\n",
		t.Amount.StringFixed(2), t.BalanceAfter.StringFixed(2))
}

func (s *shell) transfer() {
	res, err := s.ledger.Transfer(
		s.prompt("Source account ID"),
		s.prompt("Destination account ID"),
		s.prompt("Amount"))
	if err != nil {
		s.report(err)
		return
	}
	fmt.Printf("Transfer of ₹%s successful.\nSource new balance: ₹%s\nDestination new balance: ₹%s\n",
		res.Out.Amount.StringFixed(2),
		res.Out.BalanceAfter.StringFixed(2),
		res.In.BalanceAfter.StringFixed(2))
}

func (s *shell) balance() {
	d, err := s.ledger.CheckBalance(s.prompt("Account ID"))
	if err != nil {
		s.report(err)
		return
	}
	fmt.Println("--- Account Status ---")
	fmt.Printf("Account ID: %d\n", d.AccountID)
	fmt.Printf("Customer:   %s (ID: %d)\n", d.CustomerName, d.CustomerID)
	fmt.Printf("Type:       %s\n", d.Type)
	fmt.Printf("Status:     %s\n", d.Status)
	fmt.Printf("Balance:    ₹%s\n", d.Balance.StringFixed(2))
}

func (s *shell) history() {
	txs, err := s.ledger.History(s.prompt("Account ID"))
	if err != nil {
		s.report(err)
		return
	}
	if len(txs) == 0 {
		fmt.Println("No transactions found for this account.")
		return
	}
	fmt.Printf("%-8s %-13s %12s %14s  %-19s %s\n",
		"ID", "Type", "Amount", "Balance After", "Date", "Description")
	for _, t := range txs {
		fmt.Printf("%-8d %-13s %12s %14s  %-19s %s\n",
			t.TransactionID, t.Type,
			"₹"+t.Amount.StringFixed(2),
			"₹"+t.BalanceAfter.StringFixed(2),
			t.Date.Format("2006-01-02 15:04:05"),
			t.Description)
	}
}

func (s *shell) listCustomers() {
	customers := s.ledger.ListCustomers()
	if len(customers) == 0 {
		fmt.Println("No customers registered yet.")
		return
	}
	fmt.Printf("%-8s %-24s %-28s %-14s %s\n", "ID", "Name", "Email", "Phone", "Address")
	for _, c := range customers {
		fmt.Printf("%-8d %-24s %-28s %-14s %s\n", c.ID, c.Name, c.Email, c.Phone, c.Address)
	}
}

func (s *shell) listAccounts() {
	accounts := s.ledger.ListAccounts()
	if len(accounts) == 0 {
		fmt.Println("No accounts opened yet.")
		return
	}
	fmt.Printf("%-8s %-10s %-9s %14s %-9s %s\n",
		"ID", "Customer", "Type", "Balance", "Status", "Created")
	for _, a := range accounts {
		fmt.Printf("%-8d %-10d %-9s %14s %-9s %s\n",
			a.AccountID, a.CustomerID, a.Type,
			"₹"+a.Balance.StringFixed(2), a.Status,
			a.CreatedDate.Format("2006-01-02 15:04:05"))
	}
}

func (s *shell) accountDetails() {
	d, err := s.ledger.AccountDetails(s.prompt("Account ID"))
	if err != nil {
		s.report(err)
		return
	}
	fmt.Printf("Account ID: %d\nCustomer ID: %d\nCustomer Name: %s\nAccount Type: %s\nStatus: %s\nCurrent Balance: ₹%s\nCreated: %s\n",
		d.AccountID, d.CustomerID, d.CustomerName, d.Type, d.Status,
		d.Balance.StringFixed(2), d.CreatedDate.Format("2006-01-02 15:04:05"))
}

func (s *shell) prompt(label string) string {
	fmt.Print(label + ": ")
	line, _ := s.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// report prints a failure to the user. A persistence failure means the
// change was applied in memory but may not have reached disk, which the
// user needs to hear about explicitly.
func (s *shell) report(err error) {
	var appErr errors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.Code == errors.CodePersistenceFailure {
			fmt.Println("Warning:", appErr.Message, "- the change is applied but durability is uncertain.")
			return
		}
		fmt.Println("Error:", appErr.Message)
		return
	}
	fmt.Println("Error:", err)
}
