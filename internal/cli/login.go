package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sachk/pinvault"
)

// NewLoginCommand authenticates a user and opens the interactive account
// menu. The session is bounded by a receipt TTL; every balance-affecting
// operation re-authenticates against the stored PIN.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and open the interactive account menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, done, err := buildEngine(opts)
			if err != nil {
				return err
			}
			defer done()

			return runSession(cmd.Context(), newConsole(cmd), engine, args[0])
		},
	}
}

func runSession(ctx context.Context, con *console, engine *pinvault.Engine, username string) error {
	record, err := engine.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, pinvault.ErrUserNotFound) {
			con.printf("No such user.\n")
			return nil
		}
		return err
	}
	if record.Locked {
		con.printf("Account is locked. Contact an administrator.\n")
		return nil
	}

	record, ok, err := authenticatePrompt(ctx, con, engine, record)
	if err != nil || !ok {
		return err
	}

	receipt, err := engine.BeginSession(ctx, record)
	if err != nil && !errors.Is(err, pinvault.ErrSessionReceiptsDisabled) {
		return err
	}

	for {
		if receipt != "" {
			if _, err := engine.ValidateSession(ctx, receipt); err != nil {
				con.printf("Session expired. Logging out.\n")
				return nil
			}
		}

		record, err = engine.GetAccount(ctx, username)
		if err != nil {
			return err
		}

		con.printf("\n--- Account menu (%s) ---\n", username)
		con.printf("1. Check balance\n2. Withdraw\n3. Change PIN\n4. Logout\n")
		choice, err := con.readLine("Choose: ")
		if err != nil {
			return nil
		}

		switch choice {
		case "1":
			record, ok, err = authenticatePrompt(ctx, con, engine, record)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			con.printf("Balance: %.2f\n", record.Balance)

		case "2":
			record, ok, err = authenticatePrompt(ctx, con, engine, record)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := withdrawPrompt(ctx, con, engine, record); err != nil {
				return err
			}

		case "3":
			if err := changePINPrompt(ctx, con, engine, record); err != nil {
				return err
			}

		case "4":
			con.printf("Logged out.\n")
			return nil

		default:
			con.printf("Invalid option.\n")
		}
	}
}

// authenticatePrompt runs one PIN attempt and reports the outcome. The
// returned record reflects any attempt or lock mutation.
func authenticatePrompt(ctx context.Context, con *console, engine *pinvault.Engine, record pinvault.AccountRecord) (pinvault.AccountRecord, bool, error) {
	entered, err := con.readPIN("Enter PIN for " + record.Username + ": ")
	if err != nil {
		return record, false, err
	}

	res, err := engine.Authenticate(ctx, record, entered)
	switch {
	case err == nil:
		return res.Record, true, nil
	case errors.Is(err, pinvault.ErrAccountLocked):
		con.printf("Account is locked due to too many wrong attempts.\n")
		return res.Record, false, nil
	case errors.Is(err, pinvault.ErrPINMismatch):
		con.printf("Wrong PIN. Attempts: %d, remaining: %d\n", res.Attempts, res.Remaining)
		if res.Record.Locked {
			con.printf("Account locked due to too many wrong attempts.\n")
		}
		return res.Record, false, nil
	default:
		return res.Record, false, err
	}
}

func withdrawPrompt(ctx context.Context, con *console, engine *pinvault.Engine, record pinvault.AccountRecord) error {
	raw, err := con.readLine("Amount to withdraw: ")
	if err != nil {
		return nil
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		con.printf("Invalid amount.\n")
		return nil
	}

	updated, err := engine.Withdraw(ctx, record, amount)
	switch {
	case err == nil:
		con.printf("Please collect cash. New balance: %.2f\n", updated.Balance)
	case errors.Is(err, pinvault.ErrInvalidAmount):
		con.printf("Invalid amount.\n")
	case errors.Is(err, pinvault.ErrInsufficientFunds):
		con.printf("Insufficient funds.\n")
	default:
		return err
	}
	return nil
}

func changePINPrompt(ctx context.Context, con *console, engine *pinvault.Engine, record pinvault.AccountRecord) error {
	entered, err := con.readPIN("Enter current PIN: ")
	if err != nil {
		return err
	}
	newPIN, err := con.readPIN("Enter new PIN (length " + strconv.Itoa(len(record.PIN)) + "): ")
	if err != nil {
		return err
	}

	res, err := engine.ChangePIN(ctx, record, entered, newPIN)
	switch {
	case err == nil:
		con.printf("PIN changed.\n")
	case errors.Is(err, pinvault.ErrAccountLocked):
		con.printf("Account is locked due to too many wrong attempts.\n")
	case errors.Is(err, pinvault.ErrPINMismatch):
		con.printf("Wrong PIN. Attempts: %d, remaining: %d\n", res.Attempts, res.Remaining)
	case errors.Is(err, pinvault.ErrInvalidLength):
		con.printf("Invalid length: new PIN must have %d digits.\n", len(record.PIN))
	case errors.Is(err, pinvault.ErrInvalidPIN):
		con.printf("New PIN must contain digits only.\n")
	case errors.Is(err, pinvault.ErrWeakPIN):
		con.printf("New PIN is weak; choose a less trivial PIN.\n")
	default:
		return err
	}
	return nil
}
