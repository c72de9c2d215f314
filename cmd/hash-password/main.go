// Command hash-password prints the AUTH_PASSWORD_HASH and a fresh
// JWT_SECRET for enabling the login gate.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cesargomez89/mekkompis/internal/auth"
	"github.com/cesargomez89/mekkompis/internal/constants"
)

func root() *cobra.Command {
	var cost int
	var secretBytes int

	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Generate auth secrets for the Mekkompis server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			if secretBytes < 16 {
				return errors.New("--secret-bytes must be at least 16")
			}
			secret, err := auth.GenerateSecret(secretBytes)
			if err != nil {
				return fmt.Errorf("generate secret: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Add these to your .env:")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "AUTH_PASSWORD_HASH=%s\n", hash)
			fmt.Fprintf(out, "JWT_SECRET=%s\n", secret)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", constants.BcryptCost, "bcrypt cost factor")
	cmd.Flags().IntVar(&secretBytes, "secret-bytes", 32, "random bytes in the generated JWT secret")
	return cmd
}

func main() {
	if err := root().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
