package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cuentas-cli",
		Short: "Cuentas CLI tool",
		Long:  `A command line interface for interacting with the Cuentas API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Cuentas API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(movementsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(healthCmd())

	return rootCmd
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cuentas",
		Short: "Account operations",
	}

	var (
		accountType    string
		initialBalance string
		status         string
		clientID       string
	)

	createCmd := &cobra.Command{
		Use:   "crear",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/cuentas/", map[string]any{
				"tipoCuenta":   accountType,
				"saldoInicial": initialBalance,
				"estado":       status,
				"clienteId":    clientID,
			})
		},
	}
	createCmd.Flags().StringVar(&accountType, "tipo", "ahorro", "Account type (ahorro or corriente)")
	createCmd.Flags().StringVar(&initialBalance, "saldo", "0", "Initial balance")
	createCmd.Flags().StringVar(&status, "estado", "activa", "Account status")
	createCmd.Flags().StringVar(&clientID, "cliente", "", "Owning client id")

	listCmd := &cobra.Command{
		Use:   "listar",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/cuentas/")
		},
	}

	getCmd := &cobra.Command{
		Use:   "ver [id]",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/cuentas/" + args[0])
		},
	}

	statementCmd := &cobra.Command{
		Use:   "movimientos [id]",
		Short: "Show an account's movement history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/cuentas/" + args[0] + "/movimientos")
		},
	}

	cmd.AddCommand(createCmd, listCmd, getCmd, statementCmd)

	return cmd
}

func movementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movimientos",
		Short: "Movement operations",
	}

	var (
		accountID    int64
		amount       string
		movementType string
	)

	createCmd := &cobra.Command{
		Use:   "crear",
		Short: "Post a movement to an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"numeroCuenta": accountID,
				"valor":        amount,
			}
			if movementType != "" {
				body["tipoMovimiento"] = movementType
			}

			return postJSON("/api/v1/movimientos/", body)
		},
	}
	createCmd.Flags().Int64Var(&accountID, "cuenta", 0, "Target account id")
	createCmd.Flags().StringVar(&amount, "valor", "", "Signed amount, negative for withdrawals")
	createCmd.Flags().StringVar(&movementType, "tipo", "", "Movement kind tag")

	getCmd := &cobra.Command{
		Use:   "ver [id]",
		Short: "Show one movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/movimientos/" + args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "listar",
		Short: "List movements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/movimientos/")
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd)

	return cmd
}

func reportCmd() *cobra.Command {
	var (
		clientID string
		from     string
		to       string
	)

	cmd := &cobra.Command{
		Use:   "reportes",
		Short: "Generate a client statement report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(fmt.Sprintf(
				"/api/v1/reportes?clienteId=%s&fechaInicio=%s&fechaFin=%s",
				clientID, from, to,
			))
		},
	}
	cmd.Flags().StringVar(&clientID, "cliente", "", "Client id")
	cmd.Flags().StringVar(&from, "desde", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "hasta", "", "Range end (YYYY-MM-DD)")

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/health")
		},
	}
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func postJSON(path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %s", resp.StatusCode, string(body))
	}

	printJSON(decoded)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request rejected with status %d", resp.StatusCode)
	}

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to format output: %v\n", err)
		return
	}

	fmt.Println(string(out))
}
