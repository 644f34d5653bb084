package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qjebbs/go-qb"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Print the SQL and the parameters of a statement",
	Example: `  # Render a statement
  qb render find_user.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadStatement(args[0])
		if err != nil {
			return err
		}
		s, err := r.Render()
		if err != nil {
			return err
		}
		return printStatement(cmd, s)
	},
}

func loadStatement(path string) (qb.Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return parseStatement(data, qb.New(cfg.Options()...), cfg)
}

func printStatement(cmd *cobra.Command, s *qb.Statement) error {
	out := cmd.OutOrStdout()
	if s.Empty() {
		fmt.Fprintln(out, "-- nothing to execute")
		return nil
	}
	fmt.Fprintln(out, s.Query)
	if len(s.Params) == 0 {
		return nil
	}
	params, err := json.Marshal(s.Params)
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}
	fmt.Fprintln(out, string(params))
	return nil
}
