package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qjebbs/go-qb"
	"github.com/qjebbs/go-qb/executor"
)

var execCmd = &cobra.Command{
	Use:   "exec FILE",
	Short: "Execute a statement against the configured database",
	Example: `  # Soft delete a user on a local SQLite database
  QB_DATABASE_NAME=app.db QB_SOFT_DELETE_ENABLED=true qb exec delete_user.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadStatement(args[0])
		if err != nil {
			return err
		}
		return runExec(cmd.Context(), cmd, r)
	},
}

func runExec(ctx context.Context, cmd *cobra.Command, r qb.Renderer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return err
	}
	db, d, err := executor.Open(ctx, cfg.Database.Driver, dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	opts := []executor.Option{
		executor.WithDialect(d),
		executor.WithLogger(logger),
	}
	if verbose || cfg.Debug {
		opts = append(opts, executor.WithDebug())
	}
	if cfg.Audit {
		opts = append(opts, executor.WithAudit(func(_ context.Context, e executor.AuditEvent) {
			logger.Info("audit",
				"action", e.Action,
				"table", e.Table,
				"id", e.ID,
				"changes", len(e.Changes),
				"caller", e.Caller,
			)
		}))
	}

	out := cmd.OutOrStdout()
	s, err := r.Render()
	if err != nil {
		return err
	}
	if s.Kind == qb.KindSelect {
		rows, err := executor.SelectMaps(ctx, db, r, opts...)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	}
	res, err := executor.Exec(ctx, db, r, opts...)
	if err != nil {
		return err
	}
	if res.Skipped {
		fmt.Fprintln(out, "nothing to execute")
		return nil
	}
	fmt.Fprintf(out, "rows affected: %d\n", res.RowsAffected)
	switch {
	case res.LastInsertID > 0:
		fmt.Fprintf(out, "last insert id: %d\n", res.LastInsertID)
	case res.InsertedID != nil:
		fmt.Fprintf(out, "inserted id: %v\n", res.InsertedID)
	}
	return nil
}
