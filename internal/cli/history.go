package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/St1cky1/flight-planner/internal/repository"
)

var historyCmd = &cobra.Command{
	Use:   "history <employee-id>",
	Short: "Show the avatar audit log of an employee",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	pg, err := e.database(cmd.Context())
	if err != nil {
		return err
	}

	audits, err := repository.NewAvatarAuditRepository(pg.Pool).ListByEmployeeId(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(audits) == 0 {
		printf(cmd, "Нет записей для сотрудника %s\n", args[0])
		return nil
	}

	for _, a := range audits {
		line := a.ChangedAt.Format(time.RFC3339) + "  " + string(a.Action)
		if a.ContentType != nil {
			line += "  " + *a.ContentType
		}
		if a.FileSize > 0 {
			printf(cmd, "%s  %d bytes\n", line, a.FileSize)
			continue
		}
		printf(cmd, "%s\n", line)
	}
	return nil
}
