package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/St1cky1/flight-planner/internal/repository"
	"github.com/St1cky1/flight-planner/internal/usecase"
)

var importConcurrency int

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Upload avatars from a directory",
	Long: `Upload every <employee-id>.png|jpg|jpeg|webp file found in a directory.
Files of unknown employees are reported as failures, employees that
already have an avatar are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().IntVarP(&importConcurrency, "concurrency", "c", 3, "Number of parallel uploads")
}

func runImport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	// файлы неизвестных сотрудников не загружаем, поэтому БД нужна при любом хранилище
	pg, err := e.database(cmd.Context())
	if err != nil {
		return err
	}

	employees := repository.NewEmployeeRepository(pg.Pool)
	summary, err := usecase.ImportAvatars(cmd.Context(), e.avatars, employees, args[0], importConcurrency)
	if summary != nil {
		printf(cmd, "\n📊 Итого: %d файлов, загружено %d, пропущено %d, ошибок %d (%s)\n",
			summary.Total, summary.Uploaded, summary.Skipped, summary.Failed, summary.Duration.Round(time.Millisecond))
	}
	return err
}
