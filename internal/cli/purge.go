package cli

import (
	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <employee-id>",
	Short: "Delete the uploaded avatar of an employee",
	Long: `Delete the uploaded avatar of an employee. Afterwards the employee is
shown with the generated identicon again. Deleting a missing avatar is not
an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runPurge,
}

func runPurge(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.avatars.DeleteAvatar(cmd.Context(), args[0]); err != nil {
		return err
	}

	printf(cmd, "🗑️  Аватарка сотрудника %s удалена\n", args[0])
	return nil
}
