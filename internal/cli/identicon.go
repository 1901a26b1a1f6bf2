package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/St1cky1/flight-planner/internal/identicon"
)

var identiconOutput string

var identiconCmd = &cobra.Command{
	Use:   "identicon <employee-id> [display name]",
	Short: "Render the default avatar of an employee as SVG",
	Long: `Render the identicon an employee gets when no avatar was uploaded.

The identicon is derived from the employee id and display name, so the
same arguments always produce the same image.

Examples:
  avatarctl identicon 3f2b8c1e-7a4d-4e2b-9c11-0d5e6f7a8b9c John Doe
  avatarctl identicon 3f2b8c1e-7a4d-4e2b-9c11-0d5e6f7a8b9c "John Doe" -o john.svg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdenticon,
}

func init() {
	identiconCmd.Flags().StringVarP(&identiconOutput, "output", "o", "", "Write the SVG to a file instead of stdout")
}

func runIdenticon(cmd *cobra.Command, args []string) error {
	displayName := strings.Join(args[1:], " ")

	svg, _, err := identicon.New().Generate(args[0] + displayName)
	if err != nil {
		return err
	}

	if identiconOutput == "" {
		_, err := cmd.OutOrStdout().Write(svg)
		return err
	}

	if err := os.WriteFile(identiconOutput, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", identiconOutput, err)
	}
	printf(cmd, "✅ Identicon записан в %s\n", identiconOutput)
	return nil
}
