package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/teranos/promptforge/internal/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show promptforge version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("promptforge %s\n", version.VersionTag)
		fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Printf("Go: %s\n", runtime.Version())
	},
}
