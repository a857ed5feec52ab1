package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/xaionaro-go/asciivideo/pkg/buildvars"
)

func versionCmd(cmd *cobra.Command, args []string) {
	printBuildInfo(cmd)
}

func printBuildInfo(cmd *cobra.Command) {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", " ")
	err := enc.Encode(buildvars.GetInfo())
	assertNoError(cmd.Context(), err)
}
