// @title Club Events API
// @version 1.0
// @description Member login, event creation and slot registration for the club.
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "clubevents",
	Short:        "Club membership and event registration server",
	Long:         "clubevents authenticates club members by matrícula against the roster, lets board members publish events and lets members sign up for event slots.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
