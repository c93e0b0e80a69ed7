// Command geocheck runs the attendance location checks offline against
// readings stored as JSON files.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "geocheck",
	Short: "offline geofence and anti-spoofing checks for attendance readings",
	Long: `
geocheck evaluates device location readings with the same heuristics the
attendance server applies at clock-in: spoofing signals, movement plausibility
against a previous reading, and distance from the company geofence.
`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newDistanceCmd(), newVerifyCmd(), newTokenCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
