// Command remapctl operates a remapperd instance from the command line.
//
// Example usage:
//
//	remapctl status
//	remapctl set position 0 10 20 0 0 5
//	remapctl get position --axes 5,0
//	remapctl modes set --all velocity
//	remapctl calib park --axis 3 --wait
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	addr    string
	timeout time.Duration
}

func (c *client) url(path string) string {
	return strings.TrimRight(c.addr, "/") + path
}

func (c *client) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &client{}
	root := &cobra.Command{
		Use:          "remapctl",
		Short:        "Operate a remapperd composite device",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.addr, "addr", getenv("REMAPCTL_ADDR", "http://127.0.0.1:8080"), "remapperd base URL")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 5*time.Second, "request timeout")

	root.AddCommand(
		newStatusCmd(c),
		newAxesCmd(c),
		newShardsCmd(c),
		newStampCmd(c),
		newHealthCmd(c),
		newQuantitiesCmd(c),
		newGetCmd(c),
		newSetCmd(c),
		newMoveRelCmd(c),
		newStopCmd(c),
		newDoneCmd(c),
		newModesCmd(c),
		newVarCmd(c),
		newCalibCmd(c),
		newDetachCmd(c),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseAxisList parses "1,4,2". An empty string yields nil.
func parseAxisList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		j, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("axis %q: %w", p, err)
		}
		out[i] = j
	}
	return out, nil
}

func parseValues(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
