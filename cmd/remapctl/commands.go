package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/dreamware/axisremap/internal/api"
)

// show builds a command that GETs path and prints the decoded document.
func show[T any](c *client, use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			var out T
			if err := api.GetJSON(ctx, c.url(path), &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newStatusCmd(c *client) *cobra.Command {
	return show[api.StatusResponse](c, "status", "Show the attach state and axis count", "/status")
}

func newAxesCmd(c *client) *cobra.Command {
	return show[api.AxesResponse](c, "axes", "List axis names and their shard locations", "/axes")
}

func newShardsCmd(c *client) *cobra.Command {
	return show[api.ShardsResponse](c, "shards", "List attached shards and their capabilities", "/shards")
}

func newStampCmd(c *client) *cobra.Command {
	return show[api.StampResponse](c, "stamp", "Show the device's last input stamp", "/stamp")
}

func newHealthCmd(c *client) *cobra.Command {
	return show[api.ShardHealthResponse](c, "health", "Show the daemon's per-shard health records", "/health/shards")
}

func newQuantitiesCmd(c *client) *cobra.Command {
	return show[api.QuantitiesResponse](c, "quantities", "List the quantities get and set accept", "/quantities")
}

func withAxes(path, axes string) string {
	if axes == "" {
		return path
	}
	return path + "?axes=" + url.QueryEscape(axes)
}

func newGetCmd(c *client) *cobra.Command {
	var axes string
	cmd := &cobra.Command{
		Use:   "get <quantity>",
		Short: "Read a quantity on every axis or on --axes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseAxisList(axes); err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			var out api.ValuesResponse
			path := withAxes("/quantities/"+url.PathEscape(args[0]), axes)
			if err := api.GetJSON(ctx, c.url(path), &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&axes, "axes", "", "comma separated axis list")
	return cmd
}

// valuesCmd builds a command that sends an api.ValuesRequest made of the
// positional values after the first skip arguments.
func valuesCmd(c *client, use, short string, skip int, send func(cmd *cobra.Command, args []string, req api.ValuesRequest) error) *cobra.Command {
	var axes string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(skip + 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseAxisList(axes)
			if err != nil {
				return err
			}
			vals, err := parseValues(args[skip:])
			if err != nil {
				return err
			}
			return send(cmd, args, api.ValuesRequest{Axes: list, Values: vals})
		},
	}
	cmd.Flags().StringVar(&axes, "axes", "", "comma separated axis list; values line up with it")
	return cmd
}

func newSetCmd(c *client) *cobra.Command {
	return valuesCmd(c, "set <quantity> <value>...", "Write a quantity on every axis or on --axes", 1,
		func(cmd *cobra.Command, args []string, req api.ValuesRequest) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			return api.PutJSON(ctx, c.url("/quantities/"+url.PathEscape(args[0])), req, nil)
		})
}

func newMoveRelCmd(c *client) *cobra.Command {
	return valuesCmd(c, "move-rel <delta>...", "Move axes by relative amounts", 0,
		func(cmd *cobra.Command, _ []string, req api.ValuesRequest) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			return api.PostJSON(ctx, c.url("/move/relative"), req, nil)
		})
}

func newStopCmd(c *client) *cobra.Command {
	var axes string
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop every axis or the axes in --axes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseAxisList(axes)
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			return api.PostJSON(ctx, c.url("/stop"), api.AxesRequest{Axes: list}, nil)
		},
	}
	cmd.Flags().StringVar(&axes, "axes", "", "comma separated axis list")
	return cmd
}

func newDoneCmd(c *client) *cobra.Command {
	var axes string
	cmd := &cobra.Command{
		Use:   "done",
		Short: "Report whether every addressed axis finished its motion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseAxisList(axes); err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			var out api.MotionResponse
			if err := api.GetJSON(ctx, c.url(withAxes("/motion", axes)), &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&axes, "axes", "", "comma separated axis list")
	return cmd
}

func newModesCmd(c *client) *cobra.Command {
	modes := &cobra.Command{
		Use:   "modes",
		Short: "Read or change control modes",
	}

	var getAxes string
	get := &cobra.Command{
		Use:   "get",
		Short: "Show the control mode of every axis or of --axes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			var out api.ModesResponse
			if err := api.GetJSON(ctx, c.url(withAxes("/modes", getAxes)), &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	get.Flags().StringVar(&getAxes, "axes", "", "comma separated axis list")

	var setAxes, all string
	set := &cobra.Command{
		Use:   "set [mode]...",
		Short: "Set one mode per axis, or --all <mode> for every axis",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == "" && len(args) == 0 {
				return fmt.Errorf("give one mode per axis or --all")
			}
			list, err := parseAxisList(setAxes)
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			return api.PutJSON(ctx, c.url("/modes"), api.ModesRequest{All: all, Axes: list, Modes: args}, nil)
		},
	}
	set.Flags().StringVar(&setAxes, "axes", "", "comma separated axis list; modes line up with it")
	set.Flags().StringVar(&all, "all", "", "put every axis in this mode")

	modes.AddCommand(get, set)
	return modes
}

func newVarCmd(c *client) *cobra.Command {
	vars := &cobra.Command{
		Use:   "var",
		Short: "Read or write per-shard remote variables",
	}
	list := show[api.VariablesResponse](c, "list", "List remote variable keys", "/variables")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Show a variable's value on every shard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			var out api.VariableValues
			if err := api.GetJSON(ctx, c.url("/variables/"+url.PathEscape(args[0])), &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	set := &cobra.Command{
		Use:   "set <key> <value-per-shard>...",
		Short: "Write a variable, one value per shard in shard order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			return api.PutJSON(ctx, c.url("/variables/"+url.PathEscape(args[0])), api.VariableValues{Values: args[1:]}, nil)
		},
	}
	vars.AddCommand(list, get, set)
	return vars
}

func newCalibCmd(c *client) *cobra.Command {
	var (
		axis int
		wait bool
	)
	cmd := &cobra.Command{
		Use:       "calib <calibrate|homing|park|quit-calibrate|quit-park|abort|abort-park>",
		Short:     "Run a calibration action on one axis (--axis) or the whole part",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"calibrate", "homing", "park", "quit-calibrate", "quit-park", "abort", "abort-park"},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.CalibrationRequest{Wait: wait}
			if cmd.Flags().Changed("axis") {
				req.Axis = &axis
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			return api.PostJSON(ctx, c.url("/calibration/"+url.PathEscape(args[0])), req, nil)
		},
	}
	cmd.Flags().IntVar(&axis, "axis", 0, "logical axis; omit for the whole part")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for parking to finish")
	return cmd
}

func newDetachCmd(c *client) *cobra.Command {
	return &cobra.Command{
		Use:   "detach",
		Short: "Release every backend; the daemon keeps serving status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			return api.PostJSON(ctx, c.url("/detach"), struct{}{}, nil)
		},
	}
}
