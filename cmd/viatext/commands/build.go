package commands

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AltGrid/viatext-core-sub000/command"
	"github.com/AltGrid/viatext-core-sub000/frame"
)

var getCmd = &cobra.Command{
	Use:   "get <param>",
	Short: "Build a GET frame for a parameter (freq, sf, bw, cr, pwr, channel, mode, hops, beacon, buffer, ack, fw, rssi, snr, battery, temp, mem, flash, logs, all)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := command.Resolve(args[0], false)
		if err != nil {
			return err
		}
		return emitFrame(resolved, "")
	},
}

var setCmd = &cobra.Command{
	Use:   "set <param> <value>",
	Short: "Build a validated SET frame for a parameter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := command.Resolve(args[0], true)
		if err != nil {
			return err
		}
		return emitFrame(resolved, args[1])
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Build a legacy PING frame",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := command.ResolveLegacy(false, true, "")
		if err != nil {
			return err
		}
		return emitFrame(resolved, "")
	},
}

var idCmd = &cobra.Command{
	Use:   "id [new-id]",
	Short: "Build a legacy GET_ID frame, or SET_ID when a new identifier is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newID := ""
		if len(args) == 1 {
			newID = args[0]
		}
		resolved, err := command.ResolveLegacy(newID == "", false, newID)
		if err != nil {
			return err
		}
		return emitFrame(resolved, newID)
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex-stream>",
	Short: "Decode framed response bytes (hex) into summary lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stream, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
		if err != nil {
			return fmt.Errorf("invalid hex stream: %w", err)
		}

		decoder := frame.NewDecoder()
		frames := decoder.FeedAll(stream)
		if len(frames) == 0 {
			return fmt.Errorf("no complete frame in %d bytes", len(stream))
		}

		for _, payload := range frames {
			resp, err := command.ParseResponse(payload)
			if err != nil {
				return err
			}
			fmt.Println(resp.Summary())
		}

		return nil
	},
}

// emitFrame builds, frames, and prints one request as a hex line ready for a
// serial shim.
func emitFrame(cmd command.Command, value string) error {
	payload, err := command.BuildRequest(cmd, config.Seq, value)
	if err != nil {
		return err
	}
	fmt.Printf("%X\n", frame.Encode(payload))
	return nil
}
