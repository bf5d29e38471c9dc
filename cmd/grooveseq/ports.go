package main

import (
	"fmt"

	"github.com/grooveseq/grooveseq/cmd"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List the MIDI output ports",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		names, err := cmd.MIDIOutputNames()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(c.ErrOrStderr(), "no MIDI output ports found")
			return nil
		}
		for i, name := range names {
			fmt.Fprintf(c.OutOrStdout(), "%d: %s\n", i, name)
		}
		return nil
	},
}
