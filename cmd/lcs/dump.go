package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/robmorgan/lcs/config"
	"github.com/robmorgan/lcs/dmx"
	"github.com/robmorgan/lcs/profile"
	"github.com/spf13/cobra"
)

func runDump(cmd *cobra.Command, opts *options) error {
	_, u, err := load(opts)
	if err != nil {
		return err
	}
	defer u.Close()

	out := cmd.OutOrStdout()
	if opts.asYAML {
		return config.Write(out, u.Config())
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIXTURE\tCHANNELS\tDIMMER\tCOLOUR")

	frame := dmx.NewFrame()
	for _, f := range u.Fixtures() {
		f.WriteTo(frame)

		last := f.Address() + dmx.Address(f.ChannelCount()) - 1
		dimmer := "-"
		if d, err := u.Dimmer(f.Name()); err == nil {
			dimmer = fmt.Sprintf("%d", int(f.Address())+d.Offset())
		}
		colour := "-"
		if c, err := u.Composite(f.Name()); err == nil {
			channels := make([]string, 0, 4)
			for _, offset := range c.Offsets() {
				channels = append(channels, fmt.Sprintf("%d", int(f.Address())+offset))
			}
			colour = c.Kind() + " " + strings.Join(channels, ",")
		}

		fmt.Fprintf(w, "%s\t%d-%d\t%s\t%s\n", f.Name(), f.Address(), last, dimmer, colour)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s", frame)
	return nil
}

func runProfiles(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tCHANNELS\tNAME")
	for _, key := range profile.Keys() {
		p, err := profile.Lookup(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", key, p.ChannelCount(), p.Name)
	}
	return w.Flush()
}
