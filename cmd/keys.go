package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dycw/skritter/internal/inject"
	"github.com/dycw/skritter/internal/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List key names and the effective bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rc, err := cfg.Review()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SIGNAL\tKEY")
		fmt.Fprintf(w, "toggle pause\t%s\n", rc.Bindings.TogglePause)
		fmt.Fprintf(w, "fail current\t%s\n", rc.Bindings.FailCurrent)
		fmt.Fprintf(w, "fail previous\t%s\n", rc.Bindings.FailPrevious)
		fmt.Fprintf(w, "shut down\t%s\n", rc.Bindings.ShutDown)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "TAP\tKEY\tXDOTOOL")
		for _, t := range []struct {
			name string
			key  keys.Key
		}{
			{"success", rc.Taps.Success},
			{"confirm", rc.Taps.Confirm},
			{"fail", rc.Taps.Fail},
			{"previous", rc.Taps.Previous},
			{"next", rc.Taps.Next},
		} {
			sym, err := inject.Keysym(t.key)
			if err != nil {
				sym = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.name, t.key, sym)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		names := make([]string, 0, len(keys.Names()))
		for _, k := range keys.Names() {
			names = append(names, k.String())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nNamed keys: %s\nSingle characters are written as themselves, e.g. q or 3.\n",
			strings.Join(names, ", "))
		return nil
	},
}
