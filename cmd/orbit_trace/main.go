package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"orrery/core"
)

func main() {
	var (
		frames = flag.Int("frames", 360, "Number of animation frames to run")
		every  = flag.Int("every", 60, "Print every n-th frame")
		bodies = flag.String("bodies", "", "Comma separated body names, empty for all")
		asYAML = flag.Bool("yaml", false, "Write samples as YAML instead of a table")
	)
	flag.Parse()

	var names []string
	if *bodies != "" {
		for _, n := range strings.Split(*bodies, ",") {
			names = append(names, strings.TrimSpace(n))
		}
	}

	samples, err := trace(core.DefaultSystem(), *frames, *every, names)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *asYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(samples); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		enc.Close()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "frame\tbody\tx\ty\tz\torbit°\tspin°\t")
	for _, s := range samples {
		fmt.Fprintf(w, "%d\t%s\t%.3f\t%.3f\t%.3f\t%.2f\t%.2f\t\n",
			s.Frame, s.Body, s.Pos[0], s.Pos[1], s.Pos[2], s.Orbit, s.Spin)
	}
	w.Flush()
}
