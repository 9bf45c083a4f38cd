package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	scheduleio "github.com/matzehuels/laneplot/pkg/io"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// sampleCommand creates the sample command, which writes the built-in
// schedule as a starting point for new files.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the sample schedule as JSON, TOML or HCL",
		Long: `Write the built-in sample schedule: three lanes, five tasks and three
transmissions. With -o the format follows the file extension unless -f is
given; otherwise the schedule is printed to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSample(format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "schedule format: json (default), toml, hcl")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runSample(format, output string) error {
	s := schedule.Sample()

	if output != "" && format == "" {
		if err := scheduleio.Export(s, output); err != nil {
			return err
		}
		printSuccess("Sample written")
		printFile(output)
		printNextStep("Render", appName+" render "+output)
		return nil
	}

	f := scheduleio.FormatJSON
	if format != "" {
		var err error
		if f, err = scheduleio.ParseFormat(format); err != nil {
			return err
		}
	}

	if output == "" {
		return scheduleio.Write(s, c.out, f)
	}
	if err := writeSchedule(s, output, f); err != nil {
		return err
	}
	printSuccess("Sample written")
	printFile(output)
	return nil
}

func writeSchedule(s schedule.Schedule, path string, f scheduleio.Format) error {
	var buf bytes.Buffer
	if err := scheduleio.Write(s, &buf, f); err != nil {
		return err
	}
	return writeArtifact(path, buf.Bytes())
}
