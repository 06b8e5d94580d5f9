package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/grime/internal/codec"
	"github.com/ironsheep/grime/internal/imaging"
)

// infoCommand creates the info command, which describes image files.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Describe image files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cd := codec.New(c.settings().Codec.JPEGQuality)
			for i, path := range args {
				img, err := cd.LoadFile(path)
				if err != nil {
					return err
				}
				info := imaging.Info(img)
				if i > 0 {
					printNewline(out)
				}
				printKeyValue(out, "file", path)
				printKeyValue(out, "size", strconv.Itoa(info.Width)+"x"+strconv.Itoa(info.Height))
				printKeyValue(out, "max", strconv.Itoa(info.MaxValue))
				printKeyValue(out, "greyscale", strconv.FormatBool(info.Greyscale))
				printKeyValue(out, "intensity", strconv.Itoa(info.MeanIntensity))
			}
			return nil
		},
	}
}

// configCommand creates the config command, which prints the effective
// configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(c.settings().String()))
			return err
		},
	}
}
