package commands

import (
	"fmt"
	"strconv"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-fsbl/internal/logger"
	"github.com/moffa90/go-fsbl/internal/output"
	"github.com/moffa90/go-fsbl/stamper"
)

func newInspectCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Show and verify the boot header of a stamped image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputFormat)
			if err != nil {
				return err
			}

			s := stamper.New(stamper.WithLogger(logger.Adapter{}))
			ins, err := s.Inspect(args[0])
			if err != nil {
				return err
			}

			printer := output.NewPrinter(cmd.OutOrStdout(), format)
			if format == output.FormatTable {
				err = printer.Print(inspectionTable(ins))
			} else {
				err = printer.Print(ins)
			}
			if err != nil {
				return err
			}

			if !ins.Valid {
				return fmt.Errorf("%s failed verification: %s", ins.Path, ins.Problem)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")

	return cmd
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}

func inspectionTable(ins *stamper.Inspection) *output.TableData {
	h := ins.Header
	table := output.NewTableData("FIELD", "VALUE")

	table.AddRow("path", ins.Path)
	table.AddRow("size", units.BytesSize(float64(ins.Size)))
	table.AddRow("format", h.Format)
	table.AddRow("header size", strconv.Itoa(h.HeaderSize))
	table.AddRow("header version", hex32(h.HeaderVersion))
	table.AddRow("payload length", strconv.FormatUint(uint64(h.PayloadLength), 10))
	table.AddRow("checksum", hex32(h.Checksum))
	table.AddRow("entry point", hex32(h.EntryPoint))
	if h.LoadAddress != 0 {
		table.AddRow("load address", hex32(h.LoadAddress))
	}
	table.AddRow("image version", strconv.FormatUint(uint64(h.ImageVersion), 10))
	table.AddRow("option flags", hex32(h.OptionFlags))
	table.AddRow("binary type", hex32(h.BinaryType))

	status := "ok"
	if !ins.Valid {
		status = ins.Problem
	}
	table.AddRow("verification", status)

	return table
}
