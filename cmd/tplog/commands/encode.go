package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/packet"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tplog"
)

var encodeFlags struct {
	mode         string
	logPath      string
	tplPath      string
	outPath      string
	maxLines     int
	zstdLevel    int
	packetEvents int
	bloomBits    int
	bloomK       int
	dictSize     int
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a raw log file into a packet-framed archive",
	RunE:  runEncode,
}

func init() {
	f := encodeCmd.Flags()
	f.StringVar(&encodeFlags.mode, "mode", "archival", "blob variant: archival, query, or dict")
	f.StringVar(&encodeFlags.logPath, "log", "", "path to the raw log file (required)")
	f.StringVar(&encodeFlags.tplPath, "tpl", "", "path to the template CSV table (required)")
	f.StringVar(&encodeFlags.outPath, "out", "", "output blob path (required)")
	f.IntVar(&encodeFlags.maxLines, "lines", 0, "max lines to read, 0 for unlimited")
	f.IntVar(&encodeFlags.zstdLevel, "zstd", 0, "zstd level recorded in the blob header (payloads use the codec's built-in level), 0 for variant default")
	f.IntVar(&encodeFlags.packetEvents, "packet_events", 0, "max rows per packet, 0 for variant default")
	f.IntVar(&encodeFlags.bloomBits, "bloom_bits", 0, "per-packet Bloom filter width in bits, 0 for variant default")
	f.IntVar(&encodeFlags.bloomK, "bloom_k", 0, "Bloom hash positions per token, 0 for variant default")
	f.IntVar(&encodeFlags.dictSize, "dict_size", 0, "shared dictionary target size in bytes, 0 disables training")

	_ = encodeCmd.MarkFlagRequired("log")
	_ = encodeCmd.MarkFlagRequired("tpl")
	_ = encodeCmd.MarkFlagRequired("out")
}

func runEncode(cmd *cobra.Command, _ []string) error {
	magic, err := parseMagic(encodeFlags.mode)
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	tplBytes, err := readFile(encodeFlags.tplPath)
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	bank, err := template.LoadFromText(string(tplBytes))
	if err != nil {
		setExit(fail(cmd, fmt.Errorf("%w: %v", errs.ErrMalformed, err)))
		return nil
	}

	lines, err := readLines(encodeFlags.logPath, encodeFlags.maxLines)
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	opts := buildEncoderOptions()

	blob, err := tplog.Encode(lines, bank, string(tplBytes), magic, opts...)
	if err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	if err := writeFile(encodeFlags.outPath, blob); err != nil {
		setExit(fail(cmd, err))
		return nil
	}

	cmd.Printf("encoded %d lines into %s (%d bytes)\n", len(lines), encodeFlags.outPath, len(blob))
	setExit(exitOK)

	return nil
}

func buildEncoderOptions() []packet.EncoderOption {
	var opts []packet.EncoderOption

	if encodeFlags.zstdLevel > 0 {
		opts = append(opts, packet.WithZstdLevel(encodeFlags.zstdLevel))
	}

	if encodeFlags.packetEvents > 0 {
		opts = append(opts, packet.WithPacketEvents(encodeFlags.packetEvents))
	}

	if encodeFlags.bloomBits > 0 {
		opts = append(opts, packet.WithBloomBits(encodeFlags.bloomBits))
	}

	if encodeFlags.bloomK > 0 {
		opts = append(opts, packet.WithBloomK(encodeFlags.bloomK))
	}

	if encodeFlags.dictSize > 0 {
		opts = append(opts, packet.WithDictTargetSize(encodeFlags.dictSize))
	}

	return opts
}
