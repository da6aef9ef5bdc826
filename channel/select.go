package channel

import (
	"net"
	"strconv"
	"strings"

	"github.com/flowlens/tplog/format"
)

const sampleSize = 256

func isInt(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

func isIPv4(s string) bool {
	ip := net.ParseIP(strings.TrimSpace(s))
	return ip != nil && ip.To4() != nil
}

func isHex(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")

	if len(s) < 8 {
		return false
	}

	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		isLower := r >= 'a' && r <= 'f'
		isUpper := r >= 'A' && r <= 'F'

		if !isDigit && !isLower && !isUpper {
			return false
		}
	}

	return true
}

// SelectType implements the channel-type selection heuristic: sample the
// first 256 non-empty values and classify by composition. All-INT wins
// over all-IP over all-HEX; otherwise a channel with heavy value repeats
// ((sample - unique) >= 12) is dictionary-coded; anything else falls back
// to RAW.
func SelectType(values []string) format.ChannelType {
	if len(values) == 0 {
		return format.ChannelRaw
	}

	sample := values
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	allInt, allIP, allHex := true, true, true

	for _, v := range sample {
		if allInt && !isInt(v) {
			allInt = false
		}

		if allIP && !isIPv4(v) {
			allIP = false
		}

		if allHex && !isHex(v) {
			allHex = false
		}
	}

	switch {
	case allInt:
		return format.ChannelInt
	case allIP:
		return format.ChannelIP
	case allHex:
		return format.ChannelHex
	}

	unique := make(map[string]struct{}, len(sample))
	for _, v := range sample {
		unique[v] = struct{}{}
	}

	if len(sample)-len(unique) >= 12 {
		return format.ChannelDict
	}

	return format.ChannelRaw
}
