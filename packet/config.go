package packet

import (
	"github.com/flowlens/tplog/internal/options"
	"github.com/flowlens/tplog/section"
)

// EncoderConfig holds the packet framer's tunable knobs, defaulted per
// blob variant by NewEncoderConfig and overridden via EncoderOption.
type EncoderConfig struct {
	Magic          [4]byte
	ZstdLevel      int
	PacketEvents   int
	BloomBits      int
	BloomK         int
	DictTargetSize int
	StemEnabled    bool
	PrefixLen      int
}

// EncoderOption configures an EncoderConfig, following the teacher's
// internal/options functional-option machinery.
type EncoderOption = options.Option[*EncoderConfig]

// NewEncoderConfig creates an EncoderConfig with the spec defaults for the
// given blob variant.
func NewEncoderConfig(magic [4]byte) *EncoderConfig {
	h := section.NewHeader(magic)

	return &EncoderConfig{
		Magic:        magic,
		ZstdLevel:    int(h.ZstdLevel),
		PacketEvents: int(h.PacketEvents),
		BloomBits:    int(h.BloomBits),
		BloomK:       int(h.BloomK),
	}
}

// WithZstdLevel sets the zstd level (1-22) recorded in the blob header.
// Packet payloads are compressed by the zstd codec at its own built-in
// level; this value does not change it.
func WithZstdLevel(level int) EncoderOption {
	return options.NoError[*EncoderConfig](func(c *EncoderConfig) { c.ZstdLevel = level })
}

// WithPacketEvents sets the maximum rows per packet.
func WithPacketEvents(n int) EncoderOption {
	return options.NoError[*EncoderConfig](func(c *EncoderConfig) { c.PacketEvents = n })
}

// WithBloomBits sets the per-packet Bloom filter width in bits.
func WithBloomBits(bits int) EncoderOption {
	return options.NoError[*EncoderConfig](func(c *EncoderConfig) { c.BloomBits = bits })
}

// WithBloomK sets the number of Bloom hash positions per token.
func WithBloomK(k int) EncoderOption {
	return options.NoError[*EncoderConfig](func(c *EncoderConfig) { c.BloomK = k })
}

// WithDictTargetSize enables shared-dictionary training with the given
// target size in bytes (only meaningful for the TPF2 variant). 0 disables
// training.
func WithDictTargetSize(size int) EncoderOption {
	return options.NoError[*EncoderConfig](func(c *EncoderConfig) { c.DictTargetSize = size })
}

// WithStemEnabled toggles light-stem expansion at Bloom index time.
func WithStemEnabled(enabled bool) EncoderOption {
	return options.NoError[*EncoderConfig](func(c *EncoderConfig) { c.StemEnabled = enabled })
}

// WithPrefixLen enables `pref:<first_N>` prefix expansion at Bloom index
// time. 0 disables it.
func WithPrefixLen(n int) EncoderOption {
	return options.NoError[*EncoderConfig](func(c *EncoderConfig) { c.PrefixLen = n })
}
