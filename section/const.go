package section

// Magic numbers identifying the three blob variants. All three share the
// same header shape after the magic+version prefix; TPF2 additionally
// carries a dictionary block.
var (
	MagicArchival   = [4]byte{'T', 'P', 'F', '3'} // archival mode, large packets, no shared dict
	MagicQuery      = [4]byte{'P', 'F', 'Q', '1'} // query-optimized, small packets
	MagicDictionary = [4]byte{'T', 'P', 'F', '2'} // adds a shared zstd dictionary block
)

// CurrentVersion is the only wire version tplog currently produces or
// accepts.
const CurrentVersion = uint32(1)

// Default encoder configuration, overridable via packet.EncoderOption.
const (
	DefaultArchivalPacketEvents = 32768
	DefaultQueryPacketEvents    = 32
	DefaultZstdLevel            = 3
	DefaultBloomBits            = 8192
	DefaultBloomK               = 4
	DefaultDictTargetSize       = 0 // disabled unless explicitly requested
)

// Header field sizes, in bytes.
const (
	MagicSize  = 4
	Uint32Size = 4
)
