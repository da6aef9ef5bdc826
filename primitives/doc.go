// Package primitives implements the leaf bit/byte encoding primitives shared
// by the channel encoder (H1M2) and the packet framer: LEB128-style
// unsigned varints, zigzag signed-to-unsigned mapping, length-prefixed byte
// strings, and a fixed-width bit packer/unpacker.
//
// None of these types hold state across calls; they operate directly on
// byte slices, the same way the teacher's encoding package inlines varint
// and length-prefix logic into each per-type encoder rather than going
// through an intermediate stream type.
package primitives
