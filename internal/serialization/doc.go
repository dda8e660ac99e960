// Package serialization saves and loads registry snapshots in the .mera format.
//
// A snapshot stores every tensor of a registry under its (name, id) key
// together with its leg split, so an evaluation can be resumed or its
// inputs shared between runs:
//
//	Format Structure:
//	  [0x00: Magic "MERA"]
//	  [0x04: Version (uint32 LE)]
//	  [0x08: Flags (uint32 LE)]
//	  [0x0C: Reserved]
//	  [0x10: Header Size (uint64 LE)]
//	  [0x18: Data Size (uint64 LE)]
//	  [0x20: SHA-256 of the data section]
//	  [0x40: Header: JSON metadata]
//	  [Tensor data: little-endian values, 64-byte aligned]
//
// Complex values are stored as interleaved real and imaginary parts.
//
// Example usage:
//
//	if err := serialization.Save("run.mera", reg, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	reg, header, err := serialization.Load[float64]("run.mera")
package serialization
