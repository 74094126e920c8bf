// Package truerng reads random data from a TrueRNG USB device presented as a
// serial port. It is one of the sources the collector can compare the
// processor's RDRAND and RDSEED output against.
package truerng
