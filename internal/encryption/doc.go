// Package encryption provides the DES block primitive used by the pipeline, together with
// key handling and the PKCS#5 padding applied at the stream boundary.
// Keys are 8 bytes, supplied raw or hex-encoded.
package encryption
