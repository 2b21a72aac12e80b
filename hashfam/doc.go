// Package hashfam provides locality-sensitive hash families for builder.LSH:
// MinHash approximates Jaccard similarity over shingle sets, SuperBit
// approximates cosine similarity over real vectors via random hyperplanes.
// Both satisfy builder.HashFamily[T] — a function from (payload, stage) to a
// single bucket code — so either plugs directly into WithHashFamily.
package hashfam
