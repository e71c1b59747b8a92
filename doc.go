// Package malan simulates patrilineal genealogies Wright-Fisher style,
// assembles them into pedigree trees, propagates Y-STR and 2-locus
// autosomal haplotypes through those trees, and answers pedigree queries
// (meiotic distance, lowest-common-ancestor paths, theta/F_ST estimation).
package malan
