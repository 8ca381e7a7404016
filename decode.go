package bed

// The .bed body packs four genotype calls per byte, two bits each, starting
// at the least significant pair. Within each pair the on-disk bit order is
// the reverse of the numeric code used by this package, so raw pairs are
// translated through this table: 00 -> HomozygousMajor, 01 -> Missing,
// 10 -> Heterozygous, 11 -> HomozygousMinor.
var pairToCode = [4]GenotypeCode{
	HomozygousMajor,
	Missing,
	Heterozygous,
	HomozygousMinor,
}

// decodeChunk unpacks one row's worth of packed bytes into exactly n
// genotype codes. The final byte of a chunk may carry up to 3 padding pairs
// when n is not a multiple of 4; those are dropped here and never reach the
// caller. decodeChunk assumes len(chunk)*4 >= n, which holds for any chunk
// sized by chunkSizeBytes.
func decodeChunk(chunk []byte, n int) []GenotypeCode {
	out := make([]GenotypeCode, 0, len(chunk)*4)
	for _, b := range chunk {
		out = append(out,
			pairToCode[b&0x3],
			pairToCode[(b>>2)&0x3],
			pairToCode[(b>>4)&0x3],
			pairToCode[(b>>6)&0x3],
		)
	}

	return out[:n]
}
