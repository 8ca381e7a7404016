package bed

// GenotypeCode is one decoded genotype call for a single sample at a single
// SNP. The numeric values follow the PLINK BED convention as decoded by this
// package (https://www.cog-genomics.org/plink/1.9/formats#bed).
type GenotypeCode uint8

const (
	HomozygousMajor GenotypeCode = iota
	Heterozygous
	Missing
	HomozygousMinor
)

func (g GenotypeCode) String() string {
	switch g {
	case HomozygousMajor:
		return "HomozygousMajor"
	case Heterozygous:
		return "Heterozygous"
	case Missing:
		return "Missing"
	case HomozygousMinor:
		return "HomozygousMinor"

	default:
		return "Illegal selection"
	}
}
