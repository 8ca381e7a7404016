package bed

// MajorMode indicates which axis of the genotype matrix is stored
// contiguously, as declared by the third header byte of the .bed file. It is
// fixed when the file is opened and never changes afterwards.
type MajorMode byte

const (
	// IndividualMajor files store one sample per row, covering every SNP.
	IndividualMajor MajorMode = 0x00
	// SNPMajor files store one SNP per row, covering every sample.
	SNPMajor MajorMode = 0x01
)

func (m MajorMode) String() string {
	switch m {
	case IndividualMajor:
		return "IndividualMajor"
	case SNPMajor:
		return "SNPMajor"

	default:
		return "Illegal selection"
	}
}
