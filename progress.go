package chainstego

// Phase names the core reports to the progress sink, in order, per
// spec.md §6.
type Phase string

const (
	PhaseEncrypt         Phase = "encrypt"
	PhaseSelectPixels    Phase = "select-pixels"
	PhasePreparePointers Phase = "prepare-pointers"
	PhaseEncodeBytes     Phase = "encode-bytes"
	PhaseWritePixels     Phase = "write-pixels"
	PhasePackageKey      Phase = "package-key"
	PhaseDone            Phase = "done"
)

// ProgressSink is the optional external collaborator of spec.md §6: a
// callback receiving a monotonically increasing fraction in [0,1] and the
// current phase name. Progress is reported only through this sink, per
// spec.md §9's "progress reporting via a sink interface" note; diagnostic
// log lines go separately to the optional Logger in EncodeOptions and
// DecodeOptions.
type ProgressSink func(fraction float64, phase Phase)

func noopSink(float64, Phase) {}
