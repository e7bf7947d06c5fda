package types

// Content kinds. Topics structure the tree; everything else is a leaf.
const (
	KindTopic    = "topic"
	KindExercise = "exercise"
	KindResource = "resource"
)

// Assessment item types.
const (
	ItemMultipleSelection = "multiple_selection"
	ItemSingleSelection   = "single_selection"
	ItemTrueFalse         = "true_false"
	ItemInputQuestion     = "input_question"
	ItemPerseusQuestion   = "perseus_question"
)

// Mastery model types.
const (
	MasteryMOfN              = "m_of_n"
	MasteryDoAll             = "do_all"
	MasteryNumCorrectInRow2  = "num_correct_in_a_row_2"
	MasteryNumCorrectInRow3  = "num_correct_in_a_row_3"
	MasteryNumCorrectInRow5  = "num_correct_in_a_row_5"
	MasteryNumCorrectInRow10 = "num_correct_in_a_row_10"
)

// File formats (extensions).
const (
	FormatPerseus = "perseus"
	FormatPNG     = "png"
	FormatJPEG    = "jpg"
	FormatSVG     = "svg"
)

// Format presets. Exercise image presets never go through the generic
// per-node file path; the bundler owns them.
const (
	PresetResource        = "resource"
	PresetSupplementary   = "supplementary"
	PresetThumbnail       = "thumbnail"
	PresetExercise        = "exercise"
	PresetExerciseImage   = "exercise_image"
	PresetExerciseGraphie = "exercise_graphie"
)

// FormatPreset describes the role a file plays on its node.
type FormatPreset struct {
	ID            string
	Thumbnail     bool
	Supplementary bool
	Order         int
}

var formatPresets = map[string]FormatPreset{
	PresetResource:        {ID: PresetResource, Order: 1},
	PresetExercise:        {ID: PresetExercise, Order: 1},
	PresetSupplementary:   {ID: PresetSupplementary, Supplementary: true, Order: 2},
	PresetThumbnail:       {ID: PresetThumbnail, Thumbnail: true, Supplementary: true, Order: 3},
	PresetExerciseImage:   {ID: PresetExerciseImage, Supplementary: true, Order: 4},
	PresetExerciseGraphie: {ID: PresetExerciseGraphie, Supplementary: true, Order: 5},
}

func PresetByID(id string) (FormatPreset, bool) {
	p, ok := formatPresets[id]
	return p, ok
}

// GraphieDelimiter separates the SVG and JSON halves of a graphie blob. The
// value is the escaped-text form, not the rune itself; blobs store it as
// these literal eleven bytes.
const GraphieDelimiter = "\\U000279B8"

// ContentStoragePlaceholder marks storage-relative image paths inside
// authored markdown. Exports rewrite it to the bundle-local image dir.
const (
	ContentStoragePlaceholder = "${☣ CONTENTSTORAGE}"
	ImagePlaceholder          = "${☣ LOCALPATH}"
)
