package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/studio-publisher/internal/exportschema"
	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/types"
)

// choice is one option of a selection question as rendered into the bundle.
type choice struct {
	Content string            `json:"content"`
	Correct bool              `json:"correct"`
	Images  []imageDescriptor `json:"images"`
}

type inputAnswer struct {
	Value    interface{} `json:"value"`
	Correct  bool        `json:"correct"`
	Simplify string      `json:"simplify"`
	Strict   bool        `json:"strict"`
	Message  string      `json:"message"`
}

type hintContext struct {
	Hint   string            `json:"hint"`
	Images []imageDescriptor `json:"images"`
}

type itemContext struct {
	Question       string
	QuestionImages []imageDescriptor
	Choices        []choice
	InputAnswers   []inputAnswer
	MultipleSelect bool
	Randomize      bool
	Hints          []hintContext
	RawData        string
}

// processAssessmentMetadata normalizes the node's mastery configuration and
// records it in the export database. Returns the manifest payload and the
// ordered items for bundling.
func (m *mapper) processAssessmentMetadata(ctx context.Context, node *types.ContentNode) (map[string]interface{}, []*types.AssessmentItem, error) {
	items, err := m.p.items.ForNode(ctx, m.tx, node.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load assessment items for %s: %w", node.ID, err)
	}

	cfg := parseExerciseConfig(node.ExtraFields)
	model := normalizeMastery(cfg, len(items))
	randomize := true
	if cfg.Randomize != nil {
		randomize = *cfg.Randomize
	}

	itemIDs := make([]string, 0, len(items))
	mapping := make(map[string]string, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.AssessmentID)
		itemType := item.Type
		if itemType == types.ItemTrueFalse {
			itemType = types.ItemSingleSelection
		}
		mapping[item.AssessmentID] = itemType
	}

	// The manifest starts from the node's authored extra fields, so keys the
	// pipeline does not know about survive into exercise.json, and overlays
	// the normalized values. The legacy model is preserved verbatim, but the
	// manifest always also carries the normalized m_of_n form for newer
	// runtimes.
	exerciseData := map[string]interface{}{}
	if len(node.ExtraFields) > 0 {
		_ = json.Unmarshal(node.ExtraFields, &exerciseData)
	}
	exerciseData["mastery_model"] = types.MasteryMOfN
	exerciseData["legacy_mastery_model"] = model.Type
	exerciseData["randomize"] = randomize
	exerciseData["n"] = model.N
	exerciseData["m"] = model.M
	exerciseData["all_assessment_items"] = itemIDs
	exerciseData["assessment_mapping"] = mapping

	idsJSON, err := json.Marshal(itemIDs)
	if err != nil {
		return nil, nil, err
	}
	modelJSON, err := json.Marshal(model)
	if err != nil {
		return nil, nil, err
	}
	metadata := &exportschema.AssessmentMetaData{
		ID:                  types.NewID(),
		ContentNodeID:       node.NodeID,
		AssessmentItemIDs:   idsJSON,
		NumberOfAssessments: len(items),
		MasteryModel:        modelJSON,
		Randomize:           randomize,
		IsManipulable:       node.Kind == types.KindExercise,
	}
	if err := m.target.WithContext(ctx).Create(metadata).Error; err != nil {
		return nil, nil, fmt.Errorf("could not create assessment metadata for %s: %w", node.NodeID, err)
	}
	return exerciseData, items, nil
}

// createPerseusExercise builds the exercise bundle and swaps it in as the
// node's exercise-preset file.
func (m *mapper) createPerseusExercise(ctx context.Context, node *types.ContentNode, exerciseData map[string]interface{}, items []*types.AssessmentItem) error {
	bundleBytes, err := m.buildPerseusBundle(ctx, node, exerciseData, items)
	if err != nil {
		return err
	}

	checksum, size, err := m.p.blobs.Write(bundleBytes, types.FormatPerseus)
	if err != nil {
		return fmt.Errorf("could not store exercise bundle for %s: %w", node.Title, err)
	}

	if err := m.p.files.DeleteForNode(ctx, m.tx, node.ID, types.PresetExercise); err != nil {
		return err
	}
	filename := fmt.Sprintf("%s.%s", node.Title, types.FormatPerseus)
	file := &types.File{
		ID:               types.NewID(),
		Checksum:         checksum,
		FileFormat:       types.FormatPerseus,
		PresetID:         types.PresetExercise,
		FileSize:         size,
		ContentNodeID:    &node.ID,
		OriginalFilename: filename,
		UploadedByID:     m.opts.UserID,
	}
	if err := m.p.files.Create(ctx, m.tx, file); err != nil {
		return err
	}
	m.log.Debug("Created exercise bundle", "title", node.Title, "checksum", checksum)
	return nil
}

func (m *mapper) buildPerseusBundle(ctx context.Context, node *types.ContentNode, exerciseData map[string]interface{}, items []*types.AssessmentItem) ([]byte, error) {
	bundle := newBundleWriter()

	// json.Marshal sorts map keys, which keeps the manifest stable across
	// regenerations.
	pretty, err := json.MarshalIndent(exerciseData, "", "    ")
	if err != nil {
		return nil, err
	}
	manifest, err := renderTemplate("exercise.json.tmpl", map[string]string{"ExerciseJSON": string(pretty)})
	if err != nil {
		return nil, err
	}
	if err := bundle.add("exercise.json", manifest); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := m.embedItemImages(ctx, item, bundle); err != nil {
			return nil, err
		}
	}
	for _, item := range items {
		if err := m.renderAssessmentItem(item, bundle); err != nil {
			return nil, err
		}
	}
	return bundle.finish()
}

func (m *mapper) embedItemImages(ctx context.Context, item *types.AssessmentItem, bundle *bundleWriter) error {
	images, err := m.p.files.ForAssessmentItem(ctx, m.tx, item.ID, types.PresetExerciseImage)
	if err != nil {
		return err
	}
	for _, img := range images {
		name := "images/" + img.Checksum + "." + img.FileFormat
		if bundle.has(name) {
			continue
		}
		blob, err := m.p.blobs.Read(img.Checksum, img.FileFormat)
		if err != nil {
			return err
		}
		if err := bundle.add(name, blob); err != nil {
			return err
		}
	}

	graphies, err := m.p.files.ForAssessmentItem(ctx, m.tx, item.ID, types.PresetExerciseGraphie)
	if err != nil {
		return err
	}
	for _, graphie := range graphies {
		svgName := "images/" + graphie.OriginalFilename + ".svg"
		jsonName := "images/" + graphie.OriginalFilename + "-data.json"
		if bundle.has(svgName) && bundle.has(jsonName) {
			continue
		}
		blob, err := m.p.blobs.Read(graphie.Checksum, graphie.FileFormat)
		if err != nil {
			return err
		}
		// A graphie blob is an SVG stream and a JSON stream around a fixed
		// delimiter; the bundle wants them as two entries.
		svg, data, found := bytes.Cut(blob, []byte(types.GraphieDelimiter))
		if !found {
			return fmt.Errorf("graphie blob %s has no delimiter", graphie.Checksum)
		}
		if err := bundle.add(svgName, svg); err != nil {
			return err
		}
		if err := bundle.add(jsonName, data); err != nil {
			return err
		}
	}
	return nil
}

func (m *mapper) renderAssessmentItem(item *types.AssessmentItem, bundle *bundleWriter) error {
	var templateName string
	switch item.Type {
	case types.ItemMultipleSelection, types.ItemSingleSelection, types.ItemTrueFalse:
		templateName = "multiple_selection.json.tmpl"
	case types.ItemInputQuestion:
		templateName = "input_question.json.tmpl"
	case types.ItemPerseusQuestion:
		templateName = "perseus_question.json.tmpl"
	default:
		return fmt.Errorf("%w: %q on item %s", apperrors.ErrUnsupportedItemType, item.Type, item.AssessmentID)
	}

	question, questionImages, err := m.processImages(unwrapFormulas(item.Question), bundle)
	if err != nil {
		return err
	}

	answers, err := decodeOrdered(item.Answers)
	if err != nil {
		return fmt.Errorf("malformed answers on item %s: %w", item.AssessmentID, err)
	}
	choices := []choice{}
	inputAnswers := []inputAnswer{}
	for _, answer := range answers {
		if item.Type == types.ItemInputQuestion {
			value := answer["answer"]
			if s, ok := value.(string); ok {
				value = extractValue(s)
			}
			if !keepAnswer(value) {
				continue
			}
			correct, _ := answer["correct"].(bool)
			inputAnswers = append(inputAnswers, inputAnswer{
				Value:    value,
				Correct:  correct,
				Simplify: "required",
			})
			continue
		}

		raw := answer["answer"]
		if s, ok := raw.(string); ok {
			s = strings.ReplaceAll(s, types.ContentStoragePlaceholder, perseusImageDir)
			content, images, err := m.processImages(unwrapFormulas(s), bundle)
			if err != nil {
				return err
			}
			if !keepAnswer(content) {
				continue
			}
			correct, _ := answer["correct"].(bool)
			choices = append(choices, choice{Content: content, Correct: correct, Images: images})
			continue
		}
		if !keepAnswer(raw) {
			continue
		}
		correct, _ := answer["correct"].(bool)
		choices = append(choices, choice{Content: fmt.Sprintf("%v", raw), Correct: correct, Images: []imageDescriptor{}})
	}

	rawHints, err := decodeOrdered(item.Hints)
	if err != nil {
		return fmt.Errorf("malformed hints on item %s: %w", item.AssessmentID, err)
	}
	hints := []hintContext{}
	for _, rawHint := range rawHints {
		s, _ := rawHint["hint"].(string)
		content, images, err := m.processImages(unwrapFormulas(s), bundle)
		if err != nil {
			return err
		}
		hints = append(hints, hintContext{Hint: content, Images: images})
	}

	data := itemContext{
		Question:       question,
		QuestionImages: questionImages,
		Choices:        choices,
		InputAnswers:   inputAnswers,
		MultipleSelect: item.Type == types.ItemMultipleSelection,
		Randomize:      item.Randomize,
		Hints:          hints,
		RawData:        strings.ReplaceAll(item.RawData, types.ContentStoragePlaceholder, perseusImageDir),
	}
	rendered, err := renderTemplate(templateName, data)
	if err != nil {
		return err
	}
	return bundle.add(item.AssessmentID+".json", rendered)
}

// decodeOrdered unmarshals a JSON list of objects and sorts it by its
// "order" member, which defines the stable authored sequence.
func decodeOrdered(raw []byte) ([]map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []map[string]interface{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		oi, _ := entries[i]["order"].(float64)
		oj, _ := entries[j]["order"].(float64)
		return oi < oj
	})
	return entries, nil
}
