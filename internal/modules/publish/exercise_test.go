package publish

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/types"
)

func TestDecodeOrderedSortsByOrder(t *testing.T) {
	raw := []byte(`[
		{"answer": "third", "order": 3},
		{"answer": "first", "order": 1},
		{"answer": "second", "order": 2}
	]`)
	entries, err := decodeOrdered(raw)
	if err != nil {
		t.Fatalf("decodeOrdered: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, entry := range entries {
		if entry["answer"] != want[i] {
			t.Fatalf("entry %d = %v, want %q", i, entry["answer"], want[i])
		}
	}
}

func TestDecodeOrderedEmpty(t *testing.T) {
	entries, err := decodeOrdered(nil)
	if err != nil || entries != nil {
		t.Fatalf("decodeOrdered(nil) = %v, %v", entries, err)
	}
	if _, err := decodeOrdered([]byte(`{"not": "a list"}`)); err == nil {
		t.Fatalf("non-list payload should fail")
	}
}

func readBundleEntry(t *testing.T, data []byte, name string) []byte {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return content
	}
	t.Fatalf("entry %s not in bundle", name)
	return nil
}

func TestRenderSelectionItem(t *testing.T) {
	m := newBlobMapper(t)
	bundle := newBundleWriter()
	item := &types.AssessmentItem{
		AssessmentID: "item1",
		Type:         types.ItemSingleSelection,
		Question:     "What is $$x^2$$?",
		Answers: []byte(`[
			{"answer": "wrong", "correct": false, "order": 2},
			{"answer": "right", "correct": true, "order": 1},
			{"answer": "", "correct": false, "order": 3}
		]`),
		Hints:     []byte(`[{"hint": "think", "order": 1}]`),
		Randomize: true,
	}
	if err := m.renderAssessmentItem(item, bundle); err != nil {
		t.Fatalf("renderAssessmentItem: %v", err)
	}
	data, err := bundle.finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	var rendered struct {
		Question struct {
			Content string `json:"content"`
			Widgets map[string]struct {
				Type    string `json:"type"`
				Options struct {
					Choices        []choice `json:"choices"`
					Randomize      bool     `json:"randomize"`
					MultipleSelect bool     `json:"multipleSelect"`
				} `json:"options"`
			} `json:"widgets"`
		} `json:"question"`
		Hints []hintContext `json:"hints"`
	}
	if err := json.Unmarshal(readBundleEntry(t, data, "item1.json"), &rendered); err != nil {
		t.Fatalf("rendered item is not valid JSON: %v", err)
	}
	if rendered.Question.Content != "What is $x^2$?" {
		t.Fatalf("question = %q, display math should be unwrapped", rendered.Question.Content)
	}
	widget, ok := rendered.Question.Widgets["radio 1"]
	if !ok {
		t.Fatalf("radio widget missing")
	}
	if widget.Options.MultipleSelect {
		t.Fatalf("single selection must not be multipleSelect")
	}
	if !widget.Options.Randomize {
		t.Fatalf("randomize flag lost")
	}
	choices := widget.Options.Choices
	if len(choices) != 2 {
		t.Fatalf("empty answer should be dropped, got %d choices", len(choices))
	}
	if choices[0].Content != "right" || !choices[0].Correct {
		t.Fatalf("choices not in authored order: %+v", choices)
	}
	if len(rendered.Hints) != 1 || rendered.Hints[0].Hint != "think" {
		t.Fatalf("hints = %+v", rendered.Hints)
	}
}

func TestRenderInputQuestionKeepsZero(t *testing.T) {
	m := newBlobMapper(t)
	bundle := newBundleWriter()
	item := &types.AssessmentItem{
		AssessmentID: "item2",
		Type:         types.ItemInputQuestion,
		Question:     "How many?",
		Answers: []byte(`[
			{"answer": "0", "correct": true, "order": 1},
			{"answer": "", "correct": false, "order": 2},
			{"answer": "4.5", "correct": false, "order": 3}
		]`),
	}
	if err := m.renderAssessmentItem(item, bundle); err != nil {
		t.Fatalf("renderAssessmentItem: %v", err)
	}
	data, err := bundle.finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	var rendered struct {
		Question struct {
			Widgets map[string]struct {
				Options struct {
					Answers []inputAnswer `json:"answers"`
				} `json:"options"`
			} `json:"widgets"`
		} `json:"question"`
	}
	if err := json.Unmarshal(readBundleEntry(t, data, "item2.json"), &rendered); err != nil {
		t.Fatalf("rendered item is not valid JSON: %v", err)
	}
	answers := rendered.Question.Widgets["numeric-input 1"].Options.Answers
	if len(answers) != 2 {
		t.Fatalf("want 2 answers (zero kept, empty dropped), got %+v", answers)
	}
	if answers[0].Value != 0.0 || !answers[0].Correct {
		t.Fatalf("zero answer mangled: %+v", answers[0])
	}
	if answers[1].Value != 4.5 {
		t.Fatalf("numeric answer mangled: %+v", answers[1])
	}
}

func TestRenderPerseusQuestionPassthrough(t *testing.T) {
	m := newBlobMapper(t)
	bundle := newBundleWriter()
	raw := `{"question": {"content": "see ` + types.ContentStoragePlaceholder + `/abc.png"}}`
	item := &types.AssessmentItem{
		AssessmentID: "item3",
		Type:         types.ItemPerseusQuestion,
		RawData:      raw,
	}
	if err := m.renderAssessmentItem(item, bundle); err != nil {
		t.Fatalf("renderAssessmentItem: %v", err)
	}
	data, err := bundle.finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	content := readBundleEntry(t, data, "item3.json")
	if bytes.Contains(content, []byte(types.ContentStoragePlaceholder)) {
		t.Fatalf("storage placeholder not rewritten: %s", content)
	}
	if !bytes.Contains(content, []byte(perseusImageDir+"/abc.png")) {
		t.Fatalf("raw data not passed through: %s", content)
	}
}

func TestRenderUnknownItemType(t *testing.T) {
	m := newBlobMapper(t)
	bundle := newBundleWriter()
	item := &types.AssessmentItem{AssessmentID: "item4", Type: "sorter"}
	err := m.renderAssessmentItem(item, bundle)
	if !errors.Is(err, apperrors.ErrUnsupportedItemType) {
		t.Fatalf("err = %v, want ErrUnsupportedItemType", err)
	}
}
