package quill

import (
	"encoding/json"
	"fmt"
)

// editStep is a single action in an edit script.
type editStep struct {
	Action string `json:"action"`
	Field  string `json:"field,omitempty"`
	Text   string `json:"text,omitempty"`
	Begin  int    `json:"begin,omitempty"`
	End    int    `json:"end,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type editScript struct {
	Steps []editStep `json:"steps"`
}

// EditScript sequences text edits and screenshots across frames for
// automated visual testing. Attach to a Stage via SetEditScript.
//
// Supported actions:
//
//	settext    replace the content of field with text
//	append     append text to field
//	select     set the selection of field to [begin, end]
//	replace    replace the selection of field with text (input fields only)
//	wait       idle for frames frames
//	screenshot queue a screenshot named label
type EditScript struct {
	steps     []editStep
	cursor    int
	waitCount int
	done      bool
}

// LoadEditScript parses a JSON edit script.
func LoadEditScript(jsonData []byte) (*EditScript, error) {
	var script editScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("quill: parse edit script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("quill: parse edit script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "settext", "append", "select", "replace":
			if st.Field == "" {
				return nil, fmt.Errorf("quill: parse edit script: step %d (%s) has no field", i, st.Action)
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("quill: parse edit script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &EditScript{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *EditScript) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Stage.Update.
func (r *EditScript) step(s *Stage) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		tf := s.Field(st.Field)
		if tf == nil {
			Logger().Warn("quill: edit script targets unknown field",
				"field", st.Field, "action", st.Action)
			break
		}
		switch st.Action {
		case "settext":
			tf.SetText(st.Text)
		case "append":
			tf.AppendText(st.Text)
		case "select":
			tf.SetSelection(st.Begin, st.End)
		case "replace":
			tf.ReplaceSelectedText(st.Text)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
