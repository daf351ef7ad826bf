package field

import (
	"slices"
	"sync"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// DefaultUploadLabel labels an upload field without an explicit label.
const DefaultUploadLabel = "Upload File"

// FileUploadConfig describes a single-file upload.
type FileUploadConfig struct {
	Name  string
	Label string
	Rules validation.FileRules
}

// FileUpload checks a selected file synchronously when it is picked. Only an
// accepted file is kept; a rejected one leaves the previous file in place
// and surfaces the first failing check.
type FileUpload struct {
	base
	rules validation.FileRules

	mu       sync.Mutex
	accepted *validation.File
	issues   []validation.Issue
	onFile   []func(*validation.File)
}

// NewFileUpload constructs the field. Checks run without a debounce window.
func NewFileUpload(cfg FileUploadConfig, opts ...Option) *FileUpload {
	label := cfg.Label
	if label == "" {
		label = DefaultUploadLabel
	}
	fu := &FileUpload{
		base:  newBase(cfg.Name, label, "", WidgetFile, cfg.Rules.Required),
		rules: cfg.Rules,
	}

	o := newOptions(0, opts)
	o.delay = 0
	fu.ctrl = NewController(fu.name, fu.check, o.controllerOptions()...)
	return fu
}

// Rules returns the upload checks.
func (fu *FileUpload) Rules() validation.FileRules {
	return fu.rules
}

// OnFile registers a listener for accepted selections and clears; nil means
// the field was cleared.
func (fu *FileUpload) OnFile(fn func(*validation.File)) {
	if fn == nil {
		return
	}
	fu.mu.Lock()
	fu.onFile = append(fu.onFile, fn)
	fu.mu.Unlock()
}

// Select runs the checks against file and reports whether it was accepted.
// A nil file clears the selection, which fails a required field.
func (fu *FileUpload) Select(file *validation.File) bool {
	issue, ok := validation.CheckFile(file, fu.rules)

	fu.mu.Lock()
	if ok {
		fu.issues = nil
		if file != nil {
			copied := *file
			fu.accepted = &copied
		} else {
			fu.accepted = nil
		}
	} else {
		fu.issues = []validation.Issue{issue}
		if file == nil {
			fu.accepted = nil
		}
	}
	accepted := fu.accepted
	listeners := slices.Clone(fu.onFile)
	fu.mu.Unlock()

	if !ok && file != nil {
		fu.ctrl.Blur()
		fu.ctrl.Recheck()
		return false
	}

	fu.ctrl.Commit(fileName(accepted))
	fu.ctrl.Recheck()
	for _, fn := range listeners {
		fn(accepted)
	}
	return ok
}

// SelectPath builds the descriptor from a file on disk and selects it.
func (fu *FileUpload) SelectPath(path string) (bool, error) {
	file, err := validation.FileFromPath(path)
	if err != nil {
		return false, err
	}
	return fu.Select(file), nil
}

// File returns the accepted file, if any.
func (fu *FileUpload) File() (validation.File, bool) {
	fu.mu.Lock()
	defer fu.mu.Unlock()
	if fu.accepted == nil {
		return validation.File{}, false
	}
	return *fu.accepted, true
}

// check reports the outcome of the latest selection. It runs under the
// controller lock and must not call back into the controller.
func (fu *FileUpload) check(string) []validation.Issue {
	fu.mu.Lock()
	defer fu.mu.Unlock()
	return slices.Clone(fu.issues)
}

func fileName(file *validation.File) string {
	if file == nil {
		return ""
	}
	return file.Name
}
