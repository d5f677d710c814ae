package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type Toolbar struct {
	container       *fyne.Container
	loadButton      *widget.Button
	saveButton      *widget.Button
	processButton   *widget.Button
	algorithmSelect *widget.Select
	statusLabel     *widget.Label
	metricsLabel    *widget.Label

	loadHandler            func()
	saveHandler            func()
	processHandler         func()
	algorithmChangeHandler func(string)
}

// NewToolbar lists algorithms in the selector and preselects current.
func NewToolbar(algorithms []string, current string) *Toolbar {
	t := &Toolbar{}

	t.loadButton = widget.NewButton("Open Frame", func() { call(t.loadHandler) })
	t.loadButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButton("Save Result", func() { call(t.saveHandler) })
	t.saveButton.Disable()

	t.processButton = widget.NewButton("Process", func() { call(t.processHandler) })
	t.processButton.Importance = widget.HighImportance
	t.processButton.Disable()

	t.algorithmSelect = widget.NewSelect(algorithms, func(name string) {
		if t.algorithmChangeHandler != nil {
			t.algorithmChangeHandler(name)
		}
	})
	t.algorithmSelect.SetSelected(current)

	t.statusLabel = widget.NewLabel("Ready")
	t.metricsLabel = widget.NewLabel("")

	t.container = container.NewPadded(container.NewHBox(
		t.loadButton,
		t.saveButton,
		widget.NewSeparator(),
		container.NewVBox(widget.NewLabel("Algorithm"), t.algorithmSelect),
		t.processButton,
		widget.NewSeparator(),
		container.NewVBox(t.statusLabel, t.metricsLabel),
	))

	return t
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetLoadHandler(handler func())    { t.loadHandler = handler }
func (t *Toolbar) SetSaveHandler(handler func())    { t.saveHandler = handler }
func (t *Toolbar) SetProcessHandler(handler func()) { t.processHandler = handler }

func (t *Toolbar) SetAlgorithmChangeHandler(handler func(string)) {
	t.algorithmChangeHandler = handler
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) SetMetrics(text string) {
	t.metricsLabel.SetText(text)
}

// SetImageLoaded enables processing once a frame is available.
func (t *Toolbar) SetImageLoaded(loaded bool) {
	if loaded {
		t.processButton.Enable()
	} else {
		t.processButton.Disable()
	}
}

// SetResultAvailable enables saving once a result exists.
func (t *Toolbar) SetResultAvailable(available bool) {
	if available {
		t.saveButton.Enable()
	} else {
		t.saveButton.Disable()
	}
}

// SetBusy disables the actions that would race with a running job.
func (t *Toolbar) SetBusy(busy bool) {
	if busy {
		t.processButton.Disable()
		t.loadButton.Disable()
		return
	}
	t.processButton.Enable()
	t.loadButton.Enable()
}
