package gui

import (
	"image"

	"edgeframe/internal/gui/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// View owns the window content. All methods must run on the Fyne thread.
type View struct {
	window         fyne.Window
	toolbar        *widgets.Toolbar
	imageDisplay   *widgets.ImageDisplay
	parameterPanel *widgets.ParameterPanel
	mainContainer  *fyne.Container
}

func NewView(window fyne.Window, algorithms []string, current string) *View {
	v := &View{
		window:         window,
		toolbar:        widgets.NewToolbar(algorithms, current),
		imageDisplay:   widgets.NewImageDisplay(),
		parameterPanel: widgets.NewParameterPanel(),
	}

	v.mainContainer = container.NewBorder(
		v.toolbar.GetContainer(),
		v.parameterPanel.GetContainer(),
		nil, nil,
		v.imageDisplay.GetContainer(),
	)
	return v
}

func (v *View) bind(c *Controller) {
	v.toolbar.SetLoadHandler(c.LoadImage)
	v.toolbar.SetSaveHandler(c.SaveImage)
	v.toolbar.SetProcessHandler(c.ProcessImage)
	v.toolbar.SetAlgorithmChangeHandler(c.ChangeAlgorithm)
	v.parameterPanel.SetParameterChangeHandler(c.UpdateParameter)
}

func (v *View) SetOriginalImage(img image.Image) {
	v.imageDisplay.SetOriginalImage(img)
	v.toolbar.SetImageLoaded(true)
	v.toolbar.SetResultAvailable(false)
}

func (v *View) SetPreviewImage(img image.Image) {
	v.imageDisplay.SetPreviewImage(img)
	v.toolbar.SetResultAvailable(true)
}

func (v *View) UpdateParameterPanel(algorithm string, params map[string]interface{}) {
	v.parameterPanel.UpdateParameters(algorithm, params)
}

func (v *View) SetStatus(status string)   { v.toolbar.SetStatus(status) }
func (v *View) SetMetrics(metrics string) { v.toolbar.SetMetrics(metrics) }
func (v *View) SetBusy(busy bool)         { v.toolbar.SetBusy(busy) }

func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) ShowFileDialog(callback func(fyne.URIReadCloser, error)) {
	d := dialog.NewFileOpen(callback, v.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".gif"}))
	d.Show()
}

func (v *View) ShowSaveDialog(callback func(fyne.URIWriteCloser, error)) {
	d := dialog.NewFileSave(callback, v.window)
	d.SetFileName("edges.png")
	d.Show()
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
