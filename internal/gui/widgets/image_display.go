package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ScrollViewportWidth  = 640
	ScrollViewportHeight = 480
)

// ImageDisplay shows the source frame and the processed result side by side
// in one scroll area.
type ImageDisplay struct {
	container     *fyne.Container
	originalImage *canvas.Image
	previewImage  *canvas.Image
}

func NewImageDisplay() *ImageDisplay {
	originalImage := canvas.NewImageFromImage(nil)
	originalImage.FillMode = canvas.ImageFillOriginal
	originalImage.ScaleMode = canvas.ImageScalePixels

	previewImage := canvas.NewImageFromImage(nil)
	previewImage.FillMode = canvas.ImageFillOriginal
	previewImage.ScaleMode = canvas.ImageScalePixels

	images := container.NewHBox(
		container.NewVBox(widget.NewRichTextFromMarkdown("**Frame**"), originalImage),
		container.NewVBox(widget.NewRichTextFromMarkdown("**Result**"), previewImage),
	)

	scroll := container.NewScroll(images)
	scroll.SetMinSize(fyne.NewSize(ScrollViewportWidth, ScrollViewportHeight))

	return &ImageDisplay{
		container:     container.NewBorder(nil, nil, nil, nil, scroll),
		originalImage: originalImage,
		previewImage:  previewImage,
	}
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}

func (id *ImageDisplay) SetOriginalImage(img image.Image) {
	setImage(id.originalImage, img)
}

func (id *ImageDisplay) SetPreviewImage(img image.Image) {
	setImage(id.previewImage, img)
}

// setImage sizes the canvas to the image so the scroll area can pan it.
func setImage(c *canvas.Image, img image.Image) {
	if img == nil {
		return
	}

	bounds := img.Bounds()
	c.Image = img
	c.SetMinSize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))
	c.Refresh()
}
