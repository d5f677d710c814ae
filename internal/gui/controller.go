package gui

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"edgeframe/internal/algorithms"
	"edgeframe/internal/app"
	"edgeframe/internal/imageio"
	"edgeframe/internal/logger"

	"fyne.io/fyne/v2"
)

// Controller runs viewer actions off the UI thread and pushes the outcome
// back to the View with fyne.Do.
type Controller struct {
	view       *View
	session    *Session
	algorithms *algorithms.Manager
	logger     logger.Logger

	mu               sync.Mutex
	processingActive bool
	workers          sync.WaitGroup
}

// NewController builds the view for window and binds it to env.
func NewController(window fyne.Window, env *app.Environment) *Controller {
	c := &Controller{
		session:    NewSession(env),
		algorithms: env.Algorithms,
		logger:     env.Logger,
	}

	current := env.Algorithms.GetCurrentAlgorithm()
	c.view = NewView(window, env.Algorithms.GetAvailableAlgorithms(), current)
	c.view.bind(c)
	c.view.UpdateParameterPanel(current, env.Algorithms.GetParameters(current))

	return c
}

func (c *Controller) Show() {
	c.view.Show()
}

func (c *Controller) LoadImage() {
	c.view.ShowFileDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.handleError("file selection", err)
			return
		}
		if reader == nil {
			return
		}

		c.view.SetStatus("Loading frame...")
		c.workers.Add(1)
		go func() {
			defer c.workers.Done()
			defer reader.Close()

			f, loadErr := c.session.Load(reader)
			fyne.Do(func() {
				if loadErr != nil {
					c.handleError("image load", loadErr)
					c.view.SetStatus("Ready")
					return
				}

				c.view.SetOriginalImage(f.ToImage())
				c.view.SetStatus(fmt.Sprintf("Loaded %dx%d", f.Width(), f.Height()))
			})

			if loadErr == nil {
				c.logger.Info("Controller", "frame loaded", map[string]interface{}{
					"uri":    reader.URI().String(),
					"width":  f.Width(),
					"height": f.Height(),
				})
			}
		}()
	})
}

func (c *Controller) SaveImage() {
	if c.session.Result() == nil {
		c.handleError("save", fmt.Errorf("no processed image to save"))
		return
	}

	c.view.ShowSaveDialog(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			c.handleError("file save", err)
			return
		}
		if writer == nil {
			return
		}

		format := imageio.FormatFromExtension(writer.URI().Name())
		c.view.SetStatus("Saving...")

		c.workers.Add(1)
		go func() {
			defer c.workers.Done()
			saveErr := c.session.Save(writer, format)
			if closeErr := writer.Close(); saveErr == nil {
				saveErr = closeErr
			}

			fyne.Do(func() {
				if saveErr != nil {
					c.handleError("image save", saveErr)
					return
				}
				c.view.SetStatus("Saved " + writer.URI().Name())
			})
		}()
	})
}

func (c *Controller) ChangeAlgorithm(name string) {
	if err := c.algorithms.SetCurrentAlgorithm(name); err != nil {
		c.handleError("algorithm change", err)
		return
	}

	c.view.UpdateParameterPanel(name, c.algorithms.GetParameters(name))
	c.logger.Debug("Controller", "algorithm changed", map[string]interface{}{
		"algorithm": name,
	})
}

// UpdateParameter stores value for the current algorithm. The error is
// returned so the panel can restore the previous value.
func (c *Controller) UpdateParameter(name string, value interface{}) error {
	algorithm := c.algorithms.GetCurrentAlgorithm()
	if err := c.algorithms.SetParameter(algorithm, name, value); err != nil {
		c.handleError("parameter update", err)
		return err
	}

	c.logger.Debug("Controller", "parameter updated", map[string]interface{}{
		"algorithm": algorithm,
		"parameter": name,
		"value":     value,
	})
	return nil
}

func (c *Controller) ProcessImage() {
	if !c.startProcessing() {
		c.logger.Debug("Controller", "processing already active", nil)
		return
	}

	c.view.SetBusy(true)
	c.view.SetStatus("Processing...")

	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		defer c.finishProcessing()

		result, err := c.session.Process()
		fyne.Do(func() {
			c.view.SetBusy(false)
			if err != nil {
				c.handleError("processing", err)
				c.view.SetStatus("Processing failed")
				return
			}

			c.view.SetPreviewImage(result.Output.ToImage())
			c.view.SetMetrics(FormatMetrics(result.Metrics))
			c.view.SetStatus(result.Algorithm + " complete")
		})
	}()
}

// FormatMetrics renders metrics as "key: value" pairs in key order.
func FormatMetrics(metrics map[string]float64) string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %g", k, metrics[k]))
	}
	return strings.Join(parts, " | ")
}

func (c *Controller) startProcessing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.processingActive {
		return false
	}
	c.processingActive = true
	return true
}

func (c *Controller) finishProcessing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processingActive = false
}

// Shutdown waits for background load, save and processing work to finish.
func (c *Controller) Shutdown() {
	c.workers.Wait()
	c.logger.Debug("Controller", "background work drained", nil)
}

// handleError logs err and shows it. It must run on the Fyne thread.
func (c *Controller) handleError(action string, err error) {
	c.logger.Error("Controller", err, map[string]interface{}{
		"action": action,
	})
	c.view.ShowError(err)
}
